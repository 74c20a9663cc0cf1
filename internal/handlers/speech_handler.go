package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ortholink/exercise-service/internal/models"
	"github.com/ortholink/exercise-service/internal/services"
	"github.com/ortholink/exercise-service/internal/utils"
	"github.com/ortholink/exercise-service/internal/validator"
)

// SpeechHandler synthesizes exercise text to audio. Clients must treat a
// 503 as a cue to continue silently, never as a hard failure.
type SpeechHandler struct {
	BaseHandler
	speechService services.SpeechService
	validator     *validator.Validator
}

type SynthesizeRequest struct {
	Text     string          `json:"text" validate:"required,max=500"`
	Language models.Language `json:"language" validate:"omitempty,language"`
}

func NewSpeechHandler(speechService services.SpeechService, validator *validator.Validator, logger utils.Logger) *SpeechHandler {
	return &SpeechHandler{
		BaseHandler:   NewBaseHandler(logger),
		speechService: speechService,
		validator:     validator,
	}
}

// Synthesize converts text to MP3 audio
// @Summary Synthesize speech
// @Tags speech
// @Accept json
// @Produce audio/mpeg
// @Param request body SynthesizeRequest true "Text and language"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /speech [post]
func (h *SpeechHandler) Synthesize(c *gin.Context) {
	var req SynthesizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
		})
		return
	}

	language := req.Language
	if language == "" {
		language = models.LanguageArabic
	}

	audio, contentType, err := h.speechService.Synthesize(c.Request.Context(), req.Text, language)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Data(http.StatusOK, contentType, audio)
}
