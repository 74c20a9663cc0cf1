package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ortholink/exercise-service/internal/models"
	"github.com/ortholink/exercise-service/internal/services"
	"github.com/ortholink/exercise-service/internal/utils"
	"github.com/ortholink/exercise-service/internal/validator"
)

// SessionHandler owns the session lifecycle and everything the learner does
// inside one: viewing exercises, submitting answers, running timed challenges.
type SessionHandler struct {
	BaseHandler
	sessionService  services.SessionService
	exerciseService services.ExerciseService
	validator       *validator.Validator
}

type StartSessionRequest struct {
	Profile  models.Profile  `json:"profile"`
	Language models.Language `json:"language" validate:"omitempty,language"`
}

type ChallengeWordRequest struct {
	Word string `json:"word" validate:"required"`
}

func NewSessionHandler(
	sessionService services.SessionService,
	exerciseService services.ExerciseService,
	validator *validator.Validator,
	logger utils.Logger,
) *SessionHandler {
	return &SessionHandler{
		BaseHandler:     NewBaseHandler(logger),
		sessionService:  sessionService,
		exerciseService: exerciseService,
		validator:       validator,
	}
}

// StartSession opens a new learning session
// @Summary Start session
// @Tags sessions
// @Accept json
// @Produce json
// @Param session body StartSessionRequest true "Learner profile and language"
// @Success 201 {object} models.LearnerSession
// @Failure 400 {object} ErrorResponse
// @Router /sessions [post]
func (h *SessionHandler) StartSession(c *gin.Context) {
	var req StartSessionRequest
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

	h.LogRequest(c, "Starting session", "learner", req.Profile.DisplayName(), "language", req.Language)

	session, err := h.sessionService.Start(c.Request.Context(), req.Profile, req.Language)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// GetSession returns a running session
// @Summary Get session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.LearnerSession
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	session, err := h.sessionService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// EndSession closes a session and discards its state
// @Summary End session
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id} [delete]
func (h *SessionHandler) EndSession(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	h.LogRequest(c, "Ending session", "session_id", id)

	if err := h.sessionService.End(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ViewExercise returns an exercise with the session's state on it
// @Summary View exercise
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param exercise_id path string true "Exercise ID"
// @Success 200 {object} services.ExerciseView
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id}/exercises/{exercise_id}/view [post]
func (h *SessionHandler) ViewExercise(c *gin.Context) {
	sessionID := ParseStringIDParam(c, "id")
	if sessionID == "" {
		return
	}
	exerciseID := ParseStringIDParam(c, "exercise_id")
	if exerciseID == "" {
		return
	}

	view, err := h.exerciseService.View(c.Request.Context(), sessionID, exerciseID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// SubmitAttempt judges one answer payload
// @Summary Submit attempt
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param exercise_id path string true "Exercise ID"
// @Param answer body object true "Variant-specific answer payload"
// @Success 200 {object} models.AttemptOutcome
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id}/exercises/{exercise_id}/attempts [post]
func (h *SessionHandler) SubmitAttempt(c *gin.Context) {
	sessionID := ParseStringIDParam(c, "id")
	if sessionID == "" {
		return
	}
	exerciseID := ParseStringIDParam(c, "exercise_id")
	if exerciseID == "" {
		return
	}

	var payload json.RawMessage
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Submitting attempt", "session_id", sessionID, "exercise_id", exerciseID)

	outcome, err := h.exerciseService.SubmitAttempt(c.Request.Context(), sessionID, exerciseID, payload)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// StartChallenge begins a timed-challenge countdown
// @Summary Start challenge
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param exercise_id path string true "Exercise ID"
// @Success 200 {object} services.ChallengeStatus
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/exercises/{exercise_id}/challenge/start [post]
func (h *SessionHandler) StartChallenge(c *gin.Context) {
	sessionID := ParseStringIDParam(c, "id")
	if sessionID == "" {
		return
	}
	exerciseID := ParseStringIDParam(c, "exercise_id")
	if exerciseID == "" {
		return
	}

	h.LogRequest(c, "Starting challenge", "session_id", sessionID, "exercise_id", exerciseID)

	status, err := h.exerciseService.StartChallenge(c.Request.Context(), sessionID, exerciseID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// SubmitChallengeWord records one word typed during the countdown
// @Summary Submit challenge word
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param exercise_id path string true "Exercise ID"
// @Param word body ChallengeWordRequest true "Typed word"
// @Success 200 {object} services.ChallengeStatus
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/exercises/{exercise_id}/challenge/words [post]
func (h *SessionHandler) SubmitChallengeWord(c *gin.Context) {
	sessionID := ParseStringIDParam(c, "id")
	if sessionID == "" {
		return
	}
	exerciseID := ParseStringIDParam(c, "exercise_id")
	if exerciseID == "" {
		return
	}

	var req ChallengeWordRequest
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

	status, err := h.exerciseService.SubmitChallengeWord(c.Request.Context(), sessionID, exerciseID, req.Word)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// CancelChallenge abandons a running countdown
// @Summary Cancel challenge
// @Tags sessions
// @Param id path string true "Session ID"
// @Param exercise_id path string true "Exercise ID"
// @Success 204
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/exercises/{exercise_id}/challenge/cancel [post]
func (h *SessionHandler) CancelChallenge(c *gin.Context) {
	sessionID := ParseStringIDParam(c, "id")
	if sessionID == "" {
		return
	}
	exerciseID := ParseStringIDParam(c, "exercise_id")
	if exerciseID == "" {
		return
	}

	h.LogRequest(c, "Cancelling challenge", "session_id", sessionID, "exercise_id", exerciseID)

	if err := h.exerciseService.CancelChallenge(c.Request.Context(), sessionID, exerciseID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetChallenge reports the countdown state
// @Summary Get challenge state
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param exercise_id path string true "Exercise ID"
// @Success 200 {object} services.ChallengeStatus
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id}/exercises/{exercise_id}/challenge [get]
func (h *SessionHandler) GetChallenge(c *gin.Context) {
	sessionID := ParseStringIDParam(c, "id")
	if sessionID == "" {
		return
	}
	exerciseID := ParseStringIDParam(c, "exercise_id")
	if exerciseID == "" {
		return
	}

	status, err := h.exerciseService.GetChallenge(c.Request.Context(), sessionID, exerciseID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}
