package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ortholink/exercise-service/internal/services"
	"github.com/ortholink/exercise-service/internal/utils"
	"github.com/ortholink/exercise-service/internal/validator"
)

// AuthHandler fronts the stubbed account flow. Until the dedicated account
// service ships, signup and login echo a profile and never persist anything.
type AuthHandler struct {
	BaseHandler
	authService services.AuthService
	validator   *validator.Validator
}

func NewAuthHandler(authService services.AuthService, validator *validator.Validator, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
		validator:   validator,
	}
}

// Signup registers a new therapist or parent account
// @Summary Sign up
// @Tags auth
// @Accept json
// @Produce json
// @Param signup body services.SignupRequest true "Account data"
// @Success 201 {object} models.Profile
// @Failure 400 {object} ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req services.SignupRequest
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

	h.LogRequest(c, "Signing up account", "email", req.Email, "role", req.Role)

	profile, err := h.authService.Signup(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, profile)
}

// Login authenticates an account
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param login body services.LoginRequest true "Credentials"
// @Success 200 {object} models.Profile
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
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

	h.LogRequest(c, "Logging in", "email", req.Email)

	profile, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
