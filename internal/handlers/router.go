package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ortholink/exercise-service/internal/content"
	"github.com/ortholink/exercise-service/internal/services"
	"github.com/ortholink/exercise-service/internal/utils"
	"github.com/ortholink/exercise-service/internal/validator"
)

type HandlerManager struct {
	authHandler     *AuthHandler
	contentHandler  *ContentHandler
	sessionHandler  *SessionHandler
	progressHandler *ProgressHandler
	speechHandler   *SpeechHandler
}

func NewHandlerManager(
	tree *content.Tree,
	authService services.AuthService,
	sessionService services.SessionService,
	exerciseService services.ExerciseService,
	progressService services.ProgressService,
	speechService services.SpeechService,
	validator *validator.Validator,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:     NewAuthHandler(authService, validator, logger),
		contentHandler:  NewContentHandler(tree, logger),
		sessionHandler:  NewSessionHandler(sessionService, exerciseService, validator, logger),
		progressHandler: NewProgressHandler(progressService, logger),
		speechHandler:   NewSpeechHandler(speechService, validator, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "exercise-service",
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Auth routes (stubbed account flow)
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", hm.authHandler.Signup)
			auth.POST("/login", hm.authHandler.Login)
		}

		// Content routes
		contentGroup := v1.Group("/content")
		{
			contentGroup.GET("/sections", hm.contentHandler.ListSections)
			contentGroup.GET("/sections/:id", hm.contentHandler.GetSection)
			contentGroup.GET("/exercises/:id", hm.contentHandler.GetExercise)
		}

		// Session routes
		sessions := v1.Group("/sessions")
		{
			sessions.POST("", hm.sessionHandler.StartSession)
			sessions.GET("/:id", hm.sessionHandler.GetSession)
			sessions.DELETE("/:id", hm.sessionHandler.EndSession)

			// Exercise interaction. Viewing is a POST because presenting an
			// ungraded exercise records its completion.
			sessions.POST("/:id/exercises/:exercise_id/view", hm.sessionHandler.ViewExercise)
			sessions.GET("/:id/exercises/:exercise_id", hm.sessionHandler.ViewExercise)
			sessions.POST("/:id/exercises/:exercise_id/attempts", hm.sessionHandler.SubmitAttempt)

			// Timed challenge
			sessions.POST("/:id/exercises/:exercise_id/challenge/start", hm.sessionHandler.StartChallenge)
			sessions.POST("/:id/exercises/:exercise_id/challenge/words", hm.sessionHandler.SubmitChallengeWord)
			sessions.POST("/:id/exercises/:exercise_id/challenge/cancel", hm.sessionHandler.CancelChallenge)
			sessions.GET("/:id/exercises/:exercise_id/challenge", hm.sessionHandler.GetChallenge)

			// Progress
			sessions.GET("/:id/progress", hm.progressHandler.GetSummary)
			sessions.GET("/:id/progress/report", hm.progressHandler.GetReport)
			sessions.GET("/:id/progress/export", hm.progressHandler.ExportReport)
		}

		// Speech synthesis
		v1.POST("/speech", hm.speechHandler.Synthesize)
	}
}
