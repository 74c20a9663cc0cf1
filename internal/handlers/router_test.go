package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ortholink/exercise-service/internal/content"
	"github.com/ortholink/exercise-service/internal/evaluator"
	"github.com/ortholink/exercise-service/internal/events"
	"github.com/ortholink/exercise-service/internal/models"
	"github.com/ortholink/exercise-service/internal/services"
	"github.com/ortholink/exercise-service/internal/session"
	"github.com/ortholink/exercise-service/internal/utils"
	"github.com/ortholink/exercise-service/internal/validator"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tree, err := content.LoadBuiltin()
	require.NoError(t, err)

	slogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	logger := utils.NewSlogLogger(slogger)
	store := session.NewMemoryStore()
	publisher := events.NewMockEventPublisher(slogger)

	exerciseService := services.NewExerciseService(tree, store, evaluator.New(evaluator.PolicyNone), publisher, slogger)

	manager := NewHandlerManager(
		tree,
		services.NewStubAuthService(slogger),
		services.NewSessionService(store, publisher, exerciseService, slogger),
		exerciseService,
		services.NewProgressService(tree, store, slogger),
		services.NewSpeechService("", slogger),
		validator.New(),
		logger,
	)

	router := gin.New()
	manager.SetupRoutes(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func startTestSession(t *testing.T, router *gin.Engine) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/sessions", StartSessionRequest{
		Profile:  models.Profile{Email: "amine@example.com", FirstName: "Amine"},
		Language: models.LanguageArabic,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.LearnerSession
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	return created.ID
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestListSections(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/content/sections", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var sections []SectionSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sections))
	assert.Len(t, sections, 3)
	assert.NotZero(t, sections[0].ExerciseCount)
}

func TestGetSectionNotFound(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/content/sections/no-such-section", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionLifecycleOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	sessionID := startTestSession(t, router)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/sessions/"+sessionID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/sessions/"+sessionID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/sessions/"+sessionID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitAttemptOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	sessionID := startTestSession(t, router)

	base := fmt.Sprintf("/api/v1/sessions/%s/exercises/word-transform-singular-to-plural", sessionID)

	rec := doJSON(t, router, http.MethodPost, base+"/attempts", map[string]string{
		"item_id": "wt-1",
		"text":    "أقلام",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var outcome models.AttemptOutcome
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outcome))
	assert.Equal(t, models.ResultCorrect, outcome.Result)

	// A wrong answer is still a 200; incorrect is a verdict, not an error.
	rec = doJSON(t, router, http.MethodPost, base+"/attempts", map[string]string{
		"item_id": "wt-1",
		"text":    "قلمان",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outcome))
	assert.Equal(t, models.ResultIncorrect, outcome.Result)
}

func TestSubmitAttemptRejectsUngradedVariant(t *testing.T) {
	router := newTestRouter(t)
	sessionID := startTestSession(t, router)

	path := fmt.Sprintf("/api/v1/sessions/%s/exercises/reading-practice/attempts", sessionID)
	rec := doJSON(t, router, http.MethodPost, path, map[string]string{"item_id": "rd-1", "text": "x"})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestProgressSummaryOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	sessionID := startTestSession(t, router)

	// Viewing an ungraded exercise auto-completes it.
	rec := doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/api/v1/sessions/%s/exercises/reading-practice", sessionID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/api/v1/sessions/%s/progress", sessionID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var summary models.ProgressSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 1, summary.Completed)
	assert.Equal(t, 22, summary.Total)
}

func TestProgressExportOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	sessionID := startTestSession(t, router)

	rec := doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/api/v1/sessions/%s/progress/export", sessionID), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotZero(t, rec.Body.Len())
}

func TestChallengeStartOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	sessionID := startTestSession(t, router)

	base := fmt.Sprintf("/api/v1/sessions/%s/exercises/timed-challenge-sh/challenge", sessionID)

	rec := doJSON(t, router, http.MethodPost, base+"/start", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var status services.ChallengeStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, services.ChallengeRunning, status.State)
	assert.Equal(t, 60, status.SecondsLeft)

	rec = doJSON(t, router, http.MethodPost, base+"/words", ChallengeWordRequest{Word: "شمس"})
	require.Equal(t, http.StatusOK, rec.Code)

	// Starting again while running conflicts.
	rec = doJSON(t, router, http.MethodPost, base+"/start", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, http.MethodPost, base+"/cancel", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSignupOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", services.SignupRequest{
		Email:     "nadia@clinic.dz",
		Password:  "s3cret!",
		FirstName: "Nadia",
		LastName:  "Mansouri",
		Role:      models.RoleTherapist,
		Workplace: "Cabinet d'orthophonie",
		Wilaya:    "Alger",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var profile models.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, "Nadia", profile.FirstName)
	assert.Equal(t, models.RoleTherapist, profile.Role)
}

func TestSignupValidation(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", services.SignupRequest{
		Email:    "not-an-email",
		Password: "x",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSpeechUnavailableWithoutAPIKey(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/speech", SynthesizeRequest{
		Text:     "مرحبا",
		Language: models.LanguageArabic,
	})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
