package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ortholink/exercise-service/internal/events"
	"github.com/ortholink/exercise-service/internal/models"
	"github.com/ortholink/exercise-service/internal/session"
)

// SessionService owns the learner session lifecycle. Ending a session
// discards its whole interaction state: progress deliberately never
// survives a logout.
type SessionService interface {
	Start(ctx context.Context, profile models.Profile, language models.Language) (*models.LearnerSession, error)
	Get(ctx context.Context, id string) (*models.LearnerSession, error)
	End(ctx context.Context, id string) error
}

// ChallengeCanceller stops any countdowns a session still has running.
// Satisfied by ExerciseService.
type ChallengeCanceller interface {
	CancelSessionChallenges(sessionID string)
}

type sessionService struct {
	store      session.Store
	publisher  events.EventPublisher
	challenges ChallengeCanceller
	logger     *slog.Logger
}

func NewSessionService(store session.Store, publisher events.EventPublisher, challenges ChallengeCanceller, logger *slog.Logger) SessionService {
	return &sessionService{
		store:      store,
		publisher:  publisher,
		challenges: challenges,
		logger:     logger,
	}
}

func (s *sessionService) Start(ctx context.Context, profile models.Profile, language models.Language) (*models.LearnerSession, error) {
	if language != models.LanguageArabic && language != models.LanguageEnglish {
		language = models.LanguageArabic
	}

	learnerSession := &models.LearnerSession{
		ID:        uuid.NewString(),
		Profile:   profile,
		Language:  language,
		StartedAt: time.Now(),
	}

	if err := s.store.Create(ctx, learnerSession); err != nil {
		if errors.Is(err, session.ErrAlreadyExists) {
			return nil, ErrSessionExists
		}
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.publishEvent(ctx, events.NewSessionStartedEvent(learnerSession))
	s.logger.Info("session started",
		"session_id", learnerSession.ID,
		"role", profile.Role,
		"language", language)

	return learnerSession, nil
}

func (s *sessionService) Get(ctx context.Context, id string) (*models.LearnerSession, error) {
	learnerSession, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return learnerSession, nil
}

func (s *sessionService) End(ctx context.Context, id string) error {
	completed, err := s.store.CompletedSet(ctx, id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("failed to read session state: %w", err)
	}

	// Stop any running countdowns before the state goes away, so an expiry
	// cannot fire against a deleted session.
	if s.challenges != nil {
		s.challenges.CancelSessionChallenges(id)
	}

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("failed to delete session: %w", err)
	}

	s.publishEvent(ctx, events.NewSessionEndedEvent(id, len(completed)))
	s.logger.Info("session ended", "session_id", id, "exercises_completed", len(completed))
	return nil
}

func (s *sessionService) publishEvent(ctx context.Context, event *events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishEvent(ctx, event); err != nil {
		s.logger.Error("failed to publish event", "event_type", event.Type, "error", err)
	}
}
