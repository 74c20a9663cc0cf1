package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ortholink/exercise-service/internal/content"
	"github.com/ortholink/exercise-service/internal/evaluator"
	"github.com/ortholink/exercise-service/internal/events"
	"github.com/ortholink/exercise-service/internal/models"
	"github.com/ortholink/exercise-service/internal/session"
)

// ExerciseService drives the per-exercise interaction loop: viewing, graded
// attempts and the timed challenge. Evaluation itself stays pure; all state
// changes happen here, against the session store.
type ExerciseService interface {
	// View returns the exercise together with the session's interaction
	// state, auto-completing ungraded practice variants on first view.
	View(ctx context.Context, sessionID, exerciseID string) (*ExerciseView, error)

	// SubmitAttempt judges one answer payload and applies its effects.
	SubmitAttempt(ctx context.Context, sessionID, exerciseID string, payload json.RawMessage) (*models.AttemptOutcome, error)

	// StartChallenge begins the countdown of a timed-challenge exercise.
	StartChallenge(ctx context.Context, sessionID, exerciseID string) (*ChallengeStatus, error)

	// SubmitChallengeWord records one word typed while the clock runs.
	SubmitChallengeWord(ctx context.Context, sessionID, exerciseID, word string) (*ChallengeStatus, error)

	// CancelChallenge abandons a running countdown without completion.
	CancelChallenge(ctx context.Context, sessionID, exerciseID string) error

	// GetChallenge reports the current countdown state.
	GetChallenge(ctx context.Context, sessionID, exerciseID string) (*ChallengeStatus, error)

	// CancelSessionChallenges stops every countdown the session still has
	// running. Session teardown calls this so no clock outlives its session.
	CancelSessionChallenges(sessionID string)
}

// ExerciseView is an exercise enriched with the session's progress on it.
type ExerciseView struct {
	Exercise    *models.Exercise `json:"exercise"`
	SectionID   string           `json:"section_id"`
	Completed   bool             `json:"completed"`
	LockedItems []string         `json:"locked_items,omitempty"`
}

// ChallengeStatus is the countdown snapshot returned to the caller.
type ChallengeStatus struct {
	ExerciseID  string         `json:"exercise_id"`
	State       ChallengeState `json:"state"`
	SecondsLeft int            `json:"seconds_left"`
	Words       []string       `json:"words"`
}

type exerciseService struct {
	tree       *content.Tree
	store      session.Store
	evaluator  *evaluator.Evaluator
	publisher  events.EventPublisher
	challenges *challengeRegistry
	logger     *slog.Logger

	// runChallengeClock is swapped out in tests to drive ticks manually.
	runChallengeClock func(ctx context.Context, cd *Countdown)
}

func NewExerciseService(tree *content.Tree, store session.Store, eval *evaluator.Evaluator, publisher events.EventPublisher, logger *slog.Logger) ExerciseService {
	return &exerciseService{
		tree:              tree,
		store:             store,
		evaluator:         eval,
		publisher:         publisher,
		challenges:        newChallengeRegistry(),
		logger:            logger,
		runChallengeClock: func(ctx context.Context, cd *Countdown) { go cd.Run(ctx) },
	}
}

// ===== VIEWING =====

func (s *exerciseService) View(ctx context.Context, sessionID, exerciseID string) (*ExerciseView, error) {
	ex, sectionID, err := s.lookup(exerciseID)
	if err != nil {
		return nil, err
	}

	completed, err := s.store.CompletedSet(ctx, sessionID)
	if err != nil {
		return nil, s.mapStoreErr(err)
	}

	// Ungraded practice content completes on first presentation.
	if ex.AutoCompletes() && !completed[exerciseID] {
		if err := s.complete(ctx, sessionID, sectionID, ex, ""); err != nil {
			return nil, err
		}
		completed[exerciseID] = true
	}

	view := &ExerciseView{
		Exercise:  ex,
		SectionID: sectionID,
		Completed: completed[exerciseID],
	}

	if ex.MultiResolve() {
		locked, err := s.store.LockedItems(ctx, sessionID, exerciseID)
		if err != nil {
			return nil, s.mapStoreErr(err)
		}
		for id := range locked {
			view.LockedItems = append(view.LockedItems, id)
		}
	}
	return view, nil
}

// ===== GRADED ATTEMPTS =====

func (s *exerciseService) SubmitAttempt(ctx context.Context, sessionID, exerciseID string, payload json.RawMessage) (*models.AttemptOutcome, error) {
	ex, sectionID, err := s.lookup(exerciseID)
	if err != nil {
		return nil, err
	}

	verdict, err := s.evaluator.Evaluate(ex, payload)
	if err != nil {
		switch {
		case errors.Is(err, evaluator.ErrNotGradable):
			return nil, fmt.Errorf("%w: %s", ErrExerciseNotGradable, ex.Type)
		case errors.Is(err, evaluator.ErrUnknownItem), errors.Is(err, evaluator.ErrMalformedAnswer):
			return nil, fmt.Errorf("%w: %v", ErrInvalidAnswer, err)
		default:
			return nil, err
		}
	}

	outcome := &models.AttemptOutcome{Result: verdict.Result}
	if verdict.Result == models.ResultIncorrect {
		// Try-again outcome, nothing recorded.
		return outcome, nil
	}

	// A first correct sub-item completes the exercise for scoring; the
	// remaining sub-items of a multi-resolve exercise still lock one by
	// one so the learner can finish the interaction.
	if ex.MultiResolve() {
		locked, err := s.store.LockItem(ctx, sessionID, exerciseID, verdict.SubItemID)
		if err != nil {
			return nil, s.mapStoreErr(err)
		}
		outcome.ItemLocked = true
		outcome.ExerciseLocked = locked >= ex.ResolvableCount()
	} else {
		outcome.ItemLocked = true
		outcome.ExerciseLocked = true
	}

	added, err := s.store.MarkCompleted(ctx, sessionID, exerciseID)
	if err != nil {
		return nil, s.mapStoreErr(err)
	}
	outcome.ExerciseCompleted = added
	if added {
		s.publish(ctx, events.NewExerciseCompletedEvent(sessionID, sectionID, ex, verdict.SubItemID))
		s.logger.Info("exercise completed",
			"session_id", sessionID,
			"exercise_id", exerciseID,
			"trigger_item", verdict.SubItemID)
	}

	return outcome, nil
}

// ===== TIMED CHALLENGE =====

func (s *exerciseService) StartChallenge(ctx context.Context, sessionID, exerciseID string) (*ChallengeStatus, error) {
	ex, sectionID, err := s.lookup(exerciseID)
	if err != nil {
		return nil, err
	}
	if ex.Type != models.TypeTimedChallenge {
		return nil, fmt.Errorf("%w: %s", ErrChallengeWrongType, ex.Type)
	}
	if _, err := s.store.Get(ctx, sessionID); err != nil {
		return nil, s.mapStoreErr(err)
	}

	// Expiry completes the exercise. Detached from the request context:
	// the countdown outlives the HTTP call that started it.
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	cd := NewCountdown(ex.Duration, nil)
	cd.onExpire = func() {
		s.expireChallenge(sessionID, sectionID, ex, cd)
	}

	if !s.challenges.add(sessionID, exerciseID, cd, cancel) {
		cancel()
		return nil, ErrChallengeAlreadyRunning
	}

	s.publish(ctx, events.NewChallengeStartedEvent(sessionID, ex))
	s.runChallengeClock(runCtx, cd)

	return s.status(exerciseID, cd), nil
}

func (s *exerciseService) SubmitChallengeWord(ctx context.Context, sessionID, exerciseID, word string) (*ChallengeStatus, error) {
	entry, ok := s.challenges.get(sessionID, exerciseID)
	if !ok {
		return nil, ErrChallengeNotRunning
	}
	if !entry.countdown.AddWord(word) {
		return nil, ErrChallengeNotRunning
	}
	return s.status(exerciseID, entry.countdown), nil
}

func (s *exerciseService) CancelChallenge(ctx context.Context, sessionID, exerciseID string) error {
	entry, ok := s.challenges.get(sessionID, exerciseID)
	if !ok {
		return ErrChallengeNotRunning
	}
	entry.cancel()
	entry.countdown.Cancel()
	s.challenges.remove(sessionID, exerciseID)
	s.publish(ctx, events.NewChallengeCancelledEvent(sessionID, exerciseID))
	s.logger.Info("challenge cancelled", "session_id", sessionID, "exercise_id", exerciseID)
	return nil
}

func (s *exerciseService) CancelSessionChallenges(sessionID string) {
	s.challenges.removeSession(sessionID)
}

func (s *exerciseService) GetChallenge(ctx context.Context, sessionID, exerciseID string) (*ChallengeStatus, error) {
	entry, ok := s.challenges.get(sessionID, exerciseID)
	if !ok {
		return nil, ErrChallengeNotRunning
	}
	return s.status(exerciseID, entry.countdown), nil
}

func (s *exerciseService) expireChallenge(sessionID, sectionID string, ex *models.Exercise, cd *Countdown) {
	ctx := context.Background()
	defer s.challenges.remove(sessionID, ex.ID)

	err := s.complete(ctx, sessionID, sectionID, ex, "")
	if errors.Is(err, ErrSessionNotFound) {
		// The session ended while the clock ran; nothing to record or announce.
		s.logger.Info("challenge expired after session end",
			"session_id", sessionID,
			"exercise_id", ex.ID)
		return
	}
	if err != nil {
		s.logger.Error("failed to record challenge completion",
			"session_id", sessionID,
			"exercise_id", ex.ID,
			"error", err)
	}
	s.publish(ctx, events.NewChallengeExpiredEvent(sessionID, ex.ID, cd.Words()))
}

// ===== HELPERS =====

func (s *exerciseService) lookup(exerciseID string) (*models.Exercise, string, error) {
	ex, ok := s.tree.Exercise(exerciseID)
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", ErrExerciseNotFound, exerciseID)
	}
	sectionID, _ := s.tree.SectionOf(exerciseID)
	return ex, sectionID, nil
}

func (s *exerciseService) complete(ctx context.Context, sessionID, sectionID string, ex *models.Exercise, triggerItemID string) error {
	added, err := s.store.MarkCompleted(ctx, sessionID, ex.ID)
	if err != nil {
		return s.mapStoreErr(err)
	}
	if added {
		s.publish(ctx, events.NewExerciseCompletedEvent(sessionID, sectionID, ex, triggerItemID))
	}
	return nil
}

func (s *exerciseService) status(exerciseID string, cd *Countdown) *ChallengeStatus {
	state, secondsLeft := cd.State()
	return &ChallengeStatus{
		ExerciseID:  exerciseID,
		State:       state,
		SecondsLeft: secondsLeft,
		Words:       cd.Words(),
	}
}

func (s *exerciseService) publish(ctx context.Context, event *events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishEvent(ctx, event); err != nil {
		s.logger.Error("failed to publish event", "event_type", event.Type, "error", err)
	}
}

func (s *exerciseService) mapStoreErr(err error) error {
	if errors.Is(err, session.ErrNotFound) {
		return ErrSessionNotFound
	}
	return err
}
