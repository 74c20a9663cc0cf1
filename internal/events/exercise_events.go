package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/ortholink/exercise-service/internal/models"
)

// EventType represents different types of learning events
type EventType string

const (
	// Session events
	EventSessionStarted EventType = "session.started"
	EventSessionEnded   EventType = "session.ended"

	// Exercise events
	EventExerciseCompleted EventType = "exercise.completed"

	// Challenge events
	EventChallengeStarted   EventType = "challenge.started"
	EventChallengeExpired   EventType = "challenge.expired"
	EventChallengeCancelled EventType = "challenge.cancelled"
)

// Event is the base structure for all learning events
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Session event payloads

type SessionStartedEvent struct {
	SessionID string          `json:"session_id"`
	Email     string          `json:"email"`
	Role      models.Role     `json:"role"`
	Language  models.Language `json:"language"`
	StartedAt time.Time       `json:"started_at"`
}

type SessionEndedEvent struct {
	SessionID          string    `json:"session_id"`
	EndedAt            time.Time `json:"ended_at"`
	ExercisesCompleted int       `json:"exercises_completed"`
}

// Exercise event payloads

type ExerciseCompletedEvent struct {
	SessionID     string              `json:"session_id"`
	ExerciseID    string              `json:"exercise_id"`
	SectionID     string              `json:"section_id"`
	ExerciseType  models.ExerciseType `json:"exercise_type"`
	CompletedAt   time.Time           `json:"completed_at"`
	TriggerItemID string              `json:"trigger_item_id,omitempty"`
}

// Challenge event payloads

type ChallengeStartedEvent struct {
	SessionID  string    `json:"session_id"`
	ExerciseID string    `json:"exercise_id"`
	Letter     string    `json:"letter"`
	Duration   int       `json:"duration"`
	StartedAt  time.Time `json:"started_at"`
}

type ChallengeExpiredEvent struct {
	SessionID  string    `json:"session_id"`
	ExerciseID string    `json:"exercise_id"`
	WordCount  int       `json:"word_count"`
	Words      []string  `json:"words"`
	ExpiredAt  time.Time `json:"expired_at"`
}

type ChallengeCancelledEvent struct {
	SessionID   string    `json:"session_id"`
	ExerciseID  string    `json:"exercise_id"`
	CancelledAt time.Time `json:"cancelled_at"`
}

// Event factory functions

func NewSessionStartedEvent(session *models.LearnerSession) *Event {
	return newEvent(EventSessionStarted, SessionStartedEvent{
		SessionID: session.ID,
		Email:     session.Profile.Email,
		Role:      session.Profile.Role,
		Language:  session.Language,
		StartedAt: session.StartedAt,
	})
}

func NewSessionEndedEvent(sessionID string, completed int) *Event {
	return newEvent(EventSessionEnded, SessionEndedEvent{
		SessionID:          sessionID,
		EndedAt:            time.Now(),
		ExercisesCompleted: completed,
	})
}

func NewExerciseCompletedEvent(sessionID, sectionID string, ex *models.Exercise, triggerItemID string) *Event {
	return newEvent(EventExerciseCompleted, ExerciseCompletedEvent{
		SessionID:     sessionID,
		ExerciseID:    ex.ID,
		SectionID:     sectionID,
		ExerciseType:  ex.Type,
		CompletedAt:   time.Now(),
		TriggerItemID: triggerItemID,
	})
}

func NewChallengeStartedEvent(sessionID string, ex *models.Exercise) *Event {
	return newEvent(EventChallengeStarted, ChallengeStartedEvent{
		SessionID:  sessionID,
		ExerciseID: ex.ID,
		Letter:     ex.Letter,
		Duration:   ex.Duration,
		StartedAt:  time.Now(),
	})
}

func NewChallengeExpiredEvent(sessionID, exerciseID string, words []string) *Event {
	return newEvent(EventChallengeExpired, ChallengeExpiredEvent{
		SessionID:  sessionID,
		ExerciseID: exerciseID,
		WordCount:  len(words),
		Words:      words,
		ExpiredAt:  time.Now(),
	})
}

func NewChallengeCancelledEvent(sessionID, exerciseID string) *Event {
	return newEvent(EventChallengeCancelled, ChallengeCancelledEvent{
		SessionID:   sessionID,
		ExerciseID:  exerciseID,
		CancelledAt: time.Now(),
	})
}

func newEvent(eventType EventType, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    "exercise-service",
		Version:   "1.0",
		Data:      data,
	}
}
