package session

import (
	"context"
	"errors"

	"github.com/ortholink/exercise-service/internal/models"
)

var (
	ErrNotFound      = errors.New("session not found")
	ErrAlreadyExists = errors.New("session already exists")
)

// Store holds per-session learning state: the session record, the set of
// completed exercise ids and the per-exercise sub-item locks. Deleting a
// session discards all of it; completion never outlives the session.
type Store interface {
	Create(ctx context.Context, session *models.LearnerSession) error
	Get(ctx context.Context, id string) (*models.LearnerSession, error)
	Delete(ctx context.Context, id string) error

	// MarkCompleted adds the exercise to the session's completed set.
	// It reports whether the id was newly added; marking an already
	// complete exercise is a no-op with added=false.
	MarkCompleted(ctx context.Context, sessionID, exerciseID string) (added bool, err error)
	CompletedSet(ctx context.Context, sessionID string) (map[string]bool, error)

	// LockItem records a resolved sub-item of a multi-resolve exercise and
	// returns the number of sub-items locked so far.
	LockItem(ctx context.Context, sessionID, exerciseID, subItemID string) (locked int, err error)
	LockedItems(ctx context.Context, sessionID, exerciseID string) (map[string]bool, error)
}
