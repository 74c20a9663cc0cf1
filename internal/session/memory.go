package session

import (
	"context"
	"sync"

	"github.com/ortholink/exercise-service/internal/models"
)

// memoryStore is the default single-process store. State lives for the
// lifetime of the session only, matching the product model where progress
// resets on logout.
type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionState
}

type sessionState struct {
	session   models.LearnerSession
	completed map[string]bool
	locks     map[string]map[string]bool // exercise id -> locked sub-item ids
}

func NewMemoryStore() Store {
	return &memoryStore{sessions: make(map[string]*sessionState)}
}

func (s *memoryStore) Create(ctx context.Context, session *models.LearnerSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[session.ID]; ok {
		return ErrAlreadyExists
	}
	s.sessions[session.ID] = &sessionState{
		session:   *session,
		completed: make(map[string]bool),
		locks:     make(map[string]map[string]bool),
	}
	return nil
}

func (s *memoryStore) Get(ctx context.Context, id string) (*models.LearnerSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	session := state.session
	return &session, nil
}

func (s *memoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *memoryStore) MarkCompleted(ctx context.Context, sessionID, exerciseID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return false, ErrNotFound
	}
	if state.completed[exerciseID] {
		return false, nil
	}
	state.completed[exerciseID] = true
	return true, nil
}

func (s *memoryStore) CompletedSet(ctx context.Context, sessionID string) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	completed := make(map[string]bool, len(state.completed))
	for id := range state.completed {
		completed[id] = true
	}
	return completed, nil
}

func (s *memoryStore) LockItem(ctx context.Context, sessionID, exerciseID, subItemID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return 0, ErrNotFound
	}
	locks := state.locks[exerciseID]
	if locks == nil {
		locks = make(map[string]bool)
		state.locks[exerciseID] = locks
	}
	locks[subItemID] = true
	return len(locks), nil
}

func (s *memoryStore) LockedItems(ctx context.Context, sessionID, exerciseID string) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	locked := make(map[string]bool, len(state.locks[exerciseID]))
	for id := range state.locks[exerciseID] {
		locked[id] = true
	}
	return locked, nil
}
