package services

import (
	"context"
	"strings"
	"sync"
	"time"
)

// ChallengeState is the lifecycle of one timed-challenge run.
type ChallengeState string

const (
	ChallengeRunning   ChallengeState = "running"
	ChallengeExpired   ChallengeState = "expired"
	ChallengeCancelled ChallengeState = "cancelled"
)

// Countdown is the timed-challenge sub-state machine. It counts whole seconds
// down from the exercise duration; reaching zero fires onExpire exactly once.
// Cancelling stops the clock without any completion side effect. Tick is
// synchronous so tests can drive the clock without real time.
type Countdown struct {
	mu          sync.Mutex
	secondsLeft int
	state       ChallengeState
	words       []string
	onExpire    func()
}

func NewCountdown(durationSeconds int, onExpire func()) *Countdown {
	return &Countdown{
		secondsLeft: durationSeconds,
		state:       ChallengeRunning,
		onExpire:    onExpire,
	}
}

// Tick advances the clock by one second. Past expiry or cancellation it is a
// no-op returning the terminal state.
func (c *Countdown) Tick() ChallengeState {
	c.mu.Lock()
	if c.state != ChallengeRunning {
		state := c.state
		c.mu.Unlock()
		return state
	}

	c.secondsLeft--
	if c.secondsLeft > 0 {
		c.mu.Unlock()
		return ChallengeRunning
	}

	c.secondsLeft = 0
	c.state = ChallengeExpired
	onExpire := c.onExpire
	c.mu.Unlock()

	if onExpire != nil {
		onExpire()
	}
	return ChallengeExpired
}

// Run drives the countdown on a 1-second ticker until it expires or the
// context is cancelled. Cancellation leaves the challenge incomplete.
func (c *Countdown) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.Cancel()
			return
		case <-ticker.C:
			if c.Tick() != ChallengeRunning {
				return
			}
		}
	}
}

// Cancel stops a running countdown without firing onExpire.
func (c *Countdown) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == ChallengeRunning {
		c.state = ChallengeCancelled
	}
}

// State returns the current state and seconds remaining.
func (c *Countdown) State() (ChallengeState, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.secondsLeft
}

// AddWord records a word typed while the clock runs. Words arriving after
// expiry or cancellation are dropped.
func (c *Countdown) AddWord(word string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != ChallengeRunning {
		return false
	}
	c.words = append(c.words, word)
	return true
}

// Words returns the words typed so far.
func (c *Countdown) Words() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	words := make([]string, len(c.words))
	copy(words, c.words)
	return words
}

// ===== CHALLENGE REGISTRY =====

// challengeRegistry tracks the running countdown per (session, exercise).
type challengeRegistry struct {
	mu      sync.Mutex
	running map[string]*challengeEntry
}

type challengeEntry struct {
	countdown *Countdown
	cancel    context.CancelFunc
}

func newChallengeRegistry() *challengeRegistry {
	return &challengeRegistry{running: make(map[string]*challengeEntry)}
}

func challengeKey(sessionID, exerciseID string) string {
	return sessionID + "/" + exerciseID
}

func (r *challengeRegistry) add(sessionID, exerciseID string, cd *Countdown, cancel context.CancelFunc) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := challengeKey(sessionID, exerciseID)
	if entry, ok := r.running[key]; ok {
		if state, _ := entry.countdown.State(); state == ChallengeRunning {
			return false
		}
	}
	r.running[key] = &challengeEntry{countdown: cd, cancel: cancel}
	return true
}

func (r *challengeRegistry) get(sessionID, exerciseID string) (*challengeEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.running[challengeKey(sessionID, exerciseID)]
	return entry, ok
}

func (r *challengeRegistry) remove(sessionID, exerciseID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.running, challengeKey(sessionID, exerciseID))
}

// removeSession cancels and drops every countdown the session still has.
// No clock may outlive its session.
func (r *challengeRegistry) removeSession(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	prefix := sessionID + "/"
	for key, entry := range r.running {
		if strings.HasPrefix(key, prefix) {
			entry.cancel()
			entry.countdown.Cancel()
			delete(r.running, key)
		}
	}
}
