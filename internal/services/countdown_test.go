package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountdown_TicksToExpiry(t *testing.T) {
	expired := 0
	cd := NewCountdown(3, func() { expired++ })

	assert.Equal(t, ChallengeRunning, cd.Tick())
	assert.Equal(t, ChallengeRunning, cd.Tick())
	assert.Equal(t, ChallengeExpired, cd.Tick())
	assert.Equal(t, 1, expired)

	state, secondsLeft := cd.State()
	assert.Equal(t, ChallengeExpired, state)
	assert.Equal(t, 0, secondsLeft)

	// Further ticks stay terminal and never re-fire.
	assert.Equal(t, ChallengeExpired, cd.Tick())
	assert.Equal(t, 1, expired)
}

func TestCountdown_CancelSkipsExpiry(t *testing.T) {
	expired := 0
	cd := NewCountdown(3, func() { expired++ })

	cd.Tick()
	cd.Cancel()

	state, secondsLeft := cd.State()
	assert.Equal(t, ChallengeCancelled, state)
	assert.Equal(t, 2, secondsLeft)

	assert.Equal(t, ChallengeCancelled, cd.Tick())
	assert.Equal(t, 0, expired)
}

func TestCountdown_WordsOnlyWhileRunning(t *testing.T) {
	cd := NewCountdown(2, nil)

	assert.True(t, cd.AddWord("شمس"))
	assert.True(t, cd.AddWord("شجرة"))

	cd.Tick()
	cd.Tick()

	assert.False(t, cd.AddWord("شباك"))
	assert.Equal(t, []string{"شمس", "شجرة"}, cd.Words())
}
