package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ortholink/exercise-service/internal/events"
	"github.com/ortholink/exercise-service/internal/models"
	"github.com/ortholink/exercise-service/internal/session"
)

func TestSessionService_StartAndGet(t *testing.T) {
	logger := testLogger()
	publisher := events.NewMockEventPublisher(logger)
	svc := NewSessionService(session.NewMemoryStore(), publisher, nil, logger)
	ctx := context.Background()

	profile := models.Profile{
		Email:     "therapist@example.dz",
		FirstName: "Yasmine",
		LastName:  "Benali",
		Role:      models.RoleTherapist,
		Wilaya:    "Algiers",
	}

	created, err := svc.Start(ctx, profile, models.LanguageArabic)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.StartedAt.IsZero())

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Yasmine Benali", got.Profile.DisplayName())

	require.Len(t, publisher.EventsOfType(events.EventSessionStarted), 1)
}

func TestSessionService_StartDefaultsLanguage(t *testing.T) {
	svc := NewSessionService(session.NewMemoryStore(), nil, nil, testLogger())

	created, err := svc.Start(context.Background(), models.Profile{Email: "p@example.dz"}, "fr")
	require.NoError(t, err)
	assert.Equal(t, models.LanguageArabic, created.Language)
}

func TestSessionService_EndDiscardsState(t *testing.T) {
	logger := testLogger()
	store := session.NewMemoryStore()
	publisher := events.NewMockEventPublisher(logger)
	svc := NewSessionService(store, publisher, nil, logger)
	ctx := context.Background()

	created, err := svc.Start(ctx, models.Profile{Email: "p@example.dz", FirstName: "Amine"}, models.LanguageArabic)
	require.NoError(t, err)

	_, err = store.MarkCompleted(ctx, created.ID, "reading-practice")
	require.NoError(t, err)
	_, err = store.MarkCompleted(ctx, created.ID, "gender-selection")
	require.NoError(t, err)

	require.NoError(t, svc.End(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	endedEvents := publisher.EventsOfType(events.EventSessionEnded)
	require.Len(t, endedEvents, 1)
	data := endedEvents[0].Data.(events.SessionEndedEvent)
	assert.Equal(t, 2, data.ExercisesCompleted)

	assert.ErrorIs(t, svc.End(ctx, created.ID), ErrSessionNotFound)
}
