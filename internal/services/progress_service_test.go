package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ortholink/exercise-service/internal/content"
	"github.com/ortholink/exercise-service/internal/models"
	"github.com/ortholink/exercise-service/internal/session"
)

func newProgressFixture(t *testing.T) (ProgressService, session.Store, string) {
	t.Helper()

	tree, err := content.LoadBuiltin()
	require.NoError(t, err)

	store := session.NewMemoryStore()
	sessionID := "progress-session"
	require.NoError(t, store.Create(context.Background(), &models.LearnerSession{
		ID:      sessionID,
		Profile: models.Profile{Email: "p@example.dz", FirstName: "Lina", LastName: "Cherif"},
	}))

	return NewProgressService(tree, store, testLogger()), store, sessionID
}

func TestProgressService_Summary(t *testing.T) {
	svc, store, sessionID := newProgressFixture(t)
	ctx := context.Background()

	summary, err := svc.Summary(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, models.ProgressSummary{Completed: 0, Total: 22, Percent: 0}, summary)

	for _, id := range []string{"reading-practice", "gender-selection", "letter-position"} {
		_, err := store.MarkCompleted(ctx, sessionID, id)
		require.NoError(t, err)
	}

	summary, err = svc.Summary(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Completed)

	// Scoped to one section.
	summary, err = svc.Summary(ctx, sessionID, "phonology-and-guides")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Completed)
	assert.Equal(t, 6, summary.Total)

	_, err = svc.Summary(ctx, "ghost")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestProgressService_Report(t *testing.T) {
	svc, store, sessionID := newProgressFixture(t)
	ctx := context.Background()

	_, err := store.MarkCompleted(ctx, sessionID, "pre-writing-draw-lines")
	require.NoError(t, err)

	report, err := svc.Report(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, "Lina Cherif", report.Learner)
	require.Len(t, report.Sections, 3)
	assert.Equal(t, "writing-stage", report.Sections[2].SectionID)
	assert.Equal(t, 1, report.Sections[2].Summary.Completed)
	assert.Equal(t, 1, report.Overall.Completed)
}

func TestProgressService_ExportExcel(t *testing.T) {
	svc, store, sessionID := newProgressFixture(t)
	ctx := context.Background()

	_, err := store.MarkCompleted(ctx, sessionID, "reading-practice")
	require.NoError(t, err)

	data, err := svc.ExportExcel(ctx, sessionID)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Progress")
	require.NoError(t, err)
	// Header, three sections, overall.
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"Section", "Completed", "Total", "Percent"}, rows[0])
	assert.Equal(t, "Overall", rows[4][0])
}
