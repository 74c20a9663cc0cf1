package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ortholink/exercise-service/internal/content"
	"github.com/ortholink/exercise-service/internal/models"
)

func testTree(t *testing.T) *content.Tree {
	t.Helper()
	tree, err := content.NewTree([]models.Section{
		{
			ID: "reading",
			Exercises: []models.Exercise{
				{ID: "r1", Type: models.TypeReading},
				{ID: "r2", Type: models.TypeReading},
				{ID: "r3", Type: models.TypeReading},
			},
		},
		{
			ID: "writing",
			Exercises: []models.Exercise{
				{ID: "w1", Type: models.TypeFreeDraw},
				{ID: "w2", Type: models.TypeFreeDraw},
			},
		},
	})
	require.NoError(t, err)
	return tree
}

func TestCompute_PerSectionAndOverall(t *testing.T) {
	tree := testTree(t)
	completed := map[string]bool{"r1": true, "r2": true, "r3": true}

	reading := Compute(tree, completed, "reading")
	assert.Equal(t, models.ProgressSummary{Completed: 3, Total: 3, Percent: 100}, reading)

	writing := Compute(tree, completed, "writing")
	assert.Equal(t, models.ProgressSummary{Completed: 0, Total: 2, Percent: 0}, writing)

	overall := Compute(tree, completed)
	assert.Equal(t, models.ProgressSummary{Completed: 3, Total: 5, Percent: 60}, overall)
}

func TestCompute_EmptyScopeIsZeroPercent(t *testing.T) {
	tree := testTree(t)

	summary := Compute(tree, nil, "no-such-section")
	assert.Equal(t, models.ProgressSummary{}, summary)
}

func TestCompute_IgnoresUnknownCompletedIDs(t *testing.T) {
	tree := testTree(t)

	// Stale ids from a previous catalog revision do not count.
	summary := Compute(tree, map[string]bool{"r1": true, "gone": true})
	assert.Equal(t, 1, summary.Completed)
	assert.Equal(t, 5, summary.Total)
}

func TestBySection(t *testing.T) {
	tree := testTree(t)
	report := BySection(tree, map[string]bool{"r1": true, "w1": true, "w2": true})

	require.Len(t, report, 2)
	assert.Equal(t, "reading", report[0].SectionID)
	assert.Equal(t, 1, report[0].Summary.Completed)
	assert.InDelta(t, 33.33, report[0].Summary.Percent, 0.01)
	assert.Equal(t, "writing", report[1].SectionID)
	assert.Equal(t, models.ProgressSummary{Completed: 2, Total: 2, Percent: 100}, report[1].Summary)
}
