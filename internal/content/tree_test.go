package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ortholink/exercise-service/internal/models"
)

func TestLoadBuiltin(t *testing.T) {
	tree, err := LoadBuiltin()
	require.NoError(t, err)

	sections := tree.Sections()
	require.Len(t, sections, 3)
	assert.Equal(t, "phonology-and-guides", sections[0].ID)
	assert.Equal(t, "grammar-morphology", sections[1].ID)
	assert.Equal(t, "writing-stage", sections[2].ID)

	assert.Equal(t, 22, tree.Len())
}

func TestLoadBuiltin_ExerciseLookup(t *testing.T) {
	tree, err := LoadBuiltin()
	require.NoError(t, err)

	ex, ok := tree.Exercise("word-transform-singular-to-plural")
	require.True(t, ok)
	assert.Equal(t, models.TypeTextTransformation, ex.Type)

	item := ex.ItemByID("wt-1")
	require.NotNil(t, item)
	assert.Equal(t, "قلم", item.Prompt)
	assert.Equal(t, "أقلام", item.Answer)

	sectionID, ok := tree.SectionOf("word-transform-singular-to-plural")
	require.True(t, ok)
	assert.Equal(t, "grammar-morphology", sectionID)

	_, ok = tree.Exercise("no-such-exercise")
	assert.False(t, ok)
}

func TestLoadBuiltin_TimedChallenge(t *testing.T) {
	tree, err := LoadBuiltin()
	require.NoError(t, err)

	ex, ok := tree.Exercise("timed-challenge-sh")
	require.True(t, ok)
	assert.Equal(t, models.TypeTimedChallenge, ex.Type)
	assert.Equal(t, "ش", ex.Letter)
	assert.Equal(t, 60, ex.Duration)
}

func TestTree_ExerciseIDs(t *testing.T) {
	tree, err := LoadBuiltin()
	require.NoError(t, err)

	all := tree.ExerciseIDs()
	assert.Len(t, all, tree.Len())
	assert.Equal(t, "matching-word-picture", all[0])

	writing := tree.ExerciseIDs("writing-stage")
	assert.Len(t, writing, 8)
	assert.Contains(t, writing, "image-word-recall")
	assert.NotContains(t, writing, "gender-selection")

	assert.Empty(t, tree.ExerciseIDs("no-such-section"))
}

func TestNewTree_RejectsInvalid(t *testing.T) {
	sections := []models.Section{
		{
			ID: "a",
			Exercises: []models.Exercise{
				{ID: "x", Type: models.TypeReading},
				{ID: "x", Type: models.TypeReading},
			},
		},
	}
	_, err := NewTree(sections)
	assert.Error(t, err)
}
