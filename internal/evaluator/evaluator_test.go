package evaluator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ortholink/exercise-service/internal/models"
)

func mustPayload(t *testing.T, v any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func pluralExercise() *models.Exercise {
	return &models.Exercise{
		ID:   "word-transform-singular-to-plural",
		Type: models.TypeTextTransformation,
		Items: []models.Item{
			{ID: "wt-1", Prompt: "قلم", Answer: "أقلام"},
		},
	}
}

func TestEvaluate_TextTransformation_TrimsWhitespace(t *testing.T) {
	e := New(PolicyNone)

	v, err := e.Evaluate(pluralExercise(), mustPayload(t, models.TypedAnswer{ItemID: "wt-1", Text: "  أقلام "}))
	require.NoError(t, err)
	assert.Equal(t, models.ResultCorrect, v.Result)
	assert.Equal(t, "wt-1", v.SubItemID)
}

func TestEvaluate_TextTransformation_HamzaSensitiveByDefault(t *testing.T) {
	e := New(PolicyNone)

	v, err := e.Evaluate(pluralExercise(), mustPayload(t, models.TypedAnswer{ItemID: "wt-1", Text: "اقلام"}))
	require.NoError(t, err)
	assert.Equal(t, models.ResultIncorrect, v.Result)
	assert.Empty(t, v.SubItemID)
}

func TestEvaluate_TextTransformation_HamzaPolicyForgives(t *testing.T) {
	e := New(PolicyHamza)

	v, err := e.Evaluate(pluralExercise(), mustPayload(t, models.TypedAnswer{ItemID: "wt-1", Text: "اقلام"}))
	require.NoError(t, err)
	assert.Equal(t, models.ResultCorrect, v.Result)
}

func TestEvaluate_TextTransformation_DiacriticsPolicy(t *testing.T) {
	ex := &models.Exercise{
		ID:   "sentence-transform",
		Type: models.TypeTextTransformation,
		Items: []models.Item{
			{ID: "st-2", Prompt: "رتَّبت الفتاة غرفتها", Answer: "رتب الولد غرفته"},
		},
	}

	v, err := New(PolicyDiacritics).Evaluate(ex, mustPayload(t, models.TypedAnswer{ItemID: "st-2", Text: "رتَب الولد غرفته"}))
	require.NoError(t, err)
	assert.Equal(t, models.ResultCorrect, v.Result)

	v, err = New(PolicyNone).Evaluate(ex, mustPayload(t, models.TypedAnswer{ItemID: "st-2", Text: "رتَب الولد غرفته"}))
	require.NoError(t, err)
	assert.Equal(t, models.ResultIncorrect, v.Result)
}

func TestEvaluate_DragDropClassification(t *testing.T) {
	ex := &models.Exercise{
		ID:   "drag-drop-gender-classification",
		Type: models.TypeDragDropClassification,
		Categories: []models.OptionGroup{
			{ID: "masculine"}, {ID: "feminine"},
		},
		Items: []models.Item{
			{ID: "dd-1", Text: "كتاب", CategoryID: "masculine"},
		},
	}
	e := New(PolicyNone)

	v, err := e.Evaluate(ex, mustPayload(t, models.DragDropAnswer{ItemID: "dd-1", CategoryID: "feminine"}))
	require.NoError(t, err)
	assert.Equal(t, models.ResultIncorrect, v.Result)

	v, err = e.Evaluate(ex, mustPayload(t, models.DragDropAnswer{ItemID: "dd-1", CategoryID: "masculine"}))
	require.NoError(t, err)
	assert.Equal(t, models.ResultCorrect, v.Result)
	assert.Equal(t, "dd-1", v.SubItemID)
}

func TestEvaluate_GenderClassification(t *testing.T) {
	ex := &models.Exercise{
		ID:   "gender-selection",
		Type: models.TypeGenderClassification,
		Items: []models.Item{
			{ID: "gs-1", Text: "شمس", Gender: models.GenderFeminine},
		},
	}
	e := New(PolicyNone)

	v, err := e.Evaluate(ex, mustPayload(t, models.GenderAnswer{ItemID: "gs-1", Gender: models.GenderFeminine}))
	require.NoError(t, err)
	assert.Equal(t, models.ResultCorrect, v.Result)

	v, err = e.Evaluate(ex, mustPayload(t, models.GenderAnswer{ItemID: "gs-1", Gender: models.GenderMasculine}))
	require.NoError(t, err)
	assert.Equal(t, models.ResultIncorrect, v.Result)
}

func TestEvaluate_LetterPosition(t *testing.T) {
	ex := &models.Exercise{
		ID:   "letter-position",
		Type: models.TypeLetterPosition,
		Items: []models.Item{
			{ID: "lp-2", Text: "سماء", Letter: "م", Position: models.PositionMiddle},
		},
	}
	e := New(PolicyNone)

	v, err := e.Evaluate(ex, mustPayload(t, models.LetterPositionAnswer{ItemID: "lp-2", Position: models.PositionMiddle}))
	require.NoError(t, err)
	assert.Equal(t, models.ResultCorrect, v.Result)

	v, err = e.Evaluate(ex, mustPayload(t, models.LetterPositionAnswer{ItemID: "lp-2", Position: models.PositionEnd}))
	require.NoError(t, err)
	assert.Equal(t, models.ResultIncorrect, v.Result)
}

func TestEvaluate_Matching_ByTextOrEmojiKey(t *testing.T) {
	ex := &models.Exercise{
		ID:   "matching-word-picture",
		Type: models.TypeMatching,
		Pairs: []models.MatchingPair{
			{ID: "wp-1", Source: models.MatchToken{Text: "باب"}, Target: models.MatchToken{Emoji: "🚪"}},
			{ID: "wp-2", Source: models.MatchToken{Text: "بيت"}, Target: models.MatchToken{Emoji: "🏠"}},
		},
	}
	e := New(PolicyNone)

	v, err := e.Evaluate(ex, mustPayload(t, models.MatchingAnswer{Source: "باب", Target: "🚪"}))
	require.NoError(t, err)
	assert.Equal(t, models.ResultCorrect, v.Result)
	assert.Equal(t, "wp-1", v.SubItemID)

	v, err = e.Evaluate(ex, mustPayload(t, models.MatchingAnswer{Source: "باب", Target: "🏠"}))
	require.NoError(t, err)
	assert.Equal(t, models.ResultIncorrect, v.Result)
}

func TestEvaluate_WordColoring(t *testing.T) {
	ex := &models.Exercise{
		ID:   "word-coloring-singular-plural",
		Type: models.TypeWordColoring,
		Groups: []models.OptionGroup{
			{ID: "singular"}, {ID: "plural"},
		},
		Items: []models.Item{
			{ID: "wc-1", Text: "كتب", GroupID: "plural"},
		},
	}

	v, err := New(PolicyNone).Evaluate(ex, mustPayload(t, models.WordColoringAnswer{ItemID: "wc-1", GroupID: "plural"}))
	require.NoError(t, err)
	assert.Equal(t, models.ResultCorrect, v.Result)
}

func TestEvaluate_SentenceWordClassification_ExplicitChoice(t *testing.T) {
	ex := &models.Exercise{
		ID:   "sentence-word-classification-singular-plural",
		Type: models.TypeSentenceWordClassification,
		Classifications: []models.OptionGroup{
			{ID: "singular"}, {ID: "plural"},
		},
		Items: []models.Item{
			{ID: "swc-1", Sentence: []models.SentenceWord{
				{Text: "خرج"},
				{Text: "التلاميذ", IsTarget: true, ClassificationID: "plural"},
				{Text: "من"},
				{Text: "المدرسة", IsTarget: true, ClassificationID: "singular"},
			}},
		},
	}
	e := New(PolicyNone)

	v, err := e.Evaluate(ex, mustPayload(t, models.SentenceWordAnswer{ItemID: "swc-1", WordIndex: 1, ClassificationID: "plural"}))
	require.NoError(t, err)
	assert.Equal(t, models.ResultCorrect, v.Result)
	assert.Equal(t, "swc-1/1", v.SubItemID)

	v, err = e.Evaluate(ex, mustPayload(t, models.SentenceWordAnswer{ItemID: "swc-1", WordIndex: 3, ClassificationID: "plural"}))
	require.NoError(t, err)
	assert.Equal(t, models.ResultIncorrect, v.Result)

	// Non-target words carry no answer key.
	_, err = e.Evaluate(ex, mustPayload(t, models.SentenceWordAnswer{ItemID: "swc-1", WordIndex: 0, ClassificationID: "plural"}))
	assert.ErrorIs(t, err, ErrMalformedAnswer)

	_, err = e.Evaluate(ex, mustPayload(t, models.SentenceWordAnswer{ItemID: "swc-1", WordIndex: 9, ClassificationID: "plural"}))
	assert.ErrorIs(t, err, ErrMalformedAnswer)
}

func TestEvaluate_AuditoryLetterSelection(t *testing.T) {
	ex := &models.Exercise{
		ID:   "auditory-coloring",
		Type: models.TypeAuditoryLetterSelection,
		Items: []models.Item{
			{ID: "ac-1", TargetLetter: "ق", Options: []string{"ق", "أ", "ب"}},
		},
	}
	e := New(PolicyNone)

	v, err := e.Evaluate(ex, mustPayload(t, models.LetterChoiceAnswer{ItemID: "ac-1", Option: "ق"}))
	require.NoError(t, err)
	assert.Equal(t, models.ResultCorrect, v.Result)

	v, err = e.Evaluate(ex, mustPayload(t, models.LetterChoiceAnswer{ItemID: "ac-1", Option: "ب"}))
	require.NoError(t, err)
	assert.Equal(t, models.ResultIncorrect, v.Result)
}

func TestEvaluate_UnknownItem(t *testing.T) {
	_, err := New(PolicyNone).Evaluate(pluralExercise(), mustPayload(t, models.TypedAnswer{ItemID: "nope", Text: "x"}))
	assert.ErrorIs(t, err, ErrUnknownItem)
}

func TestEvaluate_NotGradableVariants(t *testing.T) {
	e := New(PolicyNone)
	for _, typ := range []models.ExerciseType{
		models.TypeReading,
		models.TypeInstructionalText,
		models.TypeFreeDraw,
		models.TypeTimedChallenge,
	} {
		_, err := e.Evaluate(&models.Exercise{ID: "x", Type: typ}, json.RawMessage(`{}`))
		assert.ErrorIs(t, err, ErrNotGradable, string(typ))
	}
}

func TestEvaluate_MalformedPayload(t *testing.T) {
	_, err := New(PolicyNone).Evaluate(pluralExercise(), json.RawMessage(`{"item_id":`))
	assert.ErrorIs(t, err, ErrMalformedAnswer)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyNone, p)

	p, err = ParsePolicy("hamza")
	require.NoError(t, err)
	assert.Equal(t, PolicyHamza, p)

	_, err = ParsePolicy("lowercase")
	assert.Error(t, err)
}
