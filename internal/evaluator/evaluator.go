package evaluator

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ortholink/exercise-service/internal/models"
)

var (
	// ErrNotGradable is returned for variants that never take attempts:
	// auto-completing practice content and the timed challenge, whose
	// completion is driven by the countdown instead.
	ErrNotGradable = errors.New("exercise variant does not take graded attempts")

	// ErrUnknownItem is returned when the payload references an item id the
	// exercise does not contain.
	ErrUnknownItem = errors.New("item not found in exercise")

	// ErrMalformedAnswer is returned when the payload does not decode into
	// the variant's answer shape.
	ErrMalformedAnswer = errors.New("malformed answer payload")
)

// Verdict is the outcome of judging one attempt. SubItemID identifies the
// resolved item (or matching pair) when the attempt is correct, so the caller
// can track per-item locks on multi-resolve variants.
type Verdict struct {
	Result    models.AttemptResult
	SubItemID string
}

// Evaluator judges attempts against an exercise's answer key. It is a pure
// decision procedure: no state, no side effects, same verdict for the same
// inputs every time.
type Evaluator struct {
	policy Policy
}

func New(policy Policy) *Evaluator {
	return &Evaluator{policy: policy}
}

func (e *Evaluator) Policy() Policy {
	return e.policy
}

// Evaluate dispatches on the exercise variant, decodes the matching answer
// payload and judges it. Incorrect is a normal verdict, never an error;
// errors mean the payload itself was unusable.
func (e *Evaluator) Evaluate(ex *models.Exercise, payload json.RawMessage) (Verdict, error) {
	switch ex.Type {
	case models.TypeTextTransformation,
		models.TypeSentenceUnscramble,
		models.TypeSentenceCompletion,
		models.TypeImageWordAssociation:
		return e.evaluateTyped(ex, payload)

	case models.TypeGenderClassification:
		return e.evaluateGender(ex, payload)

	case models.TypeLetterPosition:
		return e.evaluateLetterPosition(ex, payload)

	case models.TypeDragDropClassification:
		return e.evaluateDragDrop(ex, payload)

	case models.TypeWordColoring:
		return e.evaluateWordColoring(ex, payload)

	case models.TypeSentenceWordClassification:
		return e.evaluateSentenceWord(ex, payload)

	case models.TypeMatching:
		return e.evaluateMatching(ex, payload)

	case models.TypeAuditoryLetterSelection:
		return e.evaluateLetterChoice(ex, payload)

	default:
		return Verdict{}, fmt.Errorf("%w: %s", ErrNotGradable, ex.Type)
	}
}

func (e *Evaluator) evaluateTyped(ex *models.Exercise, payload json.RawMessage) (Verdict, error) {
	var answer models.TypedAnswer
	if err := decodeInto(payload, &answer); err != nil {
		return Verdict{}, err
	}
	item := ex.ItemByID(answer.ItemID)
	if item == nil {
		return Verdict{}, fmt.Errorf("%w: %s", ErrUnknownItem, answer.ItemID)
	}
	return verdict(e.policy.textEqual(answer.Text, item.Answer), item.ID), nil
}

func (e *Evaluator) evaluateGender(ex *models.Exercise, payload json.RawMessage) (Verdict, error) {
	var answer models.GenderAnswer
	if err := decodeInto(payload, &answer); err != nil {
		return Verdict{}, err
	}
	item := ex.ItemByID(answer.ItemID)
	if item == nil {
		return Verdict{}, fmt.Errorf("%w: %s", ErrUnknownItem, answer.ItemID)
	}
	return verdict(answer.Gender == item.Gender, item.ID), nil
}

func (e *Evaluator) evaluateLetterPosition(ex *models.Exercise, payload json.RawMessage) (Verdict, error) {
	var answer models.LetterPositionAnswer
	if err := decodeInto(payload, &answer); err != nil {
		return Verdict{}, err
	}
	item := ex.ItemByID(answer.ItemID)
	if item == nil {
		return Verdict{}, fmt.Errorf("%w: %s", ErrUnknownItem, answer.ItemID)
	}
	return verdict(answer.Position == item.Position, item.ID), nil
}

func (e *Evaluator) evaluateDragDrop(ex *models.Exercise, payload json.RawMessage) (Verdict, error) {
	var answer models.DragDropAnswer
	if err := decodeInto(payload, &answer); err != nil {
		return Verdict{}, err
	}
	item := ex.ItemByID(answer.ItemID)
	if item == nil {
		return Verdict{}, fmt.Errorf("%w: %s", ErrUnknownItem, answer.ItemID)
	}
	return verdict(answer.CategoryID == item.CategoryID, item.ID), nil
}

func (e *Evaluator) evaluateWordColoring(ex *models.Exercise, payload json.RawMessage) (Verdict, error) {
	var answer models.WordColoringAnswer
	if err := decodeInto(payload, &answer); err != nil {
		return Verdict{}, err
	}
	item := ex.ItemByID(answer.ItemID)
	if item == nil {
		return Verdict{}, fmt.Errorf("%w: %s", ErrUnknownItem, answer.ItemID)
	}
	return verdict(answer.GroupID == item.GroupID, item.ID), nil
}

func (e *Evaluator) evaluateSentenceWord(ex *models.Exercise, payload json.RawMessage) (Verdict, error) {
	var answer models.SentenceWordAnswer
	if err := decodeInto(payload, &answer); err != nil {
		return Verdict{}, err
	}
	item := ex.ItemByID(answer.ItemID)
	if item == nil {
		return Verdict{}, fmt.Errorf("%w: %s", ErrUnknownItem, answer.ItemID)
	}
	if answer.WordIndex < 0 || answer.WordIndex >= len(item.Sentence) {
		return Verdict{}, fmt.Errorf("%w: word index %d out of range", ErrMalformedAnswer, answer.WordIndex)
	}
	word := item.Sentence[answer.WordIndex]
	if !word.IsTarget {
		return Verdict{}, fmt.Errorf("%w: word %q is not classifiable", ErrMalformedAnswer, word.Text)
	}
	subID := fmt.Sprintf("%s/%d", item.ID, answer.WordIndex)
	return verdict(answer.ClassificationID == word.ClassificationID, subID), nil
}

func (e *Evaluator) evaluateMatching(ex *models.Exercise, payload json.RawMessage) (Verdict, error) {
	var answer models.MatchingAnswer
	if err := decodeInto(payload, &answer); err != nil {
		return Verdict{}, err
	}
	if pairID, ok := ex.PairExists(answer.Source, answer.Target); ok {
		return Verdict{Result: models.ResultCorrect, SubItemID: pairID}, nil
	}
	return Verdict{Result: models.ResultIncorrect}, nil
}

func (e *Evaluator) evaluateLetterChoice(ex *models.Exercise, payload json.RawMessage) (Verdict, error) {
	var answer models.LetterChoiceAnswer
	if err := decodeInto(payload, &answer); err != nil {
		return Verdict{}, err
	}
	item := ex.ItemByID(answer.ItemID)
	if item == nil {
		return Verdict{}, fmt.Errorf("%w: %s", ErrUnknownItem, answer.ItemID)
	}
	return verdict(answer.Option == item.TargetLetter, item.ID), nil
}

func verdict(correct bool, subItemID string) Verdict {
	if correct {
		return Verdict{Result: models.ResultCorrect, SubItemID: subItemID}
	}
	return Verdict{Result: models.ResultIncorrect}
}

func decodeInto(payload json.RawMessage, dst any) error {
	if err := json.Unmarshal(payload, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedAnswer, err)
	}
	return nil
}
