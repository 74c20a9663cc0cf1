package validator

import (
	"fmt"

	"github.com/ortholink/exercise-service/internal/models"
)

// ContentValidator checks a content tree for authoring defects before it is
// accepted at startup. The core never re-checks these at runtime: a tree that
// passes here is trusted by construction.
type ContentValidator struct{}

func NewContentValidator() *ContentValidator {
	return &ContentValidator{}
}

// ValidateTree validates the whole sections document.
func (v *ContentValidator) ValidateTree(sections []models.Section) ValidationErrors {
	var errs ValidationErrors

	seenSections := make(map[string]bool)
	seenExercises := make(map[string]string) // exercise id -> section id

	for _, section := range sections {
		if section.ID == "" {
			errs = append(errs, *NewValidationError("section.id", "cannot be empty", nil))
			continue
		}
		if seenSections[section.ID] {
			errs = append(errs, *NewValidationError("section.id", "duplicate section id", section.ID))
		}
		seenSections[section.ID] = true

		for i := range section.Exercises {
			ex := &section.Exercises[i]
			if prev, ok := seenExercises[ex.ID]; ok {
				msg := "duplicate exercise id"
				if prev != section.ID {
					msg = fmt.Sprintf("duplicate exercise id, already used in section %q", prev)
				}
				errs = append(errs, *NewValidationError("exercise.id", msg, ex.ID))
			}
			seenExercises[ex.ID] = section.ID

			errs = append(errs, v.ValidateExercise(ex)...)
		}
	}

	return errs
}

// ValidateExercise validates one exercise's variant payload and internal
// answer-key references.
func (v *ContentValidator) ValidateExercise(ex *models.Exercise) ValidationErrors {
	var errs ValidationErrors

	field := func(name string) string { return fmt.Sprintf("exercise[%s].%s", ex.ID, name) }

	known := false
	for _, t := range models.AllExerciseTypes {
		if ex.Type == t {
			known = true
			break
		}
	}
	if !known {
		errs = append(errs, *NewValidationError(field("type"), "unsupported exercise variant", ex.Type))
		return errs
	}

	seenItems := make(map[string]bool)
	for _, item := range ex.Items {
		if item.ID == "" {
			errs = append(errs, *NewValidationError(field("items.id"), "cannot be empty", nil))
			continue
		}
		if seenItems[item.ID] {
			errs = append(errs, *NewValidationError(field("items.id"), "duplicate item id", item.ID))
		}
		seenItems[item.ID] = true
	}

	switch ex.Type {
	case models.TypeDragDropClassification:
		categories := groupIDs(ex.Categories)
		for _, item := range ex.Items {
			if !categories[item.CategoryID] {
				errs = append(errs, *NewValidationErrorWithRule(field("items.category_id"),
					"does not exist in this exercise", "category_ref", item.CategoryID))
			}
		}

	case models.TypeWordColoring:
		groups := groupIDs(ex.Groups)
		for _, item := range ex.Items {
			if !groups[item.GroupID] {
				errs = append(errs, *NewValidationErrorWithRule(field("items.group_id"),
					"does not exist in this exercise", "group_ref", item.GroupID))
			}
		}

	case models.TypeSentenceWordClassification:
		classifications := groupIDs(ex.Classifications)
		for _, item := range ex.Items {
			for _, w := range item.Sentence {
				if w.IsTarget && !classifications[w.ClassificationID] {
					errs = append(errs, *NewValidationErrorWithRule(field("items.sentence.classification_id"),
						"does not exist in this exercise", "classification_ref", w.ClassificationID))
				}
			}
		}

	case models.TypeMatching:
		if len(ex.Pairs) == 0 {
			errs = append(errs, *NewValidationError(field("pairs"), "cannot be empty", nil))
		}
		for _, p := range ex.Pairs {
			if p.Source.Key() == "" || p.Target.Key() == "" {
				errs = append(errs, *NewValidationError(field("pairs"), "source and target need a text or emoji key", p.ID))
			}
		}

	case models.TypeTimedChallenge:
		if ex.Duration < 1 || ex.Duration > 600 {
			errs = append(errs, *NewValidationErrorWithRule(field("duration"),
				"must be between 1 and 600 seconds", "challenge_duration", ex.Duration))
		}

	case models.TypeAuditoryLetterSelection:
		for _, item := range ex.Items {
			if !contains(item.Options, item.TargetLetter) {
				errs = append(errs, *NewValidationError(field("items.target_letter"),
					"must be one of the item's options", item.TargetLetter))
			}
		}

	case models.TypeGenderClassification:
		for _, item := range ex.Items {
			if item.Gender != models.GenderMasculine && item.Gender != models.GenderFeminine {
				errs = append(errs, *NewValidationError(field("items.gender"), "must be masculine or feminine", item.Gender))
			}
		}

	case models.TypeLetterPosition:
		for _, item := range ex.Items {
			switch item.Position {
			case models.PositionStart, models.PositionMiddle, models.PositionEnd:
			default:
				errs = append(errs, *NewValidationError(field("items.position"), "must be start, middle or end", item.Position))
			}
		}
	}

	// Graded item-based variants need at least one answer key.
	if !ex.AutoCompletes() && ex.Type != models.TypeMatching && ex.Type != models.TypeTimedChallenge && len(ex.Items) == 0 {
		errs = append(errs, *NewValidationError(field("items"), "cannot be empty", nil))
	}

	return errs
}

func groupIDs(groups []models.OptionGroup) map[string]bool {
	ids := make(map[string]bool, len(groups))
	for _, g := range groups {
		ids[g.ID] = true
	}
	return ids
}

func contains(options []string, want string) bool {
	for _, o := range options {
		if o == want {
			return true
		}
	}
	return false
}
