package content

import (
	"github.com/ortholink/exercise-service/internal/models"
	"github.com/ortholink/exercise-service/internal/validator"
)

// Tree is the immutable exercise catalog. It is validated once at build time
// and shared read-only across all sessions; exercise IDs are unique tree-wide
// and serve as the completion-tracking keys.
type Tree struct {
	sections []models.Section
	byID     map[string]*exerciseRef
	order    []string
}

type exerciseRef struct {
	sectionID string
	exercise  *models.Exercise
}

// NewTree indexes and validates a sections document. Any authoring defect
// rejects the whole tree.
func NewTree(sections []models.Section) (*Tree, error) {
	if errs := validator.NewContentValidator().ValidateTree(sections); len(errs) > 0 {
		return nil, errs
	}

	t := &Tree{
		sections: sections,
		byID:     make(map[string]*exerciseRef),
	}
	for si := range t.sections {
		section := &t.sections[si]
		for ei := range section.Exercises {
			ex := &section.Exercises[ei]
			t.byID[ex.ID] = &exerciseRef{sectionID: section.ID, exercise: ex}
			t.order = append(t.order, ex.ID)
		}
	}
	return t, nil
}

// Sections returns all sections in display order.
func (t *Tree) Sections() []models.Section {
	return t.sections
}

// Section returns one section by id.
func (t *Tree) Section(id string) (*models.Section, bool) {
	for i := range t.sections {
		if t.sections[i].ID == id {
			return &t.sections[i], true
		}
	}
	return nil, false
}

// Exercise returns one exercise by its tree-wide id.
func (t *Tree) Exercise(id string) (*models.Exercise, bool) {
	ref, ok := t.byID[id]
	if !ok {
		return nil, false
	}
	return ref.exercise, true
}

// SectionOf returns the id of the section containing the given exercise.
func (t *Tree) SectionOf(exerciseID string) (string, bool) {
	ref, ok := t.byID[exerciseID]
	if !ok {
		return "", false
	}
	return ref.sectionID, true
}

// ExerciseIDs returns the ids of every exercise in the given sections, in
// display order. With no arguments it covers the whole tree. Unknown section
// ids contribute nothing.
func (t *Tree) ExerciseIDs(sectionIDs ...string) []string {
	if len(sectionIDs) == 0 {
		ids := make([]string, len(t.order))
		copy(ids, t.order)
		return ids
	}

	wanted := make(map[string]bool, len(sectionIDs))
	for _, id := range sectionIDs {
		wanted[id] = true
	}

	var ids []string
	for _, exerciseID := range t.order {
		if wanted[t.byID[exerciseID].sectionID] {
			ids = append(ids, exerciseID)
		}
	}
	return ids
}

// Len returns the total number of exercises in the tree.
func (t *Tree) Len() int {
	return len(t.order)
}
