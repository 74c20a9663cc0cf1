package models

// Variant-specific answer payloads submitted by the presentation layer. Each
// mirrors the outcome of one interaction pattern; the evaluator unmarshals the
// payload matching the exercise's variant.

// TypedAnswer covers all free-text variants: text-transformation,
// sentence-unscramble, sentence-completion and image-word-association.
type TypedAnswer struct {
	ItemID string `json:"item_id" validate:"required"`
	Text   string `json:"text"`
}

type GenderAnswer struct {
	ItemID string `json:"item_id" validate:"required"`
	Gender Gender `json:"gender" validate:"required,oneof=masculine feminine"`
}

type LetterPositionAnswer struct {
	ItemID   string         `json:"item_id" validate:"required"`
	Position LetterPosition `json:"position" validate:"required,oneof=start middle end"`
}

// DragDropAnswer is the (draggedId, droppedOnId) outcome delivered by the
// gesture collaborator.
type DragDropAnswer struct {
	ItemID     string `json:"item_id" validate:"required"`
	CategoryID string `json:"category_id" validate:"required"`
}

// WordColoringAnswer pairs a clicked word with the currently selected group.
type WordColoringAnswer struct {
	ItemID  string `json:"item_id" validate:"required"`
	GroupID string `json:"group_id" validate:"required"`
}

// MatchingAnswer is a dropped (source, target) token pair; tokens are the
// text (or emoji) keys the gesture collaborator reports.
type MatchingAnswer struct {
	Source string `json:"source" validate:"required"`
	Target string `json:"target" validate:"required"`
}

type SentenceWordAnswer struct {
	ItemID           string `json:"item_id" validate:"required"`
	WordIndex        int    `json:"word_index" validate:"min=0"`
	ClassificationID string `json:"classification_id" validate:"required"`
}

type LetterChoiceAnswer struct {
	ItemID string `json:"item_id" validate:"required"`
	Option string `json:"option" validate:"required"`
}
