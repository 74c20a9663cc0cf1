package models

type Gender string

const (
	GenderMasculine Gender = "masculine"
	GenderFeminine  Gender = "feminine"
)

type LetterPosition string

const (
	PositionStart  LetterPosition = "start"
	PositionMiddle LetterPosition = "middle"
	PositionEnd    LetterPosition = "end"
)

// Item is one stimulus + answer-key record inside an exercise. Like Exercise
// it is variant-tagged through its parent: only the fields the parent's Type
// uses are populated. IDs are unique within the exercise, not globally.
type Item struct {
	ID string `json:"id" validate:"required"`

	// Shared stimulus fields.
	Text  string `json:"text,omitempty"`
	Emoji string `json:"emoji,omitempty"`

	// text-transformation
	Prompt string `json:"prompt,omitempty"`

	// Free-text answer key: text-transformation, sentence-unscramble,
	// sentence-completion, image-word-association.
	Answer string `json:"answer,omitempty"`

	// sentence-unscramble
	Scrambled []string `json:"scrambled,omitempty"`

	// sentence-completion
	PromptStart string `json:"prompt_start,omitempty"`
	PromptEnd   string `json:"prompt_end,omitempty"`

	// gender-classification
	Gender Gender `json:"gender,omitempty" validate:"omitempty,oneof=masculine feminine"`

	// letter-position
	Letter   string         `json:"letter,omitempty"`
	Position LetterPosition `json:"position,omitempty" validate:"omitempty,oneof=start middle end"`

	// drag-drop-classification
	CategoryID string `json:"category_id,omitempty"`

	// word-coloring
	GroupID string `json:"group_id,omitempty"`

	// auditory-letter-selection
	TargetLetter string   `json:"target_letter,omitempty"`
	Options      []string `json:"options,omitempty"`

	// sentence-word-classification
	Sentence []SentenceWord `json:"sentence,omitempty"`
}

// SentenceWord is one token of a sentence-word-classification sentence.
// Non-target words carry no answer key and are not classifiable.
type SentenceWord struct {
	Text             string `json:"text"`
	IsTarget         bool   `json:"is_target,omitempty"`
	ClassificationID string `json:"classification_id,omitempty"`
}
