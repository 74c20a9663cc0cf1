package models

type Language string

const (
	LanguageArabic  Language = "ar"
	LanguageEnglish Language = "en"
)

// LocalizedString carries every user-facing string in both content languages.
type LocalizedString struct {
	Ar string `json:"ar" validate:"required"`
	En string `json:"en" validate:"required"`
}

// In returns the text for the requested language, falling back to Arabic
// (the primary content language) for unknown tags.
func (s LocalizedString) In(lang Language) string {
	if lang == LanguageEnglish {
		return s.En
	}
	return s.Ar
}

type ExerciseType string

const (
	TypeReading                    ExerciseType = "reading"
	TypeTextTransformation         ExerciseType = "text-transformation"
	TypeGenderClassification       ExerciseType = "gender-classification"
	TypeDragDropClassification     ExerciseType = "drag-drop-classification"
	TypeWordColoring               ExerciseType = "word-coloring"
	TypeLetterPosition             ExerciseType = "letter-position"
	TypeMatching                   ExerciseType = "matching"
	TypeSentenceWordClassification ExerciseType = "sentence-word-classification"
	TypeTimedChallenge             ExerciseType = "timed-challenge"
	TypeInstructionalText          ExerciseType = "instructional-text"
	TypeFreeDraw                   ExerciseType = "free-draw"
	TypeAuditoryLetterSelection    ExerciseType = "auditory-letter-selection"
	TypeSentenceUnscramble         ExerciseType = "sentence-unscramble"
	TypeSentenceCompletion         ExerciseType = "sentence-completion"
	TypeImageWordAssociation       ExerciseType = "image-word-association"
)

// AllExerciseTypes lists every supported variant, used by validation.
var AllExerciseTypes = []ExerciseType{
	TypeReading,
	TypeTextTransformation,
	TypeGenderClassification,
	TypeDragDropClassification,
	TypeWordColoring,
	TypeLetterPosition,
	TypeMatching,
	TypeSentenceWordClassification,
	TypeTimedChallenge,
	TypeInstructionalText,
	TypeFreeDraw,
	TypeAuditoryLetterSelection,
	TypeSentenceUnscramble,
	TypeSentenceCompletion,
	TypeImageWordAssociation,
}

// Section groups exercises for presentation; order is display order only.
type Section struct {
	ID        string          `json:"id" validate:"required"`
	Title     LocalizedString `json:"title"`
	Exercises []Exercise      `json:"exercises" validate:"dive"`
}

// Exercise is the variant-tagged unit of the content tree. Only the fields
// relevant to Type are populated; the rest stay at their zero value. The ID is
// unique across the whole tree and is the sole key for completion tracking.
type Exercise struct {
	ID    string          `json:"id" validate:"required"`
	Type  ExerciseType    `json:"type" validate:"required,exercise_type"`
	Title LocalizedString `json:"title"`

	// Answer-key items for item-based variants.
	Items []Item `json:"items,omitempty"`

	// drag-drop-classification
	Categories []OptionGroup `json:"categories,omitempty"`

	// word-coloring
	Groups []OptionGroup `json:"groups,omitempty"`

	// sentence-word-classification
	Classifications []OptionGroup `json:"classifications,omitempty"`

	// matching
	Pairs []MatchingPair `json:"pairs,omitempty"`

	// timed-challenge and free-draw
	Prompt   *LocalizedString `json:"prompt,omitempty"`
	Letter   string           `json:"letter,omitempty"`
	Duration int              `json:"duration,omitempty"` // seconds

	// instructional-text
	Content *InstructionalContent `json:"content,omitempty"`
	Notes   *LocalizedStringList  `json:"notes,omitempty"`
}

// OptionGroup is a selectable bucket (category, coloring group or word
// classification) an item can belong to.
type OptionGroup struct {
	ID    string          `json:"id" validate:"required"`
	Title LocalizedString `json:"title"`
	Color string          `json:"color,omitempty"`
}

// MatchingPair is one source/target answer-key pair of a matching exercise.
// Tokens are matched by text, or by emoji when the text side is empty.
type MatchingPair struct {
	ID     string     `json:"id" validate:"required"`
	Source MatchToken `json:"source"`
	Target MatchToken `json:"target"`
}

type MatchToken struct {
	Text  string `json:"text,omitempty"`
	Emoji string `json:"emoji,omitempty"`
}

// Key is the identifier the gesture collaborator reports for a drag endpoint.
func (t MatchToken) Key() string {
	if t.Text != "" {
		return t.Text
	}
	return t.Emoji
}

type InstructionalContent struct {
	Ar []InstructionalBlock `json:"ar"`
	En []InstructionalBlock `json:"en"`
}

type InstructionalBlock struct {
	Title  string   `json:"title"`
	Points []string `json:"points"`
}

type LocalizedStringList struct {
	Ar []string `json:"ar"`
	En []string `json:"en"`
}

// AutoCompletes reports whether the variant is ungraded practice content that
// completes unconditionally on first presentation.
func (e *Exercise) AutoCompletes() bool {
	switch e.Type {
	case TypeReading, TypeInstructionalText, TypeFreeDraw:
		return true
	}
	return false
}

// MultiResolve reports whether every item/pair must be resolved before the
// exercise locks in the interaction state. Completion for scoring still fires
// on the first correct sub-item regardless.
func (e *Exercise) MultiResolve() bool {
	switch e.Type {
	case TypeDragDropClassification, TypeMatching, TypeWordColoring, TypeSentenceWordClassification:
		return true
	}
	return false
}

// ResolvableCount returns how many sub-items must be resolved before a
// multi-resolve exercise is fully locked.
func (e *Exercise) ResolvableCount() int {
	switch e.Type {
	case TypeMatching:
		return len(e.Pairs)
	case TypeSentenceWordClassification:
		n := 0
		for _, item := range e.Items {
			for _, w := range item.Sentence {
				if w.IsTarget {
					n++
				}
			}
		}
		return n
	default:
		return len(e.Items)
	}
}

// ItemByID looks up an answer-key item within the exercise.
func (e *Exercise) ItemByID(id string) *Item {
	for i := range e.Items {
		if e.Items[i].ID == id {
			return &e.Items[i]
		}
	}
	return nil
}

// PairExists reports whether (source, target) is one of the exercise's
// answer-key pairs, and returns the pair id when it is.
func (e *Exercise) PairExists(source, target string) (string, bool) {
	for _, p := range e.Pairs {
		if p.Source.Key() == source && p.Target.Key() == target {
			return p.ID, true
		}
	}
	return "", false
}
