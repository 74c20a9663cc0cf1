package models

import "time"

// LearnerSession is one interactive learner session. Interaction state lives
// only for the session's lifetime; logout discards everything.
type LearnerSession struct {
	ID        string    `json:"id"`
	Profile   Profile   `json:"profile"`
	Language  Language  `json:"language"`
	StartedAt time.Time `json:"started_at"`
}

// AttemptResult is the evaluator verdict for one submitted answer. Incorrect
// is a normal outcome, never an error: the learner may resubmit freely.
type AttemptResult string

const (
	ResultCorrect   AttemptResult = "correct"
	ResultIncorrect AttemptResult = "incorrect"
)

// AttemptOutcome reports what one attempt changed. ExerciseCompleted is true
// only for the attempt that first moved the exercise into the completed-set;
// later correct attempts on the same exercise report it false.
type AttemptOutcome struct {
	Result            AttemptResult `json:"result"`
	ItemLocked        bool          `json:"item_locked"`
	ExerciseCompleted bool          `json:"exercise_completed"`
	ExerciseLocked    bool          `json:"exercise_locked"`
}

// ProgressSummary is a pure read over the content tree and the completed-set.
type ProgressSummary struct {
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Percent   float64 `json:"percent"`
}
