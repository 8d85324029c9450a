package session

import "errors"

// FeedbackStatus is the feedback state of the current question.
type FeedbackStatus int

const (
	StatusIdle    FeedbackStatus = iota // Awaiting input
	StatusCorrect                       // Answered correctly
	StatusWrong                         // Answered incorrectly
	StatusTimeUp                        // Countdown reached zero before a submit
)

func (s FeedbackStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusCorrect:
		return "correct"
	case StatusWrong:
		return "wrong"
	case StatusTimeUp:
		return "timeup"
	default:
		return "unknown"
	}
}

// Answered reports whether feedback is visible and input is locked.
func (s FeedbackStatus) Answered() bool {
	return s != StatusIdle
}

// RetryProbability is the chance that a non-empty wrong-answer pool supplies
// the next question instead of the generator.
const RetryProbability = 0.4

var (
	// ErrNotIdle is returned by Submit when feedback is already showing.
	ErrNotIdle = errors.New("session: question already answered")

	// ErrNotAnswered is returned by Acknowledge while awaiting input.
	ErrNotAnswered = errors.New("session: no feedback to acknowledge")

	// ErrEmptyAnswer is returned by Submit for blank input. Callers should
	// block submission before reaching the engine.
	ErrEmptyAnswer = errors.New("session: empty answer")

	// ErrNoQuestion is returned when no question is being shown, e.g. after
	// a generation failure.
	ErrNoQuestion = errors.New("session: no current question")
)
