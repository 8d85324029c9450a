package drill

import (
	"time"

	"github.com/abhisek/mathdrill/internal/coach"
)

// tickInterval is how often the countdown bar is redrawn.
const tickInterval = 100 * time.Millisecond

// tickMsg advances the countdown of the question identified by token in
// session sessionID. Ticks for any other question are dropped.
type tickMsg struct {
	sessionID string
	token     uint64
	at        time.Time
}

// explanationMsg delivers a worked explanation for the question
// identified by token.
type explanationMsg struct {
	sessionID   string
	token       uint64
	explanation coach.Explanation
	err         error
}
