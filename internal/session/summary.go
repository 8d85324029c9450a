package session

import (
	"time"

	"github.com/abhisek/mathdrill/internal/problemgen"
)

// SessionSummary holds the data displayed on the summary screen.
type SessionSummary struct {
	SessionID      string
	Domain         problemgen.Domain
	StartedAt      time.Time
	Duration       time.Duration
	Served         int
	TotalQuestions int // answered or timed out
	TotalCorrect   int
	Wrong          int
	TimeUps        int
	Retries        int
	PoolSize       int
	Accuracy       float64
}

// Summary builds the summary for the session so far.
func (s *Session) Summary() *SessionSummary {
	answered := s.stats.correct + s.stats.wrong + s.stats.timeups

	var accuracy float64
	if answered > 0 {
		accuracy = float64(s.stats.correct) / float64(answered)
	}

	var elapsed time.Duration
	if !s.stats.started.IsZero() {
		elapsed = s.now().Sub(s.stats.started)
	}

	return &SessionSummary{
		SessionID:      s.id,
		Domain:         s.cfg.Domain(),
		StartedAt:      s.stats.started,
		Duration:       elapsed,
		Served:         s.stats.served,
		TotalQuestions: answered,
		TotalCorrect:   s.stats.correct,
		Wrong:          s.stats.wrong,
		TimeUps:        s.stats.timeups,
		Retries:        s.stats.retries,
		PoolSize:       s.pool.Len(),
		Accuracy:       accuracy,
	}
}
