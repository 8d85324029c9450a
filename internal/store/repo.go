package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
	Domain string    // exact domain match; ignored by LLM queries
}

// Session actions.
const (
	ActionStart = "start"
	ActionEnd   = "end"
)

// SessionEventData captures a session lifecycle event. Counts and duration
// are only meaningful on end; Config only on start.
type SessionEventData struct {
	SessionID    string
	Domain       string
	Action       string
	Config       string // JSON-encoded domain config
	Served       int
	Correct      int
	Wrong        int
	TimeUps      int
	Retries      int
	DurationSecs int
}

// SessionSummaryRecord is one finished session as listed on the history
// screen.
type SessionSummaryRecord struct {
	Sequence     int64
	SessionID    string
	Domain       string
	Timestamp    time.Time
	Served       int
	Correct      int
	Wrong        int
	TimeUps      int
	Retries      int
	DurationSecs int
}

// Answered returns the number of questions resolved in the session.
func (r SessionSummaryRecord) Answered() int {
	return r.Correct + r.Wrong + r.TimeUps
}

// Accuracy returns correct/answered, or 0 when nothing was answered.
func (r SessionSummaryRecord) Accuracy() float64 {
	if n := r.Answered(); n > 0 {
		return float64(r.Correct) / float64(n)
	}
	return 0
}

// Answer outcomes.
const (
	OutcomeCorrect = "correct"
	OutcomeWrong   = "wrong"
	OutcomeTimeUp  = "timeup"
)

// AnswerEventData captures a single resolved question.
type AnswerEventData struct {
	SessionID       string
	Domain          string
	Prompt          string
	CanonicalAnswer string
	LearnerAnswer   string
	Outcome         string
	TimeMs          int64
	Retried         bool
}

// DomainStats aggregates answer events for one domain.
type DomainStats struct {
	Domain    string
	Attempts  int
	Correct   int
	Wrong     int
	TimeUps   int
	AvgTimeMs float64
}

// Accuracy returns Correct/Attempts, or 0 with no attempts.
func (s DomainStats) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempts)
}

// MissedPrompt is a prompt the learner has missed or timed out on.
type MissedPrompt struct {
	Prompt string
	Answer string
	Misses int
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestRecord is a stored LLM request event.
type LLMRequestRecord struct {
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM requests per provider, model and purpose.
type LLMUsage struct {
	Provider     string
	Model        string
	Purpose      string
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs float64
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAnswerEvent records a resolved question.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QuerySessionSummaries returns finished sessions, newest first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)

	// DomainStats aggregates all answers for domain. An empty domain
	// aggregates across every domain.
	DomainStats(ctx context.Context, domain string) (DomainStats, error)

	// MostMissed returns the prompts with the most wrong or timed-out
	// answers in domain, most missed first.
	MostMissed(ctx context.Context, domain string, limit int) ([]MissedPrompt, error)

	// QueryLLMEvents returns LLM request events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestRecord, error)

	// LLMUsage aggregates LLM request events.
	LLMUsage(ctx context.Context) ([]LLMUsage, error)
}

// PrefsRepo persists per-domain learner preferences.
type PrefsRepo interface {
	// Timer returns the stored timer for domain; ok is false when unset.
	Timer(ctx context.Context, domain string) (secs int, ok bool, err error)

	// SetTimer stores the timer for domain.
	SetTimer(ctx context.Context, domain string, secs int) error

	// LastConfig decodes the last used config for domain into dst.
	// ok is false when none is stored.
	LastConfig(ctx context.Context, domain string, dst any) (ok bool, err error)

	// SaveConfig stores cfg as the last used config for domain.
	SaveConfig(ctx context.Context, domain string, cfg any) error
}
