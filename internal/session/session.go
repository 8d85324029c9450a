package session

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/random"
)

// Session sequences questions for one configured domain. It owns the
// wrong-answer pool and the per-question countdown.
//
// A Session is driven from a single goroutine (the host's event loop) and
// is not safe for concurrent use.
type Session struct {
	id     string
	cfg    problemgen.DomainConfig
	gen    problemgen.Generator
	src    random.Source
	now    func() time.Time
	timer  time.Duration
	pool   WrongAnswerPool
	stats  stats
	result *Result

	// Current question state.
	current  *problemgen.Question
	fromPool bool
	status   FeedbackStatus
	token    uint64
	shownAt  time.Time
	deadline time.Time // zero when no countdown is running
	err      error
}

type stats struct {
	started time.Time
	served  int
	retries int
	correct int
	wrong   int
	timeups int
}

// Result describes how the current question was resolved.
type Result struct {
	Question        problemgen.Question
	Input           string // empty for a timeout
	Correct         bool
	CanonicalAnswer string
	Status          FeedbackStatus
	ResponseTime    time.Duration
	Retry           bool // question was drawn from the wrong-answer pool
}

// Option customizes a Session.
type Option func(*Session)

// WithSource sets the random source for generation and retry draws.
func WithSource(src random.Source) Option {
	return func(s *Session) { s.src = src }
}

// WithClock sets the clock used for countdowns and durations.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithID sets the session ID. A random UUID is used otherwise.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// WithGenerator replaces the generator built from the config.
func WithGenerator(gen problemgen.Generator) Option {
	return func(s *Session) { s.gen = gen }
}

// New configures a session for cfg. It fails with an error wrapping
// problemgen.ErrInvalidConfig and never starts with such a config.
func New(cfg problemgen.DomainConfig, opts ...Option) (*Session, error) {
	s := &Session{
		cfg: cfg,
		src: random.Default(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.gen == nil {
		gen, err := problemgen.New(cfg)
		if err != nil {
			return nil, err
		}
		s.gen = gen
	} else if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if s.id == "" {
		s.id = uuid.New().String()
	}
	s.timer = time.Duration(cfg.TimerSeconds()) * time.Second
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Config returns the domain config the session was built from.
func (s *Session) Config() problemgen.DomainConfig { return s.cfg }

// Domain returns the practice domain.
func (s *Session) Domain() problemgen.Domain { return s.cfg.Domain() }

// Timer returns the per-question countdown, zero when disabled.
func (s *Session) Timer() time.Duration { return s.timer }

// Start empties the pool, resets the stats and serves the first question.
func (s *Session) Start() error {
	s.pool.Reset()
	s.stats = stats{started: s.now()}
	s.result = nil
	return s.Next()
}

// Next serves the next question. When the pool is non-empty, a retry is
// drawn from it with probability RetryProbability; otherwise the generator
// runs. Any running countdown for the previous question is cancelled.
//
// On a generation failure Current returns nil and the error is also kept
// in Err until the next successful call.
func (s *Session) Next() error {
	s.token++
	s.status = StatusIdle
	s.deadline = time.Time{}
	s.current = nil
	s.fromPool = false
	s.result = nil
	s.err = nil

	if s.pool.Len() > 0 && s.src.Float64() < RetryProbability {
		q := s.pool.Draw(s.src)
		s.current = &q
		s.fromPool = true
		s.stats.retries++
	} else {
		q, err := s.gen.Generate(s.src)
		if err != nil {
			s.err = err
			return err
		}
		s.current = q
	}

	s.stats.served++
	s.shownAt = s.now()
	if s.timer > 0 {
		s.deadline = s.shownAt.Add(s.timer)
	}
	return nil
}

// Submit evaluates raw against the current question. It is only valid while
// awaiting input and with non-blank input.
//
// If the countdown has already run out when Submit is processed, the
// question times out instead and the returned Result has StatusTimeUp.
func (s *Session) Submit(raw string) (Result, error) {
	if s.current == nil {
		return Result{}, ErrNoQuestion
	}
	if s.status != StatusIdle {
		return Result{}, ErrNotIdle
	}
	if strings.TrimSpace(raw) == "" {
		return Result{}, ErrEmptyAnswer
	}

	now := s.now()
	if !s.deadline.IsZero() && !now.Before(s.deadline) {
		s.timeout(now)
		return *s.result, nil
	}
	s.deadline = time.Time{}

	correct := problemgen.Evaluate(s.current, raw)
	if correct {
		s.status = StatusCorrect
		s.stats.correct++
		s.pool.RemovePrompt(s.current.Prompt)
	} else {
		s.status = StatusWrong
		s.stats.wrong++
		s.pool.Add(*s.current)
	}
	s.record(raw, correct, now)
	return *s.result, nil
}

// OnTimeout resolves the current question as timed out. It only acts while
// awaiting input, so a timeout that arrives after a submit is a no-op.
// It reports whether the state changed.
func (s *Session) OnTimeout() bool {
	if s.current == nil || s.status != StatusIdle {
		return false
	}
	s.timeout(s.now())
	return true
}

// Expire is the countdown callback. token is the value of Token captured
// when the countdown was scheduled; a stale token is ignored.
func (s *Session) Expire(token uint64) bool {
	if token != s.token {
		return false
	}
	return s.OnTimeout()
}

func (s *Session) timeout(now time.Time) {
	s.deadline = time.Time{}
	s.status = StatusTimeUp
	s.stats.timeups++
	s.pool.Add(*s.current)
	s.record("", false, now)
}

func (s *Session) record(input string, correct bool, now time.Time) {
	s.result = &Result{
		Question:        *s.current,
		Input:           input,
		Correct:         correct,
		CanonicalAnswer: s.current.Answer,
		Status:          s.status,
		ResponseTime:    now.Sub(s.shownAt),
		Retry:           s.fromPool,
	}
}

// Countdown is a snapshot of the per-question timer.
type Countdown struct {
	Active    bool
	Remaining time.Duration
	Fraction  float64 // remaining / total, in [0, 1]
	Expired   bool    // this tick fired the timeout
}

// Tick advances the countdown to now. When the deadline has passed the
// question times out during this call.
func (s *Session) Tick(now time.Time) Countdown {
	if s.deadline.IsZero() || s.current == nil || s.status != StatusIdle {
		return Countdown{}
	}
	remaining := s.deadline.Sub(now)
	if remaining <= 0 {
		s.timeout(now)
		return Countdown{Expired: true}
	}
	return Countdown{
		Active:    true,
		Remaining: remaining,
		Fraction:  min(1, float64(remaining)/float64(s.timer)),
	}
}

// Acknowledge dismisses the feedback and serves the next question.
func (s *Session) Acknowledge() error {
	if !s.status.Answered() {
		return ErrNotAnswered
	}
	return s.Next()
}

// Current returns the question being shown, or nil in the placeholder
// state after a generation failure.
func (s *Session) Current() *problemgen.Question { return s.current }

// FeedbackStatus returns the feedback state of the current question.
func (s *Session) FeedbackStatus() FeedbackStatus { return s.status }

// Token identifies the current question. It changes on every Next.
func (s *Session) Token() uint64 { return s.token }

// FromPool reports whether the current question is a retry.
func (s *Session) FromPool() bool { return s.fromPool }

// Pool returns the wrong-answer pool.
func (s *Session) Pool() *WrongAnswerPool { return &s.pool }

// LastResult returns how the current question was resolved, if it was.
func (s *Session) LastResult() (Result, bool) {
	if s.result == nil {
		return Result{}, false
	}
	return *s.result, true
}

// Err returns the generation failure behind the placeholder state.
func (s *Session) Err() error { return s.err }
