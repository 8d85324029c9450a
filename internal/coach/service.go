// Package coach explains missed drill questions, via an LLM when one is
// configured and from the question's own worked solution otherwise.
package coach

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/mathdrill/internal/llm"
	"github.com/abhisek/mathdrill/internal/problemgen"
)

// Purpose labels LLM requests made by the coach.
const Purpose = "explain"

// Where an explanation came from.
const (
	SourceLLM     = "llm"
	SourceBuiltin = "builtin"
)

// ErrNoQuestion is returned when Explain is called without a question.
var ErrNoQuestion = errors.New("coach: no question to explain")

// Config holds generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// DefaultConfig returns the settings used by the drill screen.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   400,
		Temperature: 0.3,
		Timeout:     30 * time.Second,
	}
}

// Explanation is a worked solution for one question.
type Explanation struct {
	Steps  []string `json:"steps"`
	Tip    string   `json:"tip"`
	Source string   `json:"-"`
}

// Service produces explanations. A nil provider keeps it offline.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a coach. provider may be nil.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Online reports whether explanations come from an LLM.
func (s *Service) Online() bool {
	return s != nil && s.provider != nil
}

// Explain returns worked steps and a tip for q. When the LLM is unavailable
// or fails, the built-in explanation is returned together with the error so
// callers can still show something.
func (s *Service) Explain(ctx context.Context, q *problemgen.Question, learnerAnswer string) (Explanation, error) {
	if q == nil {
		return Explanation{}, ErrNoQuestion
	}
	if !s.Online() {
		return Builtin(q), nil
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, Purpose)

	req := llm.UserRequest(systemPrompt, buildUserMessage(q, learnerAnswer), ExplanationSchema, s.cfg.MaxTokens)
	req.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return Builtin(q), fmt.Errorf("explanation: %w", err)
	}

	var out Explanation
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return Builtin(q), fmt.Errorf("parse explanation: %w", err)
	}
	out.Steps = trimSteps(out.Steps)
	if len(out.Steps) == 0 {
		return Builtin(q), fmt.Errorf("explanation has no steps")
	}
	out.Tip = strings.TrimSpace(out.Tip)
	out.Source = SourceLLM
	return out, nil
}

// Builtin turns the question's own explanation into a single-step
// Explanation.
func Builtin(q *problemgen.Question) Explanation {
	step := q.Explanation
	if step == "" {
		step = fmt.Sprintf("%s = %s", q.Prompt, q.Answer)
	}
	return Explanation{
		Steps:  []string{step},
		Tip:    q.Hint,
		Source: SourceBuiltin,
	}
}

func trimSteps(steps []string) []string {
	out := steps[:0]
	for _, s := range steps {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
