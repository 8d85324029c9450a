package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/mathdrill/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	st := openStore(t)
	core, logs := observer.New(zap.DebugLevel)
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 3},
	})

	p := WithLogging(mock, ProviderMock, st.EventRepo(), zap.New(core)).(*LoggingProvider)
	ticks := []time.Time{time.Unix(100, 0), time.Unix(100, int64(250*time.Millisecond))}
	p.now = func() time.Time {
		t0 := ticks[0]
		ticks = ticks[1:]
		return t0
	}

	ctx := WithPurpose(context.Background(), "explain")
	if _, err := p.Generate(ctx, Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events, err := st.EventRepo().QueryLLMEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("QueryLLMEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev := events[0]
	if ev.Provider != ProviderMock || ev.Model != "mock" || ev.Purpose != "explain" {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if !ev.Success || ev.InputTokens != 12 || ev.OutputTokens != 3 || ev.LatencyMs != 250 {
		t.Fatalf("unexpected event: %+v", ev)
	}

	if logs.FilterMessage("llm request").Len() != 1 {
		t.Fatalf("expected a debug log line, got %v", logs.All())
	}
}

func TestLoggingProvider_RecordsFailure(t *testing.T) {
	st := openStore(t)
	core, logs := observer.New(zap.WarnLevel)
	mock := NewMockProvider(MockResponse{Err: errors.New("boom")})

	p := WithLogging(mock, ProviderMock, st.EventRepo(), zap.New(core))
	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}

	events, err := st.EventRepo().QueryLLMEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("QueryLLMEvents: %v", err)
	}
	if len(events) != 1 || events[0].Success || events[0].ErrorMessage != "boom" {
		t.Fatalf("unexpected events: %+v", events)
	}
	if events[0].Purpose != "unknown" {
		t.Fatalf("expected purpose 'unknown', got %q", events[0].Purpose)
	}
	if logs.FilterMessage("llm request failed").Len() != 1 {
		t.Fatalf("expected a warning, got %v", logs.All())
	}
}

func TestLoggingProvider_NilRepo(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, ProviderMock, nil, nil)

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", p.ModelID())
	}
}

func TestNewProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderMock

	p, err := NewProvider(context.Background(), cfg, nil, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", p.ModelID())
	}

	cfg.Provider = ProviderOpenRouter
	if _, err := NewProvider(context.Background(), cfg, nil, nil); err == nil {
		t.Fatal("expected missing key error")
	}

	cfg.OpenRouter.APIKey = "sk-or"
	p, err = NewProvider(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != cfg.OpenRouter.Model {
		t.Fatalf("expected %q, got %q", cfg.OpenRouter.Model, p.ModelID())
	}
}
