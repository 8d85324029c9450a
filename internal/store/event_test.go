package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionSummaries(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []SessionEventData{
		{SessionID: "a", Domain: "tables", Action: ActionStart, Config: `{"selected":[7]}`},
		{SessionID: "a", Domain: "tables", Action: ActionEnd, Served: 5, Correct: 3, Wrong: 1, TimeUps: 1, DurationSecs: 60},
		{SessionID: "b", Domain: "powers", Action: ActionStart},
		{SessionID: "b", Domain: "powers", Action: ActionEnd, Served: 2, Correct: 2, DurationSecs: 10},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendSessionEvent(ctx, e))
	}

	recs, err := repo.QuerySessionSummaries(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "b", recs[0].SessionID, "newest first")
	assert.Equal(t, "a", recs[1].SessionID)
	assert.Equal(t, 5, recs[1].Answered())
	assert.InDelta(t, 0.6, recs[1].Accuracy(), 1e-9)
	assert.False(t, recs[1].Timestamp.IsZero())

	recs, err = repo.QuerySessionSummaries(ctx, QueryOpts{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, recs, 1)

	recs, err = repo.QuerySessionSummaries(ctx, QueryOpts{Domain: "tables"})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "a", recs[0].SessionID)
}

func TestAppendSessionEvent_RequiresIDAndAction(t *testing.T) {
	s := openTestStore(t)
	err := s.EventRepo().AppendSessionEvent(context.Background(), SessionEventData{Domain: "tables"})
	assert.Error(t, err)
}

func TestDomainStatsAndMostMissed(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	answers := []AnswerEventData{
		{SessionID: "a", Domain: "tables", Prompt: "7 × 8", CanonicalAnswer: "56", LearnerAnswer: "54", Outcome: OutcomeWrong, TimeMs: 3000},
		{SessionID: "a", Domain: "tables", Prompt: "7 × 8", CanonicalAnswer: "56", Outcome: OutcomeTimeUp, TimeMs: 10000, Retried: true},
		{SessionID: "a", Domain: "tables", Prompt: "7 × 8", CanonicalAnswer: "56", LearnerAnswer: "56", Outcome: OutcomeCorrect, TimeMs: 2000, Retried: true},
		{SessionID: "a", Domain: "tables", Prompt: "6 × 9", CanonicalAnswer: "54", LearnerAnswer: "56", Outcome: OutcomeWrong, TimeMs: 1000},
		{SessionID: "b", Domain: "powers", Prompt: "12²", CanonicalAnswer: "144", LearnerAnswer: "144", Outcome: OutcomeCorrect, TimeMs: 4000},
	}
	for _, a := range answers {
		require.NoError(t, repo.AppendAnswerEvent(ctx, a))
	}

	st, err := repo.DomainStats(ctx, "tables")
	require.NoError(t, err)
	assert.Equal(t, 4, st.Attempts)
	assert.Equal(t, 1, st.Correct)
	assert.Equal(t, 2, st.Wrong)
	assert.Equal(t, 1, st.TimeUps)
	assert.InDelta(t, 0.25, st.Accuracy(), 1e-9)
	assert.InDelta(t, 4000, st.AvgTimeMs, 1e-9)

	all, err := repo.DomainStats(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 5, all.Attempts)
	assert.Equal(t, 2, all.Correct)

	empty, err := repo.DomainStats(ctx, "alphabet")
	require.NoError(t, err)
	assert.Zero(t, empty.Attempts)
	assert.Zero(t, empty.Accuracy())

	missed, err := repo.MostMissed(ctx, "tables", 5)
	require.NoError(t, err)
	require.Len(t, missed, 2)
	assert.Equal(t, MissedPrompt{Prompt: "7 × 8", Answer: "56", Misses: 2}, missed[0])
	assert.Equal(t, MissedPrompt{Prompt: "6 × 9", Answer: "54", Misses: 1}, missed[1])

	missed, err = repo.MostMissed(ctx, "powers", 5)
	require.NoError(t, err)
	assert.Empty(t, missed)
}

func TestAppendAnswerEvent_RejectsUnknownOutcome(t *testing.T) {
	s := openTestStore(t)
	err := s.EventRepo().AppendAnswerEvent(context.Background(), AnswerEventData{
		SessionID: "a", Domain: "tables", Prompt: "1 × 1", CanonicalAnswer: "1", Outcome: "skipped",
	})
	assert.Error(t, err)
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	reqs := []LLMRequestEventData{
		{Provider: "anthropic", Model: "m1", Purpose: "explain", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true},
		{Provider: "anthropic", Model: "m1", Purpose: "explain", InputTokens: 80, LatencyMs: 400, Success: false, ErrorMessage: "rate limited"},
		{Provider: "openai", Model: "m2", Purpose: "explain", InputTokens: 10, OutputTokens: 5, LatencyMs: 100, Success: true},
	}
	for _, r := range reqs {
		require.NoError(t, repo.AppendLLMRequest(ctx, r))
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "openai", events[0].Provider)
	assert.False(t, events[1].Success)
	assert.Equal(t, "rate limited", events[1].ErrorMessage)

	events, err = repo.QueryLLMEvents(ctx, QueryOpts{After: events[1].Sequence})
	require.NoError(t, err)
	assert.Len(t, events, 1)

	usage, err := repo.LLMUsage(ctx)
	require.NoError(t, err)
	require.Len(t, usage, 2)
	assert.Equal(t, LLMUsage{
		Provider: "anthropic", Model: "m1", Purpose: "explain",
		Requests: 2, Failures: 1, InputTokens: 180, OutputTokens: 50, AvgLatencyMs: 300,
	}, usage[0])
}

func TestEventsShareSequence(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "a", Domain: "tables", Action: ActionStart}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "p", Model: "m", Purpose: "explain", Success: true}))
	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "a", Domain: "tables", Action: ActionEnd}))

	recs, err := repo.QuerySessionSummaries(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, int64(3), recs[0].Sequence)
}
