package history

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/router"
	"github.com/abhisek/mathdrill/internal/screen"
	"github.com/abhisek/mathdrill/internal/store"
)

func seededRepo(t *testing.T) store.EventRepo {
	t.Helper()
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	repo := s.EventRepo()
	ctx := context.Background()
	answers := []store.AnswerEventData{
		{SessionID: "a", Domain: "tables", Prompt: "7 × 8", CanonicalAnswer: "56", LearnerAnswer: "54", Outcome: store.OutcomeWrong, TimeMs: 2000},
		{SessionID: "a", Domain: "tables", Prompt: "7 × 8", CanonicalAnswer: "56", Outcome: store.OutcomeTimeUp, TimeMs: 10000},
		{SessionID: "a", Domain: "tables", Prompt: "7 × 3", CanonicalAnswer: "21", LearnerAnswer: "21", Outcome: store.OutcomeCorrect, TimeMs: 1000},
	}
	for _, a := range answers {
		require.NoError(t, repo.AppendAnswerEvent(ctx, a))
	}
	require.NoError(t, repo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID: "a", Domain: "tables", Action: store.ActionStart, Config: `{"selected":[7]}`,
	}))
	require.NoError(t, repo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID: "a", Domain: "tables", Action: store.ActionEnd,
		Served: 3, Correct: 1, Wrong: 1, TimeUps: 1, DurationSecs: 75,
	}))
	return repo
}

func TestLoad(t *testing.T) {
	repo := seededRepo(t)

	sessions, domains, err := Load(context.Background(), repo)
	require.NoError(t, err)

	require.Len(t, sessions, 1)
	assert.Equal(t, "a", sessions[0].SessionID)

	require.Len(t, domains, 1, "domains without answers are omitted")
	assert.Equal(t, problemgen.DomainTables, domains[0].Domain)
	assert.Equal(t, 3, domains[0].Stats.Attempts)
	require.NotEmpty(t, domains[0].Missed)
	assert.Equal(t, "7 × 8", domains[0].Missed[0].Prompt)
	assert.Equal(t, 2, domains[0].Missed[0].Misses)
}

func TestHistoryScreen_View(t *testing.T) {
	h := New(screen.Env{Events: seededRepo(t)})

	assert.Contains(t, h.View(100, 30), "Loading history")

	h.Update(h.Init()())
	view := h.View(100, 30)
	assert.Contains(t, view, "Multiplication Tables")
	assert.Contains(t, view, "7 × 8 = 56")
	assert.False(t, strings.Contains(view, "retries"), "details are collapsed by default")

	h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Contains(t, h.View(100, 30), "retries")
}

func TestHistoryScreen_NoStore(t *testing.T) {
	h := New(screen.Env{})
	h.Update(h.Init()())
	assert.Contains(t, h.View(80, 24), "No sessions yet")
}

func TestHistoryScreen_Esc(t *testing.T) {
	h := New(screen.Env{})
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
}
