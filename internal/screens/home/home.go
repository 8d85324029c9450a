package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/router"
	"github.com/abhisek/mathdrill/internal/screen"
	"github.com/abhisek/mathdrill/internal/screens/history"
	"github.com/abhisek/mathdrill/internal/screens/setup"
	"github.com/abhisek/mathdrill/internal/store"
	"github.com/abhisek/mathdrill/internal/ui/components"
)

// Accuracy thresholds of the last session that change the mascot.
const (
	celebrateAccuracy = 0.9
	alertAccuracy     = 0.5
)

// HomeScreen is the main menu: one entry per practice domain plus history.
type HomeScreen struct {
	env        screen.Env
	menu       components.Menu
	menuLabels []string
	stats      stats
}

type stats struct {
	loaded bool
	total  store.DomainStats
	last   *store.SessionSummaryRecord
}

// statsLoadedMsg carries the lifetime totals shown in the stats bar.
type statsLoadedMsg struct {
	total store.DomainStats
	last  *store.SessionSummaryRecord
	err   error
}

var (
	_ screen.Screen  = (*HomeScreen)(nil)
	_ screen.Resumer = (*HomeScreen)(nil)
)

// New creates a new HomeScreen.
func New(env screen.Env) *HomeScreen {
	env = env.WithDefaults()

	var labels []string
	var items []components.MenuItem
	for _, d := range problemgen.AllDomains {
		labels = append(labels, strings.ToUpper(d.DisplayName()))
		items = append(items, components.MenuItem{
			Label: d.DisplayName(),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: setup.New(env, d)}
				}
			},
		})
	}

	labels = append(labels, "HISTORY", "EXIT")
	items = append(items,
		components.MenuItem{Label: "History", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(env)}
			}
		}},
		components.MenuItem{Label: "Exit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)

	return &HomeScreen{
		env:        env,
		menu:       components.NewMenu(items),
		menuLabels: labels,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Resume refreshes the stats after a drill.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	repo := h.env.Events
	if repo == nil {
		return func() tea.Msg { return statsLoadedMsg{} }
	}
	return func() tea.Msg {
		ctx := context.Background()
		total, err := repo.DomainStats(ctx, "")
		if err != nil {
			return statsLoadedMsg{err: err}
		}
		recent, err := repo.QuerySessionSummaries(ctx, store.QueryOpts{Limit: 1})
		if err != nil {
			return statsLoadedMsg{err: err}
		}
		msg := statsLoadedMsg{total: total}
		if len(recent) > 0 {
			msg.last = &recent[0]
		}
		return msg
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		if msg.err != nil {
			h.env.Logger.Warn("failed to load home stats", zap.Error(msg.err))
		}
		h.stats = stats{loaded: true, total: msg.total, last: msg.last}
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// mascotVariant reacts to how the last session went.
func (h *HomeScreen) mascotVariant() MascotVariant {
	last := h.stats.last
	if last == nil || last.Answered() == 0 {
		return MascotIdle
	}
	switch acc := last.Accuracy(); {
	case acc >= celebrateAccuracy:
		return MascotCelebrating
	case acc < alertAccuracy:
		return MascotAlert
	default:
		return MascotIdle
	}
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 34 || width < 100

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mascotVariant(), cw))
	}
	sections = append(sections, renderStatsBar(h.stats, cw, compact))
	if compact {
		sections = append(sections, renderArcadeMenuCompact(h.menuLabels, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderArcadeMenu(h.menuLabels, h.menu.Selected, cw))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
