// Package drill implements the question screen that runs a session.
package drill

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/mathdrill/internal/coach"
	"github.com/abhisek/mathdrill/internal/journal"
	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/router"
	"github.com/abhisek/mathdrill/internal/screen"
	"github.com/abhisek/mathdrill/internal/screens/summary"
	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/ui/components"
	"github.com/abhisek/mathdrill/internal/ui/layout"
)

// DrillScreen drives one session: it shows questions, collects answers and
// runs the countdown.
type DrillScreen struct {
	env       screen.Env
	sess      *session.Session
	journal   *journal.Journal
	input     components.TextInput
	countdown session.Countdown

	explanation *coach.Explanation
	explaining  bool

	started bool
	ended   bool
}

var (
	_ screen.Screen          = (*DrillScreen)(nil)
	_ screen.KeyHintProvider = (*DrillScreen)(nil)
	_ screen.Teardown        = (*DrillScreen)(nil)
	_ screen.BackHandler     = (*DrillScreen)(nil)
)

// New creates a drill for a configured, not yet started session.
func New(env screen.Env, sess *session.Session) *DrillScreen {
	env = env.WithDefaults()
	return &DrillScreen{
		env:     env,
		sess:    sess,
		journal: journal.New(env.Events, env.Logger),
	}
}

// Session returns the session being drilled.
func (d *DrillScreen) Session() *session.Session {
	return d.sess
}

func (d *DrillScreen) Init() tea.Cmd {
	if d.started {
		return nil
	}
	d.started = true
	err := d.sess.Start()
	d.journal.Start(context.Background(), d.sess)
	if err != nil {
		d.logGenerationFailure(err)
	}
	return d.present()
}

func (d *DrillScreen) Title() string {
	return d.sess.Domain().DisplayName()
}

// HandlesBack keeps Esc for ending the session.
func (d *DrillScreen) HandlesBack() bool {
	return true
}

func (d *DrillScreen) KeyHints() []layout.KeyHint {
	switch {
	case d.sess.Current() == nil:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Esc", Description: "Finish"},
		}
	case d.sess.FeedbackStatus().Answered():
		hints := []layout.KeyHint{{Key: "any key", Description: "Continue"}}
		if d.canExplain() {
			hints = append(hints, layout.KeyHint{Key: "?", Description: "Explain"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Finish"})
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Finish"},
		}
	}
}

func (d *DrillScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return d, d.handleTick(msg)
	case explanationMsg:
		d.handleExplanation(msg)
		return d, nil
	case tea.KeyPressMsg:
		return d, d.handleKey(msg)
	}

	if d.awaitingInput() {
		var cmd tea.Cmd
		d.input, cmd = d.input.Update(msg)
		return d, cmd
	}
	return d, nil
}

func (d *DrillScreen) awaitingInput() bool {
	return d.sess.Current() != nil && d.sess.FeedbackStatus() == session.StatusIdle
}

func (d *DrillScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	if key == "esc" {
		return d.finish()
	}

	// Placeholder after a generation failure.
	if d.sess.Current() == nil {
		if key == "r" || key == "R" || key == "enter" {
			if err := d.sess.Next(); err != nil {
				d.logGenerationFailure(err)
			}
			return d.present()
		}
		return nil
	}

	if d.sess.FeedbackStatus().Answered() {
		if key == "?" && d.canExplain() {
			d.explaining = true
			return d.explain()
		}
		return d.acknowledge()
	}

	if key == "enter" {
		return d.submit()
	}
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return cmd
}

// present prepares the input for the current question and arms the
// countdown.
func (d *DrillScreen) present() tea.Cmd {
	d.explanation = nil
	d.explaining = false
	d.countdown = session.Countdown{}

	q := d.sess.Current()
	if q == nil {
		return nil
	}
	d.input = newAnswerInput(q)
	if d.sess.Timer() > 0 {
		d.countdown = d.sess.Tick(d.env.Now())
	}
	return tea.Batch(d.input.Init(), d.scheduleTick())
}

func (d *DrillScreen) scheduleTick() tea.Cmd {
	if d.sess.Timer() <= 0 || !d.awaitingInput() {
		return nil
	}
	id, token := d.sess.ID(), d.sess.Token()
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg{sessionID: id, token: token, at: t}
	})
}

func (d *DrillScreen) handleTick(msg tickMsg) tea.Cmd {
	if d.ended || msg.sessionID != d.sess.ID() || msg.token != d.sess.Token() {
		return nil
	}
	d.countdown = d.sess.Tick(d.env.Now())
	if d.countdown.Expired {
		d.input.Blur()
		if res, ok := d.sess.LastResult(); ok {
			d.journal.Answer(context.Background(), d.sess.ID(), res)
		}
		return nil
	}
	return d.scheduleTick()
}

func (d *DrillScreen) submit() tea.Cmd {
	if strings.TrimSpace(d.input.Value()) == "" {
		return nil
	}
	res, err := d.sess.Submit(d.input.Value())
	if err != nil {
		d.env.Logger.Debug("submit rejected", zap.Error(err))
		return nil
	}
	d.input.Blur()
	d.countdown = session.Countdown{}
	d.journal.Answer(context.Background(), d.sess.ID(), res)
	return nil
}

func (d *DrillScreen) acknowledge() tea.Cmd {
	err := d.sess.Acknowledge()
	switch {
	case errors.Is(err, session.ErrNotAnswered):
		return nil
	case err != nil:
		d.logGenerationFailure(err)
	}
	return d.present()
}

func (d *DrillScreen) canExplain() bool {
	st := d.sess.FeedbackStatus()
	return (st == session.StatusWrong || st == session.StatusTimeUp) && d.explanation == nil && !d.explaining
}

func (d *DrillScreen) explain() tea.Cmd {
	res, ok := d.sess.LastResult()
	if !ok {
		return nil
	}
	q := res.Question
	input := res.Input
	id, token := d.sess.ID(), d.sess.Token()
	c := d.env.Coach
	return func() tea.Msg {
		exp, err := c.Explain(context.Background(), &q, input)
		return explanationMsg{sessionID: id, token: token, explanation: exp, err: err}
	}
}

func (d *DrillScreen) handleExplanation(msg explanationMsg) {
	if msg.sessionID != d.sess.ID() || msg.token != d.sess.Token() {
		return
	}
	d.explaining = false
	if msg.err != nil {
		d.env.Logger.Warn("coach explanation failed, using built-in", zap.Error(msg.err))
	}
	exp := msg.explanation
	d.explanation = &exp
}

// finish ends the session and swaps in the summary. Teardown records the
// end event.
func (d *DrillScreen) finish() tea.Cmd {
	sum := summary.New(d.sess.Summary())
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: sum}
	}
}

// Teardown records the session end exactly once. Pending ticks and
// explanations are dropped after it.
func (d *DrillScreen) Teardown() {
	if d.ended || !d.started {
		return
	}
	d.ended = true
	d.journal.End(context.Background(), d.sess)
}

func (d *DrillScreen) logGenerationFailure(err error) {
	d.env.Logger.Warn("question generation failed",
		zap.String("session_id", d.sess.ID()),
		zap.String("domain", string(d.sess.Domain())),
		zap.Error(err))
}

// newAnswerInput builds an input that only accepts characters that can
// form an answer of q's kind.
func newAnswerInput(q *problemgen.Question) components.TextInput {
	placeholder := "Type your answer..."
	width := 16

	in := components.NewTextInput(placeholder, width)
	switch {
	case q.Kind == problemgen.KindStringExact && q.Domain == problemgen.DomainAlphabet:
		in.Allowed = components.Letters
		in.Model.CharLimit = 1
	case q.Kind == problemgen.KindStringExact && q.Domain == problemgen.DomainFractions:
		in.Allowed = components.FractionChars
	case q.Kind == problemgen.KindStringExact:
		in.Allowed = nil
	default:
		in.Allowed = components.Numeric
	}
	if q.PercentInput {
		in.Suffix = "%"
	}
	return in
}
