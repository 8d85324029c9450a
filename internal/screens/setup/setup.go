// Package setup implements the per-domain configuration screen shown
// before a drill starts.
package setup

import (
	"context"
	"errors"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/router"
	"github.com/abhisek/mathdrill/internal/screen"
	"github.com/abhisek/mathdrill/internal/screens/drill"
	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/ui/components"
	"github.com/abhisek/mathdrill/internal/ui/layout"
	"github.com/abhisek/mathdrill/internal/ui/theme"
)

// Chip ranges offered on the form. Presets outside them are dropped.
const (
	tableChipMin = 2
	tableChipMax = 30
	digitChipMin = 2
	digitChipMax = 5
	rangeMin     = 2
	rangeMax     = 30
)

const cubeNote = "Cube/Root questions limited to 20 max"

// SetupScreen edits a domain config and starts a drill with it.
type SetupScreen struct {
	env    screen.Env
	domain problemgen.Domain
	fields []*field
	focus  int
	errMsg string
}

var (
	_ screen.Screen          = (*SetupScreen)(nil)
	_ screen.KeyHintProvider = (*SetupScreen)(nil)
)

// New builds the form for d, seeded from the last config used for d, else
// the preset.
func New(env screen.Env, d problemgen.Domain) *SetupScreen {
	env = env.WithDefaults()
	s := &SetupScreen{env: env, domain: d}
	cfg := initialConfig(context.Background(), env, d)
	s.fields = buildFields(cfg)
	if len(s.fields) > 0 {
		s.fields[0].focus()
	}
	return s
}

// initialConfig resolves the starting config: last used, then preset, with
// the stored timer preference applied on top.
func initialConfig(ctx context.Context, env screen.Env, d problemgen.Domain) problemgen.DomainConfig {
	cfg := env.Presets.For(d)
	if cfg == nil {
		cfg = problemgen.DefaultConfig(d)
	}
	if env.Prefs == nil {
		return cfg
	}

	switch c := cfg.(type) {
	case problemgen.TablesConfig:
		cfg = lastConfig(ctx, env, c)
	case problemgen.PracticeConfig:
		cfg = lastConfig(ctx, env, c)
	case problemgen.PowersConfig:
		cfg = lastConfig(ctx, env, c)
	case problemgen.FractionsConfig:
		cfg = lastConfig(ctx, env, c)
	case problemgen.AlphabetConfig:
		cfg = lastConfig(ctx, env, c)
	}

	secs, ok, err := env.Prefs.Timer(ctx, string(d))
	if err != nil {
		env.Logger.Warn("failed to load timer preference", zap.String("domain", string(d)), zap.Error(err))
	} else if ok {
		cfg = problemgen.WithTimer(cfg, secs)
	}
	return cfg
}

func lastConfig[T problemgen.DomainConfig](ctx context.Context, env screen.Env, preset T) T {
	var stored T
	ok, err := env.Prefs.LastConfig(ctx, string(preset.Domain()), &stored)
	if err != nil {
		env.Logger.Warn("failed to load last config", zap.String("domain", string(preset.Domain())), zap.Error(err))
		return preset
	}
	if !ok || stored.Validate() != nil {
		return preset
	}
	return stored
}

func buildFields(cfg problemgen.DomainConfig) []*field {
	var fields []*field

	switch c := cfg.(type) {
	case problemgen.TablesConfig:
		values := numberRange(tableChipMin, tableChipMax)
		fields = append(fields, chipField("selected", "Tables", values, values, true,
			indicesOf(values, itoas(c.Selected))))

	case problemgen.PracticeConfig:
		values := numberRange(digitChipMin, digitChipMax)
		fields = append(fields,
			chipField("digits1", "Digits in first number", values, values, true,
				indicesOf(values, itoas(c.Digits1))),
			chipField("digits2", "Digits in second number", values, values, true,
				indicesOf(values, itoas(c.Digits2))),
		)

	case problemgen.PowersConfig:
		var labels, values []string
		for _, op := range problemgen.AllPowerOps {
			labels = append(labels, op.DisplayName())
			values = append(values, string(op))
		}
		var selected []string
		for _, op := range c.Selected {
			selected = append(selected, string(op))
		}
		rng := stepperField("range_max", "Range (1 to n)", c.RangeMax, rangeMin, rangeMax)
		rng.note = cubeNote
		fields = append(fields,
			chipField("selected", "Operations", labels, values, true, indicesOf(values, selected)),
			rng,
		)

	case problemgen.FractionsConfig:
		var labels, values []string
		for _, f := range problemgen.AllFractionFormats {
			labels = append(labels, f.DisplayName())
			values = append(values, string(f))
		}
		var selected []string
		for _, f := range c.Selected {
			selected = append(selected, string(f))
		}
		fields = append(fields,
			chipField("selected", "Answer formats", labels, values, true, indicesOf(values, selected)))

	case problemgen.AlphabetConfig:
		var labels, values []string
		for _, m := range problemgen.AllAlphabetModes {
			labels = append(labels, m.DisplayName())
			values = append(values, string(m))
		}
		mode := c.Mode
		if mode == "" {
			mode = problemgen.ModeLetterToPosition
		}
		fields = append(fields,
			inputField("start", "Start letter", "A", c.Start, 1, components.Letters),
			inputField("end", "End letter", "Z", c.End, 1, components.Letters),
			chipField("mode", "Mode", labels, values, false, indicesOf(values, []string{string(mode)})),
		)
	}

	timer := ""
	if secs := cfg.TimerSeconds(); secs > 0 {
		timer = strconv.Itoa(secs)
	}
	t := inputField("timer", "Timer (seconds, empty for none)", "none", timer, 4, components.Digits)
	return append(fields, t)
}

func itoas(ns []int) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = strconv.Itoa(n)
	}
	return out
}

func (s *SetupScreen) field(key string) *field {
	for _, f := range s.fields {
		if f.key == key {
			return f
		}
	}
	return nil
}

// Config assembles the domain config from the form. It is not validated.
func (s *SetupScreen) Config() problemgen.DomainConfig {
	timer := 0
	if f := s.field("timer"); f != nil {
		if v := strings.TrimSpace(f.input.Value()); v != "" {
			timer, _ = strconv.Atoi(v)
		}
	}

	switch s.domain {
	case problemgen.DomainTables:
		return problemgen.TablesConfig{Selected: s.field("selected").ints(), Timer: timer}
	case problemgen.DomainPractice:
		return problemgen.PracticeConfig{
			Digits1: s.field("digits1").ints(),
			Digits2: s.field("digits2").ints(),
			Timer:   timer,
		}
	case problemgen.DomainPowers:
		var ops []problemgen.PowerOp
		for _, v := range s.field("selected").selected() {
			ops = append(ops, problemgen.PowerOp(v))
		}
		return problemgen.PowersConfig{Selected: ops, RangeMax: s.field("range_max").value, Timer: timer}
	case problemgen.DomainFractions:
		var formats []problemgen.FractionFormat
		for _, v := range s.field("selected").selected() {
			formats = append(formats, problemgen.FractionFormat(v))
		}
		return problemgen.FractionsConfig{Selected: formats, Timer: timer}
	case problemgen.DomainAlphabet:
		mode := problemgen.ModeLetterToPosition
		if sel := s.field("mode").selected(); len(sel) > 0 {
			mode = problemgen.AlphabetMode(sel[0])
		}
		return problemgen.AlphabetConfig{
			Start: strings.ToUpper(s.field("start").input.Value()),
			End:   strings.ToUpper(s.field("end").input.Value()),
			Mode:  mode,
			Timer: timer,
		}
	}
	return nil
}

func (s *SetupScreen) Init() tea.Cmd {
	return nil
}

func (s *SetupScreen) Title() string {
	return s.domain.DisplayName()
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Field"},
		{Key: "←→", Description: "Choose"},
		{Key: "Space", Description: "Toggle"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		if f := s.focused(); f != nil {
			return s, f.update(msg)
		}
		return s, nil
	}

	switch kmsg.String() {
	case "enter":
		return s, s.start()
	case "up", "shift+tab":
		return s, s.moveFocus(-1)
	case "down", "tab":
		return s, s.moveFocus(1)
	}

	s.errMsg = ""
	if f := s.focused(); f != nil {
		return s, f.update(msg)
	}
	return s, nil
}

func (s *SetupScreen) focused() *field {
	if s.focus < 0 || s.focus >= len(s.fields) {
		return nil
	}
	return s.fields[s.focus]
}

func (s *SetupScreen) moveFocus(delta int) tea.Cmd {
	next := s.focus + delta
	if next < 0 || next >= len(s.fields) {
		return nil
	}
	s.fields[s.focus].blur()
	s.focus = next
	return s.fields[s.focus].focus()
}

// start validates the form and, on success, remembers the config and
// pushes the drill.
func (s *SetupScreen) start() tea.Cmd {
	cfg := s.Config()
	sess, err := session.New(cfg, session.WithClock(s.env.Now))
	if err != nil {
		var ce *problemgen.ConfigError
		if errors.As(err, &ce) {
			s.errMsg = ce.Message
		} else {
			s.errMsg = err.Error()
		}
		return nil
	}
	s.errMsg = ""
	s.remember(cfg)

	d := drill.New(s.env, sess)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: d}
	}
}

func (s *SetupScreen) remember(cfg problemgen.DomainConfig) {
	if s.env.Prefs == nil {
		return
	}
	ctx := context.Background()
	d := string(s.domain)
	if err := s.env.Prefs.SaveConfig(ctx, d, cfg); err != nil {
		s.env.Logger.Warn("failed to save last config", zap.String("domain", d), zap.Error(err))
	}
	if err := s.env.Prefs.SetTimer(ctx, d, cfg.TimerSeconds()); err != nil {
		s.env.Logger.Warn("failed to save timer preference", zap.String("domain", d), zap.Error(err))
	}
}

// ErrMessage returns the validation message shown under the form.
func (s *SetupScreen) ErrMessage() string {
	return s.errMsg
}

func (s *SetupScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var rows []string
	rows = append(rows, theme.Title.Width(cw).Render(s.domain.DisplayName()))
	for i, f := range s.fields {
		rows = append(rows, f.view(cw, i == s.focus))
	}
	if s.errMsg != "" {
		rows = append(rows, theme.Incorrect.Width(cw).Render("⚠ "+s.errMsg))
	}

	form := lipgloss.NewStyle().Width(cw).Render(strings.Join(rows, "\n\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, form)
}

