package setup

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/router"
	"github.com/abhisek/mathdrill/internal/screen"
	"github.com/abhisek/mathdrill/internal/screens/drill"
	"github.com/abhisek/mathdrill/internal/store"
)

func testEnv(t *testing.T) screen.Env {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return screen.Env{Events: st.EventRepo(), Prefs: st.PrefsRepo()}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func typeText(s *SetupScreen, text string) {
	for _, r := range text {
		s.Update(keyPress(r))
	}
}

func TestNew_SeedsFromPreset(t *testing.T) {
	s := New(testEnv(t), problemgen.DomainTables)

	assert.Equal(t, problemgen.DefaultConfig(problemgen.DomainTables), s.Config())
	assert.Equal(t, "Multiplication Tables", s.Title())
}

func TestNew_SeedsFromStoredPrefs(t *testing.T) {
	env := testEnv(t)
	ctx := context.Background()
	require.NoError(t, env.Prefs.SaveConfig(ctx, "tables", problemgen.TablesConfig{Selected: []int{7}}))
	require.NoError(t, env.Prefs.SetTimer(ctx, "tables", 15))

	s := New(env, problemgen.DomainTables)

	assert.Equal(t, problemgen.TablesConfig{Selected: []int{7}, Timer: 15}, s.Config())
}

func TestNew_IgnoresInvalidStoredConfig(t *testing.T) {
	env := testEnv(t)
	require.NoError(t, env.Prefs.SaveConfig(context.Background(), "practice", problemgen.PracticeConfig{}))

	s := New(env, problemgen.DomainPractice)

	assert.Equal(t, problemgen.DefaultConfig(problemgen.DomainPractice), s.Config())
}

func TestStart_InvalidConfigShowsMessage(t *testing.T) {
	s := New(testEnv(t), problemgen.DomainTables)

	// First press selects every chip, the second clears them.
	s.Update(keyPress('a'))
	s.Update(keyPress('a'))
	_, cmd := s.Update(specialKey(tea.KeyEnter))

	assert.Nil(t, cmd, "an invalid config never starts a session")
	assert.Equal(t, "Please select at least one multiplication table to practice.", s.ErrMessage())
	assert.Contains(t, s.View(100, 30), s.ErrMessage())
}

func TestStart_PushesDrillAndRemembersConfig(t *testing.T) {
	env := testEnv(t)
	s := New(env, problemgen.DomainTables)

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	_, ok = msg.Screen.(*drill.DrillScreen)
	assert.True(t, ok)

	ctx := context.Background()
	var stored problemgen.TablesConfig
	found, err := env.Prefs.LastConfig(ctx, "tables", &stored)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, s.Config(), problemgen.DomainConfig(stored))

	secs, found, err := env.Prefs.Timer(ctx, "tables")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 10, secs)
}

func TestPowers_RangeStepper(t *testing.T) {
	s := New(testEnv(t), problemgen.DomainPowers)
	assert.Contains(t, s.View(100, 30), cubeNote)

	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyRight))
	cfg := s.Config().(problemgen.PowersConfig)
	assert.Equal(t, rangeMax, cfg.RangeMax, "stepper stops at the upper bound")

	for range 40 {
		s.Update(specialKey(tea.KeyLeft))
	}
	cfg = s.Config().(problemgen.PowersConfig)
	assert.Equal(t, rangeMin, cfg.RangeMax, "stepper stops at the lower bound")
}

func TestAlphabet_LetterInputs(t *testing.T) {
	s := New(testEnv(t), problemgen.DomainAlphabet)

	s.Update(specialKey(tea.KeyBackspace))
	typeText(s, "c1")
	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyBackspace))
	typeText(s, "h")

	cfg := s.Config().(problemgen.AlphabetConfig)
	assert.Equal(t, "C", cfg.Start)
	assert.Equal(t, "H", cfg.End)
	assert.Equal(t, problemgen.ModeLetterToPosition, cfg.Mode)
}

func TestAlphabet_ModeChips(t *testing.T) {
	s := New(testEnv(t), problemgen.DomainAlphabet)

	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyRight))
	s.Update(specialKey(tea.KeyRight))

	cfg := s.Config().(problemgen.AlphabetConfig)
	assert.Equal(t, problemgen.ModeReverseLetter, cfg.Mode)
}

func TestTimerField(t *testing.T) {
	s := New(testEnv(t), problemgen.DomainFractions)
	assert.Equal(t, 0, s.Config().TimerSeconds())

	s.Update(specialKey(tea.KeyDown))
	typeText(s, "4x5")
	assert.Equal(t, 45, s.Config().TimerSeconds())
}

func TestPractice_DigitChips(t *testing.T) {
	s := New(testEnv(t), problemgen.DomainPractice)

	// Cursor starts on the selected "2"; add "3" to the first operand.
	s.Update(specialKey(tea.KeyRight))
	s.Update(keyPress(' '))

	cfg := s.Config().(problemgen.PracticeConfig)
	assert.Equal(t, []int{2, 3}, cfg.Digits1)
	assert.Equal(t, []int{2}, cfg.Digits2)
}
