package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathdrill/internal/problemgen"
)

// isolate points every lookup at a temp dir so the developer's own files
// and environment never leak into a test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("MATHDRILL_DB", "")
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Empty(t, cfg.DB.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, filepath.Join(dir, "state", "mathdrill", "mathdrill.log"), cfg.Log.File)

	for _, d := range problemgen.AllDomains {
		assert.Equal(t, problemgen.DefaultConfig(d), cfg.Presets.For(d), "preset %s", d)
	}
}

func TestLoad_File(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db:
  path: /tmp/drill.db
log:
  level: debug
presets:
  tables:
    selected: [7, 12]
    timer: 0
  powers:
    selected: [cube, cube_root]
    range_max: 15
  alphabet:
    start: c
    end: m
    mode: reverse_letter
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/drill.db", cfg.DB.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, problemgen.TablesConfig{Selected: []int{7, 12}}, cfg.Presets.Tables)
	assert.Equal(t, []problemgen.PowerOp{problemgen.OpCube, problemgen.OpCubeRoot}, cfg.Presets.Powers.Selected)
	assert.Equal(t, 15, cfg.Presets.Powers.RangeMax)
	assert.Equal(t, problemgen.ModeReverseLetter, cfg.Presets.Alphabet.Mode)
	// Untouched sections keep their defaults.
	assert.Equal(t, problemgen.DefaultConfig(problemgen.DomainFractions), cfg.Presets.Fractions)
}

func TestLoad_UserConfigDir(t *testing.T) {
	dir := isolate(t)
	cfgDir := filepath.Join(dir, "config", "mathdrill")
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte("log:\n  level: warn\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("MATHDRILL_LOG_LEVEL", "error")
	t.Setenv("MATHDRILL_DB", "/var/lib/drill.db")
	t.Setenv("MATHDRILL_PRESETS_TABLES_TIMER", "25")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "/var/lib/drill.db", cfg.DB.Path)
	assert.Equal(t, 25, cfg.Presets.Tables.Timer)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MATHDRILL_LOG_LEVEL=debug\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("MATHDRILL_LOG_LEVEL") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)
	_, err := Load(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidPreset(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("presets:\n  tables:\n    selected: [150]\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, problemgen.ErrInvalidConfig))
}

func TestDefaultPresets(t *testing.T) {
	p := DefaultPresets()
	require.NoError(t, p.Validate())
	assert.Equal(t, 10, p.For(problemgen.DomainTables).TimerSeconds())
	assert.Nil(t, p.For("bogus"))
}
