package screen

import (
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/mathdrill/internal/coach"
	"github.com/abhisek/mathdrill/internal/config"
	"github.com/abhisek/mathdrill/internal/store"
)

// Env carries the services screens share. Events and Prefs may be nil, in
// which case nothing is persisted.
type Env struct {
	Events  store.EventRepo
	Prefs   store.PrefsRepo
	Presets config.Presets
	Coach   *coach.Service
	Logger  *zap.Logger
	Now     func() time.Time
}

// WithDefaults fills unset fields so screens never nil-check the logger or
// the clock.
func (e Env) WithDefaults() Env {
	if e.Logger == nil {
		e.Logger = zap.NewNop()
	}
	if e.Now == nil {
		e.Now = time.Now
	}
	if e.Coach == nil {
		e.Coach = coach.NewService(nil, coach.DefaultConfig())
	}
	if e.Presets.Tables.Selected == nil {
		e.Presets = config.DefaultPresets()
	}
	return e
}
