package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mathdrill/internal/app"
	"github.com/abhisek/mathdrill/internal/coach"
	"github.com/abhisek/mathdrill/internal/llm"
	"github.com/abhisek/mathdrill/internal/logger"
	"github.com/abhisek/mathdrill/internal/screen"
	"github.com/abhisek/mathdrill/internal/store"
)

// deps bundles what an interactive command needs and how to release it.
type deps struct {
	env   screen.Env
	store *store.Store
	log   *zap.Logger
}

func (r *deps) Close() {
	_ = r.log.Sync()
	_ = r.store.Close()
}

// setup opens the store, builds the logger and, when a provider is
// configured, the LLM coach.
func setup(cmd *cobra.Command) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	st, err := openStoreWith(cmd, cfg, store.WithLogger(log))
	if err != nil {
		return nil, err
	}

	events := st.EventRepo()
	env := screen.Env{
		Events:  events,
		Prefs:   st.PrefsRepo(),
		Presets: cfg.Presets,
		Logger:  log,
	}

	coachCfg := coach.DefaultConfig()
	llmCfg, ok, err := llm.Resolve()
	switch {
	case err != nil:
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Explanations will use the built-in steps.")
	case ok:
		provider, err := llm.NewProvider(contextOf(cmd), llmCfg, events, log)
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider unavailable:", err)
			break
		}
		coachCfg.Timeout = llmCfg.Timeout
		env.Coach = coach.NewService(provider, coachCfg)
		log.Info("coach online", zap.String("provider", llmCfg.Provider), zap.String("model", provider.ModelID()))
	}
	if env.Coach == nil {
		env.Coach = coach.NewService(nil, coachCfg)
	}

	return &deps{env: env.WithDefaults(), store: st, log: log}, nil
}

// runApp launches the TUI at the home screen.
func runApp(cmd *cobra.Command) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()
	return app.Run(rt.env)
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
