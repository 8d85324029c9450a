package store

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// migrations are applied in order on every Open. Each statement must be
// idempotent.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS session_events (
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		domain TEXT NOT NULL,
		action TEXT NOT NULL,
		config TEXT NOT NULL DEFAULT '',
		served INTEGER NOT NULL DEFAULT 0,
		correct INTEGER NOT NULL DEFAULT 0,
		wrong INTEGER NOT NULL DEFAULT 0,
		timeups INTEGER NOT NULL DEFAULT 0,
		retries INTEGER NOT NULL DEFAULT 0,
		duration_secs INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_session_events_session ON session_events (session_id)`,
	`CREATE INDEX IF NOT EXISTS idx_session_events_action ON session_events (action, domain)`,

	`CREATE TABLE IF NOT EXISTS answer_events (
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		domain TEXT NOT NULL,
		prompt TEXT NOT NULL,
		canonical_answer TEXT NOT NULL,
		learner_answer TEXT NOT NULL DEFAULT '',
		outcome TEXT NOT NULL,
		time_ms INTEGER NOT NULL DEFAULT 0,
		retried INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_answer_events_domain ON answer_events (domain, outcome)`,
	`CREATE INDEX IF NOT EXISTS idx_answer_events_session ON answer_events (session_id)`,

	`CREATE TABLE IF NOT EXISTS llm_request_events (
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL,
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		success INTEGER NOT NULL,
		error_message TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_llm_request_events_purpose ON llm_request_events (purpose)`,

	`CREATE TABLE IF NOT EXISTS preferences (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
}

func migrate(db *sql.DB, logger *zap.Logger) error {
	logger.Debug("applying migrations", zap.Int("statements", len(migrations)))
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	logger.Debug("migrations applied")
	return nil
}
