package store

import (
	"context"
	"fmt"
)

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	switch data.Outcome {
	case OutcomeCorrect, OutcomeWrong, OutcomeTimeUp:
	default:
		return fmt.Errorf("answer event: unknown outcome %q", data.Outcome)
	}
	return r.insert(ctx, "answer_events",
		[]string{"session_id", "domain", "prompt", "canonical_answer", "learner_answer", "outcome", "time_ms", "retried"},
		data.SessionID, data.Domain, data.Prompt, data.CanonicalAnswer, data.LearnerAnswer,
		data.Outcome, data.TimeMs, data.Retried,
	)
}

func (r *eventRepo) DomainStats(ctx context.Context, domain string) (DomainStats, error) {
	where, args := QueryOpts{Domain: domain}.filter(nil, nil)
	query := `SELECT
			COUNT(*),
			COALESCE(SUM(outcome = 'correct'), 0),
			COALESCE(SUM(outcome = 'wrong'), 0),
			COALESCE(SUM(outcome = 'timeup'), 0),
			COALESCE(AVG(time_ms), 0)
		FROM answer_events` + where

	stats := DomainStats{Domain: domain}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&stats.Attempts, &stats.Correct, &stats.Wrong, &stats.TimeUps, &stats.AvgTimeMs,
	)
	if err != nil {
		return DomainStats{}, fmt.Errorf("query domain stats: %w", err)
	}
	return stats, nil
}

func (r *eventRepo) MostMissed(ctx context.Context, domain string, limit int) ([]MissedPrompt, error) {
	where, args := QueryOpts{Domain: domain}.filter([]string{"outcome != ?"}, []any{OutcomeCorrect})
	query := `SELECT prompt, MAX(canonical_answer), COUNT(*) AS misses
		FROM answer_events` + where + `
		GROUP BY prompt
		ORDER BY misses DESC, prompt ASC` + QueryOpts{Limit: limit}.limit()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query most missed: %w", err)
	}
	defer rows.Close()

	var out []MissedPrompt
	for rows.Next() {
		var m MissedPrompt
		if err := rows.Scan(&m.Prompt, &m.Answer, &m.Misses); err != nil {
			return nil, fmt.Errorf("scan most missed: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
