package store

import (
	"context"
	"fmt"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	if data.SessionID == "" || data.Action == "" {
		return fmt.Errorf("session event: session id and action are required")
	}
	return r.insert(ctx, "session_events",
		[]string{"session_id", "domain", "action", "config", "served", "correct", "wrong", "timeups", "retries", "duration_secs"},
		data.SessionID, data.Domain, data.Action, data.Config,
		data.Served, data.Correct, data.Wrong, data.TimeUps, data.Retries, data.DurationSecs,
	)
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	where, args := opts.filter([]string{"action = ?"}, []any{ActionEnd})
	query := `SELECT sequence, timestamp, session_id, domain, served, correct, wrong, timeups, retries, duration_secs
		FROM session_events` + where + ` ORDER BY sequence DESC` + opts.limit()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	defer rows.Close()

	var records []SessionSummaryRecord
	for rows.Next() {
		var rec SessionSummaryRecord
		var ts int64
		if err := rows.Scan(&rec.Sequence, &ts, &rec.SessionID, &rec.Domain,
			&rec.Served, &rec.Correct, &rec.Wrong, &rec.TimeUps, &rec.Retries, &rec.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan session summary: %w", err)
		}
		rec.Timestamp = fromMillis(ts)
		records = append(records, rec)
	}
	return records, rows.Err()
}
