package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// prefsRepo implements PrefsRepo over the preferences key/value table.
type prefsRepo struct {
	db *sql.DB
}

func timerKey(domain string) string  { return "timer." + domain }
func configKey(domain string) string { return "config." + domain }

func (r *prefsRepo) get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get preference %s: %w", key, err)
	}
	return v, true, nil
}

func (r *prefsRepo) set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("set preference %s: %w", key, err)
	}
	return nil
}

func (r *prefsRepo) Timer(ctx context.Context, domain string) (int, bool, error) {
	v, ok, err := r.get(ctx, timerKey(domain))
	if err != nil || !ok {
		return 0, false, err
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		return 0, false, fmt.Errorf("timer preference for %s: %w", domain, err)
	}
	return secs, true, nil
}

func (r *prefsRepo) SetTimer(ctx context.Context, domain string, secs int) error {
	if secs < 0 {
		return fmt.Errorf("timer for %s must not be negative", domain)
	}
	return r.set(ctx, timerKey(domain), strconv.Itoa(secs))
}

func (r *prefsRepo) LastConfig(ctx context.Context, domain string, dst any) (bool, error) {
	v, ok, err := r.get(ctx, configKey(domain))
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(v), dst); err != nil {
		return false, fmt.Errorf("decode config for %s: %w", domain, err)
	}
	return true, nil
}

func (r *prefsRepo) SaveConfig(ctx context.Context, domain string, cfg any) error {
	b, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config for %s: %w", domain, err)
	}
	return r.set(ctx, configKey(domain), string(b))
}
