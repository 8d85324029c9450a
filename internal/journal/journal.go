// Package journal writes session and answer events for a running session.
// A Journal with no repo records nothing.
package journal

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/store"
)

// Journal records one session's lifecycle. Write failures are logged and
// never interrupt the drill.
type Journal struct {
	events store.EventRepo
	logger *zap.Logger
}

// New creates a Journal. events may be nil.
func New(events store.EventRepo, logger *zap.Logger) *Journal {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Journal{events: events, logger: logger}
}

// Start records the session start together with its JSON-encoded config.
func (j *Journal) Start(ctx context.Context, sess *session.Session) {
	if j.events == nil {
		return
	}
	cfg, err := json.Marshal(sess.Config())
	if err != nil {
		j.logger.Warn("failed to encode session config", zap.Error(err))
	}
	err = j.events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID: sess.ID(),
		Domain:    string(sess.Domain()),
		Action:    store.ActionStart,
		Config:    string(cfg),
	})
	if err != nil {
		j.logger.Warn("failed to record session start", zap.Error(err))
	}
}

// Answer records a resolved question.
func (j *Journal) Answer(ctx context.Context, sessionID string, res session.Result) {
	if j.events == nil {
		return
	}
	err := j.events.AppendAnswerEvent(ctx, store.AnswerEventData{
		SessionID:       sessionID,
		Domain:          string(res.Question.Domain),
		Prompt:          res.Question.Prompt,
		CanonicalAnswer: res.CanonicalAnswer,
		LearnerAnswer:   res.Input,
		Outcome:         Outcome(res.Status),
		TimeMs:          res.ResponseTime.Milliseconds(),
		Retried:         res.Retry,
	})
	if err != nil {
		j.logger.Warn("failed to record answer", zap.Error(err))
	}
}

// End records the session totals.
func (j *Journal) End(ctx context.Context, sess *session.Session) {
	if j.events == nil {
		return
	}
	sum := sess.Summary()
	err := j.events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:    sum.SessionID,
		Domain:       string(sum.Domain),
		Action:       store.ActionEnd,
		Served:       sum.Served,
		Correct:      sum.TotalCorrect,
		Wrong:        sum.Wrong,
		TimeUps:      sum.TimeUps,
		Retries:      sum.Retries,
		DurationSecs: int(sum.Duration.Seconds()),
	})
	if err != nil {
		j.logger.Warn("failed to record session end", zap.Error(err))
	}
}

// Outcome maps a feedback status to the stored answer outcome.
func Outcome(st session.FeedbackStatus) string {
	switch st {
	case session.StatusCorrect:
		return store.OutcomeCorrect
	case session.StatusTimeUp:
		return store.OutcomeTimeUp
	default:
		return store.OutcomeWrong
	}
}
