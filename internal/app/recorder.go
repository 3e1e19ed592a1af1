package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"quiz-engine-service/internal/domain"
)

// AttemptRecorder appends evaluated submissions to the attempt log.
type AttemptRecorder struct {
	store AttemptStore
	cache StatsCache
	log   *slog.Logger
	now   func() time.Time
	newID func() string
}

// NewAttemptRecorder builds a recorder. cache may be nil.
func NewAttemptRecorder(store AttemptStore, cache StatsCache, log *slog.Logger) *AttemptRecorder {
	return NewAttemptRecorderWithClock(store, cache, log, time.Now)
}

// NewAttemptRecorderWithClock is used by tests that need deterministic timestamps.
func NewAttemptRecorderWithClock(store AttemptStore, cache StatsCache, log *slog.Logger, now func() time.Time) *AttemptRecorder {
	if log == nil {
		log = slog.Default()
	}
	return &AttemptRecorder{
		store: store,
		cache: cache,
		log:   log,
		now:   now,
		newID: uuid.NewString,
	}
}

// Record appends one attempt and returns its id. Repeated attempts by the same user are all kept.
// percentage is the whole-number percentage (see WholePercentage).
func (r *AttemptRecorder) Record(ctx context.Context, quizID, userID string, score, maxScore, percentage int) (string, error) {
	attempt := domain.QuizAttempt{
		ID:          r.newID(),
		QuizID:      quizID,
		Score:       score,
		MaxScore:    maxScore,
		Percentage:  percentage,
		CompletedAt: r.now().UTC(),
	}
	if userID != "" {
		uid := userID
		attempt.UserID = &uid
	}

	if err := r.store.AppendAttempt(ctx, attempt); err != nil {
		return "", fmt.Errorf("append attempt: %w", err)
	}

	if r.cache != nil {
		if err := r.cache.Invalidate(ctx, quizID); err != nil {
			r.log.Warn("stats cache invalidation failed", "quiz_id", quizID, "error", err)
		}
	}

	r.log.Debug("attempt recorded", "attempt_id", attempt.ID, "quiz_id", quizID, "percentage", percentage)
	return attempt.ID, nil
}
