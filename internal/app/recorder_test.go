package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quiz-engine-service/internal/domain"
	"quiz-engine-service/internal/infra/memory"
)

func TestRecordAppendsEveryAttempt(t *testing.T) {
	ctx := context.Background()
	store := memory.NewAttemptStore()
	cache := newFakeCache()
	at := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	recorder := NewAttemptRecorderWithClock(store, cache, nil, func() time.Time { return at })

	first, err := recorder.Record(ctx, "quiz", "user-1", 5, 10, 50)
	require.NoError(t, err)
	second, err := recorder.Record(ctx, "quiz", "user-1", 10, 10, 100)
	require.NoError(t, err)
	_, err = recorder.Record(ctx, "quiz", "", 0, 10, 0)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	attempts, err := store.AttemptsByQuiz(ctx, "quiz")
	require.NoError(t, err)
	require.Len(t, attempts, 3)

	var anonymous int
	for _, a := range attempts {
		assert.Equal(t, at, a.CompletedAt)
		assert.Equal(t, 10, a.MaxScore)
		if a.UserID == nil {
			anonymous++
		} else {
			assert.Equal(t, "user-1", *a.UserID)
		}
	}
	assert.Equal(t, 1, anonymous)
	assert.Equal(t, []string{"quiz", "quiz", "quiz"}, cache.invalidated)
}

func TestRecordPropagatesStoreErrors(t *testing.T) {
	cache := newFakeCache()
	recorder := NewAttemptRecorder(failingStore{AttemptStore: memory.NewAttemptStore()}, cache, nil)

	_, err := recorder.Record(context.Background(), "quiz", "user-1", 1, 1, 100)
	require.Error(t, err)
	assert.ErrorIs(t, err, errStoreDown)
	assert.Empty(t, cache.invalidated)
}

var errStoreDown = errors.New("store down")

type failingStore struct {
	*memory.AttemptStore
}

func (failingStore) AppendAttempt(context.Context, domain.QuizAttempt) error {
	return errStoreDown
}
