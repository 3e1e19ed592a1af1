package redis

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/sync/singleflight"

	"quiz-engine-service/internal/domain"
)

// KeyLoader resolves an answer key from the backing store.
type KeyLoader interface {
	LoadKey(ctx context.Context, quizID string) (domain.AnswerKey, error)
}

// KeyRepository caches answer keys in Redis and falls back to a loader on cache miss.
// Keys are stored msgpack-encoded as: SET quiz:{quizID}:key <blob> EX ttl
// Cache failures never fail a request; they fall through to the loader.
type KeyRepository struct {
	client *redis.Client
	loader KeyLoader
	ttl    time.Duration
	log    *slog.Logger
	sf     singleflight.Group

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewKeyRepository(client *redis.Client, loader KeyLoader, ttl time.Duration, log *slog.Logger) *KeyRepository {
	if log == nil {
		log = slog.Default()
	}
	return &KeyRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		log:    log,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *KeyRepository) GetKey(ctx context.Context, quizID string) (domain.AnswerKey, error) {
	if key, ok := r.cached(ctx, quizID); ok {
		return key, nil
	}

	result, err, _ := r.sf.Do(quizID, func() (interface{}, error) {
		// Re-check cache in case another instance filled it.
		if key, ok := r.cached(ctx, quizID); ok {
			return key, nil
		}

		key, err := r.loader.LoadKey(ctx, quizID)
		if err != nil {
			return domain.AnswerKey{}, err
		}

		ttl := r.ttlWithJitter()
		if ttl <= 0 {
			return key, nil
		}
		blob, err := msgpack.Marshal(key)
		if err != nil {
			r.log.Warn("encode answer key", "quiz_id", quizID, "error", err)
			return key, nil
		}
		if err := r.client.Set(ctx, r.cacheKey(quizID), blob, ttl).Err(); err != nil {
			r.log.Warn("cache answer key", "quiz_id", quizID, "error", err)
		}
		return key, nil
	})
	if err != nil {
		return domain.AnswerKey{}, err
	}
	return result.(domain.AnswerKey), nil
}

// Forget drops the cached key of a quiz.
func (r *KeyRepository) Forget(ctx context.Context, quizID string) error {
	return r.client.Del(ctx, r.cacheKey(quizID)).Err()
}

func (r *KeyRepository) cached(ctx context.Context, quizID string) (domain.AnswerKey, bool) {
	blob, err := r.client.Get(ctx, r.cacheKey(quizID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warn("read cached answer key", "quiz_id", quizID, "error", err)
		}
		return domain.AnswerKey{}, false
	}
	var key domain.AnswerKey
	if err := msgpack.Unmarshal(blob, &key); err != nil {
		r.log.Warn("decode cached answer key", "quiz_id", quizID, "error", err)
		return domain.AnswerKey{}, false
	}
	return key, true
}

func (r *KeyRepository) cacheKey(quizID string) string {
	return "quiz:" + quizID + ":key"
}

func (r *KeyRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
