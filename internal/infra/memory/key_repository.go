package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"quiz-engine-service/internal/domain"
)

// KeyLoader resolves an answer key from the backing store.
type KeyLoader interface {
	LoadKey(ctx context.Context, quizID string) (domain.AnswerKey, error)
}

// KeyRepository caches answer keys with a TTL to avoid reloading quiz content on every
// request. A TTL of zero disables caching but keeps concurrent loads collapsed.
type KeyRepository struct {
	loader KeyLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group

	mu    sync.RWMutex
	rnd   *rand.Rand
	cache map[string]cachedKey
}

type cachedKey struct {
	key       domain.AnswerKey
	expiresAt time.Time
}

func NewKeyRepository(loader KeyLoader, ttl time.Duration) *KeyRepository {
	return &KeyRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedKey),
	}
}

func (r *KeyRepository) GetKey(ctx context.Context, quizID string) (domain.AnswerKey, error) {
	if key, ok := r.lookup(quizID); ok {
		return key, nil
	}

	result, err, _ := r.sf.Do(quizID, func() (interface{}, error) {
		if key, ok := r.lookup(quizID); ok {
			return key, nil
		}

		key, err := r.loader.LoadKey(ctx, quizID)
		if err != nil {
			return domain.AnswerKey{}, err
		}

		if r.ttl > 0 {
			r.mu.Lock()
			r.cache[quizID] = cachedKey{
				key:       key,
				expiresAt: r.clock().Add(r.ttlWithJitterLocked()),
			}
			r.mu.Unlock()
		}
		return key, nil
	})
	if err != nil {
		return domain.AnswerKey{}, err
	}
	return result.(domain.AnswerKey), nil
}

// Forget drops a cached key so the next read reloads it.
func (r *KeyRepository) Forget(_ context.Context, quizID string) error {
	r.mu.Lock()
	delete(r.cache, quizID)
	r.mu.Unlock()
	return nil
}

func (r *KeyRepository) lookup(quizID string) (domain.AnswerKey, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.cache[quizID]
	if !ok || !entry.expiresAt.After(r.clock()) {
		return domain.AnswerKey{}, false
	}
	return entry.key, true
}

// ttlWithJitterLocked adds up to 10% jitter to spread expirations. r.mu must be held.
func (r *KeyRepository) ttlWithJitterLocked() time.Duration {
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
