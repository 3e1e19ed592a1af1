package redis

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"quiz-engine-service/internal/domain"
)

// StatsCache keeps derived quiz statistics for a short TTL.
// Entries are stored as: SET quiz:stats:{quizID} "{completionCount}:{averageScore}" EX ttl
// Recording an attempt invalidates the entry of its quiz.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{client: client, ttl: ttl}
}

func (c *StatsCache) GetMany(ctx context.Context, quizIDs []string) (map[string]domain.QuizStats, error) {
	out := make(map[string]domain.QuizStats, len(quizIDs))
	if len(quizIDs) == 0 {
		return out, nil
	}

	keys := make([]string, 0, len(quizIDs))
	for _, id := range quizIDs {
		keys = append(keys, c.key(id))
	}
	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		if stats, ok := decodeStats(raw); ok {
			out[quizIDs[i]] = stats
		}
	}
	return out, nil
}

func (c *StatsCache) SetMany(ctx context.Context, stats map[string]domain.QuizStats) error {
	if c.ttl <= 0 || len(stats) == 0 {
		return nil
	}
	pipe := c.client.Pipeline()
	for id, s := range stats {
		pipe.Set(ctx, c.key(id), encodeStats(s), c.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (c *StatsCache) Invalidate(ctx context.Context, quizID string) error {
	return c.client.Del(ctx, c.key(quizID)).Err()
}

func (c *StatsCache) key(quizID string) string {
	return "quiz:stats:" + quizID
}

func encodeStats(s domain.QuizStats) string {
	return strconv.Itoa(s.CompletionCount) + ":" + strconv.Itoa(s.AverageScore)
}

func decodeStats(raw string) (domain.QuizStats, bool) {
	count, avg, ok := strings.Cut(raw, ":")
	if !ok {
		return domain.QuizStats{}, false
	}
	c, err := strconv.Atoi(count)
	if err != nil {
		return domain.QuizStats{}, false
	}
	a, err := strconv.Atoi(avg)
	if err != nil {
		return domain.QuizStats{}, false
	}
	return domain.QuizStats{CompletionCount: c, AverageScore: a}, true
}
