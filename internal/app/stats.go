package app

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"quiz-engine-service/internal/domain"
)

// StatsAggregator derives completion counts and average scores from the attempt log.
type StatsAggregator struct {
	attempts AttemptStore
	cache    StatsCache
	log      *slog.Logger
}

// NewStatsAggregator builds an aggregator. cache may be nil.
func NewStatsAggregator(attempts AttemptStore, cache StatsCache, log *slog.Logger) *StatsAggregator {
	if log == nil {
		log = slog.Default()
	}
	return &StatsAggregator{attempts: attempts, cache: cache, log: log}
}

// StatsFor returns the statistics of one quiz. A quiz without attempts yields zeros.
func (a *StatsAggregator) StatsFor(ctx context.Context, quizID string) (domain.QuizStats, error) {
	if cached, ok := a.cached(ctx, []string{quizID})[quizID]; ok {
		return cached, nil
	}

	var stats domain.QuizStats
	if reader, ok := a.attempts.(StatsReader); ok {
		aggregates, err := reader.AggregateStats(ctx, []string{quizID})
		if err != nil {
			return domain.QuizStats{}, fmt.Errorf("aggregate stats: %w", err)
		}
		stats = aggregates[quizID].Stats()
	} else {
		attempts, err := a.attempts.AttemptsByQuiz(ctx, quizID)
		if err != nil {
			return domain.QuizStats{}, fmt.Errorf("load attempts: %w", err)
		}
		stats = ComputeStats(attempts)
	}

	a.store(ctx, map[string]domain.QuizStats{quizID: stats})
	return stats, nil
}

// StatsForMany returns an entry for every requested id using a single grouped read.
func (a *StatsAggregator) StatsForMany(ctx context.Context, quizIDs []string) (map[string]domain.QuizStats, error) {
	out := make(map[string]domain.QuizStats, len(quizIDs))
	if len(quizIDs) == 0 {
		return out, nil
	}

	cached := a.cached(ctx, quizIDs)
	missing := make([]string, 0, len(quizIDs))
	seen := make(map[string]struct{}, len(quizIDs))
	for _, id := range quizIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if stats, ok := cached[id]; ok {
			out[id] = stats
			continue
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return out, nil
	}

	var aggregates map[string]domain.AttemptAggregate
	if reader, ok := a.attempts.(StatsReader); ok {
		var err error
		aggregates, err = reader.AggregateStats(ctx, missing)
		if err != nil {
			return nil, fmt.Errorf("aggregate stats: %w", err)
		}
	} else {
		attempts, err := a.attempts.AttemptsByQuizzes(ctx, missing)
		if err != nil {
			return nil, fmt.Errorf("load attempts: %w", err)
		}
		aggregates = AggregateAttempts(attempts)
	}

	fresh := make(map[string]domain.QuizStats, len(missing))
	for _, id := range missing {
		fresh[id] = aggregates[id].Stats()
		out[id] = fresh[id]
	}
	a.store(ctx, fresh)
	return out, nil
}

func (a *StatsAggregator) cached(ctx context.Context, quizIDs []string) map[string]domain.QuizStats {
	if a.cache == nil {
		return nil
	}
	stats, err := a.cache.GetMany(ctx, quizIDs)
	if err != nil {
		a.log.Warn("stats cache read failed", "error", err)
		return nil
	}
	return stats
}

func (a *StatsAggregator) store(ctx context.Context, stats map[string]domain.QuizStats) {
	if a.cache == nil || len(stats) == 0 {
		return
	}
	if err := a.cache.SetMany(ctx, stats); err != nil {
		a.log.Warn("stats cache write failed", "error", err)
	}
}

// ComputeStats folds the attempts of a single quiz into QuizStats.
func ComputeStats(attempts []domain.QuizAttempt) domain.QuizStats {
	if len(attempts) == 0 {
		return domain.QuizStats{}
	}
	return AggregateAttempts(attempts)[attempts[0].QuizID].Stats()
}

// AggregateAttempts groups attempts by quiz. Each distinct user counts once; every anonymous
// attempt counts as its own completion.
func AggregateAttempts(attempts []domain.QuizAttempt) map[string]domain.AttemptAggregate {
	out := make(map[string]domain.AttemptAggregate)
	users := make(map[string]map[string]struct{})
	for _, attempt := range attempts {
		agg := out[attempt.QuizID]
		agg.Attempts++
		agg.PercentageSum += attempt.Percentage
		if attempt.UserID == nil {
			agg.Completions++
		} else {
			seen, ok := users[attempt.QuizID]
			if !ok {
				seen = make(map[string]struct{})
				users[attempt.QuizID] = seen
			}
			if _, dup := seen[*attempt.UserID]; !dup {
				seen[*attempt.UserID] = struct{}{}
				agg.Completions++
			}
		}
		out[attempt.QuizID] = agg
	}
	return out
}

// FormatCompletionCount renders a completion count for compact display.
func FormatCompletionCount(count int) string {
	switch {
	case count <= 0:
		return "0"
	case count < 10:
		return strconv.Itoa(count)
	case count < 100:
		return "10+"
	case count < 1000:
		return "100+"
	case count < 10000:
		return "1k+"
	case count < 100000:
		return "10k+"
	case count < 1000000:
		return "100k+"
	}
	return "1M+"
}
