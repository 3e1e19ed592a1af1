package app

import (
	"context"
	"fmt"

	"quiz-engine-service/internal/domain"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// Lister serves paginated quiz listings annotated with statistics.
type Lister struct {
	catalog      QuizCatalog
	stats        *StatsAggregator
	defaultLimit int
	maxLimit     int
}

// NewLister builds a lister. Non-positive limits fall back to DefaultPageLimit and MaxPageLimit.
func NewLister(catalog QuizCatalog, stats *StatsAggregator, defaultLimit, maxLimit int) *Lister {
	if defaultLimit <= 0 {
		defaultLimit = DefaultPageLimit
	}
	if maxLimit <= 0 {
		maxLimit = MaxPageLimit
	}
	if defaultLimit > maxLimit {
		defaultLimit = maxLimit
	}
	return &Lister{catalog: catalog, stats: stats, defaultLimit: defaultLimit, maxLimit: maxLimit}
}

// List returns one page of quizzes ordered by req.Sort.
func (l *Lister) List(ctx context.Context, req domain.ListRequest) (domain.Page, error) {
	page, limit := l.normalize(req.Page, req.Limit)
	offset := (page - 1) * limit

	var (
		data  []domain.QuizSummary
		total int
	)
	switch req.Sort {
	case domain.SortPopular, domain.SortHardest:
		quizzes, _, err := l.catalog.FindQuizzes(ctx, req.Filter, 0, 0)
		if err != nil {
			return domain.Page{}, fmt.Errorf("find quizzes: %w", err)
		}
		stats, err := l.stats.StatsForMany(ctx, quizIDs(quizzes))
		if err != nil {
			return domain.Page{}, err
		}
		data, total = RankByStats(quizzes, stats, req.Sort, offset, limit)
	default:
		quizzes, n, err := l.catalog.FindQuizzes(ctx, req.Filter, offset, limit)
		if err != nil {
			return domain.Page{}, fmt.Errorf("find quizzes: %w", err)
		}
		stats, err := l.stats.StatsForMany(ctx, quizIDs(quizzes))
		if err != nil {
			return domain.Page{}, err
		}
		data = make([]domain.QuizSummary, 0, len(quizzes))
		for _, q := range quizzes {
			data = append(data, domain.QuizSummary{Quiz: q, Stats: stats[q.ID]})
		}
		total = n
	}

	return domain.Page{
		Data: data,
		Pagination: domain.Pagination{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: (total + limit - 1) / limit,
		},
	}, nil
}

func (l *Lister) normalize(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = l.defaultLimit
	}
	if limit > l.maxLimit {
		limit = l.maxLimit
	}
	return page, limit
}

func quizIDs(quizzes []domain.Quiz) []string {
	ids := make([]string, 0, len(quizzes))
	for _, q := range quizzes {
		ids = append(ids, q.ID)
	}
	return ids
}
