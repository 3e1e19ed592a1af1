package app

import (
	"sort"

	"quiz-engine-service/internal/domain"
)

// RankByStats orders quizzes by a derived aggregate and returns one page plus the ranked total.
//
// The full candidate set is held in memory, which caps this approach at a bounded catalog.
// Callers only depend on this function, so it can be swapped for a materialized ranking later.
//
// popular: CompletionCount desc. hardest: quizzes with at least one completion, AverageScore asc.
// Ties keep the input order, which catalogs deliver as CreatedAt desc, ID asc.
func RankByStats(quizzes []domain.Quiz, stats map[string]domain.QuizStats, key domain.SortKey, offset, limit int) ([]domain.QuizSummary, int) {
	ranked := make([]domain.QuizSummary, 0, len(quizzes))
	for _, q := range quizzes {
		s := stats[q.ID]
		if key == domain.SortHardest && s.CompletionCount == 0 {
			continue
		}
		ranked = append(ranked, domain.QuizSummary{Quiz: q, Stats: s})
	}

	switch key {
	case domain.SortPopular:
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Stats.CompletionCount > ranked[j].Stats.CompletionCount
		})
	case domain.SortHardest:
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Stats.AverageScore < ranked[j].Stats.AverageScore
		})
	}

	return pageOf(ranked, offset, limit), len(ranked)
}

func pageOf(items []domain.QuizSummary, offset, limit int) []domain.QuizSummary {
	if offset >= len(items) {
		return []domain.QuizSummary{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
