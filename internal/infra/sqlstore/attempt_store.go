package sqlstore

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"quiz-engine-service/internal/domain"
)

// AttemptStore is the append-only attempt log. Its AggregateStats pushes the statistics
// computation into a single grouped query.
type AttemptStore struct {
	db *bun.DB
}

func NewAttemptStore(db *bun.DB) *AttemptStore {
	return &AttemptStore{db: db}
}

func (s *AttemptStore) AppendAttempt(ctx context.Context, attempt domain.QuizAttempt) error {
	m := fromAttempt(attempt)
	if _, err := s.db.NewInsert().Model(&m).Exec(ctx); err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

func (s *AttemptStore) AttemptsByQuiz(ctx context.Context, quizID string) ([]domain.QuizAttempt, error) {
	return s.selectAttempts(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("a.quiz_id = ?", quizID)
	})
}

func (s *AttemptStore) AttemptsByQuizzes(ctx context.Context, quizIDs []string) ([]domain.QuizAttempt, error) {
	if len(quizIDs) == 0 {
		return []domain.QuizAttempt{}, nil
	}
	return s.selectAttempts(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("a.quiz_id IN (?)", bun.In(quizIDs))
	})
}

func (s *AttemptStore) AttemptsByUser(ctx context.Context, userID string) ([]domain.QuizAttempt, error) {
	return s.selectAttempts(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("a.user_id = ?", userID)
	})
}

// AggregateStats counts each distinct user once and every anonymous attempt separately.
// Quizzes without attempts are absent from the result.
func (s *AttemptStore) AggregateStats(ctx context.Context, quizIDs []string) (map[string]domain.AttemptAggregate, error) {
	out := make(map[string]domain.AttemptAggregate, len(quizIDs))
	if len(quizIDs) == 0 {
		return out, nil
	}

	var rows []statsRow
	err := s.db.NewSelect().
		TableExpr("quiz_attempt AS a").
		ColumnExpr("a.quiz_id").
		ColumnExpr("COUNT(DISTINCT a.user_id) + SUM(CASE WHEN a.user_id IS NULL THEN 1 ELSE 0 END) AS completions").
		ColumnExpr("COUNT(*) AS attempts").
		ColumnExpr("COALESCE(SUM(a.percentage), 0) AS percentage_sum").
		Where("a.quiz_id IN (?)", bun.In(quizIDs)).
		GroupExpr("a.quiz_id").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("aggregate attempts: %w", err)
	}

	for _, r := range rows {
		out[r.QuizID] = domain.AttemptAggregate{
			Completions:   r.Completions,
			Attempts:      r.Attempts,
			PercentageSum: r.PercentageSum,
		}
	}
	return out, nil
}

// ClearAttempts deletes the attempts of one quiz, or every attempt when quizID is empty.
func (s *AttemptStore) ClearAttempts(ctx context.Context, quizID string) (int, error) {
	q := s.db.NewDelete().Model((*attemptModel)(nil))
	if quizID != "" {
		q = q.Where("quiz_id = ?", quizID)
	} else {
		q = q.Where("1 = 1")
	}
	res, err := q.Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete attempts: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete attempts: %w", err)
	}
	return int(n), nil
}

// selectAttempts returns matching attempts newest first.
func (s *AttemptStore) selectAttempts(ctx context.Context, where func(*bun.SelectQuery) *bun.SelectQuery) ([]domain.QuizAttempt, error) {
	var rows []attemptModel
	q := where(s.db.NewSelect().Model(&rows))
	if err := q.OrderExpr("a.completed_at DESC, a.id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("select attempts: %w", err)
	}

	out := make([]domain.QuizAttempt, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}
