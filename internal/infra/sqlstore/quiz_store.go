package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"quiz-engine-service/internal/domain"
)

// QuizStore reads quiz content and serves the quiz catalog.
type QuizStore struct {
	db *bun.DB
}

func NewQuizStore(db *bun.DB) *QuizStore {
	return &QuizStore{db: db}
}

func (s *QuizStore) GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	var m quizModel
	err := s.db.NewSelect().Model(&m).Where("q.id = ?", quizID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Quiz{}, domain.ErrQuizNotFound
		}
		return domain.Quiz{}, fmt.Errorf("select quiz: %w", err)
	}

	tags, err := s.tagsOf(ctx, []string{quizID})
	if err != nil {
		return domain.Quiz{}, err
	}
	return m.toDomain(tags[quizID]), nil
}

func (s *QuizStore) ListQuestions(ctx context.Context, quizID string) ([]domain.Question, error) {
	var rows []questionModel
	err := s.db.NewSelect().
		Model(&rows).
		Where("qn.quiz_id = ?", quizID).
		OrderExpr("qn.sort_order ASC, qn.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select questions: %w", err)
	}

	out := make([]domain.Question, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func (s *QuizStore) ListAnswers(ctx context.Context, questionIDs []string) ([]domain.Answer, error) {
	if len(questionIDs) == 0 {
		return nil, nil
	}
	var rows []answerModel
	err := s.db.NewSelect().
		Model(&rows).
		Where("an.question_id IN (?)", bun.In(questionIDs)).
		OrderExpr("an.question_id ASC, an.sort_order ASC, an.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select answers: %w", err)
	}

	out := make([]domain.Answer, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

// FindQuizzes applies the filter in SQL. Search is a case-insensitive substring match on
// title or description.
func (s *QuizStore) FindQuizzes(ctx context.Context, filter domain.QuizFilter, offset, limit int) ([]domain.Quiz, int, error) {
	var rows []quizModel
	q := s.db.NewSelect().Model(&rows)

	if filter.OwnerID != "" {
		q = q.Where("q.user_id = ?", filter.OwnerID)
	}
	if filter.ExcludeOwnerID != "" {
		q = q.Where("q.user_id <> ?", filter.ExcludeOwnerID)
	}
	if filter.Public != nil {
		q = q.Where("q.is_public = ?", *filter.Public)
	}
	if len(filter.TagIDs) > 0 {
		q = q.Where("q.id IN (SELECT qt.quiz_id FROM quiz_tag AS qt WHERE qt.tag_id IN (?))", bun.In(filter.TagIDs))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("LOWER(q.title) LIKE ?", pattern).
				WhereOr("LOWER(q.description) LIKE ?", pattern)
		})
	}

	q = q.OrderExpr("q.created_at DESC, q.id ASC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	total, err := q.ScanAndCount(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("find quizzes: %w", err)
	}
	if limit <= 0 && offset > 0 {
		if offset >= len(rows) {
			rows = nil
		} else {
			rows = rows[offset:]
		}
	}

	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	tags, err := s.tagsOf(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	out := make([]domain.Quiz, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain(tags[r.ID]))
	}
	return out, total, nil
}

func (s *QuizStore) tagsOf(ctx context.Context, quizIDs []string) (map[string][]string, error) {
	out := make(map[string][]string, len(quizIDs))
	if len(quizIDs) == 0 {
		return out, nil
	}
	var rows []quizTagModel
	err := s.db.NewSelect().
		Model(&rows).
		Where("qt.quiz_id IN (?)", bun.In(quizIDs)).
		OrderExpr("qt.quiz_id ASC, qt.tag_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select quiz tags: %w", err)
	}
	for _, r := range rows {
		out[r.QuizID] = append(out[r.QuizID], r.TagID)
	}
	return out, nil
}
