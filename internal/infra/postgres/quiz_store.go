package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"quiz-engine-service/internal/domain"
)

// QuizStore reads quiz content straight from Postgres with pgx. It backs answer-key loading,
// which runs on every cache miss and stays off the ORM.
type QuizStore struct {
	pool *pgxpool.Pool
}

func NewQuizStore(pool *pgxpool.Pool) *QuizStore {
	return &QuizStore{pool: pool}
}

// Connect opens a pool for the given URL.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse postgres url: %w", err)
	}
	pool, err := pgxpool.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return pool, nil
}

func (s *QuizStore) GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	var quiz domain.Quiz
	err := s.pool.QueryRow(ctx,
		`SELECT id, title, description, user_id, is_public, created_at, updated_at FROM quiz WHERE id = $1`,
		quizID,
	).Scan(&quiz.ID, &quiz.Title, &quiz.Description, &quiz.OwnerID, &quiz.IsPublic, &quiz.CreatedAt, &quiz.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Quiz{}, domain.ErrQuizNotFound
		}
		return domain.Quiz{}, fmt.Errorf("load quiz: %w", err)
	}

	rows, err := s.pool.Query(ctx, `SELECT tag_id FROM quiz_tag WHERE quiz_id = $1 ORDER BY tag_id`, quizID)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load quiz tags: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return domain.Quiz{}, fmt.Errorf("scan quiz tag: %w", err)
		}
		quiz.TagIDs = append(quiz.TagIDs, tag)
	}
	if err := rows.Err(); err != nil {
		return domain.Quiz{}, fmt.Errorf("load quiz tags: %w", err)
	}

	quiz.CreatedAt = quiz.CreatedAt.UTC()
	quiz.UpdatedAt = quiz.UpdatedAt.UTC()
	return quiz, nil
}

func (s *QuizStore) ListQuestions(ctx context.Context, quizID string) ([]domain.Question, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, quiz_id, text, sort_order, points FROM question WHERE quiz_id = $1 ORDER BY sort_order, id`,
		quizID,
	)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	var out []domain.Question
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.QuizID, &q.Text, &q.Order, &q.Points); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *QuizStore) ListAnswers(ctx context.Context, questionIDs []string) ([]domain.Answer, error) {
	if len(questionIDs) == 0 {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, question_id, text, is_correct, sort_order FROM answer WHERE question_id = ANY($1) ORDER BY question_id, sort_order, id`,
		questionIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("load answers: %w", err)
	}
	defer rows.Close()

	var out []domain.Answer
	for rows.Next() {
		var a domain.Answer
		if err := rows.Scan(&a.ID, &a.QuestionID, &a.Text, &a.IsCorrect, &a.Order); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
