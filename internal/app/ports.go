package app

import (
	"context"

	"quiz-engine-service/internal/domain"
)

// QuizStore reads quiz content. Implementations return domain.ErrQuizNotFound for unknown quizzes.
type QuizStore interface {
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
	// ListQuestions returns the questions of a quiz ordered by display order.
	ListQuestions(ctx context.Context, quizID string) ([]domain.Question, error)
	// ListAnswers returns the answers of the given questions ordered by display order.
	ListAnswers(ctx context.Context, questionIDs []string) ([]domain.Answer, error)
}

// QuizCatalog finds quizzes matching a filter, newest first (CreatedAt desc, ID asc).
// A limit of 0 returns every match. total is the number of matches ignoring offset and limit.
type QuizCatalog interface {
	FindQuizzes(ctx context.Context, filter domain.QuizFilter, offset, limit int) (quizzes []domain.Quiz, total int, err error)
}

// KeyRepository returns resolved answer keys, possibly from a cache.
type KeyRepository interface {
	GetKey(ctx context.Context, quizID string) (domain.AnswerKey, error)
}

// KeyInvalidator is implemented by caching key repositories.
type KeyInvalidator interface {
	Forget(ctx context.Context, quizID string) error
}

// AttemptStore is the append-only attempt log.
type AttemptStore interface {
	AppendAttempt(ctx context.Context, attempt domain.QuizAttempt) error
	// AttemptsByQuiz returns attempts for a quiz, newest first.
	AttemptsByQuiz(ctx context.Context, quizID string) ([]domain.QuizAttempt, error)
	AttemptsByQuizzes(ctx context.Context, quizIDs []string) ([]domain.QuizAttempt, error)
	// AttemptsByUser returns attempts of an authenticated user, newest first.
	AttemptsByUser(ctx context.Context, userID string) ([]domain.QuizAttempt, error)
}

// StatsReader is implemented by attempt stores that can aggregate in a single grouped read.
// Quizzes without attempts may be absent from the result.
type StatsReader interface {
	AggregateStats(ctx context.Context, quizIDs []string) (map[string]domain.AttemptAggregate, error)
}

// StatsCache is a best-effort cache of derived statistics.
type StatsCache interface {
	GetMany(ctx context.Context, quizIDs []string) (map[string]domain.QuizStats, error)
	SetMany(ctx context.Context, stats map[string]domain.QuizStats) error
	Invalidate(ctx context.Context, quizID string) error
}
