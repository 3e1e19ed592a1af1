package sqlstore

import (
	"time"

	"github.com/uptrace/bun"

	"quiz-engine-service/internal/domain"
)

type quizModel struct {
	bun.BaseModel `bun:"table:quiz,alias:q"`

	ID          string    `bun:"id,pk"`
	Title       string    `bun:"title,notnull"`
	Description *string   `bun:"description"`
	OwnerID     string    `bun:"user_id,notnull"`
	IsPublic    bool      `bun:"is_public,notnull"`
	CreatedAt   time.Time `bun:"created_at,notnull"`
	UpdatedAt   time.Time `bun:"updated_at,notnull"`
}

type tagModel struct {
	bun.BaseModel `bun:"table:tag,alias:t"`

	ID   string `bun:"id,pk"`
	Name string `bun:"name,notnull"`
}

type quizTagModel struct {
	bun.BaseModel `bun:"table:quiz_tag,alias:qt"`

	QuizID string `bun:"quiz_id,pk"`
	TagID  string `bun:"tag_id,pk"`
}

type questionModel struct {
	bun.BaseModel `bun:"table:question,alias:qn"`

	ID     string `bun:"id,pk"`
	QuizID string `bun:"quiz_id,notnull"`
	Text   string `bun:"text,notnull"`
	Order  int    `bun:"sort_order,notnull"`
	Points int    `bun:"points,notnull"`
}

type answerModel struct {
	bun.BaseModel `bun:"table:answer,alias:an"`

	ID         string `bun:"id,pk"`
	QuestionID string `bun:"question_id,notnull"`
	Text       string `bun:"text,notnull"`
	IsCorrect  bool   `bun:"is_correct,notnull"`
	Order      int    `bun:"sort_order,notnull"`
}

type attemptModel struct {
	bun.BaseModel `bun:"table:quiz_attempt,alias:a"`

	ID          string    `bun:"id,pk"`
	QuizID      string    `bun:"quiz_id,notnull"`
	UserID      *string   `bun:"user_id"`
	Score       int       `bun:"score,notnull"`
	MaxScore    int       `bun:"max_score,notnull"`
	Percentage  int       `bun:"percentage,notnull"`
	CompletedAt time.Time `bun:"completed_at,notnull"`
}

// statsRow is one group of the attempt aggregate query.
type statsRow struct {
	QuizID        string `bun:"quiz_id"`
	Completions   int    `bun:"completions"`
	Attempts      int    `bun:"attempts"`
	PercentageSum int    `bun:"percentage_sum"`
}

func (m quizModel) toDomain(tags []string) domain.Quiz {
	return domain.Quiz{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		OwnerID:     m.OwnerID,
		IsPublic:    m.IsPublic,
		TagIDs:      tags,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

func fromQuiz(q domain.Quiz) quizModel {
	return quizModel{
		ID:          q.ID,
		Title:       q.Title,
		Description: q.Description,
		OwnerID:     q.OwnerID,
		IsPublic:    q.IsPublic,
		CreatedAt:   q.CreatedAt.UTC(),
		UpdatedAt:   q.UpdatedAt.UTC(),
	}
}

func (m questionModel) toDomain() domain.Question {
	return domain.Question{ID: m.ID, QuizID: m.QuizID, Text: m.Text, Order: m.Order, Points: m.Points}
}

func (m answerModel) toDomain() domain.Answer {
	return domain.Answer{ID: m.ID, QuestionID: m.QuestionID, Text: m.Text, IsCorrect: m.IsCorrect, Order: m.Order}
}

func (m attemptModel) toDomain() domain.QuizAttempt {
	return domain.QuizAttempt{
		ID:          m.ID,
		QuizID:      m.QuizID,
		UserID:      m.UserID,
		Score:       m.Score,
		MaxScore:    m.MaxScore,
		Percentage:  m.Percentage,
		CompletedAt: m.CompletedAt.UTC(),
	}
}

func fromAttempt(a domain.QuizAttempt) attemptModel {
	return attemptModel{
		ID:          a.ID,
		QuizID:      a.QuizID,
		UserID:      a.UserID,
		Score:       a.Score,
		MaxScore:    a.MaxScore,
		Percentage:  a.Percentage,
		CompletedAt: a.CompletedAt.UTC(),
	}
}
