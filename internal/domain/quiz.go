package domain

import (
	"strings"
	"time"
)

// Quiz is the metadata of an authored quiz. Content lives in Question and Answer.
type Quiz struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description *string   `json:"description,omitempty" yaml:"description"`
	OwnerID     string    `json:"userId" yaml:"owner_id"`
	IsPublic    bool      `json:"isPublic" yaml:"is_public"`
	TagIDs      []string  `json:"tagIds,omitempty" yaml:"tag_ids"`
	CreatedAt   time.Time `json:"createdAt" yaml:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updated_at"`
}

// Question belongs to exactly one quiz. Order is unique within the quiz.
type Question struct {
	ID     string `json:"id"`
	QuizID string `json:"quizId"`
	Text   string `json:"text"`
	Order  int    `json:"order"`
	Points int    `json:"points"`
}

// Answer belongs to exactly one question. Order is unique within the question.
type Answer struct {
	ID         string `json:"id"`
	QuestionID string `json:"questionId"`
	Text       string `json:"text"`
	IsCorrect  bool   `json:"isCorrect"`
	Order      int    `json:"order"`
}

// DefaultPoints is the weight given to a question authored without a point value.
const DefaultPoints = 1

// QuizFilter is a set of optional predicates combined with logical AND.
// Zero values mean "no constraint".
type QuizFilter struct {
	OwnerID        string
	ExcludeOwnerID string
	TagIDs         []string // matches quizzes carrying any of the tags
	Public         *bool
	Search         string // case-insensitive substring of title or description
}

// Matches reports whether q satisfies every predicate of the filter.
func (f QuizFilter) Matches(q Quiz) bool {
	if f.OwnerID != "" && q.OwnerID != f.OwnerID {
		return false
	}
	if f.ExcludeOwnerID != "" && q.OwnerID == f.ExcludeOwnerID {
		return false
	}
	if f.Public != nil && q.IsPublic != *f.Public {
		return false
	}
	if len(f.TagIDs) > 0 && !hasAnyTag(q.TagIDs, f.TagIDs) {
		return false
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		needle := strings.ToLower(search)
		inTitle := strings.Contains(strings.ToLower(q.Title), needle)
		inDescription := q.Description != nil && strings.Contains(strings.ToLower(*q.Description), needle)
		if !inTitle && !inDescription {
			return false
		}
	}
	return true
}

func hasAnyTag(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}
