package app

import (
	"context"
	"fmt"
	"sort"

	"quiz-engine-service/internal/domain"
)

// KeyResolver builds answer keys straight from the quiz store.
// It satisfies both KeyRepository and the cache loaders in internal/infra.
type KeyResolver struct {
	store QuizStore
}

func NewKeyResolver(store QuizStore) *KeyResolver {
	return &KeyResolver{store: store}
}

// GetKey resolves the key without caching.
func (r *KeyResolver) GetKey(ctx context.Context, quizID string) (domain.AnswerKey, error) {
	return r.LoadKey(ctx, quizID)
}

// LoadKey reads the quiz, its questions and their answers and resolves the correct answer per question.
func (r *KeyResolver) LoadKey(ctx context.Context, quizID string) (domain.AnswerKey, error) {
	quiz, err := r.store.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.AnswerKey{}, err
	}

	questions, err := r.store.ListQuestions(ctx, quizID)
	if err != nil {
		return domain.AnswerKey{}, fmt.Errorf("list questions: %w", err)
	}

	var answers []domain.Answer
	if len(questions) > 0 {
		ids := make([]string, 0, len(questions))
		for _, q := range questions {
			ids = append(ids, q.ID)
		}
		answers, err = r.store.ListAnswers(ctx, ids)
		if err != nil {
			return domain.AnswerKey{}, fmt.Errorf("list answers: %w", err)
		}
	}

	return BuildKey(quiz, questions, answers), nil
}

// BuildKey orders content for display and maps each question to its correct answer.
// When several answers of a question are flagged correct, the one with the lowest display
// order (then lowest ID) wins. Questions without a flagged answer get no entry.
func BuildKey(quiz domain.Quiz, questions []domain.Question, answers []domain.Answer) domain.AnswerKey {
	qs := make([]domain.Question, len(questions))
	copy(qs, questions)
	sort.SliceStable(qs, func(i, j int) bool {
		if qs[i].Order != qs[j].Order {
			return qs[i].Order < qs[j].Order
		}
		return qs[i].ID < qs[j].ID
	})

	position := make(map[string]int, len(qs))
	for i, q := range qs {
		position[q.ID] = i
	}

	as := make([]domain.Answer, 0, len(answers))
	for _, a := range answers {
		// answers of foreign questions are not part of this key
		if _, ok := position[a.QuestionID]; ok {
			as = append(as, a)
		}
	}
	sort.SliceStable(as, func(i, j int) bool {
		pi, pj := position[as[i].QuestionID], position[as[j].QuestionID]
		if pi != pj {
			return pi < pj
		}
		if as[i].Order != as[j].Order {
			return as[i].Order < as[j].Order
		}
		return as[i].ID < as[j].ID
	})

	correct := make(map[string]string, len(qs))
	for _, a := range as {
		if !a.IsCorrect {
			continue
		}
		if _, seen := correct[a.QuestionID]; !seen {
			correct[a.QuestionID] = a.ID
		}
	}

	return domain.AnswerKey{
		Quiz:              quiz,
		Questions:         qs,
		Answers:           as,
		CorrectByQuestion: correct,
	}
}
