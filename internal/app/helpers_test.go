package app

import (
	"fmt"
	"time"

	"quiz-engine-service/internal/domain"
)

// buildQuiz creates a quiz whose questions carry the given points. Each question has two answers
// and the second one ("<qid>-a2") is correct.
func buildQuiz(id string, public bool, owner string, points ...int) (domain.Quiz, []domain.Question, []domain.Answer) {
	quiz := domain.Quiz{
		ID:        id,
		Title:     "Quiz " + id,
		OwnerID:   owner,
		IsPublic:  public,
		CreatedAt: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	}
	var questions []domain.Question
	var answers []domain.Answer
	for i, p := range points {
		qid := fmt.Sprintf("%s-q%d", id, i+1)
		questions = append(questions, domain.Question{ID: qid, QuizID: id, Text: qid, Order: i, Points: p})
		answers = append(answers,
			domain.Answer{ID: qid + "-a1", QuestionID: qid, Text: "wrong", Order: 0},
			domain.Answer{ID: qid + "-a2", QuestionID: qid, Text: "right", IsCorrect: true, Order: 1},
		)
	}
	return quiz, questions, answers
}

func keyWithPoints(points ...int) domain.AnswerKey {
	return BuildKey(buildQuiz("quiz", true, "owner", points...))
}

func answer(questionID, answerID string) domain.SubmittedAnswer {
	return domain.SubmittedAnswer{QuestionID: questionID, AnswerID: answerID}
}

func strPtr(s string) *string { return &s }
