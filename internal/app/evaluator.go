package app

import (
	"quiz-engine-service/internal/domain"
)

// Evaluate scores a submission against an answer key. It is a pure function.
//
// Pairs that reference an unknown question, an unknown answer, an answer of another question,
// or a question without a resolvable correct answer are kept in the result with zero points.
// Only the first pair for a question is scored; repeats earn nothing.
// MaxScore always covers every question of the quiz, answered or not.
func Evaluate(key domain.AnswerKey, submission domain.Submission) (domain.QuizResult, error) {
	if len(key.Questions) == 0 {
		return domain.QuizResult{}, domain.ErrQuizNotFound
	}

	questions := make(map[string]domain.Question, len(key.Questions))
	for _, q := range key.Questions {
		questions[q.ID] = q
	}
	answers := make(map[string]domain.Answer, len(key.Answers))
	for _, a := range key.Answers {
		answers[a.ID] = a
	}

	result := domain.QuizResult{
		QuizID:         key.Quiz.ID,
		MaxScore:       key.MaxScore(),
		TotalQuestions: len(key.Questions),
		Answers:        make([]domain.EvaluatedAnswer, 0, len(submission.Answers)),
	}

	scored := make(map[string]struct{}, len(submission.Answers))
	for _, submitted := range submission.Answers {
		correctID := key.CorrectByQuestion[submitted.QuestionID]
		evaluated := domain.EvaluatedAnswer{
			QuestionID:       submitted.QuestionID,
			SelectedAnswerID: submitted.AnswerID,
			CorrectAnswerID:  correctID,
		}

		question, knownQuestion := questions[submitted.QuestionID]
		selected, knownAnswer := answers[submitted.AnswerID]
		_, repeated := scored[submitted.QuestionID]
		if !knownQuestion || !knownAnswer || correctID == "" || repeated || selected.QuestionID != question.ID {
			result.Answers = append(result.Answers, evaluated)
			continue
		}
		scored[question.ID] = struct{}{}

		if selected.IsCorrect {
			evaluated.IsCorrect = true
			evaluated.Points = question.Points
			result.Score += evaluated.Points
			result.CorrectAnswers++
		}
		result.Answers = append(result.Answers, evaluated)
	}

	result.Percentage = ResultPercentage(result.Score, result.MaxScore)
	return result, nil
}

// ResultPercentage is the two-decimal percentage shown to the learner.
func ResultPercentage(score, maxScore int) float64 {
	return domain.Percentage(score, maxScore, 2).InexactFloat64()
}

// WholePercentage is the integer percentage persisted on attempts and consumed by stats.
func WholePercentage(score, maxScore int) int {
	return int(domain.Percentage(score, maxScore, 0).IntPart())
}
