package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quiz-engine-service/internal/domain"
)

func TestEvaluateOneRightOneWrong(t *testing.T) {
	key := keyWithPoints(10, 10)

	result, err := Evaluate(key, domain.Submission{QuizID: "quiz", Answers: []domain.SubmittedAnswer{
		answer("quiz-q1", "quiz-q1-a2"),
		answer("quiz-q2", "quiz-q2-a1"),
	}})
	require.NoError(t, err)

	assert.Equal(t, 10, result.Score)
	assert.Equal(t, 20, result.MaxScore)
	assert.Equal(t, 50.0, result.Percentage)
	assert.Equal(t, 1, result.CorrectAnswers)
	assert.Equal(t, 2, result.TotalQuestions)

	require.Len(t, result.Answers, 2)
	assert.Equal(t, domain.EvaluatedAnswer{
		QuestionID: "quiz-q1", SelectedAnswerID: "quiz-q1-a2", CorrectAnswerID: "quiz-q1-a2", IsCorrect: true, Points: 10,
	}, result.Answers[0])
	assert.Equal(t, domain.EvaluatedAnswer{
		QuestionID: "quiz-q2", SelectedAnswerID: "quiz-q2-a1", CorrectAnswerID: "quiz-q2-a2",
	}, result.Answers[1])
}

func TestEvaluateEmptySubmission(t *testing.T) {
	result, err := Evaluate(keyWithPoints(15), domain.Submission{QuizID: "quiz", Answers: []domain.SubmittedAnswer{}})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 15, result.MaxScore)
	assert.Equal(t, 0.0, result.Percentage)
	assert.Equal(t, 0, result.CorrectAnswers)
	assert.Equal(t, 1, result.TotalQuestions)
	assert.Empty(t, result.Answers)
}

func TestEvaluateQuizWithoutQuestions(t *testing.T) {
	_, err := Evaluate(keyWithPoints(), domain.Submission{QuizID: "quiz"})
	assert.ErrorIs(t, err, domain.ErrQuizNotFound)
}

func TestEvaluateToleratesMalformedPairs(t *testing.T) {
	key := keyWithPoints(1, 1)

	result, err := Evaluate(key, domain.Submission{QuizID: "quiz", Answers: []domain.SubmittedAnswer{
		answer("nope", "quiz-q1-a2"),
		answer("quiz-q1", "nope"),
		answer("quiz-q2", "quiz-q1-a2"), // right answer of another question
	}})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Score)
	require.Len(t, result.Answers, 3)
	assert.Equal(t, "", result.Answers[0].CorrectAnswerID)
	assert.Equal(t, "quiz-q1-a2", result.Answers[1].CorrectAnswerID)
	assert.Equal(t, "quiz-q2-a2", result.Answers[2].CorrectAnswerID)
	for _, a := range result.Answers {
		assert.False(t, a.IsCorrect)
		assert.Zero(t, a.Points)
	}
}

func TestEvaluateQuestionWithoutCorrectAnswer(t *testing.T) {
	quiz, questions, answers := buildQuiz("quiz", true, "owner", 5)
	for i := range answers {
		answers[i].IsCorrect = false
	}
	key := BuildKey(quiz, questions, answers)

	result, err := Evaluate(key, domain.Submission{QuizID: "quiz", Answers: []domain.SubmittedAnswer{answer("quiz-q1", "quiz-q1-a2")}})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 5, result.MaxScore)
	assert.Equal(t, "", result.Answers[0].CorrectAnswerID)
	assert.False(t, result.Answers[0].IsCorrect)
}

func TestEvaluateCountsQuestionOnce(t *testing.T) {
	result, err := Evaluate(keyWithPoints(4), domain.Submission{QuizID: "quiz", Answers: []domain.SubmittedAnswer{
		answer("quiz-q1", "quiz-q1-a2"),
		answer("quiz-q1", "quiz-q1-a2"),
	}})
	require.NoError(t, err)

	assert.Equal(t, 4, result.Score)
	assert.Equal(t, 1, result.CorrectAnswers)
	assert.Len(t, result.Answers, 2)
	assert.False(t, result.Answers[1].IsCorrect)
	assert.LessOrEqual(t, result.Score, result.MaxScore)
}

func TestEvaluateKeepsSubmissionOrder(t *testing.T) {
	result, err := Evaluate(keyWithPoints(1, 1, 1), domain.Submission{QuizID: "quiz", Answers: []domain.SubmittedAnswer{
		answer("quiz-q3", "quiz-q3-a1"),
		answer("quiz-q1", "quiz-q1-a2"),
	}})
	require.NoError(t, err)

	require.Len(t, result.Answers, 2)
	assert.Equal(t, "quiz-q3", result.Answers[0].QuestionID)
	assert.Equal(t, "quiz-q1", result.Answers[1].QuestionID)
	assert.Equal(t, 3, result.TotalQuestions)
}

func TestEvaluateZeroPointQuiz(t *testing.T) {
	result, err := Evaluate(keyWithPoints(0, 0), domain.Submission{QuizID: "quiz", Answers: []domain.SubmittedAnswer{
		answer("quiz-q1", "quiz-q1-a2"),
	}})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 0, result.MaxScore)
	assert.Equal(t, 0.0, result.Percentage)
	assert.Equal(t, 0, WholePercentage(result.Score, result.MaxScore))
	assert.Equal(t, 1, result.CorrectAnswers)
}

func TestEvaluateScoresStoredPoints(t *testing.T) {
	result, err := Evaluate(keyWithPoints(0, 4), domain.Submission{QuizID: "quiz", Answers: []domain.SubmittedAnswer{
		answer("quiz-q1", "quiz-q1-a2"),
		answer("quiz-q2", "quiz-q2-a2"),
	}})
	require.NoError(t, err)

	assert.Equal(t, 4, result.Score)
	assert.Equal(t, 4, result.MaxScore)
	assert.Equal(t, 100.0, result.Percentage)
}

func TestEvaluateRoundsPercentageHalfUp(t *testing.T) {
	cases := []struct {
		points  []int
		correct []string
		want    float64
	}{
		{[]int{1, 1, 1}, []string{"quiz-q1"}, 33.33},
		{[]int{1, 1, 1}, []string{"quiz-q1", "quiz-q2"}, 66.67},
		{[]int{1, 31}, []string{"quiz-q1"}, 3.13}, // 3.125
		{[]int{2, 1}, []string{"quiz-q1"}, 66.67},
	}
	for _, c := range cases {
		var answers []domain.SubmittedAnswer
		for _, q := range c.correct {
			answers = append(answers, answer(q, q+"-a2"))
		}
		result, err := Evaluate(keyWithPoints(c.points...), domain.Submission{QuizID: "quiz", Answers: answers})
		require.NoError(t, err)
		assert.Equal(t, c.want, result.Percentage, "points=%v correct=%v", c.points, c.correct)
	}
}

func TestEvaluateScoreBounds(t *testing.T) {
	key := keyWithPoints(3, 5, 7)
	submissions := [][]domain.SubmittedAnswer{
		nil,
		{answer("quiz-q1", "quiz-q1-a2"), answer("quiz-q2", "quiz-q2-a2"), answer("quiz-q3", "quiz-q3-a2")},
		{answer("quiz-q1", "quiz-q1-a2"), answer("quiz-q1", "quiz-q1-a2"), answer("quiz-q1", "quiz-q1-a2"), answer("quiz-q1", "quiz-q1-a2")},
		{answer("quiz-q2", "quiz-q2-a1"), answer("ghost", "ghost")},
	}
	for _, answers := range submissions {
		result, err := Evaluate(key, domain.Submission{QuizID: "quiz", Answers: answers})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.Score, 0)
		assert.LessOrEqual(t, result.Score, result.MaxScore)
		assert.GreaterOrEqual(t, result.Percentage, 0.0)
		assert.LessOrEqual(t, result.Percentage, 100.0)
		assert.Equal(t, 15, result.MaxScore)
	}
}

func TestWholePercentage(t *testing.T) {
	assert.Equal(t, 0, WholePercentage(0, 0))
	assert.Equal(t, 33, WholePercentage(1, 3))
	assert.Equal(t, 67, WholePercentage(2, 3))
	assert.Equal(t, 50, WholePercentage(1, 2))
	assert.Equal(t, 100, WholePercentage(7, 7))
	assert.Equal(t, 3, WholePercentage(1, 40)) // 2.5
}
