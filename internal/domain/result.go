package domain

import "time"

// SubmittedAnswer is one (question, chosen answer) pair from a learner.
type SubmittedAnswer struct {
	QuestionID string `json:"questionId"`
	AnswerID   string `json:"answerId"`
}

// Submission is the transient set of answers a learner sends for evaluation.
type Submission struct {
	QuizID  string            `json:"quizId"`
	Answers []SubmittedAnswer `json:"answers"`
}

// EvaluatedAnswer is the scored outcome of one submitted pair.
type EvaluatedAnswer struct {
	QuestionID       string `json:"questionId"`
	SelectedAnswerID string `json:"selectedAnswerId"`
	CorrectAnswerID  string `json:"correctAnswerId"`
	IsCorrect        bool   `json:"isCorrect"`
	Points           int    `json:"points"`
}

// QuizResult is returned to the learner after evaluation.
type QuizResult struct {
	QuizID         string            `json:"quizId"`
	Score          int               `json:"score"`
	MaxScore       int               `json:"maxScore"`
	Percentage     float64           `json:"percentage"` // two decimal places
	CorrectAnswers int               `json:"correctAnswers"`
	TotalQuestions int               `json:"totalQuestions"`
	Answers        []EvaluatedAnswer `json:"answers"`
}

// QuizAttempt is the persisted, append-only record of an evaluated submission.
type QuizAttempt struct {
	ID          string    `json:"id"`
	QuizID      string    `json:"quizId"`
	UserID      *string   `json:"userId"` // nil for anonymous attempts
	Score       int       `json:"score"`
	MaxScore    int       `json:"maxScore"`
	Percentage  int       `json:"percentage"` // whole number 0-100
	CompletedAt time.Time `json:"completedAt"`
}

// QuizStats is derived from attempts on read and never stored as a source of truth.
type QuizStats struct {
	CompletionCount int `json:"completionCount"`
	AverageScore    int `json:"averageScore"`
}

// AttemptAggregate holds the raw counters behind QuizStats for one quiz.
type AttemptAggregate struct {
	Completions   int // distinct authenticated users plus anonymous attempts
	Attempts      int
	PercentageSum int
}

// Stats converts the counters into QuizStats.
func (a AttemptAggregate) Stats() QuizStats {
	if a.Attempts == 0 {
		return QuizStats{}
	}
	return QuizStats{
		CompletionCount: a.Completions,
		AverageScore:    RoundedRatio(a.PercentageSum, a.Attempts),
	}
}
