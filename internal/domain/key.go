package domain

// AnswerKey is a quiz with its full content and the resolved correct answer per question.
// It never leaves the service before a submission is evaluated.
type AnswerKey struct {
	Quiz              Quiz              `msgpack:"quiz"`
	Questions         []Question        `msgpack:"questions"`
	Answers           []Answer          `msgpack:"answers"`
	CorrectByQuestion map[string]string `msgpack:"correct"`
}

// MaxScore is the sum of points over all questions of the quiz.
func (k AnswerKey) MaxScore() int {
	total := 0
	for _, q := range k.Questions {
		total += q.Points
	}
	return total
}

// TakingAnswer is an answer as shown before submission. It has no correctness field.
type TakingAnswer struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Order int    `json:"order"`
}

// TakingQuestion is a question as shown before submission.
type TakingQuestion struct {
	ID      string         `json:"id"`
	Text    string         `json:"text"`
	Order   int            `json:"order"`
	Points  int            `json:"points"`
	Answers []TakingAnswer `json:"answers"`
}

// TakingQuiz is the pre-submission view of a quiz.
type TakingQuiz struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description *string          `json:"description"`
	Questions   []TakingQuestion `json:"questions"`
}

// StripKey builds the pre-submission view of an answer key.
func StripKey(key AnswerKey) TakingQuiz {
	byQuestion := make(map[string][]TakingAnswer, len(key.Questions))
	for _, a := range key.Answers {
		byQuestion[a.QuestionID] = append(byQuestion[a.QuestionID], TakingAnswer{
			ID:    a.ID,
			Text:  a.Text,
			Order: a.Order,
		})
	}

	questions := make([]TakingQuestion, 0, len(key.Questions))
	for _, q := range key.Questions {
		answers := byQuestion[q.ID]
		if answers == nil {
			answers = []TakingAnswer{}
		}
		questions = append(questions, TakingQuestion{
			ID:      q.ID,
			Text:    q.Text,
			Order:   q.Order,
			Points:  q.Points,
			Answers: answers,
		})
	}

	return TakingQuiz{
		ID:          key.Quiz.ID,
		Title:       key.Quiz.Title,
		Description: key.Quiz.Description,
		Questions:   questions,
	}
}
