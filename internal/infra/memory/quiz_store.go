package memory

import (
	"context"
	"sort"
	"sync"

	"quiz-engine-service/internal/domain"
	"quiz-engine-service/internal/fixture"
)

// QuizStore keeps quiz content in memory. It serves as app.QuizStore and app.QuizCatalog
// when no database is configured, and as a test double.
type QuizStore struct {
	mu        sync.RWMutex
	quizzes   map[string]domain.Quiz
	questions map[string][]domain.Question // by quiz id
	answers   map[string][]domain.Answer   // by question id
}

func NewQuizStore(content ...fixture.Content) *QuizStore {
	s := &QuizStore{
		quizzes:   make(map[string]domain.Quiz),
		questions: make(map[string][]domain.Question),
		answers:   make(map[string][]domain.Answer),
	}
	for _, c := range content {
		s.Put(c)
	}
	return s
}

// Put stores or replaces a quiz with its content.
func (s *QuizStore) Put(c fixture.Content) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, q := range s.questions[c.Quiz.ID] {
		delete(s.answers, q.ID)
	}
	s.quizzes[c.Quiz.ID] = c.Quiz
	s.questions[c.Quiz.ID] = append([]domain.Question(nil), c.Questions...)
	for _, a := range c.Answers {
		s.answers[a.QuestionID] = append(s.answers[a.QuestionID], a)
	}
}

// Delete removes a quiz and its content.
func (s *QuizStore) Delete(quizID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range s.questions[quizID] {
		delete(s.answers, q.ID)
	}
	delete(s.questions, quizID)
	delete(s.quizzes, quizID)
}

func (s *QuizStore) GetQuiz(_ context.Context, quizID string) (domain.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	quiz, ok := s.quizzes[quizID]
	if !ok {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	return quiz, nil
}

func (s *QuizStore) ListQuestions(_ context.Context, quizID string) ([]domain.Question, error) {
	s.mu.RLock()
	questions := append([]domain.Question(nil), s.questions[quizID]...)
	s.mu.RUnlock()

	sort.SliceStable(questions, func(i, j int) bool { return questions[i].Order < questions[j].Order })
	return questions, nil
}

func (s *QuizStore) ListAnswers(_ context.Context, questionIDs []string) ([]domain.Answer, error) {
	s.mu.RLock()
	var answers []domain.Answer
	for _, id := range questionIDs {
		answers = append(answers, s.answers[id]...)
	}
	s.mu.RUnlock()

	sort.SliceStable(answers, func(i, j int) bool {
		if answers[i].QuestionID != answers[j].QuestionID {
			return answers[i].QuestionID < answers[j].QuestionID
		}
		return answers[i].Order < answers[j].Order
	})
	return answers, nil
}

func (s *QuizStore) FindQuizzes(_ context.Context, filter domain.QuizFilter, offset, limit int) ([]domain.Quiz, int, error) {
	s.mu.RLock()
	matches := make([]domain.Quiz, 0, len(s.quizzes))
	for _, q := range s.quizzes {
		if filter.Matches(q) {
			matches = append(matches, q)
		}
	}
	s.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].CreatedAt.After(matches[j].CreatedAt)
		}
		return matches[i].ID < matches[j].ID
	})

	total := len(matches)
	if offset >= total {
		return []domain.Quiz{}, total, nil
	}
	end := total
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return matches[offset:end], total, nil
}
