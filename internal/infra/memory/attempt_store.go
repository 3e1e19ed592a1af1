package memory

import (
	"context"
	"sort"
	"sync"

	"quiz-engine-service/internal/domain"
)

// AttemptStore is an in-memory, append-only attempt log.
type AttemptStore struct {
	mu       sync.RWMutex
	attempts []domain.QuizAttempt
}

func NewAttemptStore() *AttemptStore {
	return &AttemptStore{}
}

func (s *AttemptStore) AppendAttempt(_ context.Context, attempt domain.QuizAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts = append(s.attempts, attempt)
	return nil
}

func (s *AttemptStore) AttemptsByQuiz(_ context.Context, quizID string) ([]domain.QuizAttempt, error) {
	return s.collect(func(a domain.QuizAttempt) bool { return a.QuizID == quizID }), nil
}

func (s *AttemptStore) AttemptsByQuizzes(_ context.Context, quizIDs []string) ([]domain.QuizAttempt, error) {
	wanted := make(map[string]struct{}, len(quizIDs))
	for _, id := range quizIDs {
		wanted[id] = struct{}{}
	}
	return s.collect(func(a domain.QuizAttempt) bool {
		_, ok := wanted[a.QuizID]
		return ok
	}), nil
}

func (s *AttemptStore) AttemptsByUser(_ context.Context, userID string) ([]domain.QuizAttempt, error) {
	return s.collect(func(a domain.QuizAttempt) bool { return a.UserID != nil && *a.UserID == userID }), nil
}

// ClearAttempts removes attempts of one quiz, or all attempts when quizID is empty.
func (s *AttemptStore) ClearAttempts(_ context.Context, quizID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.attempts[:0]
	removed := 0
	for _, a := range s.attempts {
		if quizID == "" || a.QuizID == quizID {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	s.attempts = kept
	return removed, nil
}

// collect returns matching attempts newest first.
func (s *AttemptStore) collect(match func(domain.QuizAttempt) bool) []domain.QuizAttempt {
	s.mu.RLock()
	out := make([]domain.QuizAttempt, 0)
	for _, a := range s.attempts {
		if match(a) {
			out = append(out, a)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].CompletedAt.After(out[j].CompletedAt) })
	return out
}
