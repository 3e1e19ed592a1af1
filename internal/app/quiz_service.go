package app

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"quiz-engine-service/internal/domain"
)

// QuizService composes the access gate, the evaluator, the recorder and the aggregator
// into the use cases exposed by the transport layer.
type QuizService struct {
	quizzes  QuizStore
	keys     KeyRepository
	attempts AttemptStore
	recorder *AttemptRecorder
	stats    *StatsAggregator
	lister   *Lister
	log      *slog.Logger
}

func NewQuizService(quizzes QuizStore, keys KeyRepository, attempts AttemptStore, recorder *AttemptRecorder, stats *StatsAggregator, lister *Lister, log *slog.Logger) *QuizService {
	if log == nil {
		log = slog.Default()
	}
	return &QuizService{
		quizzes:  quizzes,
		keys:     keys,
		attempts: attempts,
		recorder: recorder,
		stats:    stats,
		lister:   lister,
		log:      log,
	}
}

// TakeQuiz returns the quiz without any correctness signal.
func (s *QuizService) TakeQuiz(ctx context.Context, quizID, userID string) (domain.TakingQuiz, error) {
	key, err := s.accessibleKey(ctx, quizID, userID)
	if err != nil {
		return domain.TakingQuiz{}, err
	}
	return domain.StripKey(key), nil
}

// Submit evaluates a submission and records the attempt.
// If recording fails the evaluated result is still returned together with the error.
func (s *QuizService) Submit(ctx context.Context, quizID, userID string, submission domain.Submission) (domain.QuizResult, string, error) {
	key, err := s.accessibleKey(ctx, quizID, userID)
	if err != nil {
		return domain.QuizResult{}, "", err
	}
	if submission.QuizID == "" || submission.QuizID != quizID {
		return domain.QuizResult{}, "", fmt.Errorf("%w: quiz id mismatch", domain.ErrInvalidSubmission)
	}

	result, err := Evaluate(key, submission)
	if err != nil {
		return domain.QuizResult{}, "", err
	}

	attemptID, err := s.recorder.Record(ctx, quizID, userID, result.Score, result.MaxScore, WholePercentage(result.Score, result.MaxScore))
	if err != nil {
		s.log.Error("attempt not recorded", "quiz_id", quizID, "error", err)
		return result, "", err
	}

	s.log.Info("submission evaluated",
		"quiz_id", quizID,
		"attempt_id", attemptID,
		"score", result.Score,
		"max_score", result.MaxScore,
		"anonymous", userID == "",
	)
	return result, attemptID, nil
}

// QuizStats returns the statistics of a quiz visible to userID.
func (s *QuizService) QuizStats(ctx context.Context, quizID, userID string) (domain.QuizStats, error) {
	if _, err := s.accessibleQuiz(ctx, quizID, userID); err != nil {
		return domain.QuizStats{}, err
	}
	return s.stats.StatsFor(ctx, quizID)
}

// ListPublic lists public quizzes.
func (s *QuizService) ListPublic(ctx context.Context, req domain.ListRequest) (domain.Page, error) {
	public := true
	req.Filter.Public = &public
	return s.lister.List(ctx, req)
}

// ListByOwner lists the quizzes of ownerID. Private quizzes are only listed for the owner.
func (s *QuizService) ListByOwner(ctx context.Context, ownerID, userID string, req domain.ListRequest) (domain.Page, error) {
	req.Filter.OwnerID = ownerID
	req.Filter.ExcludeOwnerID = ""
	if userID == "" || userID != ownerID {
		public := true
		req.Filter.Public = &public
	} else {
		req.Filter.Public = nil
	}
	return s.lister.List(ctx, req)
}

// QuizAttempts returns every attempt of a quiz, newest first. Only the owner may read them.
func (s *QuizService) QuizAttempts(ctx context.Context, quizID, userID string) ([]domain.QuizAttempt, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz.OwnerID != userID {
		return nil, domain.ErrForbidden
	}
	return s.attempts.AttemptsByQuiz(ctx, quizID)
}

// UserAttempts returns the attempts of userID, newest first. Users may only read their own.
func (s *QuizService) UserAttempts(ctx context.Context, userID, requesterID string) ([]domain.QuizAttempt, error) {
	if requesterID == "" {
		return nil, domain.ErrUnauthorized
	}
	if requesterID != userID {
		return nil, domain.ErrForbidden
	}
	return s.attempts.AttemptsByUser(ctx, userID)
}

// BestAttempt returns the highest scoring attempt of userID on a quiz; the latest one wins ties.
func (s *QuizService) BestAttempt(ctx context.Context, quizID, userID string) (domain.QuizAttempt, error) {
	if userID == "" {
		return domain.QuizAttempt{}, domain.ErrUnauthorized
	}
	if _, err := s.accessibleQuiz(ctx, quizID, userID); err != nil {
		return domain.QuizAttempt{}, err
	}

	attempts, err := s.attempts.AttemptsByQuiz(ctx, quizID)
	if err != nil {
		return domain.QuizAttempt{}, err
	}
	mine := make([]domain.QuizAttempt, 0, len(attempts))
	for _, a := range attempts {
		if a.UserID != nil && *a.UserID == userID {
			mine = append(mine, a)
		}
	}
	if len(mine) == 0 {
		return domain.QuizAttempt{}, domain.ErrAttemptNotFound
	}
	sort.SliceStable(mine, func(i, j int) bool {
		if mine[i].Score != mine[j].Score {
			return mine[i].Score > mine[j].Score
		}
		return mine[i].CompletedAt.After(mine[j].CompletedAt)
	})
	return mine[0], nil
}

// accessibleQuiz reads the current quiz row and separates "does not exist" from "not allowed".
func (s *QuizService) accessibleQuiz(ctx context.Context, quizID, userID string) (domain.Quiz, error) {
	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.Quiz{}, err
	}
	if !CanAccess(&quiz, userID) {
		return domain.Quiz{}, domain.ErrForbidden
	}
	return quiz, nil
}

// accessibleKey gates on the current quiz row, then returns its answer key.
// A cached key older than the quiz row is dropped and reloaded.
func (s *QuizService) accessibleKey(ctx context.Context, quizID, userID string) (domain.AnswerKey, error) {
	quiz, err := s.accessibleQuiz(ctx, quizID, userID)
	if err != nil {
		return domain.AnswerKey{}, err
	}

	key, err := s.keys.GetKey(ctx, quizID)
	if err != nil {
		return domain.AnswerKey{}, err
	}
	if !key.Quiz.UpdatedAt.Equal(quiz.UpdatedAt) {
		if invalidator, ok := s.keys.(KeyInvalidator); ok {
			if err := invalidator.Forget(ctx, quizID); err != nil {
				s.log.Warn("forget stale answer key", "quiz_id", quizID, "error", err)
			}
			if key, err = s.keys.GetKey(ctx, quizID); err != nil {
				return domain.AnswerKey{}, err
			}
		}
	}
	key.Quiz = quiz
	return key, nil
}
