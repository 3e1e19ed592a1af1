package domain

import "errors"

var (
	// ErrQuizNotFound indicates the quiz does not exist or has no questions to evaluate.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrForbidden is returned when the requester may not access a private quiz.
	ErrForbidden = errors.New("quiz access denied")
	// ErrInvalidSubmission indicates a structurally invalid submission (wrong quiz id, missing answers).
	ErrInvalidSubmission = errors.New("invalid submission")
	// ErrAttemptNotFound is returned when a user has no attempts for a quiz.
	ErrAttemptNotFound = errors.New("attempt not found")
	// ErrUnauthorized indicates a presented identity could not be validated.
	ErrUnauthorized = errors.New("unauthorized")
)
