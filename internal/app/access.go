package app

import "quiz-engine-service/internal/domain"

// CanAccess reports whether userID may view or evaluate quiz. An empty userID is anonymous.
// A nil quiz is treated as inaccessible.
func CanAccess(quiz *domain.Quiz, userID string) bool {
	if quiz == nil {
		return false
	}
	if quiz.IsPublic {
		return true
	}
	return userID != "" && userID == quiz.OwnerID
}
