package domain

import "fmt"

// SortKey selects the ranking of a quiz listing.
type SortKey string

const (
	SortLatest  SortKey = "latest"
	SortPopular SortKey = "popular"
	SortHardest SortKey = "hardest"
)

// ParseSortKey maps a raw query value to a SortKey. Empty means latest.
func ParseSortKey(raw string) (SortKey, error) {
	switch SortKey(raw) {
	case "", SortLatest:
		return SortLatest, nil
	case SortPopular:
		return SortPopular, nil
	case SortHardest:
		return SortHardest, nil
	}
	return "", fmt.Errorf("unknown sort key %q", raw)
}

// ListRequest describes one page of a quiz listing.
type ListRequest struct {
	Filter QuizFilter
	Sort   SortKey
	Page   int // 1-based
	Limit  int
}

// QuizSummary is a listed quiz annotated with its statistics.
type QuizSummary struct {
	Quiz
	Stats QuizStats `json:"stats"`
}

// Pagination describes the position of a page within the full result.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// Page is one page of listed quizzes.
type Page struct {
	Data       []QuizSummary `json:"data"`
	Pagination Pagination    `json:"pagination"`
}
