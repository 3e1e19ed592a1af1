package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"quiz-engine-service/internal/app"
	"quiz-engine-service/internal/auth"
	"quiz-engine-service/internal/domain"
)

var errBadRequest = errors.New("bad request")

// Handler exposes the quiz use cases over JSON.
type Handler struct {
	service *app.QuizService
	log     *slog.Logger
}

func NewHandler(service *app.QuizService, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{service: service, log: log}
}

type submitRequest struct {
	QuizID  string                   `json:"quizId"`
	Answers []domain.SubmittedAnswer `json:"answers"`
}

type submitResponse struct {
	domain.QuizResult
	AttemptID string `json:"attemptId"`
}

type statsResponse struct {
	domain.QuizStats
	CompletionLabel string `json:"completionLabel"`
}

func (h *Handler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	req, err := listRequest(r)
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	page, err := h.service.ListPublic(r.Context(), req)
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handler) ListUserQuizzes(w http.ResponseWriter, r *http.Request) {
	req, err := listRequest(r)
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	page, err := h.service.ListByOwner(r.Context(), chi.URLParam(r, "userID"), auth.UserID(r.Context()), req)
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handler) TakeQuiz(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.service.TakeQuiz(r.Context(), chi.URLParam(r, "quizID"), auth.UserID(r.Context()))
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	quizID := chi.URLParam(r, "quizID")

	var body submitRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(h.log, w, r, fmt.Errorf("%w: %v", domain.ErrInvalidSubmission, err))
		return
	}
	if body.Answers == nil {
		writeError(h.log, w, r, fmt.Errorf("%w: answers must be an array", domain.ErrInvalidSubmission))
		return
	}
	if body.QuizID == "" {
		body.QuizID = quizID
	}

	result, attemptID, err := h.service.Submit(r.Context(), quizID, auth.UserID(r.Context()), domain.Submission{
		QuizID:  body.QuizID,
		Answers: body.Answers,
	})
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, submitResponse{QuizResult: result, AttemptID: attemptID})
}

func (h *Handler) QuizStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.QuizStats(r.Context(), chi.URLParam(r, "quizID"), auth.UserID(r.Context()))
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{
		QuizStats:       stats,
		CompletionLabel: app.FormatCompletionCount(stats.CompletionCount),
	})
}

func (h *Handler) QuizAttempts(w http.ResponseWriter, r *http.Request) {
	attempts, err := h.service.QuizAttempts(r.Context(), chi.URLParam(r, "quizID"), auth.UserID(r.Context()))
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, attempts)
}

func (h *Handler) BestAttempt(w http.ResponseWriter, r *http.Request) {
	attempt, err := h.service.BestAttempt(r.Context(), chi.URLParam(r, "quizID"), auth.UserID(r.Context()))
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, attempt)
}

func (h *Handler) UserAttempts(w http.ResponseWriter, r *http.Request) {
	attempts, err := h.service.UserAttempts(r.Context(), chi.URLParam(r, "userID"), auth.UserID(r.Context()))
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, attempts)
}

// listRequest reads page, limit, search, tagIds, sortBy and excludeUserId.
func listRequest(r *http.Request) (domain.ListRequest, error) {
	q := r.URL.Query()

	sortKey, err := domain.ParseSortKey(q.Get("sortBy"))
	if err != nil {
		return domain.ListRequest{}, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	page, err := intParam(q.Get("page"))
	if err != nil {
		return domain.ListRequest{}, fmt.Errorf("%w: page: %v", errBadRequest, err)
	}
	limit, err := intParam(q.Get("limit"))
	if err != nil {
		return domain.ListRequest{}, fmt.Errorf("%w: limit: %v", errBadRequest, err)
	}

	var tags []string
	for _, tag := range strings.Split(q.Get("tagIds"), ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}

	return domain.ListRequest{
		Filter: domain.QuizFilter{
			ExcludeOwnerID: q.Get("excludeUserId"),
			TagIDs:         tags,
			Search:         q.Get("search"),
		},
		Sort:  sortKey,
		Page:  page,
		Limit: limit,
	}, nil
}

func intParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
