package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"quiz-engine-service/internal/auth"
)

// NewRouter wires the quiz routes. authenticator may be nil, in which case every request is anonymous.
func NewRouter(handler *Handler, authenticator *auth.Authenticator, log *slog.Logger) http.Handler {
	if log == nil {
		log = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		if authenticator != nil {
			r.Use(authenticator.Middleware(func(w http.ResponseWriter, r *http.Request, err error) {
				writeError(log, w, r, err)
			}))
		}

		r.Get("/quizzes", handler.ListQuizzes)
		r.Route("/quizzes/{quizID}", func(r chi.Router) {
			r.Get("/take", handler.TakeQuiz)
			r.Post("/submit", handler.Submit)
			r.Get("/stats", handler.QuizStats)
			r.Get("/attempts", handler.QuizAttempts)
			r.Get("/attempts/best", handler.BestAttempt)
		})
		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/quizzes", handler.ListUserQuizzes)
			r.Get("/attempts", handler.UserAttempts)
		})
	})
	return r
}

// requestLogger logs one line per request with its status and duration.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
