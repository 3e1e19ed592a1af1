package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"quiz-engine-service/internal/domain"
	"quiz-engine-service/internal/fixture"
)

func TestQuizStoreContent(t *testing.T) {
	store := NewQuizStore(fixture.Sample()...)
	ctx := context.Background()

	quiz, err := store.GetQuiz(ctx, "quiz-1")
	if err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if quiz.Title != "Arithmetic warm-up" {
		t.Fatalf("unexpected quiz %+v", quiz)
	}

	questions, _ := store.ListQuestions(ctx, "quiz-1")
	if len(questions) != 2 || questions[0].ID != "q1" {
		t.Fatalf("unexpected questions %+v", questions)
	}

	answers, _ := store.ListAnswers(ctx, []string{"q1"})
	if len(answers) != 3 || answers[1].ID != "q1-a2" {
		t.Fatalf("unexpected answers %+v", answers)
	}

	if _, err := store.GetQuiz(ctx, "nope"); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	store.Delete("quiz-1")
	if _, err := store.GetQuiz(ctx, "quiz-1"); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected deleted quiz to be gone, got %v", err)
	}
}

func TestQuizStoreFindQuizzes(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewQuizStore(
		fixture.Content{Quiz: domain.Quiz{ID: "a", Title: "Alpha", OwnerID: "u1", IsPublic: true, CreatedAt: base}},
		fixture.Content{Quiz: domain.Quiz{ID: "b", Title: "Beta", OwnerID: "u2", IsPublic: true, CreatedAt: base.Add(time.Hour), TagIDs: []string{"t1"}}},
		fixture.Content{Quiz: domain.Quiz{ID: "c", Title: "Gamma", OwnerID: "u1", IsPublic: false, CreatedAt: base.Add(2 * time.Hour)}},
		fixture.Content{Quiz: domain.Quiz{ID: "d", Title: "Delta", OwnerID: "u3", IsPublic: true, CreatedAt: base.Add(time.Hour)}},
	)
	ctx := context.Background()

	all, total, _ := store.FindQuizzes(ctx, domain.QuizFilter{}, 0, 0)
	if total != 4 || ids(all) != "c,b,d,a" {
		t.Fatalf("expected newest first with id tie-break, got %s (total %d)", ids(all), total)
	}

	public := true
	page, total, _ := store.FindQuizzes(ctx, domain.QuizFilter{Public: &public}, 1, 1)
	if total != 3 || ids(page) != "d" {
		t.Fatalf("expected second public quiz, got %s (total %d)", ids(page), total)
	}

	tagged, _, _ := store.FindQuizzes(ctx, domain.QuizFilter{TagIDs: []string{"t1", "t9"}}, 0, 0)
	if ids(tagged) != "b" {
		t.Fatalf("expected tag match, got %s", ids(tagged))
	}

	excluded, _, _ := store.FindQuizzes(ctx, domain.QuizFilter{ExcludeOwnerID: "u1"}, 0, 0)
	if ids(excluded) != "b,d" {
		t.Fatalf("expected owner exclusion, got %s", ids(excluded))
	}

	beyond, total, _ := store.FindQuizzes(ctx, domain.QuizFilter{}, 10, 5)
	if len(beyond) != 0 || total != 4 {
		t.Fatalf("expected empty page past the end, got %d (total %d)", len(beyond), total)
	}
}

func ids(quizzes []domain.Quiz) string {
	out := ""
	for i, q := range quizzes {
		if i > 0 {
			out += ","
		}
		out += q.ID
	}
	return out
}
