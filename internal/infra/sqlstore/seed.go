package sqlstore

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"quiz-engine-service/internal/fixture"
)

// Seed upserts quizzes with their tags, questions and answers. Existing content of a seeded quiz
// is replaced; its attempts are kept.
func Seed(ctx context.Context, db *bun.DB, content []fixture.Content) error {
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, c := range content {
			if err := seedQuiz(ctx, tx, c); err != nil {
				return fmt.Errorf("seed quiz %s: %w", c.Quiz.ID, err)
			}
		}
		return nil
	})
}

func seedQuiz(ctx context.Context, tx bun.Tx, c fixture.Content) error {
	quiz := fromQuiz(c.Quiz)
	_, err := tx.NewInsert().
		Model(&quiz).
		On("CONFLICT (id) DO UPDATE").
		Set("title = EXCLUDED.title").
		Set("description = EXCLUDED.description").
		Set("user_id = EXCLUDED.user_id").
		Set("is_public = EXCLUDED.is_public").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert quiz: %w", err)
	}

	if _, err := tx.NewDelete().Model((*quizTagModel)(nil)).Where("quiz_id = ?", quiz.ID).Exec(ctx); err != nil {
		return fmt.Errorf("clear tags: %w", err)
	}
	if _, err := tx.NewDelete().Model((*questionModel)(nil)).Where("quiz_id = ?", quiz.ID).Exec(ctx); err != nil {
		return fmt.Errorf("clear questions: %w", err)
	}

	for _, tagID := range c.Quiz.TagIDs {
		tag := tagModel{ID: tagID, Name: tagID}
		if _, err := tx.NewInsert().Model(&tag).On("CONFLICT (id) DO NOTHING").Exec(ctx); err != nil {
			return fmt.Errorf("insert tag: %w", err)
		}
		link := quizTagModel{QuizID: quiz.ID, TagID: tagID}
		if _, err := tx.NewInsert().Model(&link).On("CONFLICT (quiz_id, tag_id) DO NOTHING").Exec(ctx); err != nil {
			return fmt.Errorf("link tag: %w", err)
		}
	}

	if len(c.Questions) > 0 {
		questions := make([]questionModel, 0, len(c.Questions))
		for _, q := range c.Questions {
			questions = append(questions, questionModel{ID: q.ID, QuizID: quiz.ID, Text: q.Text, Order: q.Order, Points: q.Points})
		}
		if _, err := tx.NewInsert().Model(&questions).Exec(ctx); err != nil {
			return fmt.Errorf("insert questions: %w", err)
		}
	}

	if len(c.Answers) > 0 {
		answers := make([]answerModel, 0, len(c.Answers))
		for _, a := range c.Answers {
			answers = append(answers, answerModel{ID: a.ID, QuestionID: a.QuestionID, Text: a.Text, IsCorrect: a.IsCorrect, Order: a.Order})
		}
		if _, err := tx.NewInsert().Model(&answers).Exec(ctx); err != nil {
			return fmt.Errorf("insert answers: %w", err)
		}
	}
	return nil
}
