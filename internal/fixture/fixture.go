// Package fixture reads quiz content from YAML documents. It backs the seed command
// and the in-memory store used when no database is configured.
package fixture

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"quiz-engine-service/internal/domain"
)

//go:embed sample.yaml
var sampleYAML []byte

// Document is the root of a fixture file.
type Document struct {
	Quizzes []Quiz `yaml:"quizzes"`
}

type Quiz struct {
	ID          string     `yaml:"id"`
	Title       string     `yaml:"title"`
	Description *string    `yaml:"description"`
	OwnerID     string     `yaml:"owner_id"`
	Public      bool       `yaml:"public"`
	Tags        []string   `yaml:"tags"`
	CreatedAt   time.Time  `yaml:"created_at"`
	Questions   []Question `yaml:"questions"`
}

type Question struct {
	ID      string   `yaml:"id"`
	Text    string   `yaml:"text"`
	Points  *int     `yaml:"points"`
	Answers []Answer `yaml:"answers"`
}

type Answer struct {
	ID      string `yaml:"id"`
	Text    string `yaml:"text"`
	Correct bool   `yaml:"correct"`
}

// Content is a quiz split into the records the stores keep.
type Content struct {
	Quiz      domain.Quiz
	Questions []domain.Question
	Answers   []domain.Answer
}

// Load parses a fixture file.
func Load(path string) ([]Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Sample returns the quizzes bundled with the binary.
func Sample() []Content {
	content, err := Parse(sampleYAML)
	if err != nil {
		panic(fmt.Sprintf("fixture: bundled sample is invalid: %v", err))
	}
	return content
}

// Parse converts a YAML document into store records. Display order follows document order,
// missing ids are generated and missing timestamps default to now.
func Parse(data []byte) ([]Content, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}

	now := time.Now().UTC()
	out := make([]Content, 0, len(doc.Quizzes))
	for i, q := range doc.Quizzes {
		if q.Title == "" {
			return nil, fmt.Errorf("quiz %d: missing title", i)
		}
		if q.OwnerID == "" {
			return nil, fmt.Errorf("quiz %q: missing owner_id", q.Title)
		}

		created := q.CreatedAt
		if created.IsZero() {
			created = now
		}
		quiz := domain.Quiz{
			ID:          orNewID(q.ID),
			Title:       q.Title,
			Description: q.Description,
			OwnerID:     q.OwnerID,
			IsPublic:    q.Public,
			TagIDs:      q.Tags,
			CreatedAt:   created,
			UpdatedAt:   created,
		}

		content := Content{Quiz: quiz}
		for qi, question := range q.Questions {
			dq := domain.Question{
				ID:     orNewID(question.ID),
				QuizID: quiz.ID,
				Text:   question.Text,
				Order:  qi,
				Points: domain.DefaultPoints,
			}
			if question.Points != nil {
				if *question.Points < 0 {
					return nil, fmt.Errorf("quiz %q question %d: negative points", q.Title, qi)
				}
				dq.Points = *question.Points
			}
			content.Questions = append(content.Questions, dq)
			for ai, answer := range question.Answers {
				content.Answers = append(content.Answers, domain.Answer{
					ID:         orNewID(answer.ID),
					QuestionID: dq.ID,
					Text:       answer.Text,
					IsCorrect:  answer.Correct,
					Order:      ai,
				})
			}
		}
		out = append(out, content)
	}
	return out, nil
}

func orNewID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}
