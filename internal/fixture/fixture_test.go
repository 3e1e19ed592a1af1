package fixture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleParses(t *testing.T) {
	content := Sample()
	require.Len(t, content, 2)

	first := content[0]
	assert.Equal(t, "quiz-1", first.Quiz.ID)
	assert.True(t, first.Quiz.IsPublic)
	assert.Equal(t, []string{"math"}, first.Quiz.TagIDs)
	require.Len(t, first.Questions, 2)
	assert.Equal(t, 0, first.Questions[0].Order)
	assert.Equal(t, 1, first.Questions[1].Order)
	assert.Len(t, first.Answers, 5)
}

func TestParseDefaults(t *testing.T) {
	content, err := Parse([]byte(`
quizzes:
  - title: Untitled ids
    owner_id: u1
    questions:
      - text: Pick one
        answers:
          - text: yes
            correct: true
          - text: no
`))
	require.NoError(t, err)
	require.Len(t, content, 1)

	c := content[0]
	assert.NotEmpty(t, c.Quiz.ID)
	assert.False(t, c.Quiz.CreatedAt.IsZero())
	require.Len(t, c.Questions, 1)
	assert.Equal(t, 1, c.Questions[0].Points)
	require.Len(t, c.Answers, 2)
	assert.Equal(t, c.Questions[0].ID, c.Answers[1].QuestionID)
	assert.Equal(t, 1, c.Answers[1].Order)
}

func TestParseRejectsMissingOwner(t *testing.T) {
	_, err := Parse([]byte("quizzes:\n  - title: Orphan\n"))
	assert.Error(t, err)
}

func TestParseKeepsExplicitZeroPoints(t *testing.T) {
	content, err := Parse([]byte(`
quizzes:
  - title: Warm-up
    owner_id: u1
    questions:
      - text: Free question
        points: 0
        answers:
          - {text: ok, correct: true}
      - text: Counted question
        answers:
          - {text: ok, correct: true}
`))
	require.NoError(t, err)
	require.Len(t, content[0].Questions, 2)
	assert.Equal(t, 0, content[0].Questions[0].Points)
	assert.Equal(t, 1, content[0].Questions[1].Points)
}

func TestParseRejectsNegativePoints(t *testing.T) {
	_, err := Parse([]byte("quizzes:\n  - title: Bad\n    owner_id: u1\n    questions:\n      - text: q\n        points: -2\n"))
	assert.Error(t, err)
}
