package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func scored(answers ...Answer) FeedbackSubmission {
	responses := make([]SubmissionResponse, 0, len(answers))
	for _, a := range answers {
		responses = append(responses, SubmissionResponse{QuestionID: "q1", Answer: a})
	}
	return FeedbackSubmission{Responses: responses}
}

func TestScoreRounding(t *testing.T) {
	cases := []struct {
		name string
		sub  FeedbackSubmission
		want int
	}{
		{"no responses scores zero", scored(), 0},
		{"one of three rounds down", scored(AnswerWellDone, AnswerNotDone, AnswerNotDone), 33},
		{"two of three rounds up", scored(AnswerWellDone, AnswerWellDone, AnswerNotDone), 67},
		{"half is exact", scored(AnswerWellDone, AnswerNotDone), 50},
		{"all well done", scored(AnswerWellDone, AnswerWellDone), 100},
		{"none well done", scored(AnswerNotDone), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.sub.Score())
		})
	}
}

func TestWellDoneCount(t *testing.T) {
	assert.Equal(t, 0, scored().WellDoneCount())
	assert.Equal(t, 2, scored(AnswerWellDone, AnswerNotDone, AnswerWellDone).WellDoneCount())
}

func TestAnswerValid(t *testing.T) {
	assert.True(t, AnswerWellDone.Valid())
	assert.True(t, AnswerNotDone.Valid())
	assert.False(t, Answer("maybe").Valid())
	assert.False(t, Answer("").Valid())
}
