package models

import "time"

// Answer is one of the two allowed feedback values.
type Answer string

const (
	AnswerWellDone Answer = "well_done"
	AnswerNotDone  Answer = "not_done"
)

// Valid reports whether the answer is one of the two allowed values.
func (a Answer) Valid() bool {
	return a == AnswerWellDone || a == AnswerNotDone
}

// UnknownQuestionText is substituted when a submitted answer references a
// question id that no longer resolves.
const UnknownQuestionText = "Unknown Question"

// SubmissionResponse is a single answered question. QuestionText is a
// snapshot taken at submission time, not a live reference, so later edits to
// the question do not alter history.
type SubmissionResponse struct {
	QuestionID   string `json:"questionId"`
	QuestionText string `json:"questionText"`
	Answer       Answer `json:"answer"`
}

// SubmitFeedbackRequest maps question ids to the chosen answers. The parent
// identity is taken from the access token, not the payload.
type SubmitFeedbackRequest struct {
	Answers map[string]Answer `json:"answers" validate:"required"`
}

// FeedbackSubmission is an immutable record of one completed feedback form.
type FeedbackSubmission struct {
	ID         string               `json:"id"`
	ParentID   string               `json:"parentId"`
	ParentName string               `json:"parentName"`
	Date       time.Time            `json:"date"`
	Responses  []SubmissionResponse `json:"responses"`
}

// WellDoneCount returns how many responses were marked well_done.
func (s FeedbackSubmission) WellDoneCount() int {
	count := 0
	for _, r := range s.Responses {
		if r.Answer == AnswerWellDone {
			count++
		}
	}
	return count
}

// Score is the percentage of well_done responses, rounded to the nearest
// integer, 0 when the submission has no responses.
func (s FeedbackSubmission) Score() int {
	total := len(s.Responses)
	if total == 0 {
		return 0
	}
	return int(float64(s.WellDoneCount())/float64(total)*100 + 0.5)
}
