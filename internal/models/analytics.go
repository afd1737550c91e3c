package models

import "time"

// LastActiveNever is the summary sentinel for parents with no submissions.
const LastActiveNever = "Never"

// ScorePoint is one submission projected onto the score timeline. DateLabel
// is the short month/day rendering used on the chart axis; Timestamp stays
// unformatted for tooltips and sort stability.
type ScorePoint struct {
	DateLabel  string             `json:"date"`
	Timestamp  time.Time          `json:"full_timestamp"`
	Score      int                `json:"score"`
	Submission FeedbackSubmission `json:"submission"`
}

// ParentSummary aggregates a parent's activity for the overview cards.
type ParentSummary struct {
	TotalSubmissions int    `json:"total_submissions"`
	LastActive       string `json:"last_active"`
}
