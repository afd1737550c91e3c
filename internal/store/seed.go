package store

import "github.com/dreamstars/feedback-api/internal/models"

// seedQuestions returns the two default feedback questions used on first
// boot when no questions snapshot exists.
func seedQuestions() []models.Question {
	return []models.Question{
		{
			ID:     "q1",
			TextAm: "የልጅዎ የዛሬ ተግባራት እንቅስቃሴ እንዴት ነበር?",
			TextEn: "How was your son's progress in today's activities?",
			Active: true,
		},
		{
			ID:     "q2",
			TextAm: "የኩባንያችን አጠቃላይ አገልግሎት ዛሬ እንዴት ነበር?",
			TextEn: "How was our company's overall service today?",
			Active: true,
		},
	}
}

// seedParents returns the demo registered parent used on first boot.
func seedParents() []models.RegisteredParent {
	return []models.RegisteredParent{
		{StudentID: "DSV1234", ParentName: "Demo Parent", ParentPhone: "0911223344"},
	}
}
