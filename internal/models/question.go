package models

// Question is one entry of the feedback form. Questions are never hard
// deleted; disabling is done by toggling Active.
type Question struct {
	ID     string `json:"id"`
	TextAm string `json:"textAm"`
	TextEn string `json:"textEn"`
	Active bool   `json:"active"`
}

// CreateQuestionRequest is the admin payload for adding a question.
type CreateQuestionRequest struct {
	TextAm string `json:"textAm" validate:"required"`
	TextEn string `json:"textEn" validate:"required"`
}
