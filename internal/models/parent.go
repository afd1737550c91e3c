package models

// RegisteredParent is a parent/student identity pair authorized to log in
// and submit feedback. StudentID is the natural key.
type RegisteredParent struct {
	StudentID   string `json:"studentId"`
	ParentName  string `json:"parentName"`
	ParentPhone string `json:"parentPhone"`
}

// ParentOverview decorates a registered parent with its submission summary
// for the admin list cards.
type ParentOverview struct {
	RegisteredParent
	TotalSubmissions int    `json:"total_submissions"`
	LastActive       string `json:"last_active"`
}

// RegisterParentRequest is the admin payload for registering a parent.
type RegisterParentRequest struct {
	StudentID   string `json:"studentId" validate:"required"`
	ParentName  string `json:"parentName" validate:"required"`
	ParentPhone string `json:"parentPhone" validate:"required"`
}
