package dtos

type ApplicationCreateRequest struct {
	Company     string `json:"company" binding:"required"`
	Position    string `json:"position" binding:"required"`
	DateApplied string `json:"date_applied" binding:"required,datetime=2006-01-02"`

	// Optional Fields
	Status          string `json:"status" binding:"omitempty,oneof=Applied Interviewing Offered Rejected"` // Defaults to "Applied" if empty
	ApplicationLink string `json:"application_link" binding:"omitempty,url"`
	Location        string `json:"location"`
	Source          string `json:"source"`
	Notes           string `json:"notes"`
}

type UpdateNotesRequest struct {
	Notes string `json:"notes"`
}

type FeedbackRequest struct {
	Type     string `json:"type" binding:"required,oneof=feature bug question other"`
	Feedback string `json:"feedback" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SignUpRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}
