package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Application statuses. The set is closed: the creation path rejects
// anything outside it.
const (
	StatusApplied      = "Applied"
	StatusInterviewing = "Interviewing"
	StatusOffered      = "Offered"
	StatusRejected     = "Rejected"
)

// DefaultStatus is assigned when a new application carries no status.
const DefaultStatus = StatusApplied

// Statuses lists every valid application status.
var Statuses = []string{StatusApplied, StatusInterviewing, StatusOffered, StatusRejected}

// ValidStatus reports whether s is one of the enumerated statuses.
func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Application is a single tracked job application, owned by exactly one user.
// CreatedAt is the sole sort key for listings (newest first).
type Application struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Every read and write is scoped by UserID; it never changes after creation.
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`

	Company  string `gorm:"not null" json:"company"`
	Position string `gorm:"not null" json:"position"`
	Status   string `gorm:"not null" json:"status"`

	DateApplied time.Time `gorm:"type:date" json:"date_applied"`

	ApplicationLink string `json:"application_link,omitempty"`
	Location        string `json:"location,omitempty"`
	Source          string `json:"source,omitempty"`
	Notes           string `gorm:"type:text" json:"notes,omitempty"`
}

// BeforeCreate assigns the row id.
func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// Profile mirrors one authenticated identity. Read-only here; rows are
// maintained by the auth service.
type Profile struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}
