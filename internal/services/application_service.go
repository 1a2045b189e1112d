package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/tracklet-app/tracklet/internal/dtos"
	"github.com/tracklet-app/tracklet/internal/models"
)

var (
	// ErrUnauthenticated is returned when an operation is attempted without a
	// resolved identity. Callers must not confuse this with an empty result.
	ErrUnauthenticated = errors.New("no authenticated identity")

	// ErrNotFound is returned when no row matches both the id and the caller.
	ErrNotFound = errors.New("application not found")
)

// ApplicationService performs create/read/update/delete against the
// applications table. Every query is scoped to the owning user.
type ApplicationService struct {
	DB *gorm.DB
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{DB: db}
}

// List returns the caller's applications, newest first. A zero limit returns
// all rows. A user with no applications gets an empty slice, not an error.
func (s *ApplicationService) List(ctx context.Context, userID string, limit int) ([]models.Application, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	q := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	apps := []models.Application{}
	if err := q.Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}

// GetByID returns a single application. The lookup is scoped by user_id as
// well as id, so one user can never read another's row.
func (s *ApplicationService) GetByID(ctx context.Context, userID, id string) (*models.Application, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	var app models.Application
	err := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get application: %w", err)
	}
	return &app, nil
}

// Create inserts a new application owned by the caller. The owning user id
// always comes from the session, never from the request body.
func (s *ApplicationService) Create(ctx context.Context, userID string, req *dtos.ApplicationCreateRequest) (*models.Application, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	status := req.Status
	if status == "" {
		status = models.DefaultStatus
	}
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("invalid status %q", status)
	}

	dateApplied, err := time.Parse("2006-01-02", req.DateApplied)
	if err != nil {
		return nil, fmt.Errorf("invalid date_applied: %w", err)
	}

	app := &models.Application{
		UserID:          userID,
		Company:         req.Company,
		Position:        req.Position,
		Status:          status,
		DateApplied:     dateApplied,
		ApplicationLink: req.ApplicationLink,
		Location:        req.Location,
		Source:          req.Source,
		Notes:           req.Notes,
	}
	if err := s.DB.WithContext(ctx).Create(app).Error; err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}
	return app, nil
}

// UpdateNotes updates only the notes column on the caller's row.
func (s *ApplicationService) UpdateNotes(ctx context.Context, userID, id, notes string) error {
	if userID == "" {
		return ErrUnauthenticated
	}

	res := s.DB.WithContext(ctx).
		Model(&models.Application{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("notes", notes)
	if res.Error != nil {
		return fmt.Errorf("update notes: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the caller's row permanently.
func (s *ApplicationService) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return ErrUnauthenticated
	}

	res := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Application{})
	if res.Error != nil {
		return fmt.Errorf("delete application: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
