// Package session provides the timed-session store operations and the pure
// countdown derivation used by every viewer.
package session

import (
	"errors"
	"fmt"

	"github.com/zulandar/podium/internal/models"
	"gorm.io/gorm"
)

// Sentinel errors surfaced to the control surface. Validation errors block a
// single mutating action; none of them are fatal to the process.
var (
	ErrMissingField = errors.New("session: start and end times are required")
	ErrInvalidRange = errors.New("session: end time must be after start time")
	ErrNotFound     = errors.New("session: not found")
)

// Validate checks a start/end time-of-day pair before it reaches the store.
// The comparison is same-day only; overnight sessions are not supported.
func Validate(start, end string) error {
	if start == "" || end == "" {
		return ErrMissingField
	}
	startMin, err := minuteOfDay(start)
	if err != nil {
		return fmt.Errorf("%w: start %q", ErrInvalidRange, start)
	}
	endMin, err := minuteOfDay(end)
	if err != nil {
		return fmt.Errorf("%w: end %q", ErrInvalidRange, end)
	}
	if endMin <= startMin {
		return ErrInvalidRange
	}
	return nil
}

// Create validates and persists a new session. Sessions that fail validation
// are never persisted.
func Create(db *gorm.DB, title, start, end string, active bool) (*models.Session, error) {
	if err := Validate(start, end); err != nil {
		return nil, err
	}

	s := models.Session{
		Title:     title,
		StartTime: start,
		EndTime:   end,
		Active:    active,
	}
	if err := db.Create(&s).Error; err != nil {
		return nil, fmt.Errorf("session: create: %w", err)
	}
	return &s, nil
}

// List returns all sessions, newest first.
func List(db *gorm.DB) ([]models.Session, error) {
	var sessions []models.Session
	if err := db.Order("created_at DESC").Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("session: list: %w", err)
	}
	return sessions, nil
}

// Active returns the displayed session: the first record flagged active.
// The store does not enforce single-active, so zero or many active rows are
// both tolerated — none yields (nil, nil), extras are ignored.
func Active(db *gorm.DB) (*models.Session, error) {
	var s models.Session
	err := db.Where("active = ?", true).Order("id ASC").First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session: active: %w", err)
	}
	return &s, nil
}

// UpdateOpts holds optional fields for updating a session. Nil fields are
// left unchanged.
type UpdateOpts struct {
	Title     *string
	StartTime *string
	EndTime   *string
	Active    *bool
}

// Update applies the given fields to a session. The resulting start/end pair
// is re-validated so an update can never leave an inverted range behind.
func Update(db *gorm.DB, id uint, opts UpdateOpts) (*models.Session, error) {
	var s models.Session
	if err := db.First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("session: update %d: %w", id, err)
	}

	if opts.Title != nil {
		s.Title = *opts.Title
	}
	if opts.StartTime != nil {
		s.StartTime = *opts.StartTime
	}
	if opts.EndTime != nil {
		s.EndTime = *opts.EndTime
	}
	if opts.Active != nil {
		s.Active = *opts.Active
	}

	if err := Validate(s.StartTime, s.EndTime); err != nil {
		return nil, err
	}
	if err := db.Save(&s).Error; err != nil {
		return nil, fmt.Errorf("session: update %d: %w", id, err)
	}
	return &s, nil
}

// Delete removes a session.
func Delete(db *gorm.DB, id uint) error {
	result := db.Delete(&models.Session{}, id)
	if result.Error != nil {
		return fmt.Errorf("session: delete %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Reset deactivates all sessions, returning the display to the no-session
// state. Returns how many rows were deactivated.
func Reset(db *gorm.DB) (int64, error) {
	result := db.Model(&models.Session{}).Where("active = ?", true).
		Update("active", false)
	if result.Error != nil {
		return 0, fmt.Errorf("session: reset: %w", result.Error)
	}
	return result.RowsAffected, nil
}
