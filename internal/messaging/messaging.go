// Package messaging provides the operator announcement feed.
package messaging

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zulandar/podium/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrEmptyContent rejects blank announcements before they reach the store.
	ErrEmptyContent = errors.New("messaging: content is required")
	// ErrNotFound is returned when a delete/update targets a missing message.
	ErrNotFound = errors.New("messaging: not found")
)

// Broadcast appends a visible announcement to the feed.
func Broadcast(db *gorm.DB, content string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	msg := models.Message{
		Content:   content,
		IsVisible: true,
	}
	if err := db.Create(&msg).Error; err != nil {
		return nil, fmt.Errorf("messaging: broadcast: %w", err)
	}
	return &msg, nil
}

// Visible returns the feed viewers consume: visible messages, newest first.
func Visible(db *gorm.DB) ([]models.Message, error) {
	var msgs []models.Message
	if err := db.Where("is_visible = ?", true).
		Order("created_at DESC, id DESC").Find(&msgs).Error; err != nil {
		return nil, fmt.Errorf("messaging: visible: %w", err)
	}
	return msgs, nil
}

// Current returns the feed head — the newest visible message — or nil for
// an empty feed.
func Current(feed []models.Message) *models.Message {
	if len(feed) == 0 {
		return nil
	}
	return &feed[0]
}

// Delete hard-removes a message from the store.
func Delete(db *gorm.DB, id uint) error {
	result := db.Delete(&models.Message{}, id)
	if result.Error != nil {
		return fmt.Errorf("messaging: delete %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Hide soft-deletes a message. Hidden messages disappear from subsequent
// polls but remain in the store.
func Hide(db *gorm.DB, id uint) error {
	result := db.Model(&models.Message{}).Where("id = ?", id).
		Update("is_visible", false)
	if result.Error != nil {
		return fmt.Errorf("messaging: hide %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateOpts holds optional fields for editing a message. Nil fields are
// left unchanged.
type UpdateOpts struct {
	Content   *string
	IsVisible *bool
}

// Update edits a message's content or visibility.
func Update(db *gorm.DB, id uint, opts UpdateOpts) (*models.Message, error) {
	var msg models.Message
	if err := db.First(&msg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("messaging: update %d: %w", id, err)
	}

	if opts.Content != nil {
		if strings.TrimSpace(*opts.Content) == "" {
			return nil, ErrEmptyContent
		}
		msg.Content = *opts.Content
	}
	if opts.IsVisible != nil {
		msg.IsVisible = *opts.IsVisible
	}

	if err := db.Save(&msg).Error; err != nil {
		return nil, fmt.Errorf("messaging: update %d: %w", id, err)
	}
	return &msg, nil
}
