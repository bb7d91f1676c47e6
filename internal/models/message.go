package models

import "time"

// Message is an operator announcement broadcast to all viewers. Messages are
// append-only; deletion either removes the row or flips IsVisible, and both
// make the message disappear from subsequent polls. The feed consumed by
// viewers is always ordered newest-first.
type Message struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Content   string `gorm:"type:text;not null"`
	IsVisible bool   `gorm:"default:true;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
