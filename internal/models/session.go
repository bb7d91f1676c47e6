package models

import "time"

// Session is one configured timed class or meeting. StartTime and EndTime
// are wall-clock times of day ("HH:MM", no date component) interpreted
// against the current calendar date at evaluation time. At most one session
// is expected to be active system-wide, but the store does not enforce it;
// consumers pick the first active record and ignore the rest.
type Session struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Title     string `gorm:"size:256"`
	StartTime string `gorm:"size:5;not null"`
	EndTime   string `gorm:"size:5;not null"`
	Active    bool   `gorm:"default:false;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
