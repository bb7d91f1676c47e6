package session

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/zulandar/podium/internal/models"
)

// Status describes where a session stands relative to an instant.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusActive     Status = "active"
	StatusEnded      Status = "ended"
)

// TimeRemaining is the countdown decomposition of the seconds left in a
// session, clamped to zero once the end time passes.
type TimeRemaining struct {
	Hours        int `json:"hours"`
	Minutes      int `json:"minutes"`
	Seconds      int `json:"seconds"`
	TotalSeconds int `json:"totalSeconds"`
}

// String formats the remaining time as HH:MM:SS.
func (tr TimeRemaining) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", tr.Hours, tr.Minutes, tr.Seconds)
}

// State holds the derived display values for a session at one instant.
// It is recomputed on every evaluation and never persisted.
type State struct {
	TimeRemaining TimeRemaining `json:"timeRemaining"`
	Progress      float64       `json:"progress"`
	Status        Status        `json:"status"`
}

// minuteOfDay parses an "HH:MM" time-of-day into minutes since midnight.
func minuteOfDay(v string) (int, error) {
	hh, mm, ok := strings.Cut(v, ":")
	if !ok {
		return 0, fmt.Errorf("session: time %q is not HH:MM", v)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("session: time %q has bad hour", v)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("session: time %q has bad minute", v)
	}
	return hour*60 + minute, nil
}

// At combines the calendar date of now with a stored "HH:MM" time-of-day.
// Sessions have no date component; they are always evaluated against today.
func At(now time.Time, timeOfDay string) (time.Time, error) {
	min, err := minuteOfDay(timeOfDay)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(now.Year(), now.Month(), now.Day(), min/60, min%60, 0, 0, now.Location()), nil
}

// DeriveState computes the countdown, progress and status for a session at
// the given instant. It is a pure function of (session, now): calling it
// twice with the same inputs yields identical results and never mutates the
// session.
func DeriveState(s *models.Session, now time.Time) State {
	start, serr := At(now, s.StartTime)
	end, eerr := At(now, s.EndTime)
	if serr != nil || eerr != nil {
		// Malformed times never pass the creation gate; render as not started.
		return State{Status: StatusNotStarted}
	}

	remaining := int(end.Sub(now) / time.Second)
	if remaining < 0 {
		remaining = 0
	}

	total := end.Sub(start)
	elapsed := now.Sub(start)
	var progress float64
	if total <= 0 {
		progress = 100
	} else {
		progress = float64(elapsed) / float64(total) * 100
		if progress < 0 {
			progress = 0
		}
		if progress > 100 {
			progress = 100
		}
	}

	status := StatusNotStarted
	switch {
	case remaining == 0:
		status = StatusEnded
	case s.Active:
		status = StatusActive
	}

	return State{
		TimeRemaining: TimeRemaining{
			Hours:        remaining / 3600,
			Minutes:      (remaining % 3600) / 60,
			Seconds:      remaining % 60,
			TotalSeconds: remaining,
		},
		Progress: progress,
		Status:   status,
	}
}
