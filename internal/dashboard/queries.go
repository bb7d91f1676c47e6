package dashboard

import (
	"time"

	"github.com/zulandar/podium/internal/messaging"
	"github.com/zulandar/podium/internal/models"
	"github.com/zulandar/podium/internal/session"
	"gorm.io/gorm"
)

// SessionView is the JSON shape of a session returned by the API.
type SessionView struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MessageView is the JSON shape of a feed message.
type MessageView struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	IsVisible bool      `json:"isVisible"`
	CreatedAt time.Time `json:"createdAt"`
}

// freshWindow is how long a just-arrived announcement reads as fresh in a
// stateless state snapshot. SSE clients get exact per-connection freshness
// from the message event instead.
const freshWindow = 5 * time.Second

// DisplayState bundles everything a display needs for one instant: the
// active session (if any), the values derived from it, and the feed head.
type DisplayState struct {
	Now          time.Time      `json:"now"`
	Session      *SessionView   `json:"session"`
	State        *session.State `json:"state"`
	Message      *MessageView   `json:"message"`
	MessageFresh bool           `json:"messageFresh"`
}

func sessionView(s *models.Session) *SessionView {
	return &SessionView{
		ID:        s.ID,
		Title:     s.Title,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func messageView(m *models.Message) *MessageView {
	return &MessageView{
		ID:        m.ID,
		Content:   m.Content,
		IsVisible: m.IsVisible,
		CreatedAt: m.CreatedAt,
	}
}

// CurrentState assembles the display state at now. A missing active session
// yields nil session and state; the display falls back to its idle view.
func CurrentState(db *gorm.DB, now time.Time) (DisplayState, error) {
	ds := DisplayState{Now: now}

	s, err := session.Active(db)
	if err != nil {
		return ds, err
	}
	if s != nil {
		st := session.DeriveState(s, now)
		ds.Session = sessionView(s)
		ds.State = &st
	}

	feed, err := messaging.Visible(db)
	if err != nil {
		return ds, err
	}
	if head := messaging.Current(feed); head != nil {
		ds.Message = messageView(head)
		age := now.Sub(head.CreatedAt)
		ds.MessageFresh = age >= 0 && age < freshWindow
	}
	return ds, nil
}
