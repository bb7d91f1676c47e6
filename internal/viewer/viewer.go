// Package viewer implements the per-viewer sync poller: a recurring process
// that re-fetches session and message state from the store and derives the
// countdown frame a display renders.
package viewer

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/zulandar/podium/internal/messaging"
	"github.com/zulandar/podium/internal/models"
	"github.com/zulandar/podium/internal/session"
	"gorm.io/gorm"
)

// Default cadences. The tick recomputes derived values from the cached
// snapshot without touching the store; the fetch intervals control how
// quickly a viewer notices control-surface changes.
const (
	DefaultTick        = 1 * time.Second
	DefaultSessionPoll = 2 * time.Second
	DefaultMessagePoll = 5 * time.Second
	DefaultFreshWindow = 5 * time.Second
)

// Frame is one rendered evaluation: everything a display needs at a single
// instant. Frames are value snapshots; later polls never mutate an emitted
// frame.
type Frame struct {
	Now          time.Time
	HasSession   bool
	Session      models.Session
	State        session.State
	Message      *models.Message
	MessageFresh bool
}

// Opts holds parameters for creating a Viewer.
type Opts struct {
	DB          *gorm.DB
	Clock       clockwork.Clock // defaults to the real clock
	Tick        time.Duration
	SessionPoll time.Duration
	MessagePoll time.Duration
	FreshWindow time.Duration
}

// Viewer owns one display's poll state: the most recently fetched session
// and feed snapshots plus the freshness tracker. All mutation happens on
// the Run goroutine or under the snapshot lock; fetch failures leave the
// previous snapshot in place.
type Viewer struct {
	db          *gorm.DB
	clock       clockwork.Clock
	tick        time.Duration
	sessionPoll time.Duration
	messagePoll time.Duration
	freshWindow time.Duration

	mu         sync.Mutex
	sess       *models.Session
	feed       []models.Message
	tracker    messaging.Tracker
	freshUntil time.Time
}

// New creates a Viewer.
func New(opts Opts) (*Viewer, error) {
	if opts.DB == nil {
		return nil, fmt.Errorf("viewer: db is required")
	}
	clk := opts.Clock
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	v := &Viewer{
		db:          opts.DB,
		clock:       clk,
		tick:        opts.Tick,
		sessionPoll: opts.SessionPoll,
		messagePoll: opts.MessagePoll,
		freshWindow: opts.FreshWindow,
	}
	if v.tick <= 0 {
		v.tick = DefaultTick
	}
	if v.sessionPoll <= 0 {
		v.sessionPoll = DefaultSessionPoll
	}
	if v.messagePoll <= 0 {
		v.messagePoll = DefaultMessagePoll
	}
	if v.freshWindow <= 0 {
		v.freshWindow = DefaultFreshWindow
	}
	return v, nil
}

// PollSession re-fetches the active session. On error the previous snapshot
// is retained and the error is returned for logging; the next scheduled poll
// retries.
func (v *Viewer) PollSession() error {
	s, err := session.Active(v.db)
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.sess = s
	v.mu.Unlock()
	return nil
}

// PollMessages re-fetches the visible feed and advances the freshness
// tracker. Like PollSession, a fetch error leaves the prior feed displayed.
func (v *Viewer) PollMessages() error {
	feed, err := messaging.Visible(v.db)
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.feed = feed
	if v.tracker.Observe(feed) {
		v.freshUntil = v.clock.Now().Add(v.freshWindow)
	}
	v.mu.Unlock()
	return nil
}

// Frame derives the current display frame from the cached snapshot. It
// performs no I/O and is safe to call on every tick even while fetches are
// failing.
func (v *Viewer) Frame() Frame {
	v.mu.Lock()
	defer v.mu.Unlock()

	now := v.clock.Now()
	f := Frame{Now: now}
	if v.sess != nil {
		f.HasSession = true
		f.Session = *v.sess
		f.State = session.DeriveState(v.sess, now)
	}
	if head := messaging.Current(v.feed); head != nil {
		m := *head
		f.Message = &m
		f.MessageFresh = now.Before(v.freshUntil)
	}
	return f
}

// Run starts the poll loop: an initial fetch of both kinds, then three
// recurring timers — the derivation tick and the two fetch cadences. Frames
// are sent on the returned channel, which is closed when ctx is cancelled.
// The tick path never blocks on the store.
func (v *Viewer) Run(ctx context.Context) <-chan Frame {
	ch := make(chan Frame, 16)
	go func() {
		defer close(ch)

		if err := v.PollSession(); err != nil {
			log.Printf("viewer: session fetch: %v", err)
		}
		if err := v.PollMessages(); err != nil {
			log.Printf("viewer: message fetch: %v", err)
		}

		emit := func(f Frame) bool {
			select {
			case ch <- f:
				return true
			case <-ctx.Done():
				return false
			}
		}
		if !emit(v.Frame()) {
			return
		}

		tick := v.clock.NewTicker(v.tick)
		defer tick.Stop()
		sessTicker := v.clock.NewTicker(v.sessionPoll)
		defer sessTicker.Stop()
		msgTicker := v.clock.NewTicker(v.messagePoll)
		defer msgTicker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-tick.Chan():
				if !emit(v.Frame()) {
					return
				}
			case <-sessTicker.Chan():
				if err := v.PollSession(); err != nil {
					log.Printf("viewer: session fetch: %v", err)
				}
			case <-msgTicker.Chan():
				if err := v.PollMessages(); err != nil {
					log.Printf("viewer: message fetch: %v", err)
				}
			}
		}
	}()
	return ch
}
