// Package janitor retires stale announcements on a cron schedule so old
// notices don't linger on displays across days.
package janitor

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"
	"github.com/zulandar/podium/internal/models"
	"gorm.io/gorm"
)

// cronParser uses standard 5-field cron expressions (minute, hour, dom, month, dow).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Janitor hides visible messages older than the retention period.
type Janitor struct {
	db        *gorm.DB
	clock     clockwork.Clock
	schedule  cron.Schedule
	retention time.Duration
}

// Opts holds parameters for creating a Janitor.
type Opts struct {
	DB        *gorm.DB
	Clock     clockwork.Clock // defaults to the real clock
	Schedule  string          // 5-field cron expression
	Retention time.Duration   // messages older than this are hidden
}

// New creates a Janitor.
func New(opts Opts) (*Janitor, error) {
	if opts.DB == nil {
		return nil, fmt.Errorf("janitor: db is required")
	}
	if opts.Retention <= 0 {
		return nil, fmt.Errorf("janitor: retention must be positive")
	}
	sched, err := cronParser.Parse(opts.Schedule)
	if err != nil {
		return nil, fmt.Errorf("janitor: parse schedule %q: %w", opts.Schedule, err)
	}
	clk := opts.Clock
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	return &Janitor{
		db:        opts.DB,
		clock:     clk,
		schedule:  sched,
		retention: opts.Retention,
	}, nil
}

// Sweep hides every visible message created before now minus the retention
// period. It returns the number of messages hidden. Messages stay in the
// store; only their visibility changes.
func (j *Janitor) Sweep(now time.Time) (int64, error) {
	cutoff := now.Add(-j.retention)
	result := j.db.Model(&models.Message{}).
		Where("is_visible = ? AND created_at < ?", true, cutoff).
		Update("is_visible", false)
	if result.Error != nil {
		return 0, fmt.Errorf("janitor: sweep: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// Run sweeps on the configured schedule until ctx is cancelled. Sweep
// failures are logged; the schedule keeps running.
func (j *Janitor) Run(ctx context.Context) {
	for {
		now := j.clock.Now()
		timer := j.clock.NewTimer(j.schedule.Next(now).Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.Chan():
		}

		n, err := j.Sweep(j.clock.Now())
		if err != nil {
			log.Printf("janitor: %v", err)
			continue
		}
		if n > 0 {
			log.Printf("janitor: hid %d stale messages", n)
		}
	}
}
