package janitor

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/zulandar/podium/internal/messaging"
	"github.com/zulandar/podium/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB creates an in-memory SQLite database with the message table.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Message{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// broadcastAt creates a message and rewrites its creation time.
func broadcastAt(t *testing.T, db *gorm.DB, content string, createdAt time.Time) *models.Message {
	t.Helper()
	msg, err := messaging.Broadcast(db, content)
	if err != nil {
		t.Fatalf("broadcast %q: %v", content, err)
	}
	if err := db.Model(&models.Message{}).Where("id = ?", msg.ID).
		Update("created_at", createdAt).Error; err != nil {
		t.Fatalf("backdate %q: %v", content, err)
	}
	return msg
}

func TestNew_Validation(t *testing.T) {
	db := testDB(t)

	if _, err := New(Opts{Schedule: "0 4 * * *", Retention: time.Hour}); err == nil {
		t.Error("New() without db should fail")
	}
	if _, err := New(Opts{DB: db, Schedule: "0 4 * * *"}); err == nil {
		t.Error("New() without retention should fail")
	}
	if _, err := New(Opts{DB: db, Schedule: "not a cron", Retention: time.Hour}); err == nil {
		t.Error("New() with a bad schedule should fail")
	}
	if _, err := New(Opts{DB: db, Schedule: "0 4 * * *", Retention: time.Hour}); err != nil {
		t.Errorf("New() error = %v", err)
	}
}

func TestSweep(t *testing.T) {
	db := testDB(t)
	now := time.Date(2026, time.March, 10, 4, 0, 0, 0, time.UTC)

	stale := broadcastAt(t, db, "yesterday's notice", now.Add(-30*time.Hour))
	recent := broadcastAt(t, db, "this morning", now.Add(-2*time.Hour))

	// Already-hidden messages are not counted again.
	hidden := broadcastAt(t, db, "long hidden", now.Add(-48*time.Hour))
	if err := messaging.Hide(db, hidden.ID); err != nil {
		t.Fatalf("hide: %v", err)
	}

	j, err := New(Opts{DB: db, Schedule: "0 4 * * *", Retention: 24 * time.Hour})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	n, err := j.Sweep(now)
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Sweep() hid %d messages, want 1", n)
	}

	feed, err := messaging.Visible(db)
	if err != nil {
		t.Fatalf("Visible() error = %v", err)
	}
	if len(feed) != 1 || feed[0].ID != recent.ID {
		t.Errorf("feed after sweep = %+v, want only %d", feed, recent.ID)
	}

	// The stale message is hidden, not deleted.
	var count int64
	db.Model(&models.Message{}).Where("id = ?", stale.ID).Count(&count)
	if count != 1 {
		t.Error("sweep should hide, not delete")
	}
}

func TestSweep_EmptyStore(t *testing.T) {
	j, err := New(Opts{DB: testDB(t), Schedule: "0 4 * * *", Retention: 24 * time.Hour})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	n, err := j.Sweep(time.Now())
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}
	if n != 0 {
		t.Errorf("Sweep() hid %d messages, want 0", n)
	}
}

func TestRun_SweepsOnSchedule(t *testing.T) {
	db := testDB(t)
	start := time.Date(2026, time.March, 10, 3, 59, 0, 0, time.Local)
	broadcastAt(t, db, "stale", start.Add(-48*time.Hour))

	clk := clockwork.NewFakeClockAt(start)
	j, err := New(Opts{DB: db, Clock: clk, Schedule: "0 4 * * *", Retention: 24 * time.Hour})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		j.Run(ctx)
		close(done)
	}()

	// Fire the 04:00 sweep.
	clk.BlockUntil(1)
	clk.Advance(time.Minute)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		feed, err := messaging.Visible(db)
		if err != nil {
			t.Fatalf("Visible() error = %v", err)
		}
		if len(feed) == 0 {
			cancel()
			<-done
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("scheduled sweep never hid the stale message")
}
