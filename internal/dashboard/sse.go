package dashboard

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/zulandar/podium/internal/messaging"
	"gorm.io/gorm"
)

// messageEvent holds data for a fresh-announcement SSE event.
type messageEvent struct {
	ID      uint   `json:"id"`
	Content string `json:"content"`
	Count   int    `json:"count"`
}

// handleSSE streams the display loop over server-sent events: a state frame
// every derivation tick, a message event when the feed head changes, and a
// periodic heartbeat. The stream is the push-flavored twin of GET /api/state;
// a display can consume either.
func handleSSE(db *gorm.DB, clk clockwork.Clock) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")
		c.Header("X-Accel-Buffering", "no")

		// Send connected event.
		writeSSE(c.Writer, "connected", map[string]string{"type": "connected"})
		c.Writer.Flush()

		// If no DB, just send connected and return — tests use nil DB.
		if db == nil {
			return
		}

		var tracker messaging.Tracker

		ctx := c.Request.Context()
		tick := clk.NewTicker(time.Second)
		feedTick := clk.NewTicker(5 * time.Second)
		heartbeat := clk.NewTicker(15 * time.Second)
		defer tick.Stop()
		defer feedTick.Stop()
		defer heartbeat.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-heartbeat.Chan():
				writeSSE(c.Writer, "heartbeat", map[string]string{
					"timestamp": clk.Now().UTC().Format(time.RFC3339),
				})
				c.Writer.Flush()
			case <-tick.Chan():
				ds, err := CurrentState(db, clk.Now())
				if err != nil {
					// Transient fetch failure; the client keeps its last frame.
					continue
				}
				writeSSE(c.Writer, "state", ds)
				c.Writer.Flush()
			case <-feedTick.Chan():
				feed, err := messaging.Visible(db)
				if err != nil {
					continue
				}
				if !tracker.Observe(feed) {
					continue
				}
				head := messaging.Current(feed)
				writeSSE(c.Writer, "message", messageEvent{
					ID:      head.ID,
					Content: head.Content,
					Count:   len(feed),
				})
				c.Writer.Flush()
			}
		}
	}
}

// writeSSE writes a single SSE event to the writer.
func writeSSE(w io.Writer, event string, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, string(jsonData))
}
