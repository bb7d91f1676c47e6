package messaging

import "github.com/zulandar/podium/internal/models"

// Tracker detects changes of the feed head across polls. Freshness is
// defined by inequality with the last-seen head identifier, not by ordering:
// a delete-and-recreate cycle that lands on a numerically smaller identifier
// still reads as fresh. How long the resulting emphasis is displayed is the
// caller's concern; the tracker itself fires exactly once per change.
type Tracker struct {
	lastID uint
	primed bool
}

// Observe records the current feed and reports whether its head changed
// since the previous observation. The very first non-empty observation is
// fresh. An empty feed is never fresh and leaves the last-seen identifier
// in place.
func (t *Tracker) Observe(feed []models.Message) bool {
	head := Current(feed)
	if head == nil {
		return false
	}
	if t.primed && head.ID == t.lastID {
		return false
	}
	t.lastID = head.ID
	t.primed = true
	return true
}

// LastID returns the identifier of the most recently observed feed head,
// or zero before the first non-empty observation.
func (t *Tracker) LastID() uint {
	return t.lastID
}
