// Package announce mirrors operator broadcasts to chat platforms so people
// away from the room display still see them.
package announce

import (
	"context"
	"errors"
	"log"

	"github.com/zulandar/podium/internal/config"
)

// Notifier is the interface platform-specific mirrors must satisfy.
type Notifier interface {
	// Name identifies the platform, e.g. "slack" or "discord".
	Name() string

	// Announce delivers one broadcast to the platform.
	Announce(ctx context.Context, content string) error

	// Close releases any platform connection.
	Close() error
}

// Fanout delivers a broadcast to every configured notifier. A platform
// failure is logged and skipped; mirroring never blocks the feed itself.
type Fanout struct {
	notifiers []Notifier
}

// NewFanout creates a Fanout over the given notifiers.
func NewFanout(notifiers ...Notifier) *Fanout {
	return &Fanout{notifiers: notifiers}
}

// Len returns the number of configured notifiers.
func (f *Fanout) Len() int {
	return len(f.notifiers)
}

// Announce sends content to each platform in turn.
func (f *Fanout) Announce(ctx context.Context, content string) {
	for _, n := range f.notifiers {
		if err := n.Announce(ctx, content); err != nil {
			log.Printf("announce: %s: %v", n.Name(), err)
		}
	}
}

// Close shuts down all notifiers, returning the first error encountered.
func (f *Fanout) Close() error {
	var errs []error
	for _, n := range f.notifiers {
		if err := n.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// FromConfig builds notifiers for every platform the config names. An empty
// config yields an empty fanout, which is valid and does nothing.
func FromConfig(cfg config.AnnounceConfig) (*Fanout, error) {
	var notifiers []Notifier

	if cfg.SlackWebhook != "" {
		n, err := NewSlack(SlackOpts{WebhookURL: cfg.SlackWebhook})
		if err != nil {
			return nil, err
		}
		notifiers = append(notifiers, n)
	}

	if cfg.DiscordToken != "" {
		n, err := NewDiscord(DiscordOpts{
			BotToken:  cfg.DiscordToken,
			ChannelID: cfg.DiscordChannel,
		})
		if err != nil {
			return nil, err
		}
		notifiers = append(notifiers, n)
	}

	return NewFanout(notifiers...), nil
}
