package announce

import (
	"context"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// discordSession abstracts the discordgo.Session methods we use, enabling
// test mocks.
type discordSession interface {
	Open() error
	Close() error
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordNotifier mirrors broadcasts to a Discord channel via the Gateway.
type DiscordNotifier struct {
	sess      discordSession
	botToken  string
	channelID string

	mu     sync.Mutex
	opened bool
}

// DiscordOpts holds parameters for creating a DiscordNotifier.
type DiscordOpts struct {
	BotToken  string
	ChannelID string
	// For testing: inject a mock session instead of the real Discord API.
	Session discordSession
}

// NewDiscord creates a Discord notifier.
func NewDiscord(opts DiscordOpts) (*DiscordNotifier, error) {
	if opts.Session == nil && opts.BotToken == "" {
		return nil, fmt.Errorf("announce: discord bot token is required")
	}
	if opts.ChannelID == "" {
		return nil, fmt.Errorf("announce: discord channel id is required")
	}
	return &DiscordNotifier{
		sess:      opts.Session,
		botToken:  opts.BotToken,
		channelID: opts.ChannelID,
	}, nil
}

// Name identifies the platform.
func (n *DiscordNotifier) Name() string { return "discord" }

// connect opens the Gateway session on first use.
func (n *DiscordNotifier) connect() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.opened {
		return nil
	}
	if n.sess == nil {
		s, err := discordgo.New("Bot " + n.botToken)
		if err != nil {
			return fmt.Errorf("announce: discord session: %w", err)
		}
		n.sess = s
	}
	if err := n.sess.Open(); err != nil {
		return fmt.Errorf("announce: discord open: %w", err)
	}
	n.opened = true
	return nil
}

// Announce sends the broadcast text to the configured channel.
func (n *DiscordNotifier) Announce(ctx context.Context, content string) error {
	if err := n.connect(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := n.sess.ChannelMessageSend(n.channelID, content); err != nil {
		return fmt.Errorf("announce: discord send: %w", err)
	}
	return nil
}

// Close shuts down the Gateway session.
func (n *DiscordNotifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.opened {
		return nil
	}
	n.opened = false
	if err := n.sess.Close(); err != nil {
		return fmt.Errorf("announce: discord close: %w", err)
	}
	return nil
}
