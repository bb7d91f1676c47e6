package announce

import (
	"context"
	"fmt"

	slackapi "github.com/slack-go/slack"
)

// webhookPoster abstracts the Slack webhook call, enabling test mocks.
type webhookPoster func(ctx context.Context, url string, msg *slackapi.WebhookMessage) error

// SlackNotifier mirrors broadcasts to a Slack incoming webhook.
type SlackNotifier struct {
	webhookURL string
	post       webhookPoster
}

// SlackOpts holds parameters for creating a SlackNotifier.
type SlackOpts struct {
	WebhookURL string
	// For testing: inject a mock poster instead of the real webhook call.
	Post webhookPoster
}

// NewSlack creates a Slack webhook notifier.
func NewSlack(opts SlackOpts) (*SlackNotifier, error) {
	if opts.WebhookURL == "" {
		return nil, fmt.Errorf("announce: slack webhook url is required")
	}
	n := &SlackNotifier{
		webhookURL: opts.WebhookURL,
		post:       opts.Post,
	}
	if n.post == nil {
		n.post = slackapi.PostWebhookContext
	}
	return n, nil
}

// Name identifies the platform.
func (n *SlackNotifier) Name() string { return "slack" }

// Announce posts the broadcast text to the webhook.
func (n *SlackNotifier) Announce(ctx context.Context, content string) error {
	msg := &slackapi.WebhookMessage{Text: content}
	if err := n.post(ctx, n.webhookURL, msg); err != nil {
		return fmt.Errorf("announce: slack webhook: %w", err)
	}
	return nil
}

// Close is a no-op; webhooks hold no connection.
func (n *SlackNotifier) Close() error { return nil }
