// internal/common/slack/webhook.go
package slack

import (
	"context"
	"time"

	httpclient "funnel-workers/internal/common/http"
)

// WebhookClient posts messages to a Slack incoming webhook.
type WebhookClient struct {
	webhookURL string
	channel    string
	httpClient *httpclient.Client
}

// Message is the incoming-webhook payload.
type Message struct {
	Channel string  `json:"channel,omitempty"`
	Text    string  `json:"text"`
	Blocks  []Block `json:"blocks,omitempty"`
}

// Block is a minimal Block Kit section.
type Block struct {
	Type string     `json:"type"`
	Text *BlockText `json:"text,omitempty"`
}

type BlockText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func NewWebhookClient(webhookURL, channel string) *WebhookClient {
	return &WebhookClient{
		webhookURL: webhookURL,
		channel:    channel,
		httpClient: httpclient.NewClient(10 * time.Second),
	}
}

// Post sends a message to the configured webhook. Slack answers the
// literal body "ok" on success, so the response is not decoded.
func (c *WebhookClient) Post(ctx context.Context, msg *Message) error {
	if msg.Channel == "" {
		msg.Channel = c.channel
	}
	return c.httpClient.PostJSON(ctx, c.webhookURL, msg, nil, nil)
}

// PostText is a convenience wrapper for plain text notifications.
func (c *WebhookClient) PostText(ctx context.Context, text string) error {
	return c.Post(ctx, &Message{Text: text})
}
