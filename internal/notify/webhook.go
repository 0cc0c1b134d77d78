// Package notify dispatches high-match notifications to external webhooks.
// The scoring core never calls it; the scan pass does, after the fact.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/match-intel/internal/types"
)

// Notifier delivers a high-match alert for one scored listing.
type Notifier interface {
	NotifyHighMatch(ctx context.Context, job *types.JobRecord, score int) error
}

// WebhookNotifier posts alerts to a configured webhook URL. Telegram bot
// URLs get the Telegram payload shape; everything else gets the generic
// Discord-style payload.
type WebhookNotifier struct {
	url    string
	client *http.Client
	log    *zap.Logger
}

// NewWebhookNotifier builds a notifier for the given webhook URL.
func NewWebhookNotifier(webhookURL string, log *zap.Logger) *WebhookNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &WebhookNotifier{
		url:    webhookURL,
		client: &http.Client{Timeout: 15 * time.Second},
		log:    log,
	}
}

// NotifyHighMatch posts the alert. A notifier with no URL configured is a no-op.
func (n *WebhookNotifier) NotifyHighMatch(ctx context.Context, job *types.JobRecord, score int) error {
	if n.url == "" {
		return nil
	}

	var (
		endpoint string
		payload  any
	)
	if strings.Contains(n.url, "api.telegram.org") {
		endpoint, payload = telegramRequest(n.url, job, score)
	} else {
		endpoint = n.url
		payload = map[string]string{
			"content":  alertText(job, score, "**"),
			"username": "Match Intel",
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	n.log.Debug("high-match notification sent",
		zap.String("link", job.Link), zap.Int("score", score))
	return nil
}

// telegramRequest splits a bot URL of the form
// https://api.telegram.org/bot<token>/sendMessage?chat_id=<id> into the
// endpoint and the Telegram payload shape.
func telegramRequest(rawURL string, job *types.JobRecord, score int) (string, any) {
	endpoint := rawURL
	chatID := ""
	if u, err := url.Parse(rawURL); err == nil {
		chatID = u.Query().Get("chat_id")
		u.RawQuery = ""
		endpoint = u.String()
	}
	return endpoint, map[string]string{
		"chat_id":    chatID,
		"text":       alertText(job, score, "*"),
		"parse_mode": "Markdown",
	}
}

func alertText(job *types.JobRecord, score int, em string) string {
	budget := fmt.Sprintf("$%d", job.Budget)
	if job.Type == types.EngagementHourly {
		budget = fmt.Sprintf("$%d-$%d/hr", job.RateMin, job.RateMax)
	}
	return fmt.Sprintf("🚀 %sHigh Match Job Found (%d%%)%s\n\n%sTitle:%s %s\n%sBudget:%s %s\n%sLocation:%s %s\n\n[View Job](%s)",
		em, score, em,
		em, em, job.Title,
		em, em, budget,
		em, em, job.Location,
		job.Link,
	)
}
