// Package notify delivers completion notifications to an external webhook.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single webhook delivery
const DefaultTimeout = 5 * time.Second

// SalesProcessedMessage is the message of the post-aggregation notification
const SalesProcessedMessage = "Successfully processed sales data"

// Notification is the payload posted after a successful aggregation
type Notification struct {
	Message  string `json:"message"`
	From     string `json:"from"`
	To       string `json:"to"`
	Category string `json:"category"`
}

// NotificationDeliveryError describes a webhook delivery that did not succeed.
// StatusCode is zero when no response was received.
type NotificationDeliveryError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *NotificationDeliveryError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("webhook %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("webhook %s: %v", e.URL, e.Err)
}

func (e *NotificationDeliveryError) Unwrap() error {
	return e.Err
}

// WebhookNotifier posts notifications as JSON. With an empty URL every
// call is a no-op.
type WebhookNotifier struct {
	url        string
	httpClient *http.Client
}

// NewWebhookNotifier creates a notifier for url
func NewWebhookNotifier(url string, timeout time.Duration) *WebhookNotifier {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &WebhookNotifier{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether a webhook URL is configured
func (n *WebhookNotifier) Enabled() bool {
	return n != nil && n.url != ""
}

// NotifySalesProcessed announces a completed aggregation for the given
// raw date bounds and category
func (n *WebhookNotifier) NotifySalesProcessed(ctx context.Context, from, to, category string) error {
	return n.Notify(ctx, Notification{
		Message:  SalesProcessedMessage,
		From:     from,
		To:       to,
		Category: category,
	})
}

// Notify posts the notification once; failures are returned, never retried
func (n *WebhookNotifier) Notify(ctx context.Context, notification Notification) error {
	if !n.Enabled() {
		return nil
	}

	body, err := json.Marshal(notification)
	if err != nil {
		return &NotificationDeliveryError{URL: n.url, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return &NotificationDeliveryError{URL: n.url, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return &NotificationDeliveryError{URL: n.url, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &NotificationDeliveryError{URL: n.url, StatusCode: resp.StatusCode}
	}
	return nil
}
