// Package notify delivers best-effort messages to contractors and customers.
// Delivery is outside the consistency boundary: callers commit their state
// transition first, then notify, and treat failures as log-only.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/fieldsmith/dispatch/internal/logger"
)

// DefaultTimeout bounds a single delivery attempt.
const DefaultTimeout = 5 * time.Second

// Message kinds
const (
	// KindRescheduleProposed is sent to a customer when a contractor
	// proposes a new time
	KindRescheduleProposed = "reschedule_proposed"
	// KindRescheduleResponse is sent to a contractor when a customer
	// accepts or declines a proposal
	KindRescheduleResponse = "reschedule_response"
	// KindRouteChangeRequest is sent to a customer asked to approve a
	// route optimization slot change
	KindRouteChangeRequest = "route_change_request"
	// KindScheduleApplied is sent to a customer when a route optimization
	// rewrites their job's schedule
	KindScheduleApplied = "schedule_applied"
)

// Notifier delivers a single message to one user. Implementations never
// block past their timeout and their errors are safe to swallow.
type Notifier interface {
	Notify(ctx context.Context, userID uint, title, message, kind string) error
}

// LogNotifier writes notifications to the service log. It is the default
// when no webhook endpoint is configured.
type LogNotifier struct{}

// Notify implements Notifier.
func (LogNotifier) Notify(_ context.Context, userID uint, title, message, kind string) error {
	logger.Infof("notify user=%d kind=%s title=%q message=%q", userID, kind, title, message)
	return nil
}

// WebhookNotifier posts notifications as JSON to an external delivery
// endpoint (mail/SMS/push fan-out lives behind it).
type WebhookNotifier struct {
	URL     string
	Timeout time.Duration
	client  *http.Client
}

// NewWebhookNotifier creates a webhook notifier for the given endpoint.
func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		URL:     url,
		Timeout: DefaultTimeout,
		client:  &http.Client{Timeout: DefaultTimeout},
	}
}

type webhookPayload struct {
	UserID  uint   `json:"user_id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Notify implements Notifier.
func (n *WebhookNotifier) Notify(ctx context.Context, userID uint, title, message, kind string) error {
	body, err := json.Marshal(webhookPayload{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    kind,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, n.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver notification: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notification endpoint returned %d", resp.StatusCode)
	}
	return nil
}
