// Package notify dispatches templated notifications to the back office
// when shoppers submit feedback.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/voltmart/catalog-service/internal/domain"
	"github.com/voltmart/catalog-service/pkg/httpclient"
)

// Notifier is the notification dispatch contract.
type Notifier interface {
	FeedbackReceived(ctx context.Context, feedback *domain.Feedback) error
}

// Message is the payload posted to the notification gateway.
type Message struct {
	Template  string            `json:"template"`
	Recipient string            `json:"recipient"`
	Subject   string            `json:"subject"`
	Variables map[string]string `json:"variables"`
}

// HTTPNotifier posts notification messages to an HTTP gateway behind a
// circuit breaker.
type HTTPNotifier struct {
	client    *httpclient.Client
	baseURL   string
	recipient string
	logger    *slog.Logger
}

// NewHTTPNotifier creates a notifier targeting the given gateway URL.
// Notifications for new feedback go to the configured back-office
// recipient.
func NewHTTPNotifier(client *httpclient.Client, baseURL, recipient string, logger *slog.Logger) *HTTPNotifier {
	return &HTTPNotifier{
		client:    client,
		baseURL:   baseURL,
		recipient: recipient,
		logger:    logger,
	}
}

// FeedbackReceived sends the feedback-received notification.
func (n *HTTPNotifier) FeedbackReceived(ctx context.Context, feedback *domain.Feedback) error {
	msg := Message{
		Template:  "feedback-received",
		Recipient: n.recipient,
		Subject:   "New customer feedback",
		Variables: map[string]string{
			"name":           feedback.Name,
			"email":          feedback.Email,
			"invoice_number": feedback.InvoiceNumber,
			"city":           feedback.City,
			"message":        feedback.Message,
		},
	}
	return n.send(ctx, msg)
}

func (n *HTTPNotifier) send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+"/v1/notifications", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("send notification: gateway returned %d", resp.StatusCode)
	}

	n.logger.DebugContext(ctx, "notification dispatched",
		slog.String("template", msg.Template),
	)
	return nil
}
