package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/voltmart/catalog-service/internal/domain"
	pkgkafka "github.com/voltmart/catalog-service/pkg/kafka"
)

// Kafka topic constants for catalog domain events.
const (
	TopicFeedbackCreated = "catalog.feedback.created"
	TopicFeedbackUpdated = "catalog.feedback.updated"
)

// Aggregate type constant.
const AggregateTypeFeedback = "feedback"

// Source identifier for events originating from the catalog service.
const SourceCatalogService = "catalog-service"

// FeedbackCreatedData is the payload for a feedback.created event.
type FeedbackCreatedData struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	MobileNumber  string `json:"mobile_number"`
	InvoiceNumber string `json:"invoice_number"`
	Products      string `json:"products"`
	Message       string `json:"message"`
	City          string `json:"city"`
	Status        string `json:"status"`
}

// FeedbackUpdatedData is the payload for a feedback.updated event.
type FeedbackUpdatedData struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Publisher is the event publishing contract the services depend on.
type Publisher interface {
	PublishFeedbackCreated(ctx context.Context, feedback *domain.Feedback) error
	PublishFeedbackUpdated(ctx context.Context, id, status string) error
}

// Producer publishes catalog domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the catalog service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishFeedbackCreated publishes a feedback.created event.
func (p *Producer) PublishFeedbackCreated(ctx context.Context, feedback *domain.Feedback) error {
	data := FeedbackCreatedData{
		ID:            feedback.ID,
		Name:          feedback.Name,
		Email:         feedback.Email,
		MobileNumber:  feedback.MobileNumber,
		InvoiceNumber: feedback.InvoiceNumber,
		Products:      feedback.Products,
		Message:       feedback.Message,
		City:          feedback.City,
		Status:        feedback.Status,
	}

	event, err := pkgkafka.NewEvent(TopicFeedbackCreated, feedback.ID, AggregateTypeFeedback, SourceCatalogService, data)
	if err != nil {
		return fmt.Errorf("create feedback.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicFeedbackCreated, event); err != nil {
		return fmt.Errorf("publish feedback.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published feedback.created event",
		slog.String("feedback_id", feedback.ID),
	)

	return nil
}

// PublishFeedbackUpdated publishes a feedback.updated event.
func (p *Producer) PublishFeedbackUpdated(ctx context.Context, id, status string) error {
	data := FeedbackUpdatedData{ID: id, Status: status}

	event, err := pkgkafka.NewEvent(TopicFeedbackUpdated, id, AggregateTypeFeedback, SourceCatalogService, data)
	if err != nil {
		return fmt.Errorf("create feedback.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicFeedbackUpdated, event); err != nil {
		return fmt.Errorf("publish feedback.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published feedback.updated event",
		slog.String("feedback_id", id),
		slog.String("status", status),
	)

	return nil
}
