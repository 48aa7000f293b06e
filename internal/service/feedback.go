package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/voltmart/catalog-service/internal/domain"
	"github.com/voltmart/catalog-service/internal/event"
	"github.com/voltmart/catalog-service/internal/notify"
	"github.com/voltmart/catalog-service/internal/repository"
	apperrors "github.com/voltmart/catalog-service/pkg/errors"
)

// FeedbackService handles customer feedback submissions and the back
// office review flow.
type FeedbackService struct {
	repo     repository.FeedbackRepository
	producer event.Publisher
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewFeedbackService creates a feedback service. producer and notifier
// may be nil; the corresponding side effects are then skipped.
func NewFeedbackService(repo repository.FeedbackRepository, producer event.Publisher, notifier notify.Notifier, logger *slog.Logger) *FeedbackService {
	return &FeedbackService{
		repo:     repo,
		producer: producer,
		notifier: notifier,
		logger:   logger,
	}
}

// SubmitFeedbackInput holds the parameters for a feedback submission.
type SubmitFeedbackInput struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	MobileNumber  string `json:"mobile_number" validate:"required"`
	InvoiceNumber string `json:"invoice_number" validate:"required"`
	Products      string `json:"products"`
	Message       string `json:"message" validate:"required"`
	City          string `json:"city"`
}

// Submit stores a new feedback entry. Each email address may submit
// once; a repeat submission is rejected. The created event and the
// back-office notification are best effort and never fail the request.
func (s *FeedbackService) Submit(ctx context.Context, input *SubmitFeedbackInput) (*domain.Feedback, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if exists {
		return nil, apperrors.AlreadyExists("feedback", "email", email)
	}

	now := time.Now().UTC()
	feedback := &domain.Feedback{
		ID:            uuid.New().String(),
		Name:          strings.TrimSpace(input.Name),
		Email:         email,
		MobileNumber:  strings.TrimSpace(input.MobileNumber),
		InvoiceNumber: strings.TrimSpace(input.InvoiceNumber),
		Products:      strings.TrimSpace(input.Products),
		Message:       strings.TrimSpace(input.Message),
		City:          strings.TrimSpace(input.City),
		Status:        domain.FeedbackStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, feedback); err != nil {
		return nil, err
	}

	if s.producer != nil {
		if err := s.producer.PublishFeedbackCreated(ctx, feedback); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish feedback.created event",
				slog.String("feedback_id", feedback.ID),
				slog.String("error", err.Error()),
			)
		}
	}
	if s.notifier != nil {
		if err := s.notifier.FeedbackReceived(ctx, feedback); err != nil {
			s.logger.WarnContext(ctx, "failed to dispatch feedback notification",
				slog.String("feedback_id", feedback.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "feedback submitted",
		slog.String("feedback_id", feedback.ID),
		slog.String("city", feedback.City),
	)
	return feedback, nil
}

// List returns feedback entries for the back office.
func (s *FeedbackService) List(ctx context.Context, status *string, page, limit int) ([]domain.Feedback, int, error) {
	if status != nil && !domain.ValidFeedbackStatus(*status) {
		return nil, 0, apperrors.InvalidInput("unknown feedback status")
	}
	return s.repo.List(ctx, repository.FeedbackFilter{Status: status, Page: page, Limit: limit})
}

// UpdateStatus advances an entry through the review flow.
func (s *FeedbackService) UpdateStatus(ctx context.Context, id, status string) error {
	if !domain.ValidFeedbackStatus(status) {
		return apperrors.InvalidInput("unknown feedback status")
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	if s.producer != nil {
		if err := s.producer.PublishFeedbackUpdated(ctx, id, status); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish feedback.updated event",
				slog.String("feedback_id", id),
				slog.String("error", err.Error()),
			)
		}
	}
	return nil
}
