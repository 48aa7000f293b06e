package service_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltmart/catalog-service/internal/domain"
	"github.com/voltmart/catalog-service/internal/repository"
	"github.com/voltmart/catalog-service/internal/service"
	apperrors "github.com/voltmart/catalog-service/pkg/errors"
	"github.com/voltmart/catalog-service/pkg/logger"
)

type fakeFeedbackRepo struct {
	entries []domain.Feedback
}

func (f *fakeFeedbackRepo) Create(_ context.Context, fb *domain.Feedback) error {
	f.entries = append(f.entries, *fb)
	return nil
}

func (f *fakeFeedbackRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, e := range f.entries {
		if e.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFeedbackRepo) List(_ context.Context, filter repository.FeedbackFilter) ([]domain.Feedback, int, error) {
	var out []domain.Feedback
	for _, e := range f.entries {
		if filter.Status == nil || e.Status == *filter.Status {
			out = append(out, e)
		}
	}
	return out, len(out), nil
}

func (f *fakeFeedbackRepo) UpdateStatus(_ context.Context, id, status string) error {
	for i := range f.entries {
		if f.entries[i].ID == id {
			f.entries[i].Status = status
			return nil
		}
	}
	return apperrors.NotFound("feedback", id)
}

type recordingPublisher struct {
	created []string
	updated []string
}

func (r *recordingPublisher) PublishFeedbackCreated(_ context.Context, fb *domain.Feedback) error {
	r.created = append(r.created, fb.ID)
	return nil
}

func (r *recordingPublisher) PublishFeedbackUpdated(_ context.Context, id, status string) error {
	r.updated = append(r.updated, id+":"+status)
	return nil
}

type recordingNotifier struct {
	received []string
}

func (r *recordingNotifier) FeedbackReceived(_ context.Context, fb *domain.Feedback) error {
	r.received = append(r.received, fb.Email)
	return nil
}

func newFeedbackService(repo *fakeFeedbackRepo, pub *recordingPublisher, n *recordingNotifier) *service.FeedbackService {
	return service.NewFeedbackService(repo, pub, n, logger.NewWithWriter("test", "error", io.Discard))
}

func TestFeedbackSubmit(t *testing.T) {
	repo := &fakeFeedbackRepo{}
	pub := &recordingPublisher{}
	notifier := &recordingNotifier{}
	svc := newFeedbackService(repo, pub, notifier)

	fb, err := svc.Submit(context.Background(), &service.SubmitFeedbackInput{
		Name:          "Jordan",
		Email:         "  Jordan@Example.com ",
		MobileNumber:  "0100000000",
		InvoiceNumber: "INV-42",
		Message:       "Great quality",
		City:          "Cairo",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, fb.ID)
	assert.Equal(t, "jordan@example.com", fb.Email)
	assert.Equal(t, domain.FeedbackStatusPending, fb.Status)
	assert.Equal(t, []string{fb.ID}, pub.created)
	assert.Equal(t, []string{"jordan@example.com"}, notifier.received)
}

func TestFeedbackSubmitDuplicateEmail(t *testing.T) {
	repo := &fakeFeedbackRepo{}
	svc := newFeedbackService(repo, &recordingPublisher{}, &recordingNotifier{})

	input := &service.SubmitFeedbackInput{
		Name:          "Jordan",
		Email:         "jordan@example.com",
		MobileNumber:  "0100000000",
		InvoiceNumber: "INV-42",
		Message:       "Great quality",
	}

	_, err := svc.Submit(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), input)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
}

func TestFeedbackUpdateStatus(t *testing.T) {
	repo := &fakeFeedbackRepo{}
	pub := &recordingPublisher{}
	svc := newFeedbackService(repo, pub, &recordingNotifier{})

	fb, err := svc.Submit(context.Background(), &service.SubmitFeedbackInput{
		Name:          "Jordan",
		Email:         "jordan@example.com",
		MobileNumber:  "0100000000",
		InvoiceNumber: "INV-42",
		Message:       "Great quality",
	})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(context.Background(), fb.ID, domain.FeedbackStatusReviewed))
	assert.Contains(t, pub.updated, fb.ID+":"+domain.FeedbackStatusReviewed)

	err = svc.UpdateStatus(context.Background(), fb.ID, "archived")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestFeedbackListStatusValidation(t *testing.T) {
	svc := newFeedbackService(&fakeFeedbackRepo{}, &recordingPublisher{}, &recordingNotifier{})

	bad := "archived"
	_, _, err := svc.List(context.Background(), &bad, 1, 20)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	ok := domain.FeedbackStatusPending
	_, total, err := svc.List(context.Background(), &ok, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}
