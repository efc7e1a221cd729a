package service

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewsletterService_SendToAll_Validation(t *testing.T) {
	svc := NewNewsletterService(emptySubscriberRepo(), &senderStub{})
	ctx := context.Background()

	_, err := svc.SendToAll(ctx, "", "content")
	assertAppErrorCode(t, err, models.CodeValidation)

	_, err = svc.SendToAll(ctx, "subject", "   ")
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestNewsletterService_SendToAll_NoSubscribers(t *testing.T) {
	sender := &senderStub{}
	svc := NewNewsletterService(emptySubscriberRepo(), sender)

	report, err := svc.SendToAll(context.Background(), "Hello", "World")
	require.NoError(t, err)
	assert.Equal(t, &DispatchReport{SuccessCount: 0, FailedCount: 0, TotalSubscribers: 0}, report)
	assert.Empty(t, sender.sent, "nothing dispatched on an empty list")
}

func TestNewsletterService_SendToAll_ContinuesPastFailures(t *testing.T) {
	repo := emptySubscriberRepo()
	repo.listFn = func(_ context.Context) ([]*models.NewsletterSubscriber, error) {
		return []*models.NewsletterSubscriber{
			{ID: 1, Email: "one@example.com"},
			{ID: 2, Email: "two@example.com"},
			{ID: 3, Email: "three@example.com"},
		}, nil
	}
	sender := &senderStub{
		sendFn: func(_ context.Context, recipient, _, _ string) error {
			if recipient == "two@example.com" {
				return assert.AnError
			}
			return nil
		},
	}
	svc := NewNewsletterService(repo, sender)

	report, err := svc.SendToAll(context.Background(), "Hello", "<p>World</p>")
	require.NoError(t, err)
	assert.Equal(t, 2, report.SuccessCount)
	assert.Equal(t, 1, report.FailedCount)
	assert.Equal(t, 3, report.TotalSubscribers)
	assert.Equal(t, []string{"one@example.com", "two@example.com", "three@example.com"}, sender.sent,
		"every subscriber is attempted despite a mid-batch failure")
}

func TestNewsletterService_SendToAll_ListErrorPropagates(t *testing.T) {
	repo := emptySubscriberRepo()
	repo.listFn = func(_ context.Context) ([]*models.NewsletterSubscriber, error) {
		return nil, models.NewInternalError(assert.AnError)
	}
	sender := &senderStub{}
	svc := NewNewsletterService(repo, sender)

	_, err := svc.SendToAll(context.Background(), "Hello", "World")
	assertAppErrorCode(t, err, models.CodeInternal)
	assert.Empty(t, sender.sent)
}
