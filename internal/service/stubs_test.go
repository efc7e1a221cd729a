package service

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn  func(context.Context, *models.Post) error
	getByIDFn func(context.Context, uint) (*models.Post, error)
	listFn    func(context.Context) ([]*models.Post, error)
	updateFn  func(context.Context, *models.Post) error
	deleteFn  func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context) ([]*models.Post, error) {
	return s.listFn(ctx)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, _ uint) (*models.Post, error) { return &models.Post{}, nil },
		listFn:    func(_ context.Context) ([]*models.Post, error) { return nil, nil },
		updateFn:  func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:  func(_ context.Context, _ uint) error { return nil },
	}
}

// subscriberRepoStub is a stub for repository.SubscriberRepository.
type subscriberRepoStub struct {
	createFn     func(context.Context, *models.NewsletterSubscriber) error
	getByEmailFn func(context.Context, string) (*models.NewsletterSubscriber, error)
	listFn       func(context.Context) ([]*models.NewsletterSubscriber, error)
	deleteFn     func(context.Context, uint) error
}

func (s *subscriberRepoStub) Create(ctx context.Context, sub *models.NewsletterSubscriber) error {
	return s.createFn(ctx, sub)
}
func (s *subscriberRepoStub) GetByEmail(ctx context.Context, email string) (*models.NewsletterSubscriber, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *subscriberRepoStub) List(ctx context.Context) ([]*models.NewsletterSubscriber, error) {
	return s.listFn(ctx)
}
func (s *subscriberRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func emptySubscriberRepo() *subscriberRepoStub {
	return &subscriberRepoStub{
		createFn: func(_ context.Context, _ *models.NewsletterSubscriber) error { return nil },
		getByEmailFn: func(_ context.Context, email string) (*models.NewsletterSubscriber, error) {
			return nil, models.NewNotFoundError("Subscriber", email)
		},
		listFn:   func(_ context.Context) ([]*models.NewsletterSubscriber, error) { return nil, nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// senderStub is a stub for mailer.EmailSender.
type senderStub struct {
	sendFn func(ctx context.Context, recipient, subject, body string) error
	sent   []string
}

func (s *senderStub) Send(ctx context.Context, recipient, subject, body string) error {
	s.sent = append(s.sent, recipient)
	if s.sendFn != nil {
		return s.sendFn(ctx, recipient, subject, body)
	}
	return nil
}

// storageStub is a stub for storage.ObjectStorage.
type storageStub struct {
	putFn func(ctx context.Context, key, contentType string, body []byte) error
	keys  []string
}

func (s *storageStub) Put(ctx context.Context, key, contentType string, body []byte) error {
	s.keys = append(s.keys, key)
	if s.putFn != nil {
		return s.putFn(ctx, key, contentType, body)
	}
	return nil
}

// assertAppErrorCode asserts that err is an AppError with the given code.
func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}
