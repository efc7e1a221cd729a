package service

import (
	"context"
	"errors"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// SubscriberService implements newsletter signup, listing, and unsubscription.
type SubscriberService struct {
	subscriberRepo repository.SubscriberRepository
}

// SignupResult is the outcome of a signup attempt. A duplicate signup is a
// successful no-op, not an error.
type SignupResult struct {
	Subscriber *models.NewsletterSubscriber
	Created    bool
}

func NewSubscriberService(subscriberRepo repository.SubscriberRepository) *SubscriberService {
	return &SubscriberService{subscriberRepo: subscriberRepo}
}

// NormalizeEmail lower-cases and trims an email address for storage and comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *SubscriberService) Signup(ctx context.Context, email string) (*SignupResult, error) {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return nil, models.NewValidationError("Email is required")
	}

	existing, err := s.subscriberRepo.GetByEmail(ctx, normalized)
	if err == nil {
		return &SignupResult{Subscriber: existing, Created: false}, nil
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeNotFound {
		return nil, err
	}

	sub := &models.NewsletterSubscriber{Email: normalized}
	if err := s.subscriberRepo.Create(ctx, sub); err != nil {
		// A concurrent signup can win the insert race; the unique index
		// reports it and we fold it into the idempotent outcome.
		if errors.As(err, &appErr) && appErr.Code == models.CodeConstraintViolation {
			existing, getErr := s.subscriberRepo.GetByEmail(ctx, normalized)
			if getErr != nil {
				return nil, getErr
			}
			return &SignupResult{Subscriber: existing, Created: false}, nil
		}
		return nil, err
	}

	return &SignupResult{Subscriber: sub, Created: true}, nil
}

func (s *SubscriberService) ListSubscribers(ctx context.Context) ([]*models.NewsletterSubscriber, error) {
	return s.subscriberRepo.List(ctx)
}

func (s *SubscriberService) Unsubscribe(ctx context.Context, id uint) error {
	return s.subscriberRepo.Delete(ctx, id)
}
