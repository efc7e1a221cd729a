package repository

import (
	"context"
	"errors"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
)

// SubscriberRepository defines the interface for newsletter subscriber data operations.
type SubscriberRepository interface {
	Create(ctx context.Context, sub *models.NewsletterSubscriber) error
	GetByEmail(ctx context.Context, email string) (*models.NewsletterSubscriber, error)
	List(ctx context.Context) ([]*models.NewsletterSubscriber, error)
	Delete(ctx context.Context, id uint) error
}

type subscriberRepository struct {
	db *gorm.DB
}

// NewSubscriberRepository creates a new subscriber repository
func NewSubscriberRepository(db *gorm.DB) SubscriberRepository {
	return &subscriberRepository{db: db}
}

func (r *subscriberRepository) Create(ctx context.Context, sub *models.NewsletterSubscriber) error {
	defer observability.TrackQuery("create", "newsletter_subscribers")()

	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewConstraintViolationError("Email already subscribed", err)
		}
		return err
	}
	return nil
}

func (r *subscriberRepository) GetByEmail(ctx context.Context, email string) (*models.NewsletterSubscriber, error) {
	defer observability.TrackQuery("get_by_email", "newsletter_subscribers")()

	var sub models.NewsletterSubscriber
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Subscriber", email)
		}
		return nil, err
	}
	return &sub, nil
}

func (r *subscriberRepository) List(ctx context.Context) ([]*models.NewsletterSubscriber, error) {
	defer observability.TrackQuery("list", "newsletter_subscribers")()

	var subs []*models.NewsletterSubscriber
	err := r.db.WithContext(ctx).
		Order("subscribed_at DESC").
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *subscriberRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "newsletter_subscribers")()

	res := r.db.WithContext(ctx).Delete(&models.NewsletterSubscriber{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Subscriber", id)
	}
	return nil
}

// isUniqueViolation reports whether err is a uniqueness-constraint failure.
// Matched on message text so it covers both the postgres and sqlite drivers.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "sqlstate 23505")
}
