package service

import (
	"context"
	"log/slog"
	"strings"

	"inkwell/internal/mailer"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// NewsletterService dispatches a newsletter to every subscriber.
type NewsletterService struct {
	subscriberRepo repository.SubscriberRepository
	sender         mailer.EmailSender
}

// DispatchReport accumulates per-recipient outcomes of a bulk send.
type DispatchReport struct {
	SuccessCount     int `json:"success_count"`
	FailedCount      int `json:"failed_count"`
	TotalSubscribers int `json:"total_subscribers"`
}

func NewNewsletterService(subscriberRepo repository.SubscriberRepository, sender mailer.EmailSender) *NewsletterService {
	return &NewsletterService{subscriberRepo: subscriberRepo, sender: sender}
}

// SendToAll attempts one delivery per subscriber, sequentially. A failed
// delivery is counted and logged but never aborts the batch; the call returns
// only after every subscriber has been attempted exactly once.
func (s *NewsletterService) SendToAll(ctx context.Context, subject, content string) (*DispatchReport, error) {
	if strings.TrimSpace(subject) == "" || strings.TrimSpace(content) == "" {
		return nil, models.NewValidationError("Subject and content are required")
	}

	subscribers, err := s.subscriberRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	span, ctx := observability.NewSpan(ctx, "newsletter.dispatch")
	span.AddAttributes(attribute.Int("newsletter.subscribers", len(subscribers)))
	defer span.End()

	report := &DispatchReport{TotalSubscribers: len(subscribers)}
	for _, sub := range subscribers {
		if err := s.sender.Send(ctx, sub.Email, subject, content); err != nil {
			report.FailedCount++
			observability.NewsletterDeliveries.WithLabelValues("failed").Inc()
			middleware.Logger.WarnContext(ctx, "newsletter delivery failed",
				slog.String("recipient", sub.Email),
				slog.String("error", err.Error()),
			)
			continue
		}
		report.SuccessCount++
		observability.NewsletterDeliveries.WithLabelValues("sent").Inc()
	}

	return report, nil
}
