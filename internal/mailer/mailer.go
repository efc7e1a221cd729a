// Package mailer provides the email delivery abstraction and its SMTP implementation.
package mailer

import "context"

// EmailSender delivers a single HTML email to one recipient.
type EmailSender interface {
	Send(ctx context.Context, recipient, subject, htmlBody string) error
}
