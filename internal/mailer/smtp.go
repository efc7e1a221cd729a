package mailer

import (
	"context"
	"fmt"

	"inkwell/internal/config"

	"github.com/wneessen/go-mail"
)

// SMTPSender implements EmailSender over an authenticated STARTTLS SMTP session.
type SMTPSender struct {
	client *mail.Client
	from   string
}

// NewSMTPSender builds an SMTP-backed EmailSender from application config.
func NewSMTPSender(cfg *config.Config) (*SMTPSender, error) {
	client, err := mail.NewClient(cfg.SMTPServer,
		mail.WithPort(cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.SenderEmail),
		mail.WithPassword(cfg.SenderPassword),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return &SMTPSender{client: client, from: cfg.SenderEmail}, nil
}

// Send delivers one HTML email. A fresh message is composed per call; the
// client dials per send, which matches the low-volume newsletter use.
func (s *SMTPSender) Send(ctx context.Context, recipient, subject, htmlBody string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(recipient); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	return s.client.DialAndSendWithContext(ctx, msg)
}
