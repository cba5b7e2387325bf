package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/retail/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Sender delivers a message to one recipient
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPSender sends mail through a plain SMTP relay
type SMTPSender struct {
	addr string
	auth smtp.Auth
	from string
}

// NewSMTPSender creates a sender from SMTP configuration
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	var auth smtp.Auth
	if cfg.User != "" {
		auth = smtp.PlainAuth("", cfg.User, cfg.Password, cfg.Host)
	}

	return &SMTPSender{
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		auth: auth,
		from: cfg.From,
	}
}

// Send delivers a plain-text message
func (s *SMTPSender) Send(_ context.Context, to, subject, body string) error {
	msg := email.NewEmail()
	msg.From = s.from
	msg.To = []string{to}
	msg.Subject = subject
	msg.Text = []byte(body)

	if err := msg.Send(s.addr, s.auth); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

var _ Sender = (*SMTPSender)(nil)

// LogSender logs messages instead of sending them, used when SMTP is
// disabled and in development
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates a log-only sender
func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger.Named("mail")}
}

// Send logs the message
func (s *LogSender) Send(_ context.Context, to, subject, body string) error {
	s.logger.Info("outgoing mail",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}

var _ Sender = (*LogSender)(nil)
