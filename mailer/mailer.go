package mailer

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"

	"github.com/resumeready/backend/config"
	"github.com/resumeready/backend/utils"
)

// Mailer delivers plain text email
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPMailer sends mail through an authenticated SMTP relay
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	fromName string
	logger   *logrus.Entry
}

// NewSMTPMailer creates a mailer from the email settings
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.EmailUser,
		password: cfg.EmailPass,
		fromName: cfg.EmailFromName,
		logger:   utils.Component("mailer"),
	}
}

// Send delivers a single message
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	msg, err := m.buildMessage(to, subject, body)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(m.host,
		mail.WithPort(m.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.username),
		mail.WithPassword(m.password),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	m.logger.WithFields(logrus.Fields{"to": to, "subject": subject}).Info("Email sent")
	return nil
}

func (m *SMTPMailer) buildMessage(to, subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.FromFormat(m.fromName, m.username); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	return msg, nil
}

// LogMailer writes messages to the log instead of sending them. It is used
// when no SMTP credentials are configured.
type LogMailer struct {
	logger *logrus.Entry
}

// NewLogMailer creates a mailer that only logs
func NewLogMailer() *LogMailer {
	return &LogMailer{logger: utils.Component("mailer")}
}

// Send logs the message
func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	m.logger.WithFields(logrus.Fields{
		"to":      to,
		"subject": subject,
		"body":    body,
	}).Warn("SMTP not configured, email not sent")
	return nil
}

// New returns an SMTP mailer when credentials are configured, otherwise a LogMailer
func New(cfg *config.Config) Mailer {
	if cfg.MailEnabled() {
		return NewSMTPMailer(cfg)
	}
	return NewLogMailer()
}

// ResetPasswordBody is the text of the password reset email
func ResetPasswordBody(frontendURL, token string) string {
	return fmt.Sprintf("Click here to reset: %s/reset-password/%s", frontendURL, token)
}
