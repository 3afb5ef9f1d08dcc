package notification

import (
	"context"
	"errors"

	"go-elms/internal/events"
	"go-elms/internal/shared/retry"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

//go:generate mockgen -source=mailer.go -destination=mock/mailer_mock.go -package=mock
type Mailer interface {
	Send(ctx context.Context, email events.EmailRequestedEvent) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpMailer struct {
	cfg SMTPConfig
}

func NewSMTPMailer(cfg SMTPConfig) Mailer {
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) Send(ctx context.Context, email events.EmailRequestedEvent) error {
	if email.To == "" {
		return errors.New("email recipient is required")
	}

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return err
	}
	if err := msg.To(email.To); err != nil {
		return err
	}
	msg.Subject(email.Subject)
	msg.SetBodyString(mail.TypeTextPlain, email.Body)

	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}

	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, msg)
}

// logMailer stands in for SMTP in development; it only logs.
type logMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) Mailer {
	if logger == nil {
		logger = zap.L()
	}
	return &logMailer{logger: logger.Named("notification.logmailer")}
}

func (m *logMailer) Send(_ context.Context, email events.EmailRequestedEvent) error {
	m.logger.Info("email (not sent, SMTP_HOST unset)",
		zap.String("to", email.To),
		zap.String("kind", email.Kind),
		zap.String("subject", email.Subject),
		zap.String("body", email.Body),
	)
	return nil
}

// RetryingMailer retries transient delivery failures with backoff.
type RetryingMailer struct {
	next   Mailer
	cfg    *retry.Config
	logger *zap.Logger
}

func NewRetryingMailer(next Mailer, cfg *retry.Config, logger *zap.Logger) *RetryingMailer {
	if logger == nil {
		logger = zap.L()
	}
	return &RetryingMailer{next: next, cfg: cfg, logger: logger.Named("notification.mailer")}
}

func (m *RetryingMailer) Send(ctx context.Context, email events.EmailRequestedEvent) error {
	_, err := retry.Do(ctx, m.cfg, m.logger, "send_email:"+email.Kind, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, m.next.Send(ctx, email)
	})
	return err
}
