package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/go-mail"
	"golang.org/x/time/rate"

	"github.com/lifeec/go-backend/internal/config"
	"github.com/lifeec/go-backend/internal/models"
)

// ErrInvalidRecipient marks a send that failed address validation.
// These are never retried.
var ErrInvalidRecipient = errors.New("invalid recipient address")

// Sender is the outbound mail surface consumed by the alert pipeline
// and user registration.
type Sender interface {
	SendEmergencyAlert(ctx context.Context, to string, alert *models.EmergencyAlert) error
	SendOTP(ctx context.Context, to, code string) error
}

// SMTPMailer is a process-wide mail client. The connection semaphore and
// rate limiter are shared across all concurrent dispatch calls, so fan-out
// above the pool limit queues instead of opening fresh connections.
type SMTPMailer struct {
	client   *mail.Client
	cfg      config.SMTPConfig
	limiter  *rate.Limiter
	conns    chan struct{}
	location *time.Location
}

func NewSMTPMailer(cfg config.SMTPConfig) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTimeout(cfg.DialTimeout),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("error creating mail client: %w", err)
	}

	return &SMTPMailer{
		client:   client,
		cfg:      cfg,
		limiter:  rate.NewLimiter(rate.Limit(cfg.SendsPerSecond), cfg.SendsPerSecond),
		conns:    make(chan struct{}, cfg.MaxConnections),
		location: time.Local,
	}, nil
}

// Verify dials the SMTP server once to confirm connectivity. Called at
// startup so a misconfigured transport fails fast instead of on the
// first alert.
func (m *SMTPMailer) Verify(ctx context.Context) error {
	if err := m.client.DialWithContext(ctx); err != nil {
		return fmt.Errorf("error verifying mail transport: %w", err)
	}
	return m.client.Close()
}

func (m *SMTPMailer) SendEmergencyAlert(ctx context.Context, to string, alert *models.EmergencyAlert) error {
	subject := fmt.Sprintf("URGENT: Emergency Alert for %s", alert.ResidentName)
	body, err := renderEmergencyBody(alert, m.location)
	if err != nil {
		return err
	}
	return m.send(ctx, to, subject, body, true)
}

func (m *SMTPMailer) SendOTP(ctx context.Context, to, code string) error {
	body, err := renderOTPBody(code)
	if err != nil {
		return err
	}
	return m.send(ctx, to, "LIFEEC - Email Verification OTP", body, false)
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, htmlBody string, urgent bool) error {
	msg := mail.NewMsg()
	if err := msg.FromFormat(m.cfg.FromName, m.cfg.FromAddress); err != nil {
		return fmt.Errorf("error setting sender: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRecipient, to)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)
	if urgent {
		msg.SetImportance(mail.ImportanceUrgent)
	}

	select {
	case m.conns <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-m.conns }()

	var lastErr error
	for attempt := 1; attempt <= m.cfg.MaxAttempts; attempt++ {
		if err := m.limiter.Wait(ctx); err != nil {
			return err
		}

		attemptCtx, cancel := context.WithTimeout(ctx, m.cfg.DialTimeout)
		err := m.client.DialAndSendWithContext(attemptCtx, msg)
		cancel()
		if err == nil {
			slog.Debug("email sent", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Warn("email send attempt failed", "to", to, "attempt", attempt, "error", err)

		if attempt < m.cfg.MaxAttempts {
			select {
			case <-time.After(m.cfg.RetryBaseDelay * time.Duration(attempt)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	return fmt.Errorf("all %d attempts failed for %s: %w", m.cfg.MaxAttempts, to, lastErr)
}
