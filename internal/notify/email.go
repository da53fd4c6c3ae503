package notify

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vcsystems/incident-service/internal/config"
)

// SMTPSender delivers the email channel over a plain SMTP relay.
type SMTPSender struct {
	cfg     config.NotificationConfig
	auth    smtp.Auth
	logger  *zap.Logger
	timeout time.Duration
}

// NewSMTPSender builds the sender; it is disabled when no host is configured.
func NewSMTPSender(cfg config.NotificationConfig, logger *zap.Logger) *SMTPSender {
	var auth smtp.Auth
	if cfg.SMTPUser != "" && cfg.SMTPPassword != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost)
	}
	return &SMTPSender{
		cfg:     cfg,
		auth:    auth,
		logger:  logger,
		timeout: cfg.SendTimeout(),
	}
}

// Send delivers one HTML email. A slow relay is bounded by the configured
// send timeout so one channel cannot stall the handler.
func (s *SMTPSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	if s.cfg.SMTPHost == "" {
		s.logger.Debug("smtp not configured, skipping email")
		return nil
	}
	if strings.TrimSpace(to) == "" {
		return errors.New("empty recipient")
	}

	msg := buildMessage(s.cfg.EmailFrom, to, subject, htmlBody)
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, s.auth, s.cfg.EmailFrom, []string{to}, msg)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func buildMessage(from, to, subject, htmlBody string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}
