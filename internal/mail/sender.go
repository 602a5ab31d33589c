package mail

import (
	"context"

	"github.com/creativestories/backend/internal/common/logger"
)

// Sender is the outbound email transport used by the newsletter dispatcher.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// NoopSender logs instead of delivering. It is selected when SMTP is not
// configured so local runs work without a mail server.
type NoopSender struct {
	log *logger.Logger
}

func NewNoopSender(log *logger.Logger) *NoopSender {
	return &NoopSender{log: log}
}

func (s *NoopSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	s.log.WithFields(ctx, logger.Fields{
		"recipient": to,
		"subject":   subject,
	}).Info("noop mail sender: skipping delivery")
	return nil
}
