package mail

import (
	"context"
	"log/slog"

	portssvc "github.com/storynest/storynest-backend/internal/core/ports/services"
)

// logSender logs instead of sending. Used when no Postmark server token is
// configured, which keeps local development working without a provider
// account.
type logSender struct {
	logger *slog.Logger
}

// NewLogSender creates a notifier that only logs.
func NewLogSender(logger *slog.Logger) portssvc.NotifierSvc {
	return &logSender{logger: logger}
}

var _ portssvc.NotifierSvc = (*logSender)(nil)

func (s *logSender) SendVerificationEmail(ctx context.Context, email string, firstName *string, code string) error {
	s.logger.Info("Verification email (log only)",
		slog.String("email", email),
		slog.String("code", code),
	)
	return nil
}

func (s *logSender) SendWelcomeEmail(ctx context.Context, email string, firstName *string) error {
	s.logger.Info("Welcome email (log only)", slog.String("email", email))
	return nil
}
