package email

import (
	"context"

	"github.com/dnlksnvv/Trainova-sub001/shared/interfaces"

	"go.uber.org/zap"
)

var _ interfaces.EmailSender = (*LogSender)(nil)

// LogSender writes outgoing mail to the log instead of an SMTP relay. It is
// the default sender for development and test environments; deployments
// swap in a real sender behind the same interface.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger.Named("EmailLogSender")}
}

func (s *LogSender) SendPasswordReset(ctx context.Context, email, token string) error {
	s.logger.Info("Password reset email",
		zap.String("to", email),
		zap.String("token", token),
	)
	return nil
}

func (s *LogSender) SendEmailChangeConfirmation(ctx context.Context, email, token string) error {
	s.logger.Info("Email change confirmation email",
		zap.String("to", email),
		zap.String("token", token),
	)
	return nil
}
