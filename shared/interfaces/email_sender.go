package interfaces

import "context"

// EmailSender is the delivery boundary for reset-password and email-change
// links. Actual delivery is an external concern; the auth service only
// hands tokens across this interface.
type EmailSender interface {
	SendPasswordReset(ctx context.Context, email, token string) error
	SendEmailChangeConfirmation(ctx context.Context, email, token string) error
}
