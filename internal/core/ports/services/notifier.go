package services

import "context"

// NotifierSvc is the boundary to the email provider. Implementations must
// not be load-bearing: callers treat dispatch failures as loggable, never
// fatal to the surrounding operation.
type NotifierSvc interface {
	// SendVerificationEmail delivers a 6-digit verification code.
	SendVerificationEmail(ctx context.Context, email string, firstName *string, code string) error

	// SendWelcomeEmail delivers the post-verification welcome message.
	SendWelcomeEmail(ctx context.Context, email string, firstName *string) error
}
