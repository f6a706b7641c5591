// Package mail implements the notification boundary. Senders are
// deliberately dumb: callers treat every dispatch failure as loggable,
// never fatal.
package mail

import (
	"context"
	"fmt"

	"github.com/mrz1836/postmark"
	portssvc "github.com/storynest/storynest-backend/internal/core/ports/services"
)

// postmarkSender delivers transactional email through Postmark.
type postmarkSender struct {
	client *postmark.Client
	from   string
}

// NewPostmarkSender creates a Postmark-backed notifier.
func NewPostmarkSender(serverToken string, fromAddress string) portssvc.NotifierSvc {
	return &postmarkSender{
		client: postmark.NewClient(serverToken, ""),
		from:   fromAddress,
	}
}

var _ portssvc.NotifierSvc = (*postmarkSender)(nil)

func greetingName(firstName *string) string {
	if firstName != nil && *firstName != "" {
		return *firstName
	}
	return "there"
}

func (s *postmarkSender) SendVerificationEmail(ctx context.Context, email string, firstName *string, code string) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nYour StoryNest verification code is %s. It expires in 15 minutes.\n\nIf you didn't create a StoryNest account, you can ignore this email.\n",
		greetingName(firstName), code,
	)
	_, err := s.client.SendEmail(ctx, postmark.Email{
		From:          s.from,
		To:            email,
		Subject:       "Your StoryNest verification code",
		TextBody:      body,
		MessageStream: "outbound",
	})
	if err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}

func (s *postmarkSender) SendWelcomeEmail(ctx context.Context, email string, firstName *string) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nYour email is verified. Welcome to StoryNest, time to make some stories!\n",
		greetingName(firstName),
	)
	_, err := s.client.SendEmail(ctx, postmark.Email{
		From:          s.from,
		To:            email,
		Subject:       "Welcome to StoryNest",
		TextBody:      body,
		MessageStream: "outbound",
	})
	if err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}
