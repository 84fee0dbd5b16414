package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bookhaven/backend/pkg/mail"
)

// EmailMailer formats authentication emails and delivers them through a
// mail.Mailer. Links point at the public base URL of the deployment.
type EmailMailer struct {
	mailer  mail.Mailer
	baseURL string
}

// NewEmailMailer builds the notification dispatcher used by the auth service.
func NewEmailMailer(mailer mail.Mailer, baseURL string) (*EmailMailer, error) {
	if mailer == nil {
		return nil, errors.New("email mailer: mailer is required")
	}
	return &EmailMailer{
		mailer:  mailer,
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
	}, nil
}

// SendEmailVerification delivers the signed verification token.
func (m *EmailMailer) SendEmailVerification(ctx context.Context, email, token string) error {
	link := fmt.Sprintf("%s/api/auth/verify-email?token=%s", m.baseURL, token)
	return m.mailer.Send(ctx, mail.Message{
		To:      email,
		Subject: "Verify your email address",
		Body: fmt.Sprintf(
			"Welcome!\r\n\r\nPlease confirm your email address by opening the link below:\r\n\r\n%s\r\n\r\nThe link expires in 24 hours.\r\n",
			link,
		),
	})
}

// SendPasswordReset delivers the signed password-reset token.
func (m *EmailMailer) SendPasswordReset(ctx context.Context, email, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", m.baseURL, token)
	return m.mailer.Send(ctx, mail.Message{
		To:      email,
		Subject: "Reset your password",
		Body: fmt.Sprintf(
			"A password reset was requested for your account.\r\n\r\nOpen the link below to choose a new password:\r\n\r\n%s\r\n\r\nThe link expires in 1 hour. If you did not request this, ignore this message.\r\n",
			link,
		),
	})
}
