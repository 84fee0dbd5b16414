package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bookhaven/backend/pkg/mail"
)

type recordingMailer struct {
	last mail.Message
}

func (m *recordingMailer) Send(_ context.Context, msg mail.Message) error {
	m.last = msg
	return nil
}

func TestNewEmailMailerRequiresMailer(t *testing.T) {
	_, err := NewEmailMailer(nil, "https://example.com")
	require.Error(t, err)
}

func TestSendEmailVerificationLink(t *testing.T) {
	sink := &recordingMailer{}
	m, err := NewEmailMailer(sink, "https://bookhaven.example.com/")
	require.NoError(t, err)

	require.NoError(t, m.SendEmailVerification(context.Background(), "reader@example.com", "tok123"))

	require.Equal(t, "reader@example.com", sink.last.To)
	require.Equal(t, "Verify your email address", sink.last.Subject)
	// The trailing slash on the base URL is normalised away.
	require.Contains(t, sink.last.Body, "https://bookhaven.example.com/api/auth/verify-email?token=tok123")
}

func TestSendPasswordResetLink(t *testing.T) {
	sink := &recordingMailer{}
	m, err := NewEmailMailer(sink, "https://bookhaven.example.com")
	require.NoError(t, err)

	require.NoError(t, m.SendPasswordReset(context.Background(), "reader@example.com", "tok456"))

	require.Equal(t, "Reset your password", sink.last.Subject)
	require.Contains(t, sink.last.Body, "https://bookhaven.example.com/reset-password?token=tok456")
}
