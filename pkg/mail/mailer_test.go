package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net"
	"testing"

	"net/smtp"

	"github.com/stretchr/testify/require"
)

func TestNewReturnsLogMailerWhenDisabled(t *testing.T) {
	m, err := New(SMTPSettings{Enabled: false})
	require.NoError(t, err)
	require.IsType(t, &logMailer{}, m)

	require.NoError(t, m.Send(context.Background(), Message{To: "reader@example.com"}))
}

func TestNewValidatesSMTPSettings(t *testing.T) {
	_, err := New(SMTPSettings{Enabled: true, Port: 587})
	require.Error(t, err)

	_, err = New(SMTPSettings{Enabled: true, Host: "smtp.example.com"})
	require.Error(t, err)
}

// fakeSMTPClient records the protocol exchange instead of talking to a server.
type fakeSMTPClient struct {
	from     string
	rcpt     string
	data     bytes.Buffer
	quit     bool
	authUsed bool
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func (c *fakeSMTPClient) Mail(from string) error { c.from = from; return nil }
func (c *fakeSMTPClient) Rcpt(to string) error   { c.rcpt = to; return nil }
func (c *fakeSMTPClient) Data() (io.WriteCloser, error) {
	return nopWriteCloser{&c.data}, nil
}
func (c *fakeSMTPClient) Quit() error                     { c.quit = true; return nil }
func (c *fakeSMTPClient) Close() error                    { return nil }
func (c *fakeSMTPClient) StartTLS(*tls.Config) error      { return nil }
func (c *fakeSMTPClient) Auth(smtp.Auth) error            { c.authUsed = true; return nil }
func (c *fakeSMTPClient) Extension(string) (bool, string) { return false, "" }

func newFakeMailer(t *testing.T, cfg SMTPSettings) (*smtpMailer, *fakeSMTPClient) {
	t.Helper()

	m, err := newSMTPMailer(cfg)
	require.NoError(t, err)

	client := &fakeSMTPClient{}
	m.dialFn = func(_ context.Context, _ SMTPSettings) (net.Conn, smtpClient, error) {
		conn, _ := net.Pipe()
		return conn, client, nil
	}
	return m, client
}

func TestSMTPMailerSend(t *testing.T) {
	m, client := newFakeMailer(t, SMTPSettings{
		Enabled: true,
		Host:    "smtp.example.com",
		Port:    587,
		From:    "noreply@example.com",
	})

	err := m.Send(context.Background(), Message{
		To:      "reader@example.com",
		Subject: "Verify your email",
		Body:    "Click the link.",
	})
	require.NoError(t, err)

	require.Equal(t, "noreply@example.com", client.from)
	require.Equal(t, "reader@example.com", client.rcpt)
	require.True(t, client.quit)
	require.False(t, client.authUsed)

	payload := client.data.String()
	require.Contains(t, payload, "Subject: Verify your email\r\n")
	require.Contains(t, payload, "\r\n\r\nClick the link.")
}

func TestSMTPMailerAuthenticatesWhenConfigured(t *testing.T) {
	m, client := newFakeMailer(t, SMTPSettings{
		Enabled:  true,
		Host:     "smtp.example.com",
		Port:     587,
		From:     "noreply@example.com",
		Username: "mailer",
		Password: "hunter2",
	})

	require.NoError(t, m.Send(context.Background(), Message{To: "reader@example.com"}))
	require.True(t, client.authUsed)
}

func TestSMTPMailerValidatesAddresses(t *testing.T) {
	m, _ := newFakeMailer(t, SMTPSettings{
		Enabled: true,
		Host:    "smtp.example.com",
		Port:    587,
		From:    "noreply@example.com",
	})

	err := m.Send(context.Background(), Message{To: ""})
	require.Error(t, err)

	err = m.Send(context.Background(), Message{To: "not an address"})
	require.Error(t, err)
}

func TestSMTPMailerPropagatesDialFailure(t *testing.T) {
	m, err := newSMTPMailer(SMTPSettings{
		Enabled: true,
		Host:    "smtp.example.com",
		Port:    587,
		From:    "noreply@example.com",
	})
	require.NoError(t, err)

	dialErr := errors.New("connection refused")
	m.dialFn = func(context.Context, SMTPSettings) (net.Conn, smtpClient, error) {
		return nil, nil, dialErr
	}

	require.ErrorIs(t, m.Send(context.Background(), Message{To: "reader@example.com"}), dialErr)
}

func TestSubjectHeaderInjectionEscaped(t *testing.T) {
	require.Equal(t, "a b", escapeHeader("a\r\nb"))
	require.Equal(t, "a b", escapeHeader("a\rb"))
	require.Equal(t, "a b", escapeHeader("a\nb"))
	require.Equal(t, "a b c", escapeHeader("a\r\nb\nc"))
}
