package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bookhaven/backend/internal/models"
)

func newTestTokenService(t *testing.T, clock func() time.Time) *TokenService {
	t.Helper()

	svc, err := NewTokenService(TokenConfig{
		Secret:      "primary-secret",
		EmailSecret: "email-secret",
		ResetSecret: "reset-secret",
		Issuer:      "bookhaven-test",
		Clock:       clock,
	})
	require.NoError(t, err)
	return svc
}

func TestNewTokenServiceRequiresSecrets(t *testing.T) {
	_, err := NewTokenService(TokenConfig{EmailSecret: "e", ResetSecret: "r"})
	require.Error(t, err)

	_, err = NewTokenService(TokenConfig{Secret: "s", ResetSecret: "r"})
	require.Error(t, err)

	_, err = NewTokenService(TokenConfig{Secret: "s", EmailSecret: "e"})
	require.Error(t, err)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestTokenService(t, func() time.Time { return current })

	account := &models.Account{
		ID:           "acc-1",
		Username:     "reader",
		Email:        "reader@example.com",
		Role:         models.RoleUser,
		TokenVersion: 3,
	}

	token, err := svc.IssueAccessToken(account)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, "acc-1", claims.UserID)
	require.Equal(t, "reader", claims.Username)
	require.Equal(t, "reader@example.com", claims.Email)
	require.Equal(t, models.RoleUser, claims.Role)
	require.Equal(t, 3, claims.TokenVersion)
	require.True(t, claims.ExpiresAt.Time.Equal(current.Add(DefaultAccessTokenTTL)))
}

func TestRefreshTokenCarriesVersionSnapshot(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestTokenService(t, func() time.Time { return current })

	token, err := svc.IssueRefreshToken("acc-1", 7)
	require.NoError(t, err)

	claims, err := svc.VerifyRefreshToken(token)
	require.NoError(t, err)
	require.Equal(t, "acc-1", claims.UserID)
	require.Equal(t, 7, claims.TokenVersion)
	require.True(t, claims.ExpiresAt.Time.Equal(current.Add(DefaultRefreshTokenTTL)))
}

func TestExpiredTokenReported(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestTokenService(t, func() time.Time { return current })

	token, err := svc.IssueAccessToken(&models.Account{ID: "acc-1"})
	require.NoError(t, err)

	current = current.Add(DefaultAccessTokenTTL + time.Minute)

	_, err = svc.VerifyAccessToken(token)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestWrongSecretRejected(t *testing.T) {
	clock := func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	issuer := newTestTokenService(t, clock)

	verifier, err := NewTokenService(TokenConfig{
		Secret:      "a-different-secret",
		EmailSecret: "email-secret",
		ResetSecret: "reset-secret",
		Issuer:      "bookhaven-test",
		Clock:       clock,
	})
	require.NoError(t, err)

	token, err := issuer.IssueAccessToken(&models.Account{ID: "acc-1"})
	require.NoError(t, err)

	_, err = verifier.VerifyAccessToken(token)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenPurposesAreIsolated(t *testing.T) {
	svc := newTestTokenService(t, time.Now)

	verify, err := svc.IssueEmailVerificationToken("acc-1")
	require.NoError(t, err)
	reset, err := svc.IssuePasswordResetToken("acc-1")
	require.NoError(t, err)
	refresh, err := svc.IssueRefreshToken("acc-1", 0)
	require.NoError(t, err)

	// Each purpose signs with its own secret, so cross-purpose use fails.
	_, err = svc.VerifyPasswordResetToken(verify)
	require.ErrorIs(t, err, ErrTokenInvalid)

	_, err = svc.VerifyEmailVerificationToken(reset)
	require.ErrorIs(t, err, ErrTokenInvalid)

	_, err = svc.VerifyEmailVerificationToken(refresh)
	require.ErrorIs(t, err, ErrTokenInvalid)

	_, err = svc.VerifyRefreshToken(verify)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestIssuerMismatchRejected(t *testing.T) {
	clock := func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	issuer := newTestTokenService(t, clock)

	other, err := NewTokenService(TokenConfig{
		Secret:      "primary-secret",
		EmailSecret: "email-secret",
		ResetSecret: "reset-secret",
		Issuer:      "someone-else",
		Clock:       clock,
	})
	require.NoError(t, err)

	token, err := issuer.IssueAccessToken(&models.Account{ID: "acc-1"})
	require.NoError(t, err)

	_, err = other.VerifyAccessToken(token)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestGarbageTokenRejected(t *testing.T) {
	svc := newTestTokenService(t, time.Now)

	_, err := svc.VerifyAccessToken("")
	require.ErrorIs(t, err, ErrTokenInvalid)

	_, err = svc.VerifyAccessToken("not.a.jwt")
	require.ErrorIs(t, err, ErrTokenInvalid)
}
