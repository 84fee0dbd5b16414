package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bookhaven/backend/internal/models"
	"github.com/bookhaven/backend/pkg/metrics"
)

// Default token lifetimes, overridable via configuration.
const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
	DefaultVerifyTokenTTL  = 24 * time.Hour
	DefaultResetTokenTTL   = time.Hour
)

var (
	// ErrTokenExpired is returned when a token's expiry has passed.
	ErrTokenExpired = errors.New("token: expired")
	// ErrTokenInvalid covers signature mismatches, malformed tokens, and
	// tokens signed for a different purpose.
	ErrTokenInvalid = errors.New("token: invalid")
)

// TokenConfig bundles the secrets and lifetimes for all four token purposes.
// Access and refresh tokens share the primary secret; email verification
// and password reset each use a dedicated one.
type TokenConfig struct {
	Secret      string
	EmailSecret string
	ResetSecret string
	Issuer      string

	AccessTTL  time.Duration
	RefreshTTL time.Duration
	VerifyTTL  time.Duration
	ResetTTL   time.Duration

	Clock func() time.Time
}

// AccessClaims is the payload embedded in access tokens.
type AccessClaims struct {
	UserID       string `json:"uid"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	TokenVersion int    `json:"token_version"`
	jwt.RegisteredClaims
}

// RefreshClaims is the payload embedded in refresh tokens. The version
// snapshot is compared against the account's current token_version on use.
type RefreshClaims struct {
	UserID       string `json:"uid"`
	TokenVersion int    `json:"ver"`
	jwt.RegisteredClaims
}

// ActionClaims is the minimal payload for single-purpose tokens
// (email verification, password reset).
type ActionClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies the four token kinds used by the
// authentication flows.
type TokenService struct {
	secret      []byte
	emailSecret []byte
	resetSecret []byte
	issuer      string

	accessTTL  time.Duration
	refreshTTL time.Duration
	verifyTTL  time.Duration
	resetTTL   time.Duration

	now func() time.Time
}

// NewTokenService validates the configuration and constructs a TokenService.
func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, errors.New("token service: jwt secret must be provided")
	}
	if strings.TrimSpace(cfg.EmailSecret) == "" {
		return nil, errors.New("token service: email token secret must be provided")
	}
	if strings.TrimSpace(cfg.ResetSecret) == "" {
		return nil, errors.New("token service: reset token secret must be provided")
	}

	svc := &TokenService{
		secret:      []byte(cfg.Secret),
		emailSecret: []byte(cfg.EmailSecret),
		resetSecret: []byte(cfg.ResetSecret),
		issuer:      cfg.Issuer,
		accessTTL:   cfg.AccessTTL,
		refreshTTL:  cfg.RefreshTTL,
		verifyTTL:   cfg.VerifyTTL,
		resetTTL:    cfg.ResetTTL,
		now:         time.Now,
	}

	if svc.accessTTL <= 0 {
		svc.accessTTL = DefaultAccessTokenTTL
	}
	if svc.refreshTTL <= 0 {
		svc.refreshTTL = DefaultRefreshTokenTTL
	}
	if svc.verifyTTL <= 0 {
		svc.verifyTTL = DefaultVerifyTokenTTL
	}
	if svc.resetTTL <= 0 {
		svc.resetTTL = DefaultResetTokenTTL
	}
	if cfg.Clock != nil {
		svc.now = cfg.Clock
	}

	return svc, nil
}

// IssueAccessToken signs a short-lived access token for the account.
func (s *TokenService) IssueAccessToken(account *models.Account) (string, error) {
	if account == nil || account.ID == "" {
		return "", errors.New("token service: account is required")
	}

	claims := &AccessClaims{
		UserID:           account.ID,
		Username:         account.Username,
		Email:            account.Email,
		Role:             account.Role,
		TokenVersion:     account.TokenVersion,
		RegisteredClaims: s.registered(account.ID, s.accessTTL),
	}

	return s.sign(claims, s.secret, "access")
}

// IssueRefreshToken signs a refresh token embedding the account's current
// token_version. The token is honored only while that snapshot still
// matches the stored counter.
func (s *TokenService) IssueRefreshToken(accountID string, tokenVersion int) (string, error) {
	if accountID == "" {
		return "", errors.New("token service: account id is required")
	}

	claims := &RefreshClaims{
		UserID:           accountID,
		TokenVersion:     tokenVersion,
		RegisteredClaims: s.registered(accountID, s.refreshTTL),
	}

	return s.sign(claims, s.secret, "refresh")
}

// IssueEmailVerificationToken signs a single-purpose verification token.
func (s *TokenService) IssueEmailVerificationToken(accountID string) (string, error) {
	if accountID == "" {
		return "", errors.New("token service: account id is required")
	}

	claims := &ActionClaims{
		UserID:           accountID,
		RegisteredClaims: s.registered(accountID, s.verifyTTL),
	}

	return s.sign(claims, s.emailSecret, "verify")
}

// IssuePasswordResetToken signs a single-purpose reset token.
func (s *TokenService) IssuePasswordResetToken(accountID string) (string, error) {
	if accountID == "" {
		return "", errors.New("token service: account id is required")
	}

	claims := &ActionClaims{
		UserID:           accountID,
		RegisteredClaims: s.registered(accountID, s.resetTTL),
	}

	return s.sign(claims, s.resetSecret, "reset")
}

// VerifyAccessToken parses an access token and returns its claims.
func (s *TokenService) VerifyAccessToken(token string) (*AccessClaims, error) {
	var claims AccessClaims
	if err := s.parse(token, &claims, s.secret); err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, ErrTokenInvalid
	}
	return &claims, nil
}

// VerifyRefreshToken parses a refresh token and returns its claims.
func (s *TokenService) VerifyRefreshToken(token string) (*RefreshClaims, error) {
	var claims RefreshClaims
	if err := s.parse(token, &claims, s.secret); err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, ErrTokenInvalid
	}
	return &claims, nil
}

// VerifyEmailVerificationToken parses an email-verification token.
func (s *TokenService) VerifyEmailVerificationToken(token string) (*ActionClaims, error) {
	return s.verifyAction(token, s.emailSecret)
}

// VerifyPasswordResetToken parses a password-reset token.
func (s *TokenService) VerifyPasswordResetToken(token string) (*ActionClaims, error) {
	return s.verifyAction(token, s.resetSecret)
}

func (s *TokenService) verifyAction(token string, secret []byte) (*ActionClaims, error) {
	var claims ActionClaims
	if err := s.parse(token, &claims, secret); err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, ErrTokenInvalid
	}
	return &claims, nil
}

func (s *TokenService) registered(subject string, ttl time.Duration) jwt.RegisteredClaims {
	now := s.now()
	return jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    s.issuer,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
}

func (s *TokenService) sign(claims jwt.Claims, secret []byte, purpose string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("token service: sign %s token: %w", purpose, err)
	}

	metrics.TokensIssued.WithLabelValues(purpose).Inc()
	return signed, nil
}

// parse validates signature, expiry, and issuer, translating library
// failures into the two caller-visible kinds.
func (s *TokenService) parse(token string, claims jwt.Claims, secret []byte) error {
	if strings.TrimSpace(token) == "" {
		return ErrTokenInvalid
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)

	_, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if s.issuer != "" {
		if issuer, issErr := claims.GetIssuer(); issErr != nil || issuer != s.issuer {
			return ErrTokenInvalid
		}
	}

	return nil
}
