package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bookhaven/backend/internal/models"
	"github.com/bookhaven/backend/internal/store"
	"github.com/bookhaven/backend/pkg/crypto"
	"github.com/bookhaven/backend/pkg/logger"
	"github.com/bookhaven/backend/pkg/metrics"
)

var (
	// ErrInvalidCredentials is returned for unknown emails, deactivated
	// accounts, and password mismatches alike so the 401 path leaks nothing.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrEmailNotVerified blocks login until the verification flow completes.
	ErrEmailNotVerified = errors.New("auth: email not verified")
	// ErrEmailTaken signals a duplicate registration.
	ErrEmailTaken = errors.New("auth: email already registered")
	// ErrAlreadyVerified is returned when verification is attempted twice.
	ErrAlreadyVerified = errors.New("auth: email already verified")
	// ErrAccountNotFound signals that a lookup key or token subject has no account.
	ErrAccountNotFound = errors.New("auth: account not found")
	// ErrRefreshRejected covers every refresh failure: bad signature, expiry,
	// unknown subject, or a token_version that no longer matches.
	ErrRefreshRejected = errors.New("auth: refresh token rejected")
)

// Mailer dispatches signed tokens to an account's email address. Delivery
// is fire-and-forget from the service's perspective.
type Mailer interface {
	SendEmailVerification(ctx context.Context, email, token string) error
	SendPasswordReset(ctx context.Context, email, token string) error
}

// TokenPair bundles the credentials returned by a successful login.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RegisterInput captures the details required to register a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// ServiceConfig describes tunable behaviour for the auth service.
type ServiceConfig struct {
	BcryptCost int
	Clock      func() time.Time
}

// Service orchestrates the account lifecycle: registration, email
// verification, login, refresh, logout, and password recovery.
type Service struct {
	accounts *store.AccountStore
	tokens   *TokenService
	mailer   Mailer
	cost     int
	now      func() time.Time
	log      *zap.Logger
}

// NewService wires the session lifecycle manager.
func NewService(accounts *store.AccountStore, tokens *TokenService, mailer Mailer, cfg ServiceConfig) (*Service, error) {
	if accounts == nil {
		return nil, errors.New("auth service: account store is required")
	}
	if tokens == nil {
		return nil, errors.New("auth service: token service is required")
	}
	if mailer == nil {
		return nil, errors.New("auth service: mailer is required")
	}

	cost := cfg.BcryptCost
	if cost <= 0 {
		cost = crypto.DefaultBcryptCost
	}

	clock := time.Now
	if cfg.Clock != nil {
		clock = cfg.Clock
	}

	return &Service{
		accounts: accounts,
		tokens:   tokens,
		mailer:   mailer,
		cost:     cost,
		now:      clock,
		log:      logger.WithModule("auth"),
	}, nil
}

// Register creates an unverified, active account and dispatches an email
// verification token. The unique constraint on email is the real duplicate
// guard; the prior lookup only provides the fast path.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*models.Account, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if username == "" || email == "" || input.Password == "" {
		return nil, errors.New("auth service: username, email and password are required")
	}

	if _, err := s.accounts.FindByEmail(ctx, email); err == nil {
		metrics.Registrations.WithLabelValues("conflict").Inc()
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hash, err := crypto.HashPasswordWithCost(input.Password, s.cost)
	if err != nil {
		return nil, fmt.Errorf("auth service: hash password: %w", err)
	}

	account := &models.Account{
		Username:      username,
		Email:         email,
		Password:      hash,
		Role:          models.RoleUser,
		EmailVerified: false,
		IsActive:      true,
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			metrics.Registrations.WithLabelValues("conflict").Inc()
			return nil, ErrEmailTaken
		}
		metrics.Registrations.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.Registrations.WithLabelValues("created").Inc()
	s.dispatchVerification(ctx, account)

	return account, nil
}

// VerifyEmail consumes a verification token and flips email_verified once.
// A second call with the same valid token reports ErrAlreadyVerified.
func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	claims, err := s.tokens.VerifyEmailVerificationToken(token)
	if err != nil {
		return err
	}

	account, err := s.accounts.FindByID(ctx, claims.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrAccountNotFound
	}
	if err != nil {
		return err
	}

	if account.EmailVerified {
		return ErrAlreadyVerified
	}

	return s.accounts.MarkEmailVerified(ctx, account.ID)
}

// ResendVerification issues a fresh verification token. Previously issued
// tokens stay valid until their own expiry; there is no revocation list.
func (s *Service) ResendVerification(ctx context.Context, email string) error {
	account, err := s.accounts.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return ErrAccountNotFound
	}
	if err != nil {
		return err
	}

	if account.EmailVerified {
		return ErrAlreadyVerified
	}

	s.dispatchVerification(ctx, account)
	return nil
}

// Login authenticates email/password credentials and issues a token pair.
// Unknown accounts, deactivated accounts, and wrong passwords all fail with
// ErrInvalidCredentials; only an unverified email is reported distinctly.
func (s *Service) Login(ctx context.Context, email, password string) (TokenPair, *models.Account, error) {
	account, err := s.accounts.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		return TokenPair{}, nil, ErrInvalidCredentials
	}
	if err != nil {
		return TokenPair{}, nil, err
	}

	if !account.IsActive {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		return TokenPair{}, nil, ErrInvalidCredentials
	}

	if !account.EmailVerified {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		return TokenPair{}, nil, ErrEmailNotVerified
	}

	if !crypto.VerifyPassword(account.Password, password) {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		return TokenPair{}, nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.IssueAccessToken(account)
	if err != nil {
		return TokenPair{}, nil, err
	}

	refreshToken, err := s.tokens.IssueRefreshToken(account.ID, account.TokenVersion)
	if err != nil {
		return TokenPair{}, nil, err
	}

	if err := s.accounts.SetRefreshToken(ctx, account.ID, refreshToken); err != nil {
		return TokenPair{}, nil, err
	}

	now := s.now()
	if err := s.accounts.TouchLastLogin(ctx, account.ID, now); err != nil {
		return TokenPair{}, nil, err
	}
	account.LastLoginAt = &now

	metrics.AuthAttempts.WithLabelValues("success").Inc()

	return TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, account, nil
}

// Refresh verifies a refresh token and mints a new access token. The token
// is honored only while its embedded version matches the account's current
// token_version; logout bumps the counter and every older token silently
// dies here. The refresh token itself is not rotated.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", ErrRefreshRejected
	}

	account, err := s.accounts.FindByID(ctx, claims.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrRefreshRejected
	}
	if err != nil {
		return "", err
	}

	if account.TokenVersion != claims.TokenVersion {
		return "", ErrRefreshRejected
	}

	return s.tokens.IssueAccessToken(account)
}

// Logout invalidates every outstanding refresh token for the account via a
// single atomic token_version increment.
func (s *Service) Logout(ctx context.Context, accountID string) error {
	err := s.accounts.IncrementTokenVersion(ctx, accountID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrAccountNotFound
	}
	return err
}

// ForgotPassword issues a password-reset token and dispatches it.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	account, err := s.accounts.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return ErrAccountNotFound
	}
	if err != nil {
		return err
	}

	token, err := s.tokens.IssuePasswordResetToken(account.ID)
	if err != nil {
		return err
	}

	if err := s.mailer.SendPasswordReset(ctx, account.Email, token); err != nil {
		s.log.Error("password reset email dispatch failed",
			zap.String("account_id", account.ID), zap.Error(err))
	}

	return nil
}

// ResetPassword consumes a reset token and replaces the password hash.
// token_version is deliberately left untouched, so refresh tokens issued
// before the reset remain valid until logout or expiry.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := s.tokens.VerifyPasswordResetToken(token)
	if err != nil {
		return err
	}

	hash, err := crypto.HashPasswordWithCost(newPassword, s.cost)
	if err != nil {
		return fmt.Errorf("auth service: hash password: %w", err)
	}

	err = s.accounts.UpdatePasswordHash(ctx, claims.UserID, hash)
	if errors.Is(err, store.ErrNotFound) {
		return ErrAccountNotFound
	}
	return err
}

// dispatchVerification signs and emails a verification token. Failures are
// logged, never surfaced; the account exists regardless.
func (s *Service) dispatchVerification(ctx context.Context, account *models.Account) {
	token, err := s.tokens.IssueEmailVerificationToken(account.ID)
	if err != nil {
		s.log.Error("verification token issue failed",
			zap.String("account_id", account.ID), zap.Error(err))
		return
	}

	if err := s.mailer.SendEmailVerification(ctx, account.Email, token); err != nil {
		s.log.Error("verification email dispatch failed",
			zap.String("account_id", account.ID), zap.Error(err))
	}
}
