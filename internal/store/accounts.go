package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/bookhaven/backend/internal/database"
	"github.com/bookhaven/backend/internal/models"
)

var (
	// ErrNotFound indicates that no account matches the lookup key.
	ErrNotFound = errors.New("store: account not found")
	// ErrDuplicateEmail is returned when an insert violates the unique email constraint.
	ErrDuplicateEmail = errors.New("store: email already registered")
)

// AccountStore is the persistence boundary for account records. Every
// method either succeeds or fails with a store-level error distinct from
// domain errors.
type AccountStore struct {
	db *gorm.DB
}

// NewAccountStore wraps the provided database handle.
func NewAccountStore(db *gorm.DB) (*AccountStore, error) {
	if db == nil {
		return nil, errors.New("account store: db is required")
	}
	return &AccountStore{db: db}, nil
}

// FindByEmail fetches the account registered under email, case-insensitively.
func (s *AccountStore) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	err := s.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", strings.TrimSpace(email)).
		Take(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("account store: find by email: %w", err)
	}
	return &account, nil
}

// FindByID fetches the account with the given id.
func (s *AccountStore) FindByID(ctx context.Context, id string) (*models.Account, error) {
	var account models.Account
	err := s.db.WithContext(ctx).Take(&account, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("account store: find by id: %w", err)
	}
	return &account, nil
}

// Create inserts a new account. The unique constraint on email is the
// enforcement point for duplicates; a concurrent registration that slipped
// past an existence check still surfaces as ErrDuplicateEmail here.
func (s *AccountStore) Create(ctx context.Context, account *models.Account) error {
	if account == nil {
		return errors.New("account store: account is required")
	}

	err := s.db.WithContext(ctx).Create(account).Error
	if database.IsDuplicateKey(err) {
		return ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("account store: create: %w", err)
	}
	return nil
}

// MarkEmailVerified flips email_verified to true for the account.
func (s *AccountStore) MarkEmailVerified(ctx context.Context, id string) error {
	return s.updateColumn(ctx, id, "email_verified", true)
}

// UpdatePasswordHash replaces the stored password hash.
func (s *AccountStore) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	return s.updateColumn(ctx, id, "password_hash", hash)
}

// SetRefreshToken records the last-issued refresh token string.
func (s *AccountStore) SetRefreshToken(ctx context.Context, id, token string) error {
	return s.updateColumn(ctx, id, "refresh_token", token)
}

// Deactivate switches the account off without deleting its record.
// Deactivated accounts fail login the same way unknown ones do.
func (s *AccountStore) Deactivate(ctx context.Context, id string) error {
	return s.updateColumn(ctx, id, "is_active", false)
}

// TouchLastLogin stamps last_login_at with the supplied time.
func (s *AccountStore) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	return s.updateColumn(ctx, id, "last_login_at", at)
}

// IncrementTokenVersion bumps token_version in a single statement so that
// concurrent logout calls compose instead of losing updates. Incrementing
// twice is safe; the effect is still "invalidate everything issued before
// now".
func (s *AccountStore) IncrementTokenVersion(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", id).
		UpdateColumn("token_version", gorm.Expr("token_version + ?", 1))
	if result.Error != nil {
		return fmt.Errorf("account store: increment token version: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *AccountStore) updateColumn(ctx context.Context, id, column string, value any) error {
	result := s.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", id).
		UpdateColumn(column, value)
	if result.Error != nil {
		return fmt.Errorf("account store: update %s: %w", column, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
