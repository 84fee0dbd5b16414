package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Account is the credential record behind every authentication flow.
// Refresh-token validity is decided by signature plus TokenVersion match;
// the stored RefreshToken column is tracking only.
type Account struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	Username string `gorm:"not null" json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"column:password_hash;not null" json:"-"`

	Role          string `gorm:"default:user" json:"role"`
	EmailVerified bool   `gorm:"default:false" json:"email_verified"`
	IsActive      bool   `gorm:"default:true" json:"is_active"`

	// TokenVersion only ever increases; bumping it invalidates every
	// refresh token issued before the bump.
	TokenVersion int    `gorm:"default:0" json:"-"`
	RefreshToken string `json:"-"`

	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// BeforeCreate ensures a UUID is present before persisting.
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Role == "" {
		a.Role = RoleUser
	}
	return nil
}
