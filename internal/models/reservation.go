package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reservation statuses.
const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
)

// Reservation links an account to a restaurant booking.
type Reservation struct {
	ID           string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID       string `gorm:"type:uuid;not null;index" json:"user_id"`
	RestaurantID string `gorm:"type:uuid;not null;index" json:"restaurant_id"`

	ReservationAt time.Time `gorm:"column:reservation_datetime;not null" json:"reservation_datetime"`
	Guests        int       `gorm:"not null" json:"guests"`
	Status        string    `gorm:"default:pending" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate ensures a UUID and default status are present before persisting.
func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = ReservationPending
	}
	return nil
}
