package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Book is a catalogue entry.
type Book struct {
	ID            string `gorm:"primaryKey;type:uuid" json:"id"`
	Title         string `gorm:"not null" json:"title"`
	Author        string `gorm:"not null" json:"author"`
	PublishedYear int    `json:"published_year"`
	Genre         string `json:"genre"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate ensures a UUID is present before persisting.
func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
