package models

import (
	"time"

	"gorm.io/gorm"
)

type Booking struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	UserID           uint           `gorm:"not null;index" json:"user_id"`
	Reference        string         `gorm:"size:64;uniqueIndex;not null" json:"reference"`
	Kind             string         `gorm:"size:10;not null" json:"kind"` // HOTEL | FLIGHT
	Destination      string         `gorm:"size:255;not null" json:"destination"`
	CheckIn          time.Time      `gorm:"not null" json:"check_in"`
	CheckOut         time.Time      `gorm:"not null" json:"check_out"`
	Guests           int            `gorm:"not null;default:1" json:"guests"`
	Rooms            int            `gorm:"not null;default:1" json:"rooms"`
	NightlyRateCents int64          `gorm:"not null" json:"nightly_rate_cents"`
	TotalCents       int64          `gorm:"not null" json:"total_cents"`
	Currency         string         `gorm:"size:3;not null" json:"currency"`
	Status           string         `gorm:"size:20;not null;index" json:"status"` // CONFIRMED | CANCELLED
	PaymentRef       string         `gorm:"size:128" json:"payment_ref"`
	CancelledAt      *time.Time     `json:"cancelled_at"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Booking) TableName() string { return "bookings" }
