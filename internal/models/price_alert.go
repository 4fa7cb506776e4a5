package models

import (
	"time"

	"gorm.io/gorm"
)

// PriceAlert asks to be notified when a destination drops below a target
// price. HOTEL alerts carry check-in/out dates, FLIGHT alerts depart/return.
type PriceAlert struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	UserID           uint           `gorm:"not null;index" json:"user_id"`
	Kind             string         `gorm:"size:10;not null" json:"kind"` // HOTEL | FLIGHT
	Destination      string         `gorm:"size:255;not null" json:"destination"`
	TargetPriceCents int64          `gorm:"not null" json:"target_price_cents"`
	CheckIn          *time.Time     `json:"check_in"`
	CheckOut         *time.Time     `json:"check_out"`
	DepartDate       *time.Time     `json:"depart_date"`
	ReturnDate       *time.Time     `json:"return_date"`
	Active           bool           `gorm:"default:true;index" json:"active"`
	LastNotifiedAt   *time.Time     `json:"last_notified_at"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (PriceAlert) TableName() string { return "price_alerts" }
