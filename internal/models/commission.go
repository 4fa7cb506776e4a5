package models

import (
	"time"

	"roamio/internal/domain"

	"gorm.io/gorm"
)

// Commission is one earned ledger entry tied to a referred booking. Entries
// are created by the accrual path when a referred booking completes and are
// only ever resolved (approved/rejected) by admin commands, never deleted.
type Commission struct {
	ID          uint                    `gorm:"primaryKey" json:"id"`
	AffiliateID uint                    `gorm:"not null;index" json:"affiliate_id"`
	BookingID   uint                    `gorm:"not null;index" json:"booking_id"`
	AmountCents int64                   `gorm:"not null" json:"amount_cents"`
	Level       int                     `gorm:"not null;default:1" json:"level"` // referral tier that generated it
	Status      domain.CommissionStatus `gorm:"size:20;not null;index" json:"status"`
	Reason      string                  `gorm:"size:255" json:"reason,omitempty"` // set on rejection
	ApprovedAt  *time.Time              `json:"approved_at"`
	RejectedAt  *time.Time              `json:"rejected_at"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
	DeletedAt   gorm.DeletedAt          `gorm:"index" json:"-"`

	Affiliate Affiliate `gorm:"foreignKey:AffiliateID" json:"affiliate,omitempty"`
	Booking   Booking   `gorm:"foreignKey:BookingID" json:"-"`
}

func (Commission) TableName() string { return "commissions" }
