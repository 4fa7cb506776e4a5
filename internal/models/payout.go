package models

import (
	"time"

	"roamio/internal/domain"

	"gorm.io/gorm"
)

// Payout is one withdrawal request drawing down the affiliate's approved
// balance. It references the aggregate balance only, never individual
// commission rows. TransactionID is assigned only when the payout completes.
type Payout struct {
	ID            uint                `gorm:"primaryKey" json:"id"`
	AffiliateID   uint                `gorm:"not null;index" json:"affiliate_id"`
	Reference     string              `gorm:"size:64;uniqueIndex;not null" json:"reference"`
	AmountCents   int64               `gorm:"not null" json:"amount_cents"`
	Currency      string              `gorm:"size:3;not null" json:"currency"`
	Method        domain.PayoutMethod `gorm:"size:20;not null" json:"method"`
	Status        domain.PayoutStatus `gorm:"size:20;not null;index" json:"status"`
	TransactionID string              `gorm:"size:128" json:"transaction_id,omitempty"`
	Reason        string              `gorm:"size:255" json:"reason,omitempty"` // set on rejection
	RequestedAt   time.Time           `json:"requested_at"`
	ProcessedAt   *time.Time          `json:"processed_at"`
	CompletedAt   *time.Time          `json:"completed_at"`
	RejectedAt    *time.Time          `json:"rejected_at"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	DeletedAt     gorm.DeletedAt      `gorm:"index" json:"-"`

	Affiliate Affiliate `gorm:"foreignKey:AffiliateID" json:"affiliate,omitempty"`
}

func (Payout) TableName() string { return "payouts" }
