package models

import (
	"time"

	"roamio/internal/domain"

	"gorm.io/gorm"
)

// Affiliate is a user enrolled in the referral program. The referral code is
// issued once and never changes; attribution and commission accrual hang off it.
type Affiliate struct {
	ID                 uint                   `gorm:"primaryKey" json:"id"`
	UserID             uint                   `gorm:"uniqueIndex;not null" json:"user_id"`
	ReferralCode       string                 `gorm:"uniqueIndex;size:20;not null" json:"referral_code"`
	Level              int                    `gorm:"not null;default:1" json:"level"`
	Status             domain.AffiliateStatus `gorm:"size:20;not null;index" json:"status"`
	Verified           bool                   `gorm:"default:false" json:"verified"`
	TotalEarningsCents int64                  `gorm:"not null;default:0" json:"total_earnings_cents"`
	TotalReferrals     int                    `gorm:"not null;default:0" json:"total_referrals"`
	TotalClicks        int                    `gorm:"not null;default:0" json:"total_clicks"`
	PayoutMethod       domain.PayoutMethod    `gorm:"size:20" json:"payout_method"`
	PayoutAccount      string                 `gorm:"size:255" json:"payout_account"` // PayPal email, IBAN, or card reference
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
	DeletedAt          gorm.DeletedAt         `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Affiliate) TableName() string { return "affiliates" }
