package repository

import (
	"roamio/internal/domain"
	"roamio/internal/models"

	"gorm.io/gorm"
)

type AnalyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// ProgramStats is the admin analytics projection. It is recomputed on every
// fetch; nothing here is cached server-side.
type ProgramStats struct {
	TotalAffiliates       int64 `json:"total_affiliates"`
	ActiveAffiliates      int64 `json:"active_affiliates"`
	PendingAffiliates     int64 `json:"pending_affiliates"`
	TotalBookings         int64 `json:"total_bookings"`
	BookingVolumeCents    int64 `json:"booking_volume_cents"`
	PendingCommissions    int64 `json:"pending_commissions"`
	PendingCommissionSum  int64 `json:"pending_commission_cents"`
	ApprovedCommissionSum int64 `json:"approved_commission_cents"`
	PendingPayouts        int64 `json:"pending_payouts"`
	CompletedPayoutSum    int64 `json:"completed_payout_cents"`
}

func (r *AnalyticsRepository) GetProgramStats() (*ProgramStats, error) {
	var s ProgramStats
	r.db.Model(&models.Affiliate{}).Count(&s.TotalAffiliates)
	r.db.Model(&models.Affiliate{}).Where("status = ?", domain.AffiliateActive).Count(&s.ActiveAffiliates)
	r.db.Model(&models.Affiliate{}).Where("status = ?", domain.AffiliatePending).Count(&s.PendingAffiliates)
	r.db.Model(&models.Booking{}).Where("status = ?", domain.BookingStatusConfirmed).Count(&s.TotalBookings)
	r.db.Model(&models.Booking{}).Where("status = ?", domain.BookingStatusConfirmed).
		Select("COALESCE(SUM(total_cents), 0)").Scan(&s.BookingVolumeCents)
	r.db.Model(&models.Commission{}).Where("status = ?", domain.CommissionPending).Count(&s.PendingCommissions)
	r.db.Model(&models.Commission{}).Where("status = ?", domain.CommissionPending).
		Select("COALESCE(SUM(amount_cents), 0)").Scan(&s.PendingCommissionSum)
	r.db.Model(&models.Commission{}).Where("status = ?", domain.CommissionApproved).
		Select("COALESCE(SUM(amount_cents), 0)").Scan(&s.ApprovedCommissionSum)
	r.db.Model(&models.Payout{}).Where("status = ?", domain.PayoutPending).Count(&s.PendingPayouts)
	r.db.Model(&models.Payout{}).Where("status = ?", domain.PayoutCompleted).
		Select("COALESCE(SUM(amount_cents), 0)").Scan(&s.CompletedPayoutSum)
	return &s, nil
}

// TopPerformer is one leaderboard row.
type TopPerformer struct {
	AffiliateID   uint   `json:"affiliate_id"`
	ReferralCode  string `json:"referral_code"`
	Email         string `json:"email"`
	EarningsCents int64  `json:"earnings_cents"`
	Referrals     int    `json:"referrals"`
}

// TopPerformers ranks affiliates by approved commission earnings.
func (r *AnalyticsRepository) TopPerformers(limit int) ([]TopPerformer, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	var rows []TopPerformer
	err := r.db.Model(&models.Affiliate{}).
		Select(`affiliates.id AS affiliate_id,
			affiliates.referral_code,
			users.email,
			COALESCE(SUM(CASE WHEN commissions.status = ? THEN commissions.amount_cents ELSE 0 END), 0) AS earnings_cents,
			affiliates.total_referrals AS referrals`, domain.CommissionApproved).
		Joins("JOIN users ON users.id = affiliates.user_id").
		Joins("LEFT JOIN commissions ON commissions.affiliate_id = affiliates.id").
		Group("affiliates.id, affiliates.referral_code, users.email, affiliates.total_referrals").
		Order("earnings_cents DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
