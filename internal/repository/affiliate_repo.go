package repository

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"roamio/internal/domain"
	"roamio/internal/models"

	"gorm.io/gorm"
)

// ErrConflict is returned when a guarded status update matched no rows,
// i.e. the entity was already moved out of the expected state. Handlers
// surface it as 409 so a concurrent duplicate command never double-applies.
var ErrConflict = errors.New("entity not in expected state")

type AffiliateRepository struct {
	db *gorm.DB
}

func NewAffiliateRepository(db *gorm.DB) *AffiliateRepository {
	return &AffiliateRepository{db: db}
}

// generateReferralCode returns an 8-character hex code.
func generateReferralCode() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Create enrolls a user, issuing a unique referral code. The code is immutable
// once issued; on a collision we retry with a fresh one.
func (r *AffiliateRepository) Create(userID uint, status domain.AffiliateStatus) (*models.Affiliate, error) {
	for i := 0; i < 10; i++ {
		code, err := generateReferralCode()
		if err != nil {
			return nil, err
		}
		a := models.Affiliate{UserID: userID, ReferralCode: code, Level: 1, Status: status}
		if err := r.db.Create(&a).Error; err == nil {
			return &a, nil
		}
		// Collision: retry with new code
	}
	return nil, fmt.Errorf("failed to generate a unique referral code after retries")
}

func (r *AffiliateRepository) GetByID(id uint) (*models.Affiliate, error) {
	var a models.Affiliate
	if err := r.db.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AffiliateRepository) GetByUserID(userID uint) (*models.Affiliate, error) {
	var a models.Affiliate
	if err := r.db.Where("user_id = ?", userID).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AffiliateRepository) GetByCode(code string) (*models.Affiliate, error) {
	var a models.Affiliate
	if err := r.db.Where("referral_code = ?", code).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateStatus applies from -> to as a guarded update so two concurrent admin
// commands cannot both succeed.
func (r *AffiliateRepository) UpdateStatus(id uint, from, to domain.AffiliateStatus) error {
	res := r.db.Model(&models.Affiliate{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

// MarkVerified sets the orthogonal verified flag; it is never unset.
func (r *AffiliateRepository) MarkVerified(id uint) error {
	return r.db.Model(&models.Affiliate{}).Where("id = ?", id).Update("verified", true).Error
}

func (r *AffiliateRepository) IncrementClicks(id uint) error {
	return r.db.Model(&models.Affiliate{}).
		Where("id = ?", id).
		UpdateColumn("total_clicks", gorm.Expr("total_clicks + 1")).Error
}

func (r *AffiliateRepository) IncrementReferrals(id uint) error {
	return r.db.Model(&models.Affiliate{}).
		Where("id = ?", id).
		UpdateColumn("total_referrals", gorm.Expr("total_referrals + 1")).Error
}

// AddEarnings bumps the cumulative counter when a commission is approved.
func (r *AffiliateRepository) AddEarnings(id uint, amountCents int64) error {
	return r.db.Model(&models.Affiliate{}).
		Where("id = ?", id).
		UpdateColumn("total_earnings_cents", gorm.Expr("total_earnings_cents + ?", amountCents)).Error
}

func (r *AffiliateRepository) UpdatePayoutSettings(id uint, method domain.PayoutMethod, account string) error {
	return r.db.Model(&models.Affiliate{}).Where("id = ?", id).
		Updates(map[string]interface{}{"payout_method": method, "payout_account": account}).Error
}

// List returns affiliates for the admin back office, optionally filtered by status.
func (r *AffiliateRepository) List(status string, page, limit int) ([]models.Affiliate, int64, error) {
	q := r.db.Model(&models.Affiliate{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.Affiliate
	err := q.Preload("User").
		Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&list).Error
	return list, total, err
}
