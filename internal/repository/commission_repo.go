package repository

import (
	"time"

	"roamio/internal/domain"
	"roamio/internal/models"

	"gorm.io/gorm"
)

type CommissionRepository struct {
	db *gorm.DB
}

func NewCommissionRepository(db *gorm.DB) *CommissionRepository {
	return &CommissionRepository{db: db}
}

func (r *CommissionRepository) Create(c *models.Commission) error {
	return r.db.Create(c).Error
}

func (r *CommissionRepository) GetByID(id uint) (*models.Commission, error) {
	var c models.Commission
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// conflictOrNotFound distinguishes why a guarded update matched no rows: a
// missing entry surfaces record-not-found, an existing one a state conflict.
func (r *CommissionRepository) conflictOrNotFound(id uint) error {
	if _, err := r.GetByID(id); err != nil {
		return err
	}
	return ErrConflict
}

// Approve resolves a pending entry. The status guard in the WHERE clause makes
// the command race-safe: the second of two concurrent approvals matches zero
// rows and gets ErrConflict.
func (r *CommissionRepository) Approve(id uint) (*models.Commission, error) {
	now := time.Now()
	res := r.db.Model(&models.Commission{}).
		Where("id = ? AND status = ?", id, domain.CommissionPending).
		Updates(map[string]interface{}{"status": domain.CommissionApproved, "approved_at": &now})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, r.conflictOrNotFound(id)
	}
	return r.GetByID(id)
}

// Reject resolves a pending entry with a reason. Terminal like Approve.
func (r *CommissionRepository) Reject(id uint, reason string) (*models.Commission, error) {
	now := time.Now()
	res := r.db.Model(&models.Commission{}).
		Where("id = ? AND status = ?", id, domain.CommissionPending).
		Updates(map[string]interface{}{"status": domain.CommissionRejected, "reason": reason, "rejected_at": &now})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, r.conflictOrNotFound(id)
	}
	return r.GetByID(id)
}

// SumApprovedCents returns the affiliate's lifetime approved commission total.
func (r *CommissionRepository) SumApprovedCents(affiliateID uint) (int64, error) {
	var total int64
	err := r.db.Model(&models.Commission{}).
		Where("affiliate_id = ? AND status = ?", affiliateID, domain.CommissionApproved).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&total).Error
	return total, err
}

func (r *CommissionRepository) ListByAffiliate(affiliateID uint, page, limit int) ([]models.Commission, int64, error) {
	q := r.db.Model(&models.Commission{}).Where("affiliate_id = ?", affiliateID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.Commission
	err := q.Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&list).Error
	return list, total, err
}

// List returns entries for the admin back office, optionally filtered by status.
func (r *CommissionRepository) List(status string, page, limit int) ([]models.Commission, int64, error) {
	q := r.db.Model(&models.Commission{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.Commission
	err := q.Preload("Affiliate").
		Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&list).Error
	return list, total, err
}
