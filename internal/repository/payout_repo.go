package repository

import (
	"errors"
	"time"

	"roamio/internal/domain"
	"roamio/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrInsufficientBalance is returned when a payout insert would overdraw the
// affiliate's available balance as recomputed inside the insert transaction.
var ErrInsufficientBalance = errors.New("insufficient balance")

type PayoutRepository struct {
	db *gorm.DB
}

func NewPayoutRepository(db *gorm.DB) *PayoutRepository {
	return &PayoutRepository{db: db}
}

func (r *PayoutRepository) GetByID(id uint) (*models.Payout, error) {
	var p models.Payout
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// availableBalanceCents is the sum of approved commissions minus everything
// already allocated to a non-rejected payout. Rejected payouts release their
// amount back into the balance.
func availableBalanceCents(db *gorm.DB, affiliateID uint) (int64, error) {
	var approved int64
	err := db.Model(&models.Commission{}).
		Where("affiliate_id = ? AND status = ?", affiliateID, domain.CommissionApproved).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&approved).Error
	if err != nil {
		return 0, err
	}
	var allocated int64
	err = db.Model(&models.Payout{}).
		Where("affiliate_id = ? AND status <> ?", affiliateID, domain.PayoutRejected).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&allocated).Error
	if err != nil {
		return 0, err
	}
	return approved - allocated, nil
}

func (r *PayoutRepository) AvailableBalanceCents(affiliateID uint) (int64, error) {
	return availableBalanceCents(r.db, affiliateID)
}

// CreateWithinBalance inserts the payout only if its amount fits the available
// balance. The balance is recomputed inside the transaction while the
// affiliate row is locked, so two concurrent requests serialize on the row
// and cannot together overdraw it.
func (r *PayoutRepository) CreateWithinBalance(p *models.Payout) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var a models.Affiliate
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&a, p.AffiliateID).Error; err != nil {
			return err
		}
		available, err := availableBalanceCents(tx, p.AffiliateID)
		if err != nil {
			return err
		}
		if p.AmountCents > available {
			return ErrInsufficientBalance
		}
		return tx.Create(p).Error
	})
}

// conflictOrNotFound distinguishes why a guarded update matched no rows: a
// missing payout surfaces record-not-found, an existing one a state conflict.
func (r *PayoutRepository) conflictOrNotFound(id uint) error {
	if _, err := r.GetByID(id); err != nil {
		return err
	}
	return ErrConflict
}

// MarkProcessing moves pending -> processing. The status guard returns
// ErrConflict for a duplicate command, so double-clicking "Process" yields at
// most one accepted transition.
func (r *PayoutRepository) MarkProcessing(id uint) (*models.Payout, error) {
	now := time.Now()
	res := r.db.Model(&models.Payout{}).
		Where("id = ? AND status = ?", id, domain.PayoutPending).
		Updates(map[string]interface{}{"status": domain.PayoutProcessing, "processed_at": &now})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, r.conflictOrNotFound(id)
	}
	return r.GetByID(id)
}

// MarkCompleted moves processing -> completed and records the provider
// transaction id. Completed is terminal and the only status carrying a
// transaction id. Of two concurrent commands only one matches the guard.
func (r *PayoutRepository) MarkCompleted(id uint, transactionID string) (*models.Payout, error) {
	now := time.Now()
	res := r.db.Model(&models.Payout{}).
		Where("id = ? AND status = ?", id, domain.PayoutProcessing).
		Updates(map[string]interface{}{
			"status":         domain.PayoutCompleted,
			"transaction_id": transactionID,
			"completed_at":   &now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, r.conflictOrNotFound(id)
	}
	return r.GetByID(id)
}

// SetTransactionID records the provider reference on a completed payout.
func (r *PayoutRepository) SetTransactionID(id uint, transactionID string) error {
	return r.db.Model(&models.Payout{}).
		Where("id = ? AND status = ?", id, domain.PayoutCompleted).
		Update("transaction_id", transactionID).Error
}

// RevertCompletion compensates a claimed completion whose disbursement failed,
// returning the payout to processing. Guarded on the empty transaction id so a
// completion that did record a transfer is never undone.
func (r *PayoutRepository) RevertCompletion(id uint) error {
	res := r.db.Model(&models.Payout{}).
		Where("id = ? AND status = ? AND transaction_id = ''", id, domain.PayoutCompleted).
		Updates(map[string]interface{}{"status": domain.PayoutProcessing, "completed_at": nil})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

// MarkRejected is reachable from pending or processing and is terminal.
func (r *PayoutRepository) MarkRejected(id uint, reason string) (*models.Payout, error) {
	now := time.Now()
	res := r.db.Model(&models.Payout{}).
		Where("id = ? AND status IN ?", id, []domain.PayoutStatus{domain.PayoutPending, domain.PayoutProcessing}).
		Updates(map[string]interface{}{"status": domain.PayoutRejected, "reason": reason, "rejected_at": &now})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, r.conflictOrNotFound(id)
	}
	return r.GetByID(id)
}

func (r *PayoutRepository) ListByAffiliate(affiliateID uint, page, limit int) ([]models.Payout, int64, error) {
	q := r.db.Model(&models.Payout{}).Where("affiliate_id = ?", affiliateID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.Payout
	err := q.Order("requested_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&list).Error
	return list, total, err
}

func (r *PayoutRepository) List(status string, page, limit int) ([]models.Payout, int64, error) {
	q := r.db.Model(&models.Payout{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.Payout
	err := q.Preload("Affiliate").
		Order("requested_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&list).Error
	return list, total, err
}
