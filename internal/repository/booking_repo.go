package repository

import (
	"time"

	"roamio/internal/domain"
	"roamio/internal/models"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(b *models.Booking) error {
	return r.db.Create(b).Error
}

func (r *BookingRepository) GetByID(id uint) (*models.Booking, error) {
	var b models.Booking
	if err := r.db.First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// Cancel moves a confirmed booking to cancelled. Guarded so cancelling an
// already-cancelled booking is a conflict, not a silent second success.
func (r *BookingRepository) Cancel(id uint) (*models.Booking, error) {
	now := time.Now()
	res := r.db.Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, domain.BookingStatusConfirmed).
		Updates(map[string]interface{}{"status": domain.BookingStatusCancelled, "cancelled_at": &now})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrConflict
	}
	return r.GetByID(id)
}

func (r *BookingRepository) ListByUser(userID uint, page, limit int) ([]models.Booking, int64, error) {
	q := r.db.Model(&models.Booking{}).Where("user_id = ?", userID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.Booking
	err := q.Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&list).Error
	return list, total, err
}
