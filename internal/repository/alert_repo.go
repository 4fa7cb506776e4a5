package repository

import (
	"time"

	"roamio/internal/models"

	"gorm.io/gorm"
)

type AlertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) Create(a *models.PriceAlert) error {
	return r.db.Create(a).Error
}

func (r *AlertRepository) GetByID(id uint) (*models.PriceAlert, error) {
	var a models.PriceAlert
	if err := r.db.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AlertRepository) ListByUser(userID uint) ([]models.PriceAlert, error) {
	var list []models.PriceAlert
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error
	return list, err
}

// ListActive returns alerts the scan job should evaluate.
func (r *AlertRepository) ListActive() ([]models.PriceAlert, error) {
	var list []models.PriceAlert
	err := r.db.Where("active = ?", true).Preload("User").Find(&list).Error
	return list, err
}

func (r *AlertRepository) MarkNotified(id uint, at time.Time) error {
	return r.db.Model(&models.PriceAlert{}).Where("id = ?", id).
		Updates(map[string]interface{}{"last_notified_at": &at}).Error
}

func (r *AlertRepository) Delete(id, userID uint) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.PriceAlert{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
