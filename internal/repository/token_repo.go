package repository

import (
	"time"

	"roamio/internal/models"

	"gorm.io/gorm"
)

type TokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) Create(t *models.AuthToken) error {
	return r.db.Create(t).Error
}

// Consume validates and burns a token in one guarded update: it must match
// the purpose, be unused, and not be expired.
func (r *TokenRepository) Consume(token, purpose string) (*models.AuthToken, error) {
	var t models.AuthToken
	err := r.db.Where("token = ? AND purpose = ? AND used_at IS NULL AND expires_at > ?",
		token, purpose, time.Now()).First(&t).Error
	if err != nil {
		return nil, err
	}
	now := time.Now()
	res := r.db.Model(&models.AuthToken{}).
		Where("id = ? AND used_at IS NULL", t.ID).
		Update("used_at", &now)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrConflict
	}
	t.UsedAt = &now
	return &t, nil
}
