package database

import (
	"log"
	"time"

	"roamio/config"
	"roamio/internal/domain"
	"roamio/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error), // Only log errors, not every SQL query
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Affiliate{},
		&models.Commission{},
		&models.Payout{},
		&models.Booking{},
		&models.PriceAlert{},
		&models.SystemSetting{},
		&models.AuthToken{},
	)
}

// SeedAdmin creates the initial back-office account if no admin exists yet.
func SeedAdmin(db *gorm.DB) {
	var count int64
	db.Model(&models.User{}).Where("role = ?", domain.RoleAdmin).Count(&count)
	if count > 0 {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[seed] bcrypt failed: %v", err)
		return
	}
	now := time.Now()
	admin := models.User{
		Email:           "admin@roamio.travel",
		PasswordHash:    string(hash),
		FirstName:       "Roamio",
		LastName:        "Admin",
		Role:            domain.RoleAdmin,
		EmailVerifiedAt: &now,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("[seed] admin user: %v", err)
		return
	}
	log.Printf("[seed] created admin user %s (change the password)", admin.Email)
}

// DefaultSettings are seeded once; admins edit them via /admin/settings.
func DefaultSettings() map[string]string {
	return map[string]string{
		domain.SettingRequireVerification:      "true",
		domain.SettingMaxLevels:                "3",
		domain.SettingPayoutMinCents:           "1000",
		domain.SettingRateBpsLevelPrefix + "1": "500", // 5%
		domain.SettingRateBpsLevelPrefix + "2": "200",
		domain.SettingRateBpsLevelPrefix + "3": "100",
	}
}
