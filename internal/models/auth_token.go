package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	TokenPurposeVerifyEmail   = "verify_email"
	TokenPurposeResetPassword = "reset_password"
)

// AuthToken is a single-use email verification or password reset token.
type AuthToken struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Token     string         `gorm:"size:64;uniqueIndex;not null" json:"-"`
	Purpose   string         `gorm:"size:30;not null;index" json:"purpose"`
	ExpiresAt time.Time      `gorm:"not null" json:"expires_at"`
	UsedAt    *time.Time     `json:"used_at"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (AuthToken) TableName() string { return "auth_tokens" }
