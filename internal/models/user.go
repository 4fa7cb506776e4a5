package models

import (
	"time"

	"roamio/internal/domain"

	"gorm.io/gorm"
)

type User struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Email           string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash    string         `gorm:"size:255" json:"-"`
	FirstName       string         `gorm:"size:100;not null" json:"first_name"`
	LastName        string         `gorm:"size:100;not null" json:"last_name"`
	Role            string         `gorm:"size:20;not null;index" json:"role"` // USER | ADMIN
	EmailVerifiedAt *time.Time     `json:"email_verified_at"`
	GoogleID        *string        `gorm:"uniqueIndex;size:255" json:"-"` // nil for email signups (avoids duplicate '' on unique index)
	AvatarURL       string         `gorm:"size:512" json:"avatar_url"`
	ReferredByID    *uint          `gorm:"index" json:"referred_by_id"` // affiliate that attributed this signup; set once at registration
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Affiliate *Affiliate `gorm:"foreignKey:UserID" json:"affiliate,omitempty"`
}

func (User) TableName() string { return "users" }

func (u *User) IsAdmin() bool { return u.Role == domain.RoleAdmin }
