package hr

import (
	"time"

	"github.com/google/uuid"
)

// HR is a reviewer account. It self-registers unapproved and has no
// password until an Admin approves it and the activation link is used.
type HR struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Username            string     `gorm:"size:120;not null"`
	Email               string     `gorm:"size:255;not null;uniqueIndex:uq_hr_email"`
	Phone               string     `gorm:"size:32"`
	Department          string     `gorm:"size:120"`
	PasswordHash        *string    `gorm:"size:72"`
	IsApproved          bool       `gorm:"not null;default:false;index"`
	ResetTokenHash      *string    `gorm:"size:64;index"`
	ResetTokenExpiresAt *time.Time
	ProfileImage        string `gorm:"size:255"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (HR) TableName() string { return "hrs" }
