package admin

import (
	"time"

	"github.com/google/uuid"
)

type Admin struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Username            string     `gorm:"size:120;not null"`
	Email               string     `gorm:"size:255;not null;uniqueIndex:uq_admin_email"`
	PasswordHash        *string    `gorm:"size:72"`
	ResetTokenHash      *string    `gorm:"size:64;index"`
	ResetTokenExpiresAt *time.Time
	ProfileImage        string `gorm:"size:255"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (Admin) TableName() string { return "admins" }
