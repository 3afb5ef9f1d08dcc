package employee

import (
	"time"

	"github.com/google/uuid"
)

const DefaultLeaveQuota = 20

type Employee struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`
	// EmployeeCode is the human-facing id, stored as employee_id.
	EmployeeCode        string     `gorm:"column:employee_id;size:32;not null;uniqueIndex:uq_employee_code"`
	Username            string     `gorm:"size:120;not null"`
	Email               string     `gorm:"size:255;not null;uniqueIndex:uq_employee_email"`
	Phone               string     `gorm:"size:32"`
	Gender              string     `gorm:"size:16"`
	Department          string     `gorm:"size:120"`
	PasswordHash        *string    `gorm:"size:72"`
	ResetTokenHash      *string    `gorm:"size:64;index"`
	ResetTokenExpiresAt *time.Time
	ProfileImage        string `gorm:"size:255"`

	LeaveQuota    int `gorm:"not null;default:20"`
	EarnedTaken   int `gorm:"not null;default:0"`
	EarnedPending int `gorm:"not null;default:0"`
	SickTaken     int `gorm:"not null;default:0"`
	SickPending   int `gorm:"not null;default:0"`
	CasualTaken   int `gorm:"not null;default:0"`
	CasualPending int `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Employee) TableName() string { return "employees" }

// TotalTaken sums approved days across all leave types.
func (e Employee) TotalTaken() int {
	return e.EarnedTaken + e.SickTaken + e.CasualTaken
}
