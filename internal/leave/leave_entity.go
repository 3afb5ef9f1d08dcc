package leave

import (
	"time"

	"go-elms/internal/employee"
	"go-elms/internal/identity"

	"github.com/google/uuid"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

const (
	TypeEarned = "Earned Leave"
	TypeSick   = "Sick Leave"
	TypeCasual = "Casual Leave"
)

// balancePrefix maps a leave type to its counter columns on employees.
var balancePrefix = map[string]string{
	TypeEarned: "earned",
	TypeSick:   "sick",
	TypeCasual: "casual",
}

func ValidLeaveType(t string) bool {
	_, ok := balancePrefix[t]
	return ok
}

type Leave struct {
	ID         uuid.UUID          `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID          `gorm:"type:uuid;not null;index:idx_leaves_employee_applied"`
	Employee   *employee.Employee `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`

	LeaveType string    `gorm:"type:varchar(20);not null"`
	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
	TotalDays int       `gorm:"type:int;not null;default:1"`
	Reason    string    `gorm:"type:text;not null"`

	Status             string     `gorm:"type:varchar(10);not null;default:'Pending';index:idx_leaves_status"`
	ReviewedByUsername *string    `gorm:"type:varchar(120)"`
	ReviewedByRole     *string    `gorm:"type:varchar(10)"`
	ReviewedAt         *time.Time
	Comment            *string `gorm:"type:text"`

	Latitude  *float64
	Longitude *float64
	OriginIP  string `gorm:"type:varchar(64)"`

	AppliedAt time.Time `gorm:"not null;index:idx_leaves_employee_applied,sort:desc"`
	UpdatedAt time.Time
}

func (Leave) TableName() string { return "leaves" }

// Reviewer is set exactly when the leave has left Pending.
type Reviewer struct {
	Username string
	Role     identity.Role
}

func (l Leave) Reviewer() *Reviewer {
	if l.ReviewedByUsername == nil || l.ReviewedByRole == nil {
		return nil
	}
	return &Reviewer{Username: *l.ReviewedByUsername, Role: identity.Role(*l.ReviewedByRole)}
}

// Decision is the review metadata written by the single allowed transition.
type Decision struct {
	Status     string
	Reviewer   Reviewer
	ReviewedAt time.Time
	Comment    *string
}
