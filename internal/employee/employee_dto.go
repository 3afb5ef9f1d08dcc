package employee

import "time"

type ProvisionEmployeeRequest struct {
	Username   string `json:"username" binding:"required,max=120"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone" binding:"required,max=32"`
	Gender     string `json:"gender" binding:"required,oneof=Male Female Other"`
	Department string `json:"department" binding:"required,max=120"`
	// EmployeeID is generated when empty.
	EmployeeID string `json:"employee_id" binding:"omitempty,max=32"`
}

type EmployeeResponse struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Gender       string    `json:"gender"`
	Department   string    `json:"department"`
	ProfileImage string    `json:"profile_image,omitempty"`
	LeaveQuota   int       `json:"leave_quota"`
	CreatedAt    time.Time `json:"created_at"`
}
