package leave

import "time"

type ApplyLeaveRequest struct {
	StartDate string   `json:"start_date" binding:"required"`
	EndDate   string   `json:"end_date" binding:"required"`
	LeaveType string   `json:"leave_type" binding:"required"`
	Reason    string   `json:"reason" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" binding:"omitempty,longitude"`
	// OriginIP is filled from the request, never from the body.
	OriginIP string `json:"-"`
}

type DecideLeaveRequest struct {
	Action string `json:"action" binding:"required"`
	Reason string `json:"reason"`
}

type LeaveEmployeeResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

type ReviewerResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type LeaveResponse struct {
	ID         string                 `json:"id"`
	EmployeeID string                 `json:"employee_ref"`
	Employee   *LeaveEmployeeResponse `json:"employee,omitempty"`
	LeaveType  string                 `json:"leave_type"`
	StartDate  string                 `json:"start_date"`
	EndDate    string                 `json:"end_date"`
	TotalDays  int                    `json:"total_days"`
	Reason     string                 `json:"reason"`
	Status     string                 `json:"status"`
	ReviewedBy *ReviewerResponse      `json:"reviewed_by"`
	ReviewedAt *time.Time             `json:"reviewed_at,omitempty"`
	Comment    *string                `json:"comment,omitempty"`
	Latitude   *float64               `json:"latitude,omitempty"`
	Longitude  *float64               `json:"longitude,omitempty"`
	OriginIP   string                 `json:"origin_ip,omitempty"`
	AppliedAt  time.Time              `json:"applied_at"`
}

type BalanceBucket struct {
	Taken   int `json:"taken"`
	Pending int `json:"pending"`
}

type BalanceResponse struct {
	Quota     int           `json:"quota"`
	Remaining int           `json:"remaining"`
	Earned    BalanceBucket `json:"earned"`
	Sick      BalanceBucket `json:"sick"`
	Casual    BalanceBucket `json:"casual"`
}
