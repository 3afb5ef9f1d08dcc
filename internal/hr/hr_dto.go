package hr

import "time"

type RegisterHRRequest struct {
	Username   string `json:"username" binding:"required,max=120"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone" binding:"required,max=32"`
	Department string `json:"department" binding:"required,max=120"`
}

type ReviewRegistrationRequest struct {
	Approve *bool `json:"approve" binding:"required"`
}

type HRResponse struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Department string    `json:"department"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
}

const (
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
)

type ReviewResponse struct {
	ID       string `json:"id"`
	Decision string `json:"decision"`
}
