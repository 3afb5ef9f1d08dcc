package auth

import "go-elms/internal/identity"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

type SessionResponse struct {
	User  identity.Caller `json:"user"`
	Token string          `json:"token"`
	// IdleTimeoutSeconds is how long the session survives without requests.
	IdleTimeoutSeconds int `json:"idle_timeout_seconds"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
