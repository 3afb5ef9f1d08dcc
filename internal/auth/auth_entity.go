package auth

import "time"

// accountRow is the column set shared by the admins, hrs and employees tables.
type accountRow struct {
	ID                  string
	Username            string
	Email               string
	PasswordHash        *string
	Approved            bool
	ResetTokenExpiresAt *time.Time
}
