package notification

import (
	"fmt"
	"strings"
	"time"

	"go-elms/internal/events"
	"go-elms/internal/identity"
)

// Email is a composed, ready-to-send notification.
type Email struct {
	Kind    string
	To      string
	Subject string
	Body    string
}

const (
	dateLayout      = "Mon Jan 02 2006"
	timestampLayout = "Jan 2, 2006 15:04:05 MST"
)

// ResetLink builds the frontend URL that consumes a password-set token.
func ResetLink(frontendURL string, role identity.Role, token string) string {
	base := strings.TrimRight(frontendURL, "/")
	switch role {
	case identity.RoleHR:
		return fmt.Sprintf("%s/hr/reset-password/%s", base, token)
	case identity.RoleEmployee:
		return fmt.Sprintf("%s/employee/reset-password/%s", base, token)
	default:
		return fmt.Sprintf("%s/reset-password/%s", base, token)
	}
}

func HRActivation(to, username, link string) Email {
	return Email{
		Kind:    events.EmailKindHRActivation,
		To:      to,
		Subject: "Set Your Password to Activate Your HR Account",
		Body: fmt.Sprintf(
			"Hi %s,\n\nYour HR account has been approved!\nSet your password here: %s\n\nThis link expires in 15 minutes.\n\n- ELMS Team",
			username, link,
		),
	}
}

func HRRejection(to, username string) Email {
	return Email{
		Kind:    events.EmailKindHRRejection,
		To:      to,
		Subject: "HR Registration Rejected",
		Body: fmt.Sprintf(
			"Hi %s,\n\nWe regret to inform you that your HR registration was rejected.\n\n- ELMS Team",
			username,
		),
	}
}

func EmployeeInvite(to, username, link string) Email {
	return Email{
		Kind:    events.EmailKindEmployeeInvite,
		To:      to,
		Subject: "You've been added to ELMS!",
		Body: fmt.Sprintf(
			"Hi %s,\n\nYou've been added to ELMS. Click the link below to set your password and login:\n%s\n\nThis link expires in 15 minutes.\n\n- ELMS Team",
			username, link,
		),
	}
}

func AdminWelcome(to, username, frontendURL string) Email {
	return Email{
		Kind:    events.EmailKindAdminWelcome,
		To:      to,
		Subject: "Admin Registration Successful",
		Body: fmt.Sprintf(
			"Hi %s,\n\nYour admin account is ready.\nLogin here: %s/login\n\n- ELMS",
			username, strings.TrimRight(frontendURL, "/"),
		),
	}
}

func PasswordReset(role identity.Role, to, username, link string) Email {
	e := Email{Kind: events.EmailKindPasswordReset, To: to}
	switch role {
	case identity.RoleHR:
		e.Subject = "HR Password Reset Request"
		e.Body = fmt.Sprintf(
			"Hi %s,\n\nClick the link below to reset your password:\n%s\n\nThis link will expire in 15 minutes.\n\n- ELMS Team",
			username, link,
		)
	case identity.RoleEmployee:
		e.Subject = "Reset your ELMS password"
		e.Body = fmt.Sprintf(
			"Hi %s,\n\nClick the link to reset your password:\n%s\n\nThis link will expire in 15 minutes.\n\n- ELMS Team",
			username, link,
		)
	default:
		e.Subject = "Reset Your Password"
		e.Body = fmt.Sprintf("Hi %s,\n\nClick to reset: %s\nValid for 15 minutes.\n\n- ELMS Team", username, link)
	}
	return e
}

// LeaveDecision carries what the employee is told about a reviewed leave.
type LeaveDecision struct {
	To           string
	Username     string
	StartDate    time.Time
	EndDate      time.Time
	Action       string
	Reason       string
	ReviewerName string
	ReviewerRole identity.Role
	ReviewedAt   time.Time
}

func LeaveDecisionEmail(d LeaveDecision) Email {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nYour leave request from %s to %s has been %s.",
		d.Username, d.StartDate.Format(dateLayout), d.EndDate.Format(dateLayout), strings.ToLower(d.Action))

	if d.Reason != "" {
		fmt.Fprintf(&b, "\n\nRejection Reason: %s", d.Reason)
	}

	fmt.Fprintf(&b, "\n\nReviewed By: %s (%s)", d.ReviewerName, d.ReviewerRole)
	fmt.Fprintf(&b, "\nReviewed At: %s", d.ReviewedAt.Format(timestampLayout))

	if d.ReviewerRole == identity.RoleHR {
		b.WriteString("\n\nRegards,\nHR - ELMS Team")
	} else {
		b.WriteString("\n\nRegards,\nELMS Team")
	}

	return Email{
		Kind:    events.EmailKindLeaveDecision,
		To:      d.To,
		Subject: "Leave Request " + d.Action,
		Body:    b.String(),
	}
}
