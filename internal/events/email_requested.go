package events

import "time"

const (
	EmailRequestedTopic     = "elms.notification.email.v1"
	EventTypeEmailRequested = "email_requested"
)

// Email kinds carried in EmailRequestedEvent.Kind.
const (
	EmailKindHRActivation   = "hr_activation"
	EmailKindHRRejection    = "hr_rejection"
	EmailKindEmployeeInvite = "employee_invite"
	EmailKindPasswordReset  = "password_reset"
	EmailKindLeaveDecision  = "leave_decision"
	EmailKindAdminWelcome   = "admin_welcome"
)

type EmailRequestedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	Kind       string    `json:"kind"`
	To         string    `json:"to"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	OccurredAt time.Time `json:"occurred_at"`
}
