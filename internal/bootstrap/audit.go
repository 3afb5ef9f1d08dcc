package bootstrap

import "context"

const (
	AuditLoginSucceeded = "LOGIN_SUCCEEDED"
	AuditLoginFailed    = "LOGIN_FAILED"
	AuditLogout         = "LOGOUT"
	AuditPasswordReset  = "PASSWORD_RESET"
	AuditHRApproved     = "HR_APPROVED"
	AuditHRRejected     = "HR_REJECTED"
	AuditLeaveDecided   = "LEAVE_DECIDED"
	AuditEmployeeAdded  = "EMPLOYEE_PROVISIONED"
	AuditServerShutdown = "SERVER_SHUTDOWN"
)

type AuditLog struct {
	Action    string
	Message   string
	ActorID   string
	ActorRole string
	Meta      map[string]any
}

//go:generate mockgen -source=audit.go -destination=mock/audit_mock.go -package=mock
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

type NopAuditLogger struct{}

func (NopAuditLogger) Log(context.Context, AuditLog) {}
