package bootstrap

import (
	"context"
	"time"

	"go-elms/internal/shared/contextutil"

	"go.uber.org/zap"
)

type StdoutAuditLogger struct {
	logger *zap.Logger
}

func NewStdoutAuditLogger(logger ...*zap.Logger) *StdoutAuditLogger {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &StdoutAuditLogger{logger: l.Named("audit")}
}

func (l *StdoutAuditLogger) Log(ctx context.Context, entry AuditLog) {
	actorID := entry.ActorID
	if actorID == "" {
		actorID = contextutil.GetUserID(ctx)
	}
	actorRole := entry.ActorRole
	if actorRole == "" {
		actorRole = contextutil.GetRole(ctx)
	}

	l.logger.Info("audit event",
		zap.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("action", entry.Action),
		zap.String("actor_id", actorID),
		zap.String("actor_role", actorRole),
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	)
}
