package middleware

import (
	"context"
	"errors"

	"go-elms/internal/identity"
	"go-elms/internal/session"
	"go-elms/internal/shared/apperror"
	"go-elms/internal/shared/contextutil"
	"go-elms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ContextCaller          = "caller"
	ContextUserIDValidated = "user_id_validated"
	ContextSessionHandle   = "session_handle"
)

type SessionResolver interface {
	Resolve(ctx context.Context, role identity.Role, handle string) (identity.Caller, error)
}

// RequireSession rejects the request with 401 unless it carries a live
// session of exactly the given role. Nothing downstream runs on failure.
func RequireSession(resolver SessionResolver, role identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		handle := session.HandleFromRequest(c, role)
		if handle == "" {
			response.Error(c, apperror.ErrUnauthorized.HTTPStatus, apperror.ErrUnauthorized.Code, "Session not found", nil)
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		caller, err := resolver.Resolve(ctx, role, handle)
		if err != nil {
			if errors.Is(err, session.ErrInvalidSession) {
				response.Error(c, apperror.ErrUnauthorized.HTTPStatus, apperror.ErrUnauthorized.Code, "Session expired or invalid", nil)
			} else {
				contextutil.GetLogger(ctx, zap.L()).Error("session lookup failed", zap.Error(err))
				response.Fail(c, apperror.Unavailable(err))
			}
			c.Abort()
			return
		}

		reqLogger := contextutil.GetLogger(ctx, zap.L()).With(
			zap.String("user_id", caller.IdentityID),
			zap.String("role", string(caller.Role)),
		)
		ctx = identity.NewContext(ctx, caller)
		ctx = contextutil.WithUserID(ctx, caller.IdentityID)
		ctx = contextutil.WithRole(ctx, string(caller.Role))
		ctx = contextutil.WithLogger(ctx, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Set(ContextCaller, caller)
		c.Set(ContextUserIDValidated, caller.IdentityID)
		c.Set(ContextSessionHandle, handle)

		c.Next()
	}
}
