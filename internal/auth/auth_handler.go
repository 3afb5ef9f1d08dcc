package auth

import (
	"context"
	"net/http"

	"go-elms/internal/bootstrap"
	"go-elms/internal/identity"
	"go-elms/internal/observability/metrics"
	"go-elms/internal/session"
	"go-elms/internal/shared/apperror"
	"go-elms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Sessions is the subset of *session.Manager the handler needs.
type Sessions interface {
	Establish(ctx context.Context, caller identity.Caller) (string, error)
	Destroy(ctx context.Context, role identity.Role, handle string) error
}

type Handler struct {
	role          identity.Role
	authenticator Authenticator
	sessions      Sessions
	idleSeconds   int
	secureCookie  bool
	audit         bootstrap.AuditLogger
	logger        *zap.Logger
}

type HandlerConfig struct {
	Role         identity.Role
	IdleSeconds  int
	SecureCookie bool
}

func NewHandler(cfg HandlerConfig, authenticator Authenticator, sessions Sessions, audit bootstrap.AuditLogger, logger ...*zap.Logger) *Handler {
	name := "auth." + cfg.Role.Slug() + ".handler"
	l := zap.L().Named(name)
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named(name)
	}
	if audit == nil {
		audit = bootstrap.NopAuditLogger{}
	}
	return &Handler{
		role:          cfg.Role,
		authenticator: authenticator,
		sessions:      sessions,
		idleSeconds:   cfg.IdleSeconds,
		secureCookie:  cfg.SecureCookie,
		audit:         audit,
		logger:        l,
	}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := response.Fail(c, err)
	h.logger.Warn("auth request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
}

func (h *Handler) bindError(c *gin.Context, err error) {
	h.writeServiceError(c, apperror.MapValidationError(err))
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	ctx := c.Request.Context()
	caller, err := h.authenticator.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		metrics.ObserveLogin(string(h.role), "failed")
		h.audit.Log(ctx, bootstrap.AuditLog{
			Action:    bootstrap.AuditLoginFailed,
			Message:   "login rejected",
			ActorRole: string(h.role),
			Meta:      map[string]any{"email": identity.NormalizeEmail(req.Email), "ip": c.ClientIP(), "code": apperror.ToHTTP(err).Code},
		})
		h.writeServiceError(c, err)
		return
	}

	handle, err := h.sessions.Establish(ctx, caller)
	if err != nil {
		h.logger.Error("establish session failed", zap.Error(err))
		h.writeServiceError(c, apperror.Unavailable(err))
		return
	}

	session.SetCookie(c, h.role, handle, h.secureCookie)
	metrics.ObserveLogin(string(h.role), "succeeded")
	h.audit.Log(ctx, bootstrap.AuditLog{
		Action:    bootstrap.AuditLoginSucceeded,
		Message:   "session established",
		ActorID:   caller.IdentityID,
		ActorRole: string(caller.Role),
		Meta:      map[string]any{"ip": c.ClientIP()},
	})

	response.Success(c, http.StatusOK, SessionResponse{
		User:               caller,
		Token:              handle,
		IdleTimeoutSeconds: h.idleSeconds,
	}, nil)
}

// Logout is idempotent: it always clears the cookie and succeeds.
func (h *Handler) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	handle := session.HandleFromRequest(c, h.role)
	if handle != "" {
		if err := h.sessions.Destroy(ctx, h.role, handle); err != nil {
			h.logger.Error("destroy session failed", zap.Error(err))
			h.writeServiceError(c, apperror.Unavailable(err))
			return
		}
		h.audit.Log(ctx, bootstrap.AuditLog{
			Action:    bootstrap.AuditLogout,
			Message:   "session destroyed",
			ActorRole: string(h.role),
		})
	}

	session.ClearCookie(c, h.role, h.secureCookie)
	response.Success(c, http.StatusOK, MessageResponse{Message: "Logged out"}, nil)
}

func (h *Handler) Me(c *gin.Context) {
	caller, ok := identity.FromContext(c.Request.Context())
	if !ok {
		h.writeServiceError(c, apperror.ErrUnauthorized)
		return
	}
	response.Success(c, http.StatusOK, caller, nil)
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	if err := h.authenticator.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, MessageResponse{
		Message: "If the email is registered, a reset link has been sent",
	}, nil)
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.authenticator.ResetPassword(ctx, c.Param("token"), req.Password); err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.audit.Log(ctx, bootstrap.AuditLog{
		Action:    bootstrap.AuditPasswordReset,
		Message:   "password set through reset link",
		ActorRole: string(h.role),
	})
	response.Success(c, http.StatusOK, MessageResponse{Message: "Password updated"}, nil)
}
