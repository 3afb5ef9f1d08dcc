package hr

import (
	"net/http"

	"go-elms/internal/bootstrap"
	"go-elms/internal/identity"
	"go-elms/internal/shared/apperror"
	"go-elms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	audit   bootstrap.AuditLogger
	logger  *zap.Logger
}

func NewHandler(service Service, audit bootstrap.AuditLogger, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("hr.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("hr.handler")
	}
	if audit == nil {
		audit = bootstrap.NopAuditLogger{}
	}
	return &Handler{service: service, audit: audit, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := response.Fail(c, err)
	h.logger.Warn("hr request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterHRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ListPending(c *gin.Context) {
	resp, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Review(c *gin.Context) {
	var req ReviewRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")
	resp, err := h.service.ReviewRegistration(ctx, id, *req.Approve)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	action := bootstrap.AuditHRRejected
	if resp.Decision == ReviewApproved {
		action = bootstrap.AuditHRApproved
	}
	entry := bootstrap.AuditLog{
		Action:  action,
		Message: "hr registration " + resp.Decision,
		Meta:    map[string]any{"hr_id": id},
	}
	if caller, ok := identity.FromContext(ctx); ok {
		entry.ActorID = caller.IdentityID
		entry.ActorRole = string(caller.Role)
	}
	h.audit.Log(ctx, entry)

	response.Success(c, http.StatusOK, resp, nil)
}
