package leave

import (
	"net/http"
	"strconv"
	"strings"

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
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	if audit == nil {
		audit = bootstrap.NopAuditLogger{}
	}
	return &Handler{service: service, audit: audit, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := response.Fail(c, err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
}

func (h *Handler) caller(c *gin.Context) (identity.Caller, bool) {
	caller, ok := identity.FromContext(c.Request.Context())
	if !ok {
		h.writeServiceError(c, apperror.ErrUnauthorized)
	}
	return caller, ok
}

func (h *Handler) Apply(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	var req ApplyLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http apply leave validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	req.OriginIP = c.ClientIP()

	resp, err := h.service.Apply(c.Request.Context(), caller, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ListMine(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	resp, err := h.service.ListMine(c.Request.Context(), caller)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Balance(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	resp, err := h.service.GetBalance(c.Request.Context(), caller)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// ListAll accepts optional ?status= and ?leave_type= filters plus
// page/page_size. Without page the whole list is returned.
func (h *Handler) ListAll(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	resp, err := h.service.ListAll(c.Request.Context(), caller)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	status := strings.TrimSpace(c.Query("status"))
	leaveType := strings.TrimSpace(c.Query("leave_type"))
	if status != "" || leaveType != "" {
		filtered := make([]LeaveResponse, 0, len(resp))
		for _, l := range resp {
			if status != "" && !strings.EqualFold(l.Status, status) {
				continue
			}
			if leaveType != "" && !strings.EqualFold(l.LeaveType, leaveType) {
				continue
			}
			filtered = append(filtered, l)
		}
		resp = filtered
	}

	if c.Query("page") == "" {
		response.Success(c, http.StatusOK, resp, nil)
		return
	}

	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	items, meta := response.Paginate(resp, page, pageSize)
	response.Success(c, http.StatusOK, items, &meta)
}

func (h *Handler) Decide(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	var req DecideLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http decide leave validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")
	resp, err := h.service.Decide(ctx, caller, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.audit.Log(ctx, bootstrap.AuditLog{
		Action:    bootstrap.AuditLeaveDecided,
		Message:   "leave " + strings.ToLower(resp.Status),
		ActorID:   caller.IdentityID,
		ActorRole: string(caller.Role),
		Meta:      map[string]any{"leave_id": id, "status": resp.Status},
	})
	response.Success(c, http.StatusOK, resp, nil)
}
