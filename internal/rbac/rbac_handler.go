package rbac

import (
	"net/http"

	"go-elms/internal/identity"
	"go-elms/internal/shared/apperror"
	"go-elms/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListPermissions returns the effective permissions of every role.
func (h *Handler) ListPermissions(c *gin.Context) {
	roles := identity.Roles()
	if q := c.Query("role"); q != "" {
		role, ok := identity.ParseRole(q)
		if !ok {
			response.Fail(c, apperror.InvalidField("role"))
			return
		}
		roles = []identity.Role{role}
	}

	out := make([]RolePermissionsResponse, 0, len(roles))
	for _, role := range roles {
		perms, err := h.service.ListPermissions(role)
		if err != nil {
			response.Fail(c, apperror.ErrInternal)
			return
		}
		out = append(out, perms)
	}

	response.Success(c, http.StatusOK, out, nil)
}
