package employee

import (
	"go-elms/internal/middleware"
	"go-elms/internal/rbac"

	"github.com/gin-gonic/gin"
)

// RegisterReadRoutes mounts the employee directory on a gated reviewer group.
func RegisterReadRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	r.GET("/employees",
		middleware.RateLimitByUser(3, 10),
		rbac.Authorize(rbacService, rbac.ResourceEmployee, rbac.ActionRead),
		handler.GetAll,
	)
}

func RegisterProvisionRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	r.POST("/employees",
		middleware.RateLimitByUser(0.5, 3),
		rbac.Authorize(rbacService, rbac.ResourceEmployee, rbac.ActionProvision),
		handler.Provision,
	)
}
