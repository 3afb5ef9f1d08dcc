package hr

import (
	"go-elms/internal/middleware"
	"go-elms/internal/rbac"

	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes mounts self-registration on the ungated HR group.
func RegisterPublicRoutes(r *gin.RouterGroup, handler *Handler) {
	r.POST("/register", middleware.RateLimitByIP(0.1, 3), handler.Register)
}

// RegisterAdminRoutes mounts the onboarding review on the gated admin group.
func RegisterAdminRoutes(admin *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	admin.GET("/pending-hrs", rbac.Authorize(rbacService, rbac.ResourceHR, rbac.ActionReview), handler.ListPending)
	admin.PUT("/hr-status/:id", rbac.Authorize(rbacService, rbac.ResourceHR, rbac.ActionReview), handler.Review)
}
