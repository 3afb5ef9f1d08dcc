package rbac

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the policy view on an already gated admin group.
func RegisterRoutes(admin *gin.RouterGroup, handler *Handler, service Service) {
	admin.GET("/permissions", Authorize(service, ResourceRBAC, ActionRead), handler.ListPermissions)
}
