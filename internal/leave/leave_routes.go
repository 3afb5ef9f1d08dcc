package leave

import (
	"go-elms/internal/middleware"
	"go-elms/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RegisterEmployeeRoutes mounts the applicant side on the gated employee group.
// rdb may be nil, in which case apply is not deduplicated.
func RegisterEmployeeRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service, rdb *redis.Client) {
	apply := []gin.HandlerFunc{
		middleware.RateLimitByUser(0.5, 3),
		rbac.Authorize(rbacService, rbac.ResourceLeave, rbac.ActionApply),
	}
	if rdb != nil {
		apply = append(apply, middleware.Idempotency(rdb))
	}
	apply = append(apply, handler.Apply)

	r.POST("/leaves", apply...)
	r.GET("/leaves", rbac.Authorize(rbacService, rbac.ResourceLeave, rbac.ActionReadOwn), handler.ListMine)
	r.GET("/leave-balance", rbac.Authorize(rbacService, rbac.ResourceLeave, rbac.ActionReadOwn), handler.Balance)
}

// RegisterReviewerRoutes mounts listing and decisions on an Admin or HR group.
func RegisterReviewerRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	r.GET("/leaves",
		middleware.RateLimitByUser(3, 10),
		rbac.Authorize(rbacService, rbac.ResourceLeave, rbac.ActionReadAll),
		handler.ListAll,
	)
	r.PUT("/leaves/:id/decision",
		middleware.RateLimitByUser(1, 5),
		rbac.Authorize(rbacService, rbac.ResourceLeave, rbac.ActionDecide),
		handler.Decide,
	)
}
