package auth

import (
	"go-elms/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts one role's auth endpoints. gate is that role's
// session middleware; it guards /me only.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, gate gin.HandlerFunc) {
	r.POST("/login", middleware.RateLimitByIP(0.2, 5), handler.Login)
	r.POST("/logout", handler.Logout)
	r.GET("/me", gate, handler.Me)
	r.POST("/forgot-password", middleware.RateLimitByIP(0.05, 3), handler.ForgotPassword)
	r.POST("/reset-password/:token", middleware.RateLimitByIP(0.2, 5), handler.ResetPassword)
}
