package session

import (
	"net/http"
	"strings"

	"go-elms/internal/identity"

	"github.com/gin-gonic/gin"
)

func CookieName(role identity.Role) string {
	return "elms_" + role.Slug() + "_session"
}

// HandleFromRequest reads the role's cookie, falling back to a Bearer header.
func HandleFromRequest(c *gin.Context, role identity.Role) string {
	if cookie, err := c.Cookie(CookieName(role)); err == nil && cookie != "" {
		return cookie
	}
	if token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); found {
		return strings.TrimSpace(token)
	}
	return ""
}

func SetCookie(c *gin.Context, role identity.Role, handle string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName(role), handle, 0, "/", "", secure, true)
}

func ClearCookie(c *gin.Context, role identity.Role, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName(role), "", -1, "/", "", secure, true)
}
