package rbac_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-elms/internal/identity"
	"go-elms/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func withCaller(role identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := identity.Caller{Role: role, IdentityID: "id-1"}
		c.Request = c.Request.WithContext(identity.NewContext(c.Request.Context(), caller))
		c.Next()
	}
}

func TestAuthorize(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newService(t)

	tests := []struct {
		name   string
		setup  gin.HandlerFunc
		status int
	}{
		{"no caller", func(c *gin.Context) { c.Next() }, http.StatusUnauthorized},
		{"employee denied", withCaller(identity.RoleEmployee), http.StatusForbidden},
		{"hr allowed", withCaller(identity.RoleHR), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.PUT("/leaves/:id/decision", tt.setup, rbac.Authorize(svc, rbac.ResourceLeave, rbac.ActionDecide), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, "/leaves/1/decision", nil)
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestHandler_ListPermissions(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newService(t)

	r := gin.New()
	admin := r.Group("/api/admin", withCaller(identity.RoleAdmin))
	rbac.RegisterRoutes(admin, rbac.NewHandler(svc), svc)

	t.Run("single role", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/permissions?role=employee", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var env struct {
			Ok   bool                           `json:"ok"`
			Data []rbac.RolePermissionsResponse `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.True(t, env.Ok)
		assert.Len(t, env.Data, 1)
		assert.Equal(t, identity.RoleEmployee, env.Data[0].Role)
		assert.Len(t, env.Data[0].Permissions, 2)
	})

	t.Run("unknown role", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/permissions?role=guest", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
