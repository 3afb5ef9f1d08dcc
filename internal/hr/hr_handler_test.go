package hr_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-elms/internal/hr"
	hrerrors "go-elms/internal/hr/errors"
	"go-elms/internal/identity"
	"go-elms/internal/rbac"
	"go-elms/internal/rbac/infra"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	registerFn    func(ctx context.Context, req hr.RegisterHRRequest) (hr.HRResponse, error)
	listPendingFn func(ctx context.Context) ([]hr.HRResponse, error)
	reviewFn      func(ctx context.Context, id string, approve bool) (hr.ReviewResponse, error)
}

func (f *fakeService) Register(ctx context.Context, req hr.RegisterHRRequest) (hr.HRResponse, error) {
	return f.registerFn(ctx, req)
}
func (f *fakeService) ListPending(ctx context.Context) ([]hr.HRResponse, error) {
	return f.listPendingFn(ctx)
}
func (f *fakeService) ReviewRegistration(ctx context.Context, id string, approve bool) (hr.ReviewResponse, error) {
	return f.reviewFn(ctx, id, approve)
}

func newHRRouter(t *testing.T, role identity.Role, svc hr.Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)
	rbacService, err := rbac.NewService(rbac.NewRepository(), enforcer)
	assert.NoError(t, err)

	h := hr.NewHandler(svc, nil)
	r := gin.New()
	hr.RegisterPublicRoutes(r.Group("/api/hr"), h)

	gated := r.Group("/api/admin", func(c *gin.Context) {
		caller := identity.Caller{Role: role, IdentityID: "caller-1", DisplayName: "root"}
		c.Request = c.Request.WithContext(identity.NewContext(c.Request.Context(), caller))
		c.Next()
	})
	hr.RegisterAdminRoutes(gated, h, rbacService)
	return r
}

func send(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHRHandler_Register(t *testing.T) {
	r := newHRRouter(t, identity.RoleAdmin, &fakeService{
		registerFn: func(_ context.Context, req hr.RegisterHRRequest) (hr.HRResponse, error) {
			if req.Email == "taken@x.com" {
				return hr.HRResponse{}, hrerrors.ErrHRAlreadyExists
			}
			return hr.HRResponse{ID: "hr-1", Email: req.Email}, nil
		},
	})

	body := map[string]string{"username": "Hana", "email": "hr1@x.com", "phone": "0812", "department": "People"}
	w := send(r, http.MethodPost, "/api/hr/register", body)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"is_approved":false`)

	body["email"] = "taken@x.com"
	w = send(r, http.MethodPost, "/api/hr/register", body)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = send(r, http.MethodPost, "/api/hr/register", map[string]string{"email": "bad"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHRHandler_Review(t *testing.T) {
	t.Run("admin approves", func(t *testing.T) {
		r := newHRRouter(t, identity.RoleAdmin, &fakeService{
			reviewFn: func(_ context.Context, id string, approve bool) (hr.ReviewResponse, error) {
				assert.Equal(t, "hr-1", id)
				assert.True(t, approve)
				return hr.ReviewResponse{ID: id, Decision: hr.ReviewApproved}, nil
			},
		})

		w := send(r, http.MethodPut, "/api/admin/hr-status/hr-1", map[string]bool{"approve": true})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("approve=false is a rejection not a missing field", func(t *testing.T) {
		r := newHRRouter(t, identity.RoleAdmin, &fakeService{
			reviewFn: func(_ context.Context, id string, approve bool) (hr.ReviewResponse, error) {
				assert.False(t, approve)
				return hr.ReviewResponse{ID: id, Decision: hr.ReviewRejected}, nil
			},
		})

		w := send(r, http.MethodPut, "/api/admin/hr-status/hr-1", map[string]bool{"approve": false})
		assert.Equal(t, http.StatusOK, w.Code)

		w = send(r, http.MethodPut, "/api/admin/hr-status/hr-1", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("already reviewed is 404", func(t *testing.T) {
		r := newHRRouter(t, identity.RoleAdmin, &fakeService{
			reviewFn: func(context.Context, string, bool) (hr.ReviewResponse, error) {
				return hr.ReviewResponse{}, hrerrors.ErrHRNotFound
			},
		})

		w := send(r, http.MethodPut, "/api/admin/hr-status/hr-1", map[string]bool{"approve": true})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("hr cannot review hr", func(t *testing.T) {
		r := newHRRouter(t, identity.RoleHR, &fakeService{})

		w := send(r, http.MethodGet, "/api/admin/pending-hrs", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
