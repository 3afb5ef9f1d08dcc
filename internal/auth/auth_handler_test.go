package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-elms/internal/auth"
	autherrors "go-elms/internal/auth/errors"
	"go-elms/internal/bootstrap"
	"go-elms/internal/identity"
	"go-elms/internal/middleware"
	"go-elms/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeAuthenticator struct {
	authenticateFn func(ctx context.Context, email, password string) (identity.Caller, error)
	forgotFn       func(ctx context.Context, email string) error
	resetFn        func(ctx context.Context, token, password string) error
}

func (f *fakeAuthenticator) Authenticate(ctx context.Context, email, password string) (identity.Caller, error) {
	return f.authenticateFn(ctx, email, password)
}
func (f *fakeAuthenticator) RequestPasswordReset(ctx context.Context, email string) error {
	return f.forgotFn(ctx, email)
}
func (f *fakeAuthenticator) ResetPassword(ctx context.Context, token, password string) error {
	return f.resetFn(ctx, token, password)
}

type recordingAudit struct {
	actions []string
}

func (a *recordingAudit) Log(_ context.Context, e bootstrap.AuditLog) {
	a.actions = append(a.actions, e.Action)
}

func newAuthRouter(role identity.Role, authn auth.Authenticator) (*gin.Engine, *session.Manager, *recordingAudit) {
	gin.SetMode(gin.TestMode)
	manager := session.NewManager(session.NewMemoryStore(nil), "secret", 10*time.Minute, zap.NewNop())
	audit := &recordingAudit{}
	h := auth.NewHandler(auth.HandlerConfig{Role: role, IdleSeconds: 600}, authn, manager, audit, zap.NewNop())

	r := gin.New()
	group := r.Group("/api/" + role.Slug())
	auth.RegisterRoutes(group, h, middleware.RequireSession(manager, role))
	return r, manager, audit
}

func postJSON(r http.Handler, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAuthHandler_LoginMeLogout(t *testing.T) {
	caller := identity.Caller{Role: identity.RoleEmployee, IdentityID: "emp-1", DisplayName: "Eli", Email: "eli@corp.io"}
	r, _, audit := newAuthRouter(identity.RoleEmployee, &fakeAuthenticator{
		authenticateFn: func(_ context.Context, email, password string) (identity.Caller, error) {
			if password != "pass123" {
				return identity.Caller{}, autherrors.ErrInvalidCredentials
			}
			return caller, nil
		},
	})

	w := postJSON(r, "/api/employee/login", auth.LoginRequest{Email: "eli@corp.io", Password: "pass123"})
	assert.Equal(t, http.StatusOK, w.Code)

	cookie := sessionCookie(w, "elms_employee_session")
	assert.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/api/employee/me", nil)
	req.AddCookie(cookie)
	me := httptest.NewRecorder()
	r.ServeHTTP(me, req)
	assert.Equal(t, http.StatusOK, me.Code)
	assert.Contains(t, me.Body.String(), `"id":"emp-1"`)

	out := postJSON(r, "/api/employee/logout", nil, cookie)
	assert.Equal(t, http.StatusOK, out.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/employee/me", nil)
	req.AddCookie(cookie)
	after := httptest.NewRecorder()
	r.ServeHTTP(after, req)
	assert.Equal(t, http.StatusUnauthorized, after.Code)

	assert.Equal(t, []string{bootstrap.AuditLoginSucceeded, bootstrap.AuditLogout}, audit.actions)
}

func TestAuthHandler_LoginFailures(t *testing.T) {
	t.Run("invalid credentials", func(t *testing.T) {
		r, _, audit := newAuthRouter(identity.RoleAdmin, &fakeAuthenticator{
			authenticateFn: func(context.Context, string, string) (identity.Caller, error) {
				return identity.Caller{}, autherrors.ErrInvalidCredentials
			},
		})

		w := postJSON(r, "/api/admin/login", auth.LoginRequest{Email: "a@corp.io", Password: "x"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Nil(t, sessionCookie(w, "elms_admin_session"))
		assert.Equal(t, []string{bootstrap.AuditLoginFailed}, audit.actions)
	})

	t.Run("unapproved hr", func(t *testing.T) {
		r, _, _ := newAuthRouter(identity.RoleHR, &fakeAuthenticator{
			authenticateFn: func(context.Context, string, string) (identity.Caller, error) {
				return identity.Caller{}, autherrors.ErrNotApproved
			},
		})

		w := postJSON(r, "/api/hr/login", auth.LoginRequest{Email: "h@corp.io", Password: "pass123"})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Nil(t, sessionCookie(w, "elms_hr_session"))
	})

	t.Run("missing fields", func(t *testing.T) {
		r, _, _ := newAuthRouter(identity.RoleHR, &fakeAuthenticator{})

		w := postJSON(r, "/api/hr/login", map[string]string{"email": "h@corp.io"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_SessionsAreRoleScoped(t *testing.T) {
	r, manager, _ := newAuthRouter(identity.RoleHR, &fakeAuthenticator{})

	handle, err := manager.Establish(context.Background(), identity.Caller{Role: identity.RoleEmployee, IdentityID: "emp-1"})
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/hr/me", nil)
	req.Header.Set("Authorization", "Bearer "+handle)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_ForgotAndReset(t *testing.T) {
	var gotToken, gotPassword string
	r, _, _ := newAuthRouter(identity.RoleEmployee, &fakeAuthenticator{
		forgotFn: func(context.Context, string) error { return nil },
		resetFn: func(_ context.Context, token, password string) error {
			gotToken, gotPassword = token, password
			if token == "expired" {
				return autherrors.ErrInvalidToken
			}
			return nil
		},
	})

	w := postJSON(r, "/api/employee/forgot-password", auth.ForgotPasswordRequest{Email: "ghost@corp.io"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(r, "/api/employee/reset-password/abc123", auth.ResetPasswordRequest{Password: "newpass1"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc123", gotToken)
	assert.Equal(t, "newpass1", gotPassword)

	w = postJSON(r, "/api/employee/reset-password/expired", auth.ResetPasswordRequest{Password: "newpass1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
}
