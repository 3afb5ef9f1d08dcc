package rbac_test

import (
	"errors"
	"testing"

	"go-elms/internal/identity"
	"go-elms/internal/rbac"
	"go-elms/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newService(t *testing.T) rbac.Service {
	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)

	svc, err := rbac.NewService(rbac.NewRepository(), enforcer, zap.NewNop())
	assert.NoError(t, err)
	return svc
}

func TestRBACService_Enforce(t *testing.T) {
	svc := newService(t)

	tests := []struct {
		role     identity.Role
		resource string
		action   string
		allowed  bool
	}{
		{identity.RoleAdmin, rbac.ResourceHR, rbac.ActionReview, true},
		{identity.RoleHR, rbac.ResourceHR, rbac.ActionReview, false},
		{identity.RoleEmployee, rbac.ResourceHR, rbac.ActionReview, false},

		{identity.RoleAdmin, rbac.ResourceEmployee, rbac.ActionProvision, true},
		{identity.RoleHR, rbac.ResourceEmployee, rbac.ActionProvision, false},
		{identity.RoleHR, rbac.ResourceEmployee, rbac.ActionRead, true},

		{identity.RoleAdmin, rbac.ResourceLeave, rbac.ActionDecide, true},
		{identity.RoleHR, rbac.ResourceLeave, rbac.ActionDecide, true},
		{identity.RoleEmployee, rbac.ResourceLeave, rbac.ActionDecide, false},

		{identity.RoleHR, rbac.ResourceLeave, rbac.ActionReadAll, true},
		{identity.RoleEmployee, rbac.ResourceLeave, rbac.ActionReadAll, false},

		{identity.RoleEmployee, rbac.ResourceLeave, rbac.ActionApply, true},
		{identity.RoleAdmin, rbac.ResourceLeave, rbac.ActionApply, false},
		{identity.RoleHR, rbac.ResourceLeave, rbac.ActionApply, false},
		{identity.RoleEmployee, rbac.ResourceLeave, rbac.ActionReadOwn, true},

		{identity.Role("Guest"), rbac.ResourceLeave, rbac.ActionReadOwn, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+tt.resource+":"+tt.action, func(t *testing.T) {
			allowed, err := svc.Enforce(rbac.EnforceRequest{Role: tt.role, Resource: tt.resource, Action: tt.action})
			assert.NoError(t, err)
			assert.Equal(t, tt.allowed, allowed)
		})
	}
}

func TestRBACService_ListPermissions(t *testing.T) {
	svc := newService(t)

	got, err := svc.ListPermissions(identity.RoleHR)

	assert.NoError(t, err)
	assert.Equal(t, identity.RoleHR, got.Role)
	assert.ElementsMatch(t, []rbac.PermissionResponse{
		{Resource: rbac.ResourceEmployee, Action: rbac.ActionRead},
		{Resource: rbac.ResourceLeave, Action: rbac.ActionDecide},
		{Resource: rbac.ResourceLeave, Action: rbac.ActionReadAll},
	}, got.Permissions)
}

type failingRepo struct{}

func (failingRepo) GetRolePermissions() ([]rbac.RolePermissionRow, error) { return nil, nil }
func (failingRepo) GetRoleGroups() ([]rbac.RoleGroupRow, error) {
	return nil, errors.New("policy source down")
}

func TestNewServicePropagatesLoadError(t *testing.T) {
	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)

	_, err = rbac.NewService(failingRepo{}, enforcer, zap.NewNop())
	assert.Error(t, err)
}
