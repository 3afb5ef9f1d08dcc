package rbac

import (
	"sort"

	"go-elms/internal/identity"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req EnforceRequest) (bool, error)
	ListPermissions(role identity.Role) (RolePermissionsResponse, error)
}

type service struct {
	enforcer *casbin.Enforcer
	logger   *zap.Logger
}

// NewService loads the whole policy once. The enforcer is read-only
// afterwards, so concurrent Enforce calls need no lock.
func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	s := &service{enforcer: enforcer, logger: l}
	if err := s.loadPolicy(repo); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *service) loadPolicy(repo Repository) error {
	s.enforcer.ClearPolicy()

	groups, err := repo.GetRoleGroups()
	if err != nil {
		return err
	}
	for _, g := range groups {
		if _, err := s.enforcer.AddGroupingPolicy(string(g.Role), g.Group); err != nil {
			return err
		}
	}

	perms, err := repo.GetRolePermissions()
	if err != nil {
		return err
	}
	for _, p := range perms {
		if _, err := s.enforcer.AddPolicy(p.Subject, p.Resource, p.Action); err != nil {
			return err
		}
	}

	s.logger.Info("rbac policy loaded", zap.Int("groups", len(groups)), zap.Int("permissions", len(perms)))
	return nil
}

func (s *service) Enforce(req EnforceRequest) (bool, error) {
	if !req.Role.Valid() {
		return false, nil
	}

	allowed, err := s.enforcer.Enforce(string(req.Role), req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", string(req.Role)),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", string(req.Role)),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) ListPermissions(role identity.Role) (RolePermissionsResponse, error) {
	perms, err := s.enforcer.GetImplicitPermissionsForUser(string(role))
	if err != nil {
		return RolePermissionsResponse{}, err
	}

	out := RolePermissionsResponse{Role: role, Permissions: make([]PermissionResponse, 0, len(perms))}
	for _, p := range perms {
		if len(p) < 3 {
			continue
		}
		out.Permissions = append(out.Permissions, PermissionResponse{Resource: p[1], Action: p[2]})
	}
	sort.Slice(out.Permissions, func(i, j int) bool {
		if out.Permissions[i].Resource != out.Permissions[j].Resource {
			return out.Permissions[i].Resource < out.Permissions[j].Resource
		}
		return out.Permissions[i].Action < out.Permissions[j].Action
	})
	return out, nil
}
