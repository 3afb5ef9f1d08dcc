package rbac

import "go-elms/internal/identity"

const (
	ResourceHR       = "hr"
	ResourceEmployee = "employee"
	ResourceLeave    = "leave"
	ResourceRBAC     = "rbac"

	ActionReview    = "review"
	ActionProvision = "provision"
	ActionRead      = "read"
	ActionApply     = "apply"
	ActionReadOwn   = "read_own"
	ActionReadAll   = "read_all"
	ActionDecide    = "decide"

	// groupReviewer holds what Admin and HR share as leave reviewers.
	groupReviewer = "reviewer"
)

type RolePermissionRow struct {
	Subject  string
	Resource string
	Action   string
}

type RoleGroupRow struct {
	Role  identity.Role
	Group string
}

// Repository is the policy source loaded into the enforcer at startup.
//
//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetRolePermissions() ([]RolePermissionRow, error)
	GetRoleGroups() ([]RoleGroupRow, error)
}

type staticRepository struct{}

func NewRepository() Repository {
	return staticRepository{}
}

func (staticRepository) GetRolePermissions() ([]RolePermissionRow, error) {
	return []RolePermissionRow{
		{Subject: string(identity.RoleAdmin), Resource: ResourceHR, Action: ActionReview},
		{Subject: string(identity.RoleAdmin), Resource: ResourceEmployee, Action: ActionProvision},
		{Subject: string(identity.RoleAdmin), Resource: ResourceRBAC, Action: ActionRead},
		{Subject: groupReviewer, Resource: ResourceEmployee, Action: ActionRead},
		{Subject: groupReviewer, Resource: ResourceLeave, Action: ActionReadAll},
		{Subject: groupReviewer, Resource: ResourceLeave, Action: ActionDecide},
		{Subject: string(identity.RoleEmployee), Resource: ResourceLeave, Action: ActionApply},
		{Subject: string(identity.RoleEmployee), Resource: ResourceLeave, Action: ActionReadOwn},
	}, nil
}

func (staticRepository) GetRoleGroups() ([]RoleGroupRow, error) {
	return []RoleGroupRow{
		{Role: identity.RoleAdmin, Group: groupReviewer},
		{Role: identity.RoleHR, Group: groupReviewer},
	}, nil
}
