package rbac

import "go-elms/internal/identity"

type EnforceRequest struct {
	Role     identity.Role
	Resource string
	Action   string
}

type PermissionResponse struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

type RolePermissionsResponse struct {
	Role        identity.Role        `json:"role"`
	Permissions []PermissionResponse `json:"permissions"`
}
