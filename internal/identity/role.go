package identity

// Role is the actor kind a session was established for.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleHR       Role = "HR"
	RoleEmployee Role = "Employee"
)

var roleSlugs = map[Role]string{
	RoleAdmin:    "admin",
	RoleHR:       "hr",
	RoleEmployee: "employee",
}

func (r Role) Valid() bool {
	_, ok := roleSlugs[r]
	return ok
}

// Slug is the lower-case form used in routes, cookies and store keys.
func (r Role) Slug() string {
	return roleSlugs[r]
}

// IsReviewer reports whether the role may decide leave requests.
func (r Role) IsReviewer() bool {
	return r == RoleAdmin || r == RoleHR
}

func ParseRole(s string) (Role, bool) {
	for role, slug := range roleSlugs {
		if s == slug || s == string(role) {
			return role, true
		}
	}
	return "", false
}

func Roles() []Role {
	return []Role{RoleAdmin, RoleHR, RoleEmployee}
}
