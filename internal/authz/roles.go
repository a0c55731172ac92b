package authz

// Role is the authorization level attached to a user account.
type Role string

// Roles known to the events backend, in ascending privilege order.
const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// DefaultRole is what a session falls back to whenever the authoritative
// role cannot be determined. Privileged roles are never assumed.
const DefaultRole = RoleUser

// ParseRole strictly parses a role string.
// Unknown values do not parse; callers decide the fallback.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleManager, RoleAdmin:
		return Role(s), true
	default:
		return "", false
	}
}

// Valid reports whether the role is one of the known roles
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// String returns the wire representation of the role
func (r Role) String() string {
	return string(r)
}

// AllRoles returns every known role, for selection UIs
func AllRoles() []Role {
	return []Role{RoleUser, RoleManager, RoleAdmin}
}
