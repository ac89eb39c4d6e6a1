package domain

// Role is the role of an actor as provided by the gateway
type Role string

const (
	RoleUser        Role = "user"
	RoleGroundOwner Role = "ground_owner"
	RoleAdmin       Role = "admin"
)

// ParseRole validates a raw role; empty string means a regular user
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case "":
		return RoleUser, true
	case RoleUser, RoleGroundOwner, RoleAdmin:
		return Role(s), true
	default:
		return "", false
	}
}

// Actor is the caller of a lifecycle operation
type Actor struct {
	ID   string
	Role Role
}

// IsAdmin returns true for administrators
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// IsGroundOwner returns true for facility operators
func (a Actor) IsGroundOwner() bool {
	return a.Role == RoleGroundOwner
}
