package models

// Role identifiers as stored in users.role_id and stamped into tokens.
const (
	RoleAdmin = 1
	RoleUser  = 2
)

// IsAdmin reports whether the role grants administrative access.
func IsAdmin(roleID int) bool {
	return roleID == RoleAdmin
}
