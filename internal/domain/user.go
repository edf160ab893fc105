package domain

import "strings"

// UserRole role granted by the identity collaborator
type UserRole string

const (
	UserRoleUser  UserRole = "USER"
	UserRoleAdmin UserRole = "ADMIN"
)

// ParseUserRole normalizes a role label. Unknown or empty labels fall back to USER
func ParseUserRole(s string) UserRole {
	switch role := UserRole(strings.ToUpper(strings.TrimSpace(s))); role {
	case UserRoleAdmin:
		return UserRoleAdmin
	default:
		return UserRoleUser
	}
}

// UserRef already authenticated user, resolved by the identity collaborator
type UserRef struct {
	ID       int64
	Username string
	Role     UserRole
}

// IsAdmin returns true if the user may manage lots
func (u UserRef) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
