package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin      = "admin"
	RoleTeamMember = "team_member"
)

// Permission flag names as they appear in tokens and stored documents.
const (
	PermViewTasks   = "canViewTasks"
	PermEditTasks   = "canEditTasks"
	PermViewClients = "canViewClients"
	PermEditClients = "canEditClients"
	PermManageUsers = "canManageUsers"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrSelfDelete = errors.New("cannot delete own account")
var ErrForbidden = errors.New("access forbidden")

// ErrValidation is the sentinel wrapped by all input validation failures.
var ErrValidation = errors.New("validation failed")

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleTeamMember
}

// Permissions is the flat per-user flag set checked on every gated route.
type Permissions struct {
	CanViewTasks   bool `json:"canViewTasks" bson:"canViewTasks"`
	CanEditTasks   bool `json:"canEditTasks" bson:"canEditTasks"`
	CanViewClients bool `json:"canViewClients" bson:"canViewClients"`
	CanEditClients bool `json:"canEditClients" bson:"canEditClients"`
	CanManageUsers bool `json:"canManageUsers" bson:"canManageUsers"`
}

// Has reports whether the named flag is set.
func (p Permissions) Has(flag string) bool {
	switch flag {
	case PermViewTasks:
		return p.CanViewTasks
	case PermEditTasks:
		return p.CanEditTasks
	case PermViewClients:
		return p.CanViewClients
	case PermEditClients:
		return p.CanEditClients
	case PermManageUsers:
		return p.CanManageUsers
	default:
		return false
	}
}

// DefaultPermissions returns the starting flag set for a role. Admins hold
// every flag; team members start with view access plus task editing.
func DefaultPermissions(role string) Permissions {
	if role == RoleAdmin {
		return Permissions{
			CanViewTasks:   true,
			CanEditTasks:   true,
			CanViewClients: true,
			CanEditClients: true,
			CanManageUsers: true,
		}
	}
	return Permissions{
		CanViewTasks:   true,
		CanEditTasks:   true,
		CanViewClients: true,
	}
}

// User models an authenticated actor in the system.
type User struct {
	ID           string      `json:"id" bson:"_id,omitempty"`
	Username     string      `json:"username" bson:"username"`
	Email        string      `json:"email" bson:"email"`
	PasswordHash string      `json:"-" bson:"passwordHash"`
	Role         string      `json:"role" bson:"role"`
	Permissions  Permissions `json:"permissions" bson:"permissions"`
	CreatedAt    time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt" bson:"updatedAt"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
