package ports

import (
	"context"

	"github.com/aroolinks/agencydesk/internal/core/domain"
)

// Actor is the authenticated caller as decoded from the session token.
// It is threaded through every service call that needs identity for
// permission checks or audit stamping.
type Actor struct {
	UserID      string
	Username    string
	Email       string
	Role        string
	Permissions domain.Permissions
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == domain.RoleAdmin
}

// Can reports whether the actor holds the named permission flag.
// Admins implicitly hold every flag.
func (a Actor) Can(flag string) bool {
	return a.IsAdmin() || a.Permissions.Has(flag)
}

// AuthService issues session tokens.
type AuthService interface {
	// Login matches identifier against username or email, verifies the
	// password, and returns a signed session token plus the user record.
	Login(ctx context.Context, identifier, password string) (string, *domain.User, error)
}
