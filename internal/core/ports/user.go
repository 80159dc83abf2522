package ports

import (
	"context"

	"github.com/aroolinks/agencydesk/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	List(ctx context.Context) ([]*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIdentifier matches identifier against username or email.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	Replace(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id string) error
}

// CreateUserInput carries the data accepted when provisioning an account.
type CreateUserInput struct {
	Username    string
	Email       string
	Password    string
	Role        string
	Permissions *domain.Permissions // nil = role defaults
}

// UserPatch carries a partial account update. Password changes go through
// ResetPassword, never through this patch.
type UserPatch struct {
	Email       *string
	Role        *string
	Permissions *domain.Permissions
}

// UserListing is the result of List: either full records (management
// callers) or a bare username projection (assignment pickers).
type UserListing struct {
	Users     []*domain.User `json:"users,omitempty"`
	Usernames []string       `json:"usernames,omitempty"`
}

// UserService defines user-administration use cases.
type UserService interface {
	List(ctx context.Context, actor Actor) (*UserListing, error)
	Create(ctx context.Context, actor Actor, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, actor Actor, id string, patch UserPatch) (*domain.User, error)
	ResetPassword(ctx context.Context, actor Actor, id, newPassword string) error
	Delete(ctx context.Context, actor Actor, id string) error

	// Assignee operations: a thin derived view over user accounts used by
	// the task-assignment pickers.
	ListAssignees(ctx context.Context, actor Actor) ([]string, error)
	AddAssignee(ctx context.Context, actor Actor, name string) (*domain.User, error)
	RemoveAssignee(ctx context.Context, actor Actor, username string) error
}
