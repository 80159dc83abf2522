package ports

import (
	"context"

	"github.com/aroolinks/agencydesk/internal/core/domain"
)

// ClientRepository defines persistence operations for client aggregates.
type ClientRepository interface {
	List(ctx context.Context) ([]*domain.Client, error)
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	// FindByName matches the client name case-insensitively.
	FindByName(ctx context.Context, name string) (*domain.Client, error)
	Create(ctx context.Context, c *domain.Client) (*domain.Client, error)
	// Replace overwrites the document only when the stored revision still
	// matches c.Revision, then increments it. Returns
	// domain.ErrRevisionConflict on a concurrent write.
	Replace(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id string) error
}

// ClientTaskInput carries the data accepted when appending a work note.
type ClientTaskInput struct {
	Title      string
	Content    string
	AssignedTo string
	Completed  bool
}

// ClientTaskPatch carries a partial update to an embedded work note.
// Completed is non-nil when the caller supplied an explicit state.
type ClientTaskPatch struct {
	Title      *string
	Content    *string
	AssignedTo *string
	Completed  *bool
}

// LoginDetailInput carries the data for a stored credential entry.
type LoginDetailInput struct {
	Website  string
	URL      string
	Username string
	Password string
}

// LoginDetailPatch carries a partial update to a credential entry.
type LoginDetailPatch struct {
	Website  *string
	URL      *string
	Username *string
	Password *string
}

// ClientService defines use-case operations over client records and their
// embedded sub-entities.
type ClientService interface {
	ListClients(ctx context.Context, actor Actor) ([]*domain.Client, error)
	GetClient(ctx context.Context, actor Actor, id string) (*domain.Client, error)
	CreateClient(ctx context.Context, actor Actor, name string) (*domain.Client, error)
	RenameClient(ctx context.Context, actor Actor, id, name string) (*domain.Client, error)
	DeleteClient(ctx context.Context, actor Actor, id string) error

	AddTask(ctx context.Context, actor Actor, clientID string, input ClientTaskInput) (*domain.ClientTask, error)
	UpdateTask(ctx context.Context, actor Actor, clientID, taskID string, patch ClientTaskPatch) (*domain.ClientTask, error)
	ToggleTaskCompletion(ctx context.Context, actor Actor, clientID, taskID string) (*domain.ClientTask, error)
	DeleteTask(ctx context.Context, actor Actor, clientID, taskID string) error

	AddLogin(ctx context.Context, actor Actor, clientID string, input LoginDetailInput) (*domain.LoginDetail, error)
	UpdateLogin(ctx context.Context, actor Actor, clientID, loginID string, patch LoginDetailPatch) (*domain.LoginDetail, error)
	DeleteLogin(ctx context.Context, actor Actor, clientID, loginID string) error
}
