package ports

import (
	"context"
	"time"

	"github.com/aroolinks/agencydesk/internal/core/domain"
)

// TaskFilter carries the query parameters for listing board tasks.
// Year restricts results to tasks due within that calendar year; zero
// means no filter.
type TaskFilter struct {
	Year int
}

// TaskRepository defines persistence operations for board tasks.
type TaskRepository interface {
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	// Replace overwrites the full document by id.
	Replace(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}

// TaskInput carries all data accepted when creating a board task.
type TaskInput struct {
	ClientName  string
	ClientGroup string
	DueDate     *time.Time
	Priority    domain.TaskPriority
	Status      domain.TaskStatus
	CMS         string
	WebURL      string
	FigmaURL    string
	AssetURL    string
	TotalPrice  *float64
	Deposit     *float64
	Invoiced    bool
	Paid        bool
	Assignees   []string
	Notes       string
}

// TaskPatch carries a partial update; nil fields are left untouched.
type TaskPatch struct {
	ClientName  *string
	ClientGroup *string
	DueDate     *time.Time
	ClearDue    bool
	Priority    *domain.TaskPriority
	Status      *domain.TaskStatus
	CMS         *string
	WebURL      *string
	FigmaURL    *string
	AssetURL    *string
	TotalPrice  *float64
	Deposit     *float64
	Invoiced    *bool
	Paid        *bool
	Assignees   *[]string
	Notes       *string
}

// TaskService defines use-case operations for the global task board.
type TaskService interface {
	List(ctx context.Context, actor Actor, filter TaskFilter) ([]*domain.Task, error)
	Get(ctx context.Context, actor Actor, id string) (*domain.Task, error)
	Create(ctx context.Context, actor Actor, input TaskInput) (*domain.Task, error)
	Update(ctx context.Context, actor Actor, id string, patch TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, actor Actor, id string) error
}
