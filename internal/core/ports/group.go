package ports

import (
	"context"

	"github.com/aroolinks/agencydesk/internal/core/domain"
)

// GroupRepository defines persistence operations for task group labels.
type GroupRepository interface {
	List(ctx context.Context) ([]*domain.Group, error)
	FindByID(ctx context.Context, id string) (*domain.Group, error)
	FindByName(ctx context.Context, name string) (*domain.Group, error)
	Create(ctx context.Context, g *domain.Group) (*domain.Group, error)
	Replace(ctx context.Context, g *domain.Group) error
	Delete(ctx context.Context, id string) error
}

// GroupService defines use-case operations for group labels.
type GroupService interface {
	List(ctx context.Context, actor Actor) ([]*domain.Group, error)
	Get(ctx context.Context, actor Actor, id string) (*domain.Group, error)
	Create(ctx context.Context, actor Actor, name string) (*domain.Group, error)
	Rename(ctx context.Context, actor Actor, id, name string) (*domain.Group, error)
	Delete(ctx context.Context, actor Actor, id string) error
}
