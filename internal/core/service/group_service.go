package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aroolinks/agencydesk/internal/core/domain"
	"github.com/aroolinks/agencydesk/internal/core/ports"
)

// GroupService implements CRUD over task group labels.
type GroupService struct {
	repo   ports.GroupRepository
	logger zerolog.Logger
}

func NewGroupService(repo ports.GroupRepository, logger zerolog.Logger) *GroupService {
	return &GroupService{repo: repo, logger: logger}
}

func (s *GroupService) List(ctx context.Context, actor ports.Actor) ([]*domain.Group, error) {
	return s.repo.List(ctx)
}

func (s *GroupService) Get(ctx context.Context, actor ports.Actor, id string) (*domain.Group, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *GroupService) Create(ctx context.Context, actor ports.Actor, name string) (*domain.Group, error) {
	if !actor.Can(domain.PermEditTasks) {
		return nil, domain.ErrForbidden
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	if _, err := s.repo.FindByName(ctx, name); err == nil {
		return nil, domain.ErrDuplicateGroupName
	} else if !errors.Is(err, domain.ErrGroupNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Group{Name: name, CreatedAt: now, UpdatedAt: now})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("group_id", created.ID).Str("name", name).Msg("group created")
	return created, nil
}

func (s *GroupService) Rename(ctx context.Context, actor ports.Actor, id, name string) (*domain.Group, error) {
	if !actor.Can(domain.PermEditTasks) {
		return nil, domain.ErrForbidden
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	if existing, err := s.repo.FindByName(ctx, name); err == nil && existing.ID != id {
		return nil, domain.ErrDuplicateGroupName
	} else if err != nil && !errors.Is(err, domain.ErrGroupNotFound) {
		return nil, err
	}

	group, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	group.Name = name
	group.UpdatedAt = time.Now().UTC()

	if err := s.repo.Replace(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *GroupService) Delete(ctx context.Context, actor ports.Actor, id string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
