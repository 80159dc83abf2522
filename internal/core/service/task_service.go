package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aroolinks/agencydesk/internal/core/domain"
	"github.com/aroolinks/agencydesk/internal/core/ports"
)

// TaskService implements the global task board use cases.
type TaskService struct {
	repo   ports.TaskRepository
	logger zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, logger: logger}
}

func (s *TaskService) List(ctx context.Context, actor ports.Actor, filter ports.TaskFilter) ([]*domain.Task, error) {
	if !actor.Can(domain.PermViewTasks) {
		return nil, domain.ErrForbidden
	}
	return s.repo.List(ctx, filter)
}

func (s *TaskService) Get(ctx context.Context, actor ports.Actor, id string) (*domain.Task, error) {
	if !actor.Can(domain.PermViewTasks) {
		return nil, domain.ErrForbidden
	}
	return s.repo.FindByID(ctx, id)
}

func (s *TaskService) Create(ctx context.Context, actor ports.Actor, input ports.TaskInput) (*domain.Task, error) {
	if !actor.Can(domain.PermEditTasks) {
		return nil, domain.ErrForbidden
	}
	if input.ClientName == "" {
		return nil, fmt.Errorf("%w: clientName is required", domain.ErrValidation)
	}
	if input.Priority == "" {
		input.Priority = domain.PriorityMedium
	}
	if input.Status == "" {
		input.Status = domain.StatusInProcess
	}
	if !domain.ValidPriority(input.Priority) {
		return nil, fmt.Errorf("%w: unknown priority %q", domain.ErrValidation, input.Priority)
	}
	if !domain.ValidTaskStatus(input.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, input.Status)
	}

	now := time.Now().UTC()
	task := &domain.Task{
		ClientName:  input.ClientName,
		ClientGroup: input.ClientGroup,
		DueDate:     input.DueDate,
		Priority:    input.Priority,
		Status:      input.Status,
		CMS:         input.CMS,
		WebURL:      input.WebURL,
		FigmaURL:    input.FigmaURL,
		AssetURL:    input.AssetURL,
		TotalPrice:  input.TotalPrice,
		Deposit:     input.Deposit,
		Invoiced:    input.Invoiced,
		Paid:        input.Paid,
		Assignees:   input.Assignees,
		Notes:       input.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if task.Assignees == nil {
		task.Assignees = []string{}
	}
	task.Normalize()

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		s.logger.Error().Err(err).Str("client", input.ClientName).Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().Str("task_id", created.ID).Str("client", created.ClientName).Msg("task created")
	return created, nil
}

// Update merges the patch into the stored document and replaces it whole,
// re-stamping updatedAt. The payment/completion coupling is re-normalized
// after the merge.
func (s *TaskService) Update(ctx context.Context, actor ports.Actor, id string, patch ports.TaskPatch) (*domain.Task, error) {
	if !actor.Can(domain.PermEditTasks) {
		return nil, domain.ErrForbidden
	}

	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.ClientName != nil {
		task.ClientName = *patch.ClientName
	}
	if patch.ClientGroup != nil {
		task.ClientGroup = *patch.ClientGroup
	}
	if patch.ClearDue {
		task.DueDate = nil
	} else if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	}
	if patch.Priority != nil {
		if !domain.ValidPriority(*patch.Priority) {
			return nil, fmt.Errorf("%w: unknown priority %q", domain.ErrValidation, *patch.Priority)
		}
		task.Priority = *patch.Priority
	}
	if patch.Status != nil {
		if !domain.ValidTaskStatus(*patch.Status) {
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, *patch.Status)
		}
		task.Status = *patch.Status
	}
	if patch.CMS != nil {
		task.CMS = *patch.CMS
	}
	if patch.WebURL != nil {
		task.WebURL = *patch.WebURL
	}
	if patch.FigmaURL != nil {
		task.FigmaURL = *patch.FigmaURL
	}
	if patch.AssetURL != nil {
		task.AssetURL = *patch.AssetURL
	}
	if patch.TotalPrice != nil {
		task.TotalPrice = patch.TotalPrice
	}
	if patch.Deposit != nil {
		task.Deposit = patch.Deposit
	}
	if patch.Invoiced != nil {
		task.Invoiced = *patch.Invoiced
	}
	if patch.Paid != nil {
		task.Paid = *patch.Paid
	}
	if patch.Assignees != nil {
		task.Assignees = *patch.Assignees
	}
	if patch.Notes != nil {
		task.Notes = *patch.Notes
	}

	task.Normalize()
	task.UpdatedAt = time.Now().UTC()

	if err := s.repo.Replace(ctx, task); err != nil {
		s.logger.Error().Err(err).Str("task_id", id).Msg("failed to update task")
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, actor ports.Actor, id string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("task_id", id).Str("by", actor.Username).Msg("task deleted")
	return nil
}
