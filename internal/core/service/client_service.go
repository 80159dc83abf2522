package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/aroolinks/agencydesk/internal/core/domain"
	"github.com/aroolinks/agencydesk/internal/core/ports"
)

// maxRevisionRetries bounds the read-modify-write loop on embedded-array
// mutations. Conflicts only occur when two requests hit the same client
// document at once, so a small bound is enough.
const maxRevisionRetries = 3

// ClientService implements client records and their embedded sub-entities.
type ClientService struct {
	repo   ports.ClientRepository
	logger zerolog.Logger
}

func NewClientService(repo ports.ClientRepository, logger zerolog.Logger) *ClientService {
	return &ClientService{repo: repo, logger: logger}
}

func (s *ClientService) ListClients(ctx context.Context, actor ports.Actor) ([]*domain.Client, error) {
	if !actor.Can(domain.PermViewClients) {
		return nil, domain.ErrForbidden
	}
	return s.repo.List(ctx)
}

func (s *ClientService) GetClient(ctx context.Context, actor ports.Actor, id string) (*domain.Client, error) {
	if !actor.Can(domain.PermViewClients) {
		return nil, domain.ErrForbidden
	}
	return s.repo.FindByID(ctx, id)
}

func (s *ClientService) CreateClient(ctx context.Context, actor ports.Actor, name string) (*domain.Client, error) {
	if !actor.Can(domain.PermEditClients) {
		return nil, domain.ErrForbidden
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	if _, err := s.repo.FindByName(ctx, name); err == nil {
		return nil, domain.ErrDuplicateClientName
	} else if !errors.Is(err, domain.ErrClientNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	client := &domain.Client{
		Name:         name,
		Tasks:        []domain.ClientTask{},
		LoginDetails: []domain.LoginDetail{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, client)
	if err != nil {
		s.logger.Error().Err(err).Str("name", name).Msg("failed to create client")
		return nil, err
	}

	s.logger.Info().Str("client_id", created.ID).Str("name", name).Msg("client created")
	return created, nil
}

func (s *ClientService) RenameClient(ctx context.Context, actor ports.Actor, id, name string) (*domain.Client, error) {
	if !actor.Can(domain.PermEditClients) {
		return nil, domain.ErrForbidden
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	// Duplicate check excludes the client being renamed.
	if existing, err := s.repo.FindByName(ctx, name); err == nil && existing.ID != id {
		return nil, domain.ErrDuplicateClientName
	} else if err != nil && !errors.Is(err, domain.ErrClientNotFound) {
		return nil, err
	}

	return s.withClient(ctx, id, func(c *domain.Client) error {
		c.Name = name
		return nil
	})
}

func (s *ClientService) DeleteClient(ctx context.Context, actor ports.Actor, id string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	// Embedded tasks and credentials live inside the document, so the
	// delete cascades implicitly.
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("client_id", id).Str("by", actor.Username).Msg("client deleted")
	return nil
}

func (s *ClientService) AddTask(ctx context.Context, actor ports.Actor, clientID string, input ports.ClientTaskInput) (*domain.ClientTask, error) {
	if !actor.Can(domain.PermEditClients) {
		return nil, domain.ErrForbidden
	}
	if err := validateClientTaskFields(input.Title, input.Content); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := domain.ClientTask{
		ID:         ulid.Make().String(),
		Title:      input.Title,
		Content:    input.Content,
		AssignedTo: input.AssignedTo,
		CreatedBy:  actor.Username,
		EditedBy:   actor.Username,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if input.Completed {
		task.SetCompleted(true, actor.Username, now)
	}

	client, err := s.withClient(ctx, clientID, func(c *domain.Client) error {
		c.Tasks = append(c.Tasks, task)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("client_id", clientID).Str("task_id", task.ID).Str("by", actor.Username).Msg("client task added")
	return client.TaskByID(task.ID), nil
}

func (s *ClientService) UpdateTask(ctx context.Context, actor ports.Actor, clientID, taskID string, patch ports.ClientTaskPatch) (*domain.ClientTask, error) {
	if !actor.Can(domain.PermEditClients) {
		return nil, domain.ErrForbidden
	}
	if patch.Title != nil && len(*patch.Title) > domain.MaxClientTaskTitleLen {
		return nil, fmt.Errorf("%w: title exceeds %d characters", domain.ErrValidation, domain.MaxClientTaskTitleLen)
	}
	if patch.Content != nil && len(*patch.Content) > domain.MaxClientTaskContentLen {
		return nil, fmt.Errorf("%w: content exceeds %d characters", domain.ErrValidation, domain.MaxClientTaskContentLen)
	}

	client, err := s.withClient(ctx, clientID, func(c *domain.Client) error {
		t := c.TaskByID(taskID)
		if t == nil {
			return domain.ErrClientTaskNotFound
		}
		now := time.Now().UTC()
		if patch.Title != nil {
			t.Title = *patch.Title
		}
		if patch.Content != nil {
			t.Content = *patch.Content
		}
		if patch.AssignedTo != nil {
			t.AssignedTo = *patch.AssignedTo
		}
		if patch.Completed != nil && *patch.Completed != t.Completed {
			t.SetCompleted(*patch.Completed, actor.Username, now)
		}
		t.EditedBy = actor.Username
		t.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return client.TaskByID(taskID), nil
}

func (s *ClientService) ToggleTaskCompletion(ctx context.Context, actor ports.Actor, clientID, taskID string) (*domain.ClientTask, error) {
	if !actor.Can(domain.PermEditClients) {
		return nil, domain.ErrForbidden
	}

	client, err := s.withClient(ctx, clientID, func(c *domain.Client) error {
		t := c.TaskByID(taskID)
		if t == nil {
			return domain.ErrClientTaskNotFound
		}
		now := time.Now().UTC()
		t.SetCompleted(!t.Completed, actor.Username, now)
		t.EditedBy = actor.Username
		t.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return client.TaskByID(taskID), nil
}

func (s *ClientService) DeleteTask(ctx context.Context, actor ports.Actor, clientID, taskID string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}

	_, err := s.withClient(ctx, clientID, func(c *domain.Client) error {
		if !c.RemoveTask(taskID) {
			return domain.ErrClientTaskNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info().Str("client_id", clientID).Str("task_id", taskID).Str("by", actor.Username).Msg("client task deleted")
	return nil
}

func (s *ClientService) AddLogin(ctx context.Context, actor ports.Actor, clientID string, input ports.LoginDetailInput) (*domain.LoginDetail, error) {
	if !actor.Can(domain.PermEditClients) {
		return nil, domain.ErrForbidden
	}
	if input.Website == "" || input.Username == "" {
		return nil, fmt.Errorf("%w: website and username are required", domain.ErrValidation)
	}

	now := time.Now().UTC()
	login := domain.LoginDetail{
		ID:        ulid.Make().String(),
		Website:   input.Website,
		URL:       input.URL,
		Username:  input.Username,
		Password:  input.Password,
		CreatedBy: actor.Username,
		EditedBy:  actor.Username,
		CreatedAt: now,
		UpdatedAt: now,
	}

	client, err := s.withClient(ctx, clientID, func(c *domain.Client) error {
		c.LoginDetails = append(c.LoginDetails, login)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("client_id", clientID).Str("login_id", login.ID).Str("by", actor.Username).Msg("login detail added")
	return client.LoginByID(login.ID), nil
}

func (s *ClientService) UpdateLogin(ctx context.Context, actor ports.Actor, clientID, loginID string, patch ports.LoginDetailPatch) (*domain.LoginDetail, error) {
	if !actor.Can(domain.PermEditClients) {
		return nil, domain.ErrForbidden
	}

	client, err := s.withClient(ctx, clientID, func(c *domain.Client) error {
		l := c.LoginByID(loginID)
		if l == nil {
			return domain.ErrLoginDetailNotFound
		}
		if patch.Website != nil {
			l.Website = *patch.Website
		}
		if patch.URL != nil {
			l.URL = *patch.URL
		}
		if patch.Username != nil {
			l.Username = *patch.Username
		}
		if patch.Password != nil {
			l.Password = *patch.Password
		}
		l.EditedBy = actor.Username
		l.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return client.LoginByID(loginID), nil
}

func (s *ClientService) DeleteLogin(ctx context.Context, actor ports.Actor, clientID, loginID string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}

	_, err := s.withClient(ctx, clientID, func(c *domain.Client) error {
		if !c.RemoveLogin(loginID) {
			return domain.ErrLoginDetailNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info().Str("client_id", clientID).Str("login_id", loginID).Str("by", actor.Username).Msg("login detail deleted")
	return nil
}

// withClient runs mutate inside a revision-checked read-modify-write loop.
// On ErrRevisionConflict the document is re-read and the mutation replayed,
// up to maxRevisionRetries attempts.
func (s *ClientService) withClient(ctx context.Context, clientID string, mutate func(*domain.Client) error) (*domain.Client, error) {
	var lastErr error
	for attempt := 0; attempt < maxRevisionRetries; attempt++ {
		client, err := s.repo.FindByID(ctx, clientID)
		if err != nil {
			return nil, err
		}
		if err := mutate(client); err != nil {
			return nil, err
		}
		client.UpdatedAt = time.Now().UTC()

		err = s.repo.Replace(ctx, client)
		if err == nil {
			return client, nil
		}
		if !errors.Is(err, domain.ErrRevisionConflict) {
			return nil, err
		}
		lastErr = err
		s.logger.Warn().Str("client_id", clientID).Int("attempt", attempt+1).Msg("revision conflict, retrying")
	}
	return nil, lastErr
}

func validateClientTaskFields(title, content string) error {
	if title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if len(title) > domain.MaxClientTaskTitleLen {
		return fmt.Errorf("%w: title exceeds %d characters", domain.ErrValidation, domain.MaxClientTaskTitleLen)
	}
	if len(content) > domain.MaxClientTaskContentLen {
		return fmt.Errorf("%w: content exceeds %d characters", domain.ErrValidation, domain.MaxClientTaskContentLen)
	}
	return nil
}
