package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/aroolinks/agencydesk/internal/core/domain"
	"github.com/aroolinks/agencydesk/internal/core/ports"
)

// MinPasswordLen is the shortest password accepted on create and reset.
const MinPasswordLen = 6

// UserService implements account administration and the derived assignee view.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// List returns full records to management callers and a bare username
// projection to everyone else, so assignment pickers work without
// exposing account details.
func (s *UserService) List(ctx context.Context, actor ports.Actor) (*ports.UserListing, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if actor.IsAdmin() || actor.Can(domain.PermManageUsers) {
		return &ports.UserListing{Users: users}, nil
	}

	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Username)
	}
	return &ports.UserListing{Usernames: names}, nil
}

func (s *UserService) Create(ctx context.Context, actor ports.Actor, input ports.CreateUserInput) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	if input.Username == "" || input.Email == "" {
		return nil, fmt.Errorf("%w: username and email are required", domain.ErrValidation)
	}
	if len(input.Password) < MinPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, MinPasswordLen)
	}
	if input.Role == "" {
		input.Role = domain.RoleTeamMember
	}
	if !domain.ValidRole(input.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, input.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	perms := domain.DefaultPermissions(input.Role)
	if input.Permissions != nil {
		perms = *input.Permissions
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         input.Role,
		Permissions:  perms,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("username", created.Username).Str("by", actor.Username).Msg("user created")
	return created, nil
}

func (s *UserService) Update(ctx context.Context, actor ports.Actor, id string, patch ports.UserPatch) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil {
		email := strings.TrimSpace(*patch.Email)
		if email == "" {
			return nil, fmt.Errorf("%w: email cannot be empty", domain.ErrValidation)
		}
		user.Email = email
	}
	if patch.Role != nil {
		if !domain.ValidRole(*patch.Role) {
			return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, *patch.Role)
		}
		user.Role = *patch.Role
	}
	if patch.Permissions != nil {
		user.Permissions = *patch.Permissions
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Replace(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ResetPassword(ctx context.Context, actor ports.Actor, id, newPassword string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	if len(newPassword) < MinPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, MinPasswordLen)
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Replace(ctx, user); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Str("by", actor.Username).Msg("password reset")
	return nil
}

func (s *UserService) Delete(ctx context.Context, actor ports.Actor, id string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	if id == actor.UserID {
		return domain.ErrSelfDelete
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Str("by", actor.Username).Msg("user deleted")
	return nil
}

func (s *UserService) ListAssignees(ctx context.Context, actor ports.Actor) ([]string, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Username)
	}
	return names, nil
}

// AddAssignee provisions a team_member account when the name is new, so a
// task can be assigned to someone before they ever log in. The account
// gets a random password; an admin resets it when the person joins.
func (s *UserService) AddAssignee(ctx context.Context, actor ports.Actor, name string) (*domain.User, error) {
	if !actor.Can(domain.PermEditTasks) {
		return nil, domain.ErrForbidden
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	if existing, err := s.repo.FindByUsername(ctx, name); err == nil {
		return existing, nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(randomSecret()), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     name,
		PasswordHash: string(hash),
		Role:         domain.RoleTeamMember,
		Permissions:  domain.DefaultPermissions(domain.RoleTeamMember),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", name).Str("by", actor.Username).Msg("assignee auto-provisioned")
	return created, nil
}

func (s *UserService) RemoveAssignee(ctx context.Context, actor ports.Actor, username string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user.ID == actor.UserID {
		return domain.ErrSelfDelete
	}
	return s.repo.Delete(ctx, user.ID)
}

func randomSecret() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
