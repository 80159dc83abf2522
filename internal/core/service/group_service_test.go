package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/aroolinks/agencydesk/internal/core/domain"
)

type stubGroupRepo struct {
	byID   map[string]*domain.Group
	nextID int
}

func newStubGroupRepo() *stubGroupRepo {
	return &stubGroupRepo{byID: make(map[string]*domain.Group)}
}

func (r *stubGroupRepo) List(_ context.Context) ([]*domain.Group, error) {
	var out []*domain.Group
	for _, g := range r.byID {
		cp := *g
		out = append(out, &cp)
	}
	return out, nil
}

func (r *stubGroupRepo) FindByID(_ context.Context, id string) (*domain.Group, error) {
	g, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrGroupNotFound
	}
	cp := *g
	return &cp, nil
}

func (r *stubGroupRepo) FindByName(_ context.Context, name string) (*domain.Group, error) {
	for _, g := range r.byID {
		if strings.EqualFold(g.Name, name) {
			cp := *g
			return &cp, nil
		}
	}
	return nil, domain.ErrGroupNotFound
}

func (r *stubGroupRepo) Create(_ context.Context, g *domain.Group) (*domain.Group, error) {
	r.nextID++
	cp := *g
	cp.ID = fmt.Sprintf("group_%d", r.nextID)
	r.byID[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *stubGroupRepo) Replace(_ context.Context, g *domain.Group) error {
	if _, ok := r.byID[g.ID]; !ok {
		return domain.ErrGroupNotFound
	}
	cp := *g
	r.byID[g.ID] = &cp
	return nil
}

func (r *stubGroupRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrGroupNotFound
	}
	delete(r.byID, id)
	return nil
}

func TestGroupService_Create_Duplicate(t *testing.T) {
	svc := NewGroupService(newStubGroupRepo(), discardLogger)

	if _, err := svc.Create(context.Background(), editorActor, "Retainers"); err != nil {
		t.Fatalf("create group: %v", err)
	}
	if _, err := svc.Create(context.Background(), editorActor, "retainers"); !errors.Is(err, domain.ErrDuplicateGroupName) {
		t.Fatalf("expected ErrDuplicateGroupName, got %v", err)
	}
}

func TestGroupService_Create_RequiresTaskEdit(t *testing.T) {
	svc := NewGroupService(newStubGroupRepo(), discardLogger)

	if _, err := svc.Create(context.Background(), viewerActor, "Retainers"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestGroupService_Rename(t *testing.T) {
	svc := NewGroupService(newStubGroupRepo(), discardLogger)
	created, err := svc.Create(context.Background(), editorActor, "Retainers")
	if err != nil {
		t.Fatalf("create group: %v", err)
	}

	// Renaming to its own name with different case is allowed.
	renamed, err := svc.Rename(context.Background(), editorActor, created.ID, "RETAINERS")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if renamed.Name != "RETAINERS" {
		t.Errorf("expected name %q, got %q", "RETAINERS", renamed.Name)
	}

	// Renaming onto another group's name conflicts.
	other, _ := svc.Create(context.Background(), editorActor, "One-offs")
	if _, err := svc.Rename(context.Background(), editorActor, other.ID, "Retainers"); !errors.Is(err, domain.ErrDuplicateGroupName) {
		t.Fatalf("expected ErrDuplicateGroupName, got %v", err)
	}
}

func TestGroupService_Delete_AdminOnly(t *testing.T) {
	repo := newStubGroupRepo()
	svc := NewGroupService(repo, discardLogger)
	created, err := svc.Create(context.Background(), editorActor, "Retainers")
	if err != nil {
		t.Fatalf("create group: %v", err)
	}

	if err := svc.Delete(context.Background(), editorActor, created.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), adminActor, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), created.ID); !errors.Is(err, domain.ErrGroupNotFound) {
		t.Fatalf("group should be gone, got %v", err)
	}
}
