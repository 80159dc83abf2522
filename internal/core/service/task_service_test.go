package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aroolinks/agencydesk/internal/core/domain"
	"github.com/aroolinks/agencydesk/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubTaskRepo struct {
	byID   map[string]*domain.Task
	nextID int
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{byID: make(map[string]*domain.Task)}
}

// List applies the same year window the real Mongo repo queries with.
func (r *stubTaskRepo) List(_ context.Context, filter ports.TaskFilter) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range r.byID {
		if filter.Year != 0 {
			if t.DueDate == nil {
				continue
			}
			from := time.Date(filter.Year, 1, 1, 0, 0, 0, 0, time.UTC)
			to := from.AddDate(1, 0, 0)
			if t.DueDate.Before(from) || !t.DueDate.Before(to) {
				continue
			}
		}
		clone := *t
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) (*domain.Task, error) {
	r.nextID++
	clone := *t
	clone.ID = fmt.Sprintf("task_%d", r.nextID)
	r.byID[clone.ID] = &clone
	stored := clone
	return &stored, nil
}

func (r *stubTaskRepo) Replace(_ context.Context, t *domain.Task) error {
	if _, ok := r.byID[t.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	clone := *t
	r.byID[t.ID] = &clone
	return nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestTaskService_Create_Defaults(t *testing.T) {
	svc := NewTaskService(newStubTaskRepo(), discardLogger)

	task, err := svc.Create(context.Background(), editorActor, ports.TaskInput{ClientName: "Acme"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if task.Priority != domain.PriorityMedium {
		t.Errorf("expected default priority Medium, got %q", task.Priority)
	}
	if task.Status != domain.StatusInProcess {
		t.Errorf("expected default status InProcess, got %q", task.Status)
	}
	if task.Completed {
		t.Error("new task must start incomplete")
	}
	if task.Assignees == nil {
		t.Error("assignees must serialize as an empty list, not null")
	}
}

func TestTaskService_Create_PaidForcesCompleted(t *testing.T) {
	svc := NewTaskService(newStubTaskRepo(), discardLogger)

	task, err := svc.Create(context.Background(), editorActor, ports.TaskInput{
		ClientName: "Acme",
		Status:     domain.StatusInProcess,
		Paid:       true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Status != domain.StatusCompleted || !task.Completed {
		t.Errorf("paid task must be completed: status=%q completed=%v", task.Status, task.Completed)
	}
}

func TestTaskService_Create_RequiresPermission(t *testing.T) {
	svc := NewTaskService(newStubTaskRepo(), discardLogger)

	if _, err := svc.Create(context.Background(), viewerActor, ports.TaskInput{ClientName: "Acme"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestTaskService_Create_InvalidEnums(t *testing.T) {
	svc := NewTaskService(newStubTaskRepo(), discardLogger)

	if _, err := svc.Create(context.Background(), editorActor, ports.TaskInput{ClientName: "Acme", Priority: "Extreme"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for bad priority, got %v", err)
	}
	if _, err := svc.Create(context.Background(), editorActor, ports.TaskInput{ClientName: "Acme", Status: "Paused"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for bad status, got %v", err)
	}
}

func TestTaskService_Update_PartialMerge(t *testing.T) {
	repo := newStubTaskRepo()
	svc := NewTaskService(repo, discardLogger)

	created, _ := svc.Create(context.Background(), editorActor, ports.TaskInput{
		ClientName: "Acme",
		Notes:      "original notes",
	})
	time.Sleep(5 * time.Millisecond)

	paid := true
	updated, err := svc.Update(context.Background(), editorActor, created.ID, ports.TaskPatch{Paid: &paid})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Notes != "original notes" {
		t.Error("untouched fields must survive a partial update")
	}
	if updated.Status != domain.StatusCompleted || !updated.Completed {
		t.Error("marking paid must complete the task")
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Error("updatedAt must be re-stamped")
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Error("createdAt must survive an update")
	}
}

func TestTaskService_Update_NotFound(t *testing.T) {
	svc := NewTaskService(newStubTaskRepo(), discardLogger)

	notes := "x"
	if _, err := svc.Update(context.Background(), editorActor, "missing", ports.TaskPatch{Notes: &notes}); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskService_List_YearFilter(t *testing.T) {
	repo := newStubTaskRepo()
	svc := NewTaskService(repo, discardLogger)

	due2023 := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	due2024 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, _ = svc.Create(context.Background(), editorActor, ports.TaskInput{ClientName: "A", DueDate: &due2023})
	_, _ = svc.Create(context.Background(), editorActor, ports.TaskInput{ClientName: "B", DueDate: &due2024})
	_, _ = svc.Create(context.Background(), editorActor, ports.TaskInput{ClientName: "C"})

	all, err := svc.List(context.Background(), viewerActor, ports.TaskFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 tasks unfiltered, got %d", len(all))
	}

	only2024, err := svc.List(context.Background(), viewerActor, ports.TaskFilter{Year: 2024})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(only2024) != 1 || only2024[0].ClientName != "B" {
		t.Errorf("year filter wrong: %+v", only2024)
	}
}

func TestTaskService_List_RequiresViewPermission(t *testing.T) {
	svc := NewTaskService(newStubTaskRepo(), discardLogger)

	noPerms := ports.Actor{Username: "nobody", Role: domain.RoleTeamMember}
	if _, err := svc.List(context.Background(), noPerms, ports.TaskFilter{}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestTaskService_Delete_AdminOnly(t *testing.T) {
	repo := newStubTaskRepo()
	svc := NewTaskService(repo, discardLogger)
	created, _ := svc.Create(context.Background(), editorActor, ports.TaskInput{ClientName: "Acme"})

	if err := svc.Delete(context.Background(), editorActor, created.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin, got %v", err)
	}
	if err := svc.Delete(context.Background(), adminActor, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(context.Background(), adminActor, created.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}
