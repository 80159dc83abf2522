package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/aroolinks/agencydesk/internal/api/handler"
	"github.com/aroolinks/agencydesk/internal/core/domain"
	"github.com/aroolinks/agencydesk/internal/core/ports"
)

type stubTaskService struct {
	listFn   func(ctx context.Context, actor ports.Actor, filter ports.TaskFilter) ([]*domain.Task, error)
	getFn    func(ctx context.Context, actor ports.Actor, id string) (*domain.Task, error)
	createFn func(ctx context.Context, actor ports.Actor, input ports.TaskInput) (*domain.Task, error)
	updateFn func(ctx context.Context, actor ports.Actor, id string, patch ports.TaskPatch) (*domain.Task, error)
	deleteFn func(ctx context.Context, actor ports.Actor, id string) error
}

func (s *stubTaskService) List(ctx context.Context, actor ports.Actor, filter ports.TaskFilter) ([]*domain.Task, error) {
	return s.listFn(ctx, actor, filter)
}

func (s *stubTaskService) Get(ctx context.Context, actor ports.Actor, id string) (*domain.Task, error) {
	return s.getFn(ctx, actor, id)
}

func (s *stubTaskService) Create(ctx context.Context, actor ports.Actor, input ports.TaskInput) (*domain.Task, error) {
	return s.createFn(ctx, actor, input)
}

func (s *stubTaskService) Update(ctx context.Context, actor ports.Actor, id string, patch ports.TaskPatch) (*domain.Task, error) {
	return s.updateFn(ctx, actor, id, patch)
}

func (s *stubTaskService) Delete(ctx context.Context, actor ports.Actor, id string) error {
	return s.deleteFn(ctx, actor, id)
}

var editorActor = ports.Actor{
	UserID:   "u2",
	Username: "alice",
	Role:     domain.RoleTeamMember,
	Permissions: domain.Permissions{
		CanViewTasks:   true,
		CanEditTasks:   true,
		CanViewClients: true,
		CanEditClients: true,
	},
}

func TestTaskHandler_List_YearFilter(t *testing.T) {
	e := newTestEcho()
	stub := &stubTaskService{
		listFn: func(ctx context.Context, actor ports.Actor, filter ports.TaskFilter) ([]*domain.Task, error) {
			if filter.Year != 2024 {
				t.Fatalf("expected year 2024, got %d", filter.Year)
			}
			return []*domain.Task{{ID: "t1", ClientName: "Acme"}}, nil
		},
	}
	e.GET("/api/tasks", handler.NewTaskHandler(stub).List, withActor(editorActor))

	req := httptest.NewRequest(http.MethodGet, "/api/tasks?year=2024", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeEnvelope(t, rec.Body.Bytes())
	if resp["success"] != true {
		t.Fatalf("expected success envelope, got %+v", resp)
	}
}

func TestTaskHandler_List_BadYear(t *testing.T) {
	e := newTestEcho()
	stub := &stubTaskService{
		listFn: func(ctx context.Context, actor ports.Actor, filter ports.TaskFilter) ([]*domain.Task, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	e.GET("/api/tasks", handler.NewTaskHandler(stub).List, withActor(editorActor))

	req := httptest.NewRequest(http.MethodGet, "/api/tasks?year=banana", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTaskHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubTaskService{
		createFn: func(ctx context.Context, actor ports.Actor, input ports.TaskInput) (*domain.Task, error) {
			if input.ClientName != "Acme" || input.Priority != domain.PriorityHigh {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Task{ID: "t1", ClientName: input.ClientName, Priority: input.Priority}, nil
		},
	}
	e.POST("/api/tasks", handler.NewTaskHandler(stub).Create, withActor(editorActor))

	body := strings.NewReader(`{"clientName":"Acme","priority":"High"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/tasks", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestTaskHandler_Create_MissingClientName(t *testing.T) {
	e := newTestEcho()
	stub := &stubTaskService{
		createFn: func(ctx context.Context, actor ports.Actor, input ports.TaskInput) (*domain.Task, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	e.POST("/api/tasks", handler.NewTaskHandler(stub).Create, withActor(editorActor))

	req := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(`{"priority":"High"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTaskHandler_Update_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubTaskService{
		updateFn: func(ctx context.Context, actor ports.Actor, id string, patch ports.TaskPatch) (*domain.Task, error) {
			return nil, domain.ErrTaskNotFound
		},
	}
	e.PUT("/api/tasks/:id", handler.NewTaskHandler(stub).Update, withActor(editorActor))

	req := httptest.NewRequest(http.MethodPut, "/api/tasks/ghost", strings.NewReader(`{"notes":"check"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestTaskHandler_Delete_Forbidden(t *testing.T) {
	e := newTestEcho()
	stub := &stubTaskService{
		deleteFn: func(ctx context.Context, actor ports.Actor, id string) error {
			return domain.ErrForbidden
		},
	}
	e.DELETE("/api/tasks/:id", handler.NewTaskHandler(stub).Delete, withActor(editorActor))

	req := httptest.NewRequest(http.MethodDelete, "/api/tasks/t1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	resp := decodeEnvelope(t, rec.Body.Bytes())
	if resp["success"] != false {
		t.Fatalf("expected error envelope, got %+v", resp)
	}
}
