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

type stubClientService struct {
	listClientsFn  func(ctx context.Context, actor ports.Actor) ([]*domain.Client, error)
	getClientFn    func(ctx context.Context, actor ports.Actor, id string) (*domain.Client, error)
	createClientFn func(ctx context.Context, actor ports.Actor, name string) (*domain.Client, error)
	renameClientFn func(ctx context.Context, actor ports.Actor, id, name string) (*domain.Client, error)
	deleteClientFn func(ctx context.Context, actor ports.Actor, id string) error
	addTaskFn      func(ctx context.Context, actor ports.Actor, clientID string, input ports.ClientTaskInput) (*domain.ClientTask, error)
	updateTaskFn   func(ctx context.Context, actor ports.Actor, clientID, taskID string, patch ports.ClientTaskPatch) (*domain.ClientTask, error)
	toggleTaskFn   func(ctx context.Context, actor ports.Actor, clientID, taskID string) (*domain.ClientTask, error)
	deleteTaskFn   func(ctx context.Context, actor ports.Actor, clientID, taskID string) error
	addLoginFn     func(ctx context.Context, actor ports.Actor, clientID string, input ports.LoginDetailInput) (*domain.LoginDetail, error)
	updateLoginFn  func(ctx context.Context, actor ports.Actor, clientID, loginID string, patch ports.LoginDetailPatch) (*domain.LoginDetail, error)
	deleteLoginFn  func(ctx context.Context, actor ports.Actor, clientID, loginID string) error
}

func (s *stubClientService) ListClients(ctx context.Context, actor ports.Actor) ([]*domain.Client, error) {
	return s.listClientsFn(ctx, actor)
}

func (s *stubClientService) GetClient(ctx context.Context, actor ports.Actor, id string) (*domain.Client, error) {
	return s.getClientFn(ctx, actor, id)
}

func (s *stubClientService) CreateClient(ctx context.Context, actor ports.Actor, name string) (*domain.Client, error) {
	return s.createClientFn(ctx, actor, name)
}

func (s *stubClientService) RenameClient(ctx context.Context, actor ports.Actor, id, name string) (*domain.Client, error) {
	return s.renameClientFn(ctx, actor, id, name)
}

func (s *stubClientService) DeleteClient(ctx context.Context, actor ports.Actor, id string) error {
	return s.deleteClientFn(ctx, actor, id)
}

func (s *stubClientService) AddTask(ctx context.Context, actor ports.Actor, clientID string, input ports.ClientTaskInput) (*domain.ClientTask, error) {
	return s.addTaskFn(ctx, actor, clientID, input)
}

func (s *stubClientService) UpdateTask(ctx context.Context, actor ports.Actor, clientID, taskID string, patch ports.ClientTaskPatch) (*domain.ClientTask, error) {
	return s.updateTaskFn(ctx, actor, clientID, taskID, patch)
}

func (s *stubClientService) ToggleTaskCompletion(ctx context.Context, actor ports.Actor, clientID, taskID string) (*domain.ClientTask, error) {
	return s.toggleTaskFn(ctx, actor, clientID, taskID)
}

func (s *stubClientService) DeleteTask(ctx context.Context, actor ports.Actor, clientID, taskID string) error {
	return s.deleteTaskFn(ctx, actor, clientID, taskID)
}

func (s *stubClientService) AddLogin(ctx context.Context, actor ports.Actor, clientID string, input ports.LoginDetailInput) (*domain.LoginDetail, error) {
	return s.addLoginFn(ctx, actor, clientID, input)
}

func (s *stubClientService) UpdateLogin(ctx context.Context, actor ports.Actor, clientID, loginID string, patch ports.LoginDetailPatch) (*domain.LoginDetail, error) {
	return s.updateLoginFn(ctx, actor, clientID, loginID, patch)
}

func (s *stubClientService) DeleteLogin(ctx context.Context, actor ports.Actor, clientID, loginID string) error {
	return s.deleteLoginFn(ctx, actor, clientID, loginID)
}

func TestClientHandler_Create_DuplicateName(t *testing.T) {
	e := newTestEcho()
	stub := &stubClientService{
		createClientFn: func(ctx context.Context, actor ports.Actor, name string) (*domain.Client, error) {
			return nil, domain.ErrDuplicateClientName
		},
	}
	e.POST("/api/clients", handler.NewClientHandler(stub).Create, withActor(editorActor))

	req := httptest.NewRequest(http.MethodPost, "/api/clients", strings.NewReader(`{"name":"Acme"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestClientHandler_AddTask_TitleTooLong(t *testing.T) {
	e := newTestEcho()
	stub := &stubClientService{
		addTaskFn: func(ctx context.Context, actor ports.Actor, clientID string, input ports.ClientTaskInput) (*domain.ClientTask, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	e.POST("/api/clients/:id/tasks", handler.NewClientHandler(stub).AddTask, withActor(editorActor))

	long := strings.Repeat("x", 101)
	req := httptest.NewRequest(http.MethodPost, "/api/clients/c1/tasks", strings.NewReader(`{"title":"`+long+`"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestClientHandler_ToggleTaskCompletion(t *testing.T) {
	e := newTestEcho()
	stub := &stubClientService{
		toggleTaskFn: func(ctx context.Context, actor ports.Actor, clientID, taskID string) (*domain.ClientTask, error) {
			if clientID != "c1" || taskID != "ct1" {
				t.Fatalf("unexpected ids: %s %s", clientID, taskID)
			}
			return &domain.ClientTask{ID: taskID, Completed: true, CompletedBy: actor.Username}, nil
		},
	}
	e.PATCH("/api/clients/:id/tasks/:taskId/toggle-completion", handler.NewClientHandler(stub).ToggleTaskCompletion, withActor(editorActor))

	req := httptest.NewRequest(http.MethodPatch, "/api/clients/c1/tasks/ct1/toggle-completion", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeEnvelope(t, rec.Body.Bytes())
	task, ok := resp["data"].(map[string]any)
	if !ok || task["completed"] != true || task["completedBy"] != "alice" {
		t.Fatalf("unexpected task payload: %+v", resp["data"])
	}
}

func TestClientHandler_UpdateTask_RevisionConflict(t *testing.T) {
	e := newTestEcho()
	stub := &stubClientService{
		updateTaskFn: func(ctx context.Context, actor ports.Actor, clientID, taskID string, patch ports.ClientTaskPatch) (*domain.ClientTask, error) {
			return nil, domain.ErrRevisionConflict
		},
	}
	e.PUT("/api/clients/:id/tasks/:taskId", handler.NewClientHandler(stub).UpdateTask, withActor(editorActor))

	req := httptest.NewRequest(http.MethodPut, "/api/clients/c1/tasks/ct1", strings.NewReader(`{"title":"renamed"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestClientHandler_DeleteLogin_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubClientService{
		deleteLoginFn: func(ctx context.Context, actor ports.Actor, clientID, loginID string) error {
			return domain.ErrLoginDetailNotFound
		},
	}
	e.DELETE("/api/clients/:id/logins/:loginId", handler.NewClientHandler(stub).DeleteLogin, withActor(editorActor))

	req := httptest.NewRequest(http.MethodDelete, "/api/clients/c1/logins/ld1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
