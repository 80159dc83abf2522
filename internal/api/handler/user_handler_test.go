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

type stubUserService struct {
	listFn           func(ctx context.Context, actor ports.Actor) (*ports.UserListing, error)
	createFn         func(ctx context.Context, actor ports.Actor, input ports.CreateUserInput) (*domain.User, error)
	updateFn         func(ctx context.Context, actor ports.Actor, id string, patch ports.UserPatch) (*domain.User, error)
	resetPasswordFn  func(ctx context.Context, actor ports.Actor, id, newPassword string) error
	deleteFn         func(ctx context.Context, actor ports.Actor, id string) error
	listAssigneesFn  func(ctx context.Context, actor ports.Actor) ([]string, error)
	addAssigneeFn    func(ctx context.Context, actor ports.Actor, name string) (*domain.User, error)
	removeAssigneeFn func(ctx context.Context, actor ports.Actor, username string) error
}

func (s *stubUserService) List(ctx context.Context, actor ports.Actor) (*ports.UserListing, error) {
	return s.listFn(ctx, actor)
}

func (s *stubUserService) Create(ctx context.Context, actor ports.Actor, input ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, actor, input)
}

func (s *stubUserService) Update(ctx context.Context, actor ports.Actor, id string, patch ports.UserPatch) (*domain.User, error) {
	return s.updateFn(ctx, actor, id, patch)
}

func (s *stubUserService) ResetPassword(ctx context.Context, actor ports.Actor, id, newPassword string) error {
	return s.resetPasswordFn(ctx, actor, id, newPassword)
}

func (s *stubUserService) Delete(ctx context.Context, actor ports.Actor, id string) error {
	return s.deleteFn(ctx, actor, id)
}

func (s *stubUserService) ListAssignees(ctx context.Context, actor ports.Actor) ([]string, error) {
	return s.listAssigneesFn(ctx, actor)
}

func (s *stubUserService) AddAssignee(ctx context.Context, actor ports.Actor, name string) (*domain.User, error) {
	return s.addAssigneeFn(ctx, actor, name)
}

func (s *stubUserService) RemoveAssignee(ctx context.Context, actor ports.Actor, username string) error {
	return s.removeAssigneeFn(ctx, actor, username)
}

var adminActor = ports.Actor{
	UserID:   "u1",
	Username: "boss",
	Role:     domain.RoleAdmin,
}

func TestUserHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		createFn: func(ctx context.Context, actor ports.Actor, input ports.CreateUserInput) (*domain.User, error) {
			if input.Username != "dave" || input.Role != domain.RoleTeamMember {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.User{ID: "u9", Username: input.Username, Role: input.Role}, nil
		},
	}
	e.POST("/api/users", handler.NewUserHandler(stub).Create, withActor(adminActor))

	body := strings.NewReader(`{"username":"dave","email":"dave@example.com","password":"longenough","role":"team_member"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/users", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUserHandler_Create_ShortPassword(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		createFn: func(ctx context.Context, actor ports.Actor, input ports.CreateUserInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	e.POST("/api/users", handler.NewUserHandler(stub).Create, withActor(adminActor))

	body := strings.NewReader(`{"username":"dave","email":"dave@example.com","password":"short"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/users", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUserHandler_Create_UnknownRole(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		createFn: func(ctx context.Context, actor ports.Actor, input ports.CreateUserInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	e.POST("/api/users", handler.NewUserHandler(stub).Create, withActor(adminActor))

	body := strings.NewReader(`{"username":"dave","email":"dave@example.com","password":"longenough","role":"superuser"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/users", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUserHandler_Delete_Self(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		deleteFn: func(ctx context.Context, actor ports.Actor, id string) error {
			return domain.ErrSelfDelete
		},
	}
	e.DELETE("/api/users/:id", handler.NewUserHandler(stub).Delete, withActor(adminActor))

	req := httptest.NewRequest(http.MethodDelete, "/api/users/u1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestAssigneeHandler_Add_ProvisionsUser(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		addAssigneeFn: func(ctx context.Context, actor ports.Actor, name string) (*domain.User, error) {
			if name != "newhire" {
				t.Fatalf("unexpected name: %s", name)
			}
			return &domain.User{ID: "u7", Username: name, Role: domain.RoleTeamMember}, nil
		},
	}
	e.POST("/api/assignees", handler.NewAssigneeHandler(stub).Add, withActor(editorActor))

	req := httptest.NewRequest(http.MethodPost, "/api/assignees", strings.NewReader(`{"name":"newhire"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeEnvelope(t, rec.Body.Bytes())
	user, ok := resp["data"].(map[string]any)
	if !ok || user["username"] != "newhire" || user["role"] != domain.RoleTeamMember {
		t.Fatalf("unexpected user payload: %+v", resp["data"])
	}
}

func TestAssigneeHandler_List(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		listAssigneesFn: func(ctx context.Context, actor ports.Actor) ([]string, error) {
			return []string{"alice", "boss"}, nil
		},
	}
	e.GET("/api/assignees", handler.NewAssigneeHandler(stub).List, withActor(editorActor))

	req := httptest.NewRequest(http.MethodGet, "/api/assignees", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeEnvelope(t, rec.Body.Bytes())
	names, ok := resp["data"].([]any)
	if !ok || len(names) != 2 {
		t.Fatalf("unexpected payload: %+v", resp["data"])
	}
}
