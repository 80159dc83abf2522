package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/aroolinks/agencydesk/internal/core/domain"
	"github.com/aroolinks/agencydesk/internal/core/ports"
)

func runGate(t *testing.T, gate echo.MiddlewareFunc, actor *ports.Actor) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if actor != nil {
		c.Set(actorKey, *actor)
	}

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	return gate(next)(c)
}

func TestRequirePermission_Granted(t *testing.T) {
	actor := ports.Actor{
		UserID: "u2",
		Role:   domain.RoleTeamMember,
		Permissions: domain.Permissions{
			CanEditTasks: true,
		},
	}
	if err := runGate(t, RequirePermission(domain.PermEditTasks), &actor); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequirePermission_Denied(t *testing.T) {
	actor := ports.Actor{UserID: "u3", Role: domain.RoleTeamMember}
	err := runGate(t, RequirePermission(domain.PermEditTasks), &actor)
	assertHTTPStatus(t, err, http.StatusForbidden)
}

func TestRequirePermission_AdminBypass(t *testing.T) {
	actor := ports.Actor{UserID: "u1", Role: domain.RoleAdmin}
	if err := runGate(t, RequirePermission(domain.PermManageUsers), &actor); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequirePermission_NoActor(t *testing.T) {
	err := runGate(t, RequirePermission(domain.PermViewTasks), nil)
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestRequireAdmin(t *testing.T) {
	admin := ports.Actor{UserID: "u1", Role: domain.RoleAdmin}
	if err := runGate(t, RequireAdmin(), &admin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	member := ports.Actor{
		UserID: "u2",
		Role:   domain.RoleTeamMember,
		Permissions: domain.Permissions{
			CanViewTasks:   true,
			CanEditTasks:   true,
			CanViewClients: true,
			CanEditClients: true,
			CanManageUsers: true,
		},
	}
	err := runGate(t, RequireAdmin(), &member)
	assertHTTPStatus(t, err, http.StatusForbidden)
}
