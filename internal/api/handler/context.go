package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aroolinks/agencydesk/internal/api/middleware"
	"github.com/aroolinks/agencydesk/internal/core/ports"
)

// ctxActor extracts the actor injected by the Auth middleware and performs a
// fast-fail check before any service call: a missing actor means the route
// was wired without authentication, which is always a caller bug.
func ctxActor(c echo.Context) (ports.Actor, error) {
	actor, ok := middleware.ActorFrom(c)
	if !ok || actor.UserID == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return actor, nil
}
