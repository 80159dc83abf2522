package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aroolinks/agencydesk/internal/api/metrics"
	"github.com/aroolinks/agencydesk/internal/core/ports"
)

// AssigneeHandler serves the assignment-picker view: a thin projection
// over user accounts keyed by username.
type AssigneeHandler struct {
	userService ports.UserService
}

func NewAssigneeHandler(userService ports.UserService) *AssigneeHandler {
	return &AssigneeHandler{userService: userService}
}

type addAssigneeRequest struct {
	Name string `json:"name" validate:"required"`
}

// List returns every assignable username.
func (h *AssigneeHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	names, err := h.userService.ListAssignees(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, names)
}

// Add makes a name assignable, provisioning a team member account when
// the name is new.
func (h *AssigneeHandler) Add(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req addAssigneeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.AddAssignee(c.Request().Context(), actor, req.Name)
	if err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("users", "create").Inc()
	return respond(c, http.StatusCreated, user)
}

// Remove deletes the account behind an assignee name.
func (h *AssigneeHandler) Remove(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.userService.RemoveAssignee(c.Request().Context(), actor, c.Param("username")); err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("users", "delete").Inc()
	return respond(c, http.StatusOK, map[string]string{"message": "assignee removed"})
}
