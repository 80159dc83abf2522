package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aroolinks/agencydesk/internal/api/metrics"
	"github.com/aroolinks/agencydesk/internal/core/ports"
)

type GroupHandler struct {
	groupService ports.GroupService
}

func NewGroupHandler(groupService ports.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

type groupNameRequest struct {
	Name string `json:"name" validate:"required"`
}

// List returns all group labels.
func (h *GroupHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	groups, err := h.groupService.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, groups)
}

// Get returns one group label by id.
func (h *GroupHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	group, err := h.groupService.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, group)
}

// Create adds a group label.
func (h *GroupHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req groupNameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	group, err := h.groupService.Create(c.Request().Context(), actor, req.Name)
	if err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("groups", "create").Inc()
	return respond(c, http.StatusCreated, group)
}

// Rename changes a group label's name.
func (h *GroupHandler) Rename(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req groupNameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	group, err := h.groupService.Rename(c.Request().Context(), actor, c.Param("id"), req.Name)
	if err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("groups", "update").Inc()
	return respond(c, http.StatusOK, group)
}

// Delete removes a group label.
func (h *GroupHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.groupService.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("groups", "delete").Inc()
	return respond(c, http.StatusOK, map[string]string{"message": "group deleted"})
}
