package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aroolinks/agencydesk/internal/api/metrics"
	"github.com/aroolinks/agencydesk/internal/core/domain"
	"github.com/aroolinks/agencydesk/internal/core/ports"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

type createTaskRequest struct {
	ClientName  string     `json:"clientName" validate:"required"`
	ClientGroup string     `json:"clientGroup"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=Low Medium High Urgent"`
	Status      string     `json:"status"`
	CMS         string     `json:"cms"`
	WebURL      string     `json:"webUrl"`
	FigmaURL    string     `json:"figmaUrl"`
	AssetURL    string     `json:"assetUrl"`
	TotalPrice  *float64   `json:"totalPrice"`
	Deposit     *float64   `json:"deposit"`
	Invoiced    bool       `json:"invoiced"`
	Paid        bool       `json:"paid"`
	Assignees   []string   `json:"assignees"`
	Notes       string     `json:"notes"`
}

type updateTaskRequest struct {
	ClientName  *string    `json:"clientName"`
	ClientGroup *string    `json:"clientGroup"`
	DueDate     *time.Time `json:"dueDate"`
	ClearDue    bool       `json:"clearDueDate"`
	Priority    *string    `json:"priority" validate:"omitempty,oneof=Low Medium High Urgent"`
	Status      *string    `json:"status"`
	CMS         *string    `json:"cms"`
	WebURL      *string    `json:"webUrl"`
	FigmaURL    *string    `json:"figmaUrl"`
	AssetURL    *string    `json:"assetUrl"`
	TotalPrice  *float64   `json:"totalPrice"`
	Deposit     *float64   `json:"deposit"`
	Invoiced    *bool      `json:"invoiced"`
	Paid        *bool      `json:"paid"`
	Assignees   *[]string  `json:"assignees"`
	Notes       *string    `json:"notes"`
}

// List returns board tasks, optionally filtered to a calendar year.
//
// @Summary      List board tasks
// @Tags         tasks
// @Produce      json
// @Param        year  query     int  false  "Restrict to tasks due within this year"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var filter ports.TaskFilter
	if raw := c.QueryParam("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "year must be an integer")
		}
		filter.Year = year
	}

	tasks, err := h.taskService.List(c.Request().Context(), actor, filter)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, tasks)
}

// Get returns a single board task by id.
//
// @Summary      Get a board task
// @Tags         tasks
// @Produce      json
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  errorResponse
// @Router       /tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, task)
}

// Create adds a board task.
//
// @Summary      Create a board task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body      createTaskRequest  true  "Task fields"
// @Success      201   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.Create(c.Request().Context(), actor, ports.TaskInput{
		ClientName:  req.ClientName,
		ClientGroup: req.ClientGroup,
		DueDate:     req.DueDate,
		Priority:    domain.TaskPriority(req.Priority),
		Status:      domain.TaskStatus(req.Status),
		CMS:         req.CMS,
		WebURL:      req.WebURL,
		FigmaURL:    req.FigmaURL,
		AssetURL:    req.AssetURL,
		TotalPrice:  req.TotalPrice,
		Deposit:     req.Deposit,
		Invoiced:    req.Invoiced,
		Paid:        req.Paid,
		Assignees:   req.Assignees,
		Notes:       req.Notes,
	})
	if err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("tasks", "create").Inc()
	return respond(c, http.StatusCreated, task)
}

// Update applies a partial merge to a board task.
//
// @Summary      Update a board task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Task id"
// @Param        body  body      updateTaskRequest  true  "Fields to change"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	patch := ports.TaskPatch{
		ClientName:  req.ClientName,
		ClientGroup: req.ClientGroup,
		DueDate:     req.DueDate,
		ClearDue:    req.ClearDue,
		CMS:         req.CMS,
		WebURL:      req.WebURL,
		FigmaURL:    req.FigmaURL,
		AssetURL:    req.AssetURL,
		TotalPrice:  req.TotalPrice,
		Deposit:     req.Deposit,
		Invoiced:    req.Invoiced,
		Paid:        req.Paid,
		Assignees:   req.Assignees,
		Notes:       req.Notes,
	}
	if req.Priority != nil {
		p := domain.TaskPriority(*req.Priority)
		patch.Priority = &p
	}
	if req.Status != nil {
		s := domain.TaskStatus(*req.Status)
		patch.Status = &s
	}

	task, err := h.taskService.Update(c.Request().Context(), actor, c.Param("id"), patch)
	if err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("tasks", "update").Inc()
	return respond(c, http.StatusOK, task)
}

// Delete removes a board task.
//
// @Summary      Delete a board task
// @Tags         tasks
// @Produce      json
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  successResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.taskService.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("tasks", "delete").Inc()
	return respond(c, http.StatusOK, map[string]string{"message": "task deleted"})
}
