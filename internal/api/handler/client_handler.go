package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aroolinks/agencydesk/internal/api/metrics"
	"github.com/aroolinks/agencydesk/internal/core/ports"
)

type ClientHandler struct {
	clientService ports.ClientService
}

func NewClientHandler(clientService ports.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

type clientNameRequest struct {
	Name string `json:"name" validate:"required"`
}

type addClientTaskRequest struct {
	Title      string `json:"title" validate:"required,max=100"`
	Content    string `json:"content" validate:"max=5000"`
	AssignedTo string `json:"assignedTo"`
	Completed  bool   `json:"completed"`
}

type updateClientTaskRequest struct {
	Title      *string `json:"title" validate:"omitempty,max=100"`
	Content    *string `json:"content" validate:"omitempty,max=5000"`
	AssignedTo *string `json:"assignedTo"`
	Completed  *bool   `json:"completed"`
}

type addLoginDetailRequest struct {
	Website  string `json:"website" validate:"required"`
	URL      string `json:"url"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password"`
}

type updateLoginDetailRequest struct {
	Website  *string `json:"website"`
	URL      *string `json:"url"`
	Username *string `json:"username"`
	Password *string `json:"password"`
}

// List returns all clients sorted by name.
//
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Success      200  {object}  successResponse
// @Failure      403  {object}  errorResponse
// @Router       /clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	clients, err := h.clientService.ListClients(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, clients)
}

// Get returns a single client with its embedded tasks and login details.
//
// @Summary      Get a client
// @Tags         clients
// @Produce      json
// @Param        id   path      string  true  "Client id"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  errorResponse
// @Router       /clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	client, err := h.clientService.GetClient(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, client)
}

// Create adds a client record.
//
// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        body  body      clientNameRequest  true  "Client name"
// @Success      201   {object}  successResponse
// @Failure      409   {object}  errorResponse
// @Router       /clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req clientNameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	client, err := h.clientService.CreateClient(c.Request().Context(), actor, req.Name)
	if err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("clients", "create").Inc()
	return respond(c, http.StatusCreated, client)
}

// Rename changes a client's name.
//
// @Summary      Rename a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Client id"
// @Param        body  body      clientNameRequest  true  "New name"
// @Success      200   {object}  successResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /clients/{id} [put]
func (h *ClientHandler) Rename(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req clientNameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	client, err := h.clientService.RenameClient(c.Request().Context(), actor, c.Param("id"), req.Name)
	if err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("clients", "update").Inc()
	return respond(c, http.StatusOK, client)
}

// Delete removes a client and everything embedded in it.
//
// @Summary      Delete a client
// @Tags         clients
// @Produce      json
// @Param        id   path      string  true  "Client id"
// @Success      200  {object}  successResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /clients/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.clientService.DeleteClient(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("clients", "delete").Inc()
	return respond(c, http.StatusOK, map[string]string{"message": "client deleted"})
}

// AddTask appends a work note to a client.
//
// @Summary      Add a client task
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Client id"
// @Param        body  body      addClientTaskRequest  true  "Task fields"
// @Success      201   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /clients/{id}/tasks [post]
func (h *ClientHandler) AddTask(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req addClientTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.clientService.AddTask(c.Request().Context(), actor, c.Param("id"), ports.ClientTaskInput{
		Title:      req.Title,
		Content:    req.Content,
		AssignedTo: req.AssignedTo,
		Completed:  req.Completed,
	})
	if err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("clients", "task_create").Inc()
	return respond(c, http.StatusCreated, task)
}

// UpdateTask applies a partial merge to an embedded work note.
//
// @Summary      Update a client task
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id      path      string                   true  "Client id"
// @Param        taskId  path      string                   true  "Task id"
// @Param        body    body      updateClientTaskRequest  true  "Fields to change"
// @Success      200     {object}  successResponse
// @Failure      404     {object}  errorResponse
// @Router       /clients/{id}/tasks/{taskId} [put]
func (h *ClientHandler) UpdateTask(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateClientTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.clientService.UpdateTask(c.Request().Context(), actor, c.Param("id"), c.Param("taskId"), ports.ClientTaskPatch{
		Title:      req.Title,
		Content:    req.Content,
		AssignedTo: req.AssignedTo,
		Completed:  req.Completed,
	})
	if err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("clients", "task_update").Inc()
	return respond(c, http.StatusOK, task)
}

// ToggleTaskCompletion flips a work note's completion state.
//
// @Summary      Toggle client task completion
// @Tags         clients
// @Produce      json
// @Param        id      path      string  true  "Client id"
// @Param        taskId  path      string  true  "Task id"
// @Success      200     {object}  successResponse
// @Failure      404     {object}  errorResponse
// @Router       /clients/{id}/tasks/{taskId}/toggle-completion [patch]
func (h *ClientHandler) ToggleTaskCompletion(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	task, err := h.clientService.ToggleTaskCompletion(c.Request().Context(), actor, c.Param("id"), c.Param("taskId"))
	if err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("clients", "task_update").Inc()
	return respond(c, http.StatusOK, task)
}

// DeleteTask splices a work note out of the client.
//
// @Summary      Delete a client task
// @Tags         clients
// @Produce      json
// @Param        id      path      string  true  "Client id"
// @Param        taskId  path      string  true  "Task id"
// @Success      200     {object}  successResponse
// @Failure      403     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /clients/{id}/tasks/{taskId} [delete]
func (h *ClientHandler) DeleteTask(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.clientService.DeleteTask(c.Request().Context(), actor, c.Param("id"), c.Param("taskId")); err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("clients", "task_delete").Inc()
	return respond(c, http.StatusOK, map[string]string{"message": "task deleted"})
}

// AddLogin stores a credential entry on a client.
//
// @Summary      Add a login detail
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "Client id"
// @Param        body  body      addLoginDetailRequest  true  "Credential fields"
// @Success      201   {object}  successResponse
// @Failure      404   {object}  errorResponse
// @Router       /clients/{id}/logins [post]
func (h *ClientHandler) AddLogin(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req addLoginDetailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	login, err := h.clientService.AddLogin(c.Request().Context(), actor, c.Param("id"), ports.LoginDetailInput{
		Website:  req.Website,
		URL:      req.URL,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("clients", "login_create").Inc()
	return respond(c, http.StatusCreated, login)
}

// UpdateLogin applies a partial merge to a credential entry.
//
// @Summary      Update a login detail
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "Client id"
// @Param        loginId  path      string                    true  "Login id"
// @Param        body     body      updateLoginDetailRequest  true  "Fields to change"
// @Success      200      {object}  successResponse
// @Failure      404      {object}  errorResponse
// @Router       /clients/{id}/logins/{loginId} [put]
func (h *ClientHandler) UpdateLogin(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateLoginDetailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	login, err := h.clientService.UpdateLogin(c.Request().Context(), actor, c.Param("id"), c.Param("loginId"), ports.LoginDetailPatch{
		Website:  req.Website,
		URL:      req.URL,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("clients", "login_update").Inc()
	return respond(c, http.StatusOK, login)
}

// DeleteLogin removes a credential entry from the client.
//
// @Summary      Delete a login detail
// @Tags         clients
// @Produce      json
// @Param        id       path      string  true  "Client id"
// @Param        loginId  path      string  true  "Login id"
// @Success      200      {object}  successResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /clients/{id}/logins/{loginId} [delete]
func (h *ClientHandler) DeleteLogin(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.clientService.DeleteLogin(c.Request().Context(), actor, c.Param("id"), c.Param("loginId")); err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("clients", "login_delete").Inc()
	return respond(c, http.StatusOK, map[string]string{"message": "login detail deleted"})
}
