package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aroolinks/agencydesk/internal/api/metrics"
	"github.com/aroolinks/agencydesk/internal/core/domain"
	"github.com/aroolinks/agencydesk/internal/core/ports"
)

type HostingHandler struct {
	hostingService ports.HostingService
}

func NewHostingHandler(hostingService ports.HostingService) *HostingHandler {
	return &HostingHandler{hostingService: hostingService}
}

type createHostingRequest struct {
	ClientName      string    `json:"clientName" validate:"required"`
	WebsiteName     string    `json:"websiteName" validate:"required"`
	WebsiteURL      string    `json:"websiteUrl"`
	HostingProvider string    `json:"hostingProvider"`
	PackageType     string    `json:"packageType"`
	Cost            float64   `json:"cost"`
	Currency        string    `json:"currency"`
	BillingCycle    string    `json:"billingCycle" validate:"omitempty,oneof=monthly yearly one-time"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate" validate:"required"`
	AutoRenew       bool      `json:"autoRenew"`
	ContactEmail    string    `json:"contactEmail" validate:"omitempty,email"`
	Notes           string    `json:"notes"`
}

type updateHostingRequest struct {
	ClientName      *string    `json:"clientName"`
	WebsiteName     *string    `json:"websiteName"`
	WebsiteURL      *string    `json:"websiteUrl"`
	HostingProvider *string    `json:"hostingProvider"`
	PackageType     *string    `json:"packageType"`
	Cost            *float64   `json:"cost"`
	Currency        *string    `json:"currency"`
	BillingCycle    *string    `json:"billingCycle" validate:"omitempty,oneof=monthly yearly one-time"`
	StartDate       *time.Time `json:"startDate"`
	EndDate         *time.Time `json:"endDate"`
	AutoRenew       *bool      `json:"autoRenew"`
	ContactEmail    *string    `json:"contactEmail" validate:"omitempty,email"`
	Notes           *string    `json:"notes"`
}

// List returns all hosting subscriptions with status derived at call time.
//
// @Summary      List hosting subscriptions
// @Tags         hosting
// @Produce      json
// @Success      200  {object}  successResponse
// @Failure      403  {object}  errorResponse
// @Router       /hosting [get]
func (h *HostingHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	records, err := h.hostingService.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, records)
}

// Get returns one subscription with freshly derived status.
//
// @Summary      Get a hosting subscription
// @Tags         hosting
// @Produce      json
// @Param        id   path      string  true  "Subscription id"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  errorResponse
// @Router       /hosting/{id} [get]
func (h *HostingHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	record, err := h.hostingService.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, record)
}

// Create adds a hosting subscription.
//
// @Summary      Create a hosting subscription
// @Tags         hosting
// @Accept       json
// @Produce      json
// @Param        body  body      createHostingRequest  true  "Subscription fields"
// @Success      201   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Router       /hosting [post]
func (h *HostingHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createHostingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	record, err := h.hostingService.Create(c.Request().Context(), actor, ports.HostingInput{
		ClientName:      req.ClientName,
		WebsiteName:     req.WebsiteName,
		WebsiteURL:      req.WebsiteURL,
		HostingProvider: req.HostingProvider,
		PackageType:     req.PackageType,
		Cost:            req.Cost,
		Currency:        req.Currency,
		BillingCycle:    domain.BillingCycle(req.BillingCycle),
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		AutoRenew:       req.AutoRenew,
		ContactEmail:    req.ContactEmail,
		Notes:           req.Notes,
	})
	if err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("hosting", "create").Inc()
	return respond(c, http.StatusCreated, record)
}

// Update applies a partial merge to a subscription.
//
// @Summary      Update a hosting subscription
// @Tags         hosting
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Subscription id"
// @Param        body  body      updateHostingRequest  true  "Fields to change"
// @Success      200   {object}  successResponse
// @Failure      404   {object}  errorResponse
// @Router       /hosting/{id} [put]
func (h *HostingHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateHostingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	patch := ports.HostingPatch{
		ClientName:      req.ClientName,
		WebsiteName:     req.WebsiteName,
		WebsiteURL:      req.WebsiteURL,
		HostingProvider: req.HostingProvider,
		PackageType:     req.PackageType,
		Cost:            req.Cost,
		Currency:        req.Currency,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		AutoRenew:       req.AutoRenew,
		ContactEmail:    req.ContactEmail,
		Notes:           req.Notes,
	}
	if req.BillingCycle != nil {
		cycle := domain.BillingCycle(*req.BillingCycle)
		patch.BillingCycle = &cycle
	}

	record, err := h.hostingService.Update(c.Request().Context(), actor, c.Param("id"), patch)
	if err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("hosting", "update").Inc()
	return respond(c, http.StatusOK, record)
}

// Delete removes a subscription.
//
// @Summary      Delete a hosting subscription
// @Tags         hosting
// @Produce      json
// @Param        id   path      string  true  "Subscription id"
// @Success      200  {object}  successResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /hosting/{id} [delete]
func (h *HostingHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.hostingService.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("hosting", "delete").Inc()
	return respond(c, http.StatusOK, map[string]string{"message": "hosting service deleted"})
}
