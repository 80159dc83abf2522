package handler

import (
	"github.com/labstack/echo/v4"
)

// successResponse is the canonical envelope for all successful responses.
type successResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// respond writes the success envelope around data with the given status.
func respond(c echo.Context, status int, data any) error {
	return c.JSON(status, successResponse{Success: true, Data: data})
}
