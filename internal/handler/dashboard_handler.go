package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"petcare-service/internal/middleware"
	"petcare-service/internal/service"
	"petcare-service/pkg/logger"
)

// DashboardHandler exposes the role-specific landing view.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Get returns the dashboard matching the caller's role
func (h *DashboardHandler) Get(c echo.Context) error {
	log := logger.FromEcho(c)
	caller := middleware.CallerFromEcho(c)

	dash, err := h.dashboard.For(c.Request().Context(), caller)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, dash)
}
