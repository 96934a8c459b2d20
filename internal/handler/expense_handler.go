package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"petcare-service/internal/middleware"
	"petcare-service/internal/service"
	"petcare-service/pkg/logger"
)

// ExpenseHandler exposes owner expense tracking.
type ExpenseHandler struct {
	expenses *service.ExpenseService
}

func NewExpenseHandler(expenses *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

// Create records an expense against one of the caller's pets
func (h *ExpenseHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)
	caller := middleware.CallerFromEcho(c)

	var req struct {
		PetID    uint      `json:"pet_id"`
		Category string    `json:"category"`
		Amount   float64   `json:"amount"`
		SpentOn  time.Time `json:"spent_on"`
		Notes    string    `json:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse expense request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	exp, err := h.expenses.Create(c.Request().Context(), caller, service.ExpenseRequest{
		PetID:    req.PetID,
		Category: req.Category,
		Amount:   req.Amount,
		SpentOn:  req.SpentOn,
		Notes:    req.Notes,
	})
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusCreated, exp)
}

// List returns the expenses visible to the caller
func (h *ExpenseHandler) List(c echo.Context) error {
	log := logger.FromEcho(c)
	caller := middleware.CallerFromEcho(c)

	expenses, err := h.expenses.List(c.Request().Context(), caller)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, expenses)
}
