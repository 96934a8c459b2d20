package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"petcare-service/internal/middleware"
	"petcare-service/internal/model"
	"petcare-service/internal/service"
	"petcare-service/pkg/logger"
	"petcare-service/prometheus"
)

// AppointmentHandler exposes booking and the status transitions.
type AppointmentHandler struct {
	scheduling *service.SchedulingService
}

func NewAppointmentHandler(scheduling *service.SchedulingService) *AppointmentHandler {
	return &AppointmentHandler{scheduling: scheduling}
}

// Book creates a Pending appointment
func (h *AppointmentHandler) Book(c echo.Context) error {
	log := logger.FromEcho(c)
	caller := middleware.CallerFromEcho(c)
	prometheus.BookingCounter.Inc()

	var req struct {
		PetID           uint      `json:"pet_id"`
		VetID           uint      `json:"vet_id"`
		AppointmentDate time.Time `json:"appointment_date"`
		Reason          string    `json:"reason"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse booking request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	appt, err := h.scheduling.Book(c.Request().Context(), caller, service.BookRequest{
		PetID:  req.PetID,
		VetID:  req.VetID,
		At:     req.AppointmentDate,
		Reason: req.Reason,
	})
	if err != nil {
		if errors.Is(err, service.ErrSchedulingConflict) {
			prometheus.SchedulingConflictCounter.Inc()
		}
		return respondError(c, log, err)
	}

	return c.JSON(http.StatusCreated, appt)
}

// List returns the appointments visible to the caller
func (h *AppointmentHandler) List(c echo.Context) error {
	log := logger.FromEcho(c)
	caller := middleware.CallerFromEcho(c)

	appts, err := h.scheduling.List(c.Request().Context(), caller)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, appts)
}

// Today returns the caller's Pending and Confirmed appointments for the
// current day
func (h *AppointmentHandler) Today(c echo.Context) error {
	log := logger.FromEcho(c)
	caller := middleware.CallerFromEcho(c)

	appts, err := h.scheduling.Today(c.Request().Context(), caller)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, appts)
}

// UpdateStatus drives one edge of the appointment state machine
func (h *AppointmentHandler) UpdateStatus(c echo.Context) error {
	log := logger.FromEcho(c)
	caller := middleware.CallerFromEcho(c)

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid appointment id"})
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	appt, err := h.scheduling.Transition(c.Request().Context(), caller, id, model.AppointmentStatus(req.Status))
	if err != nil {
		return respondError(c, log, err)
	}

	prometheus.TransitionCounter.WithLabelValues(string(appt.Status)).Inc()
	return c.JSON(http.StatusOK, appt)
}
