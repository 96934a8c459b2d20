package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"petcare-service/internal/middleware"
	"petcare-service/internal/service"
	"petcare-service/pkg/logger"
	"petcare-service/prometheus"
)

// MedicalHandler exposes vaccination and medication records, the per-pet
// medical history and the reminder feed.
type MedicalHandler struct {
	medical *service.MedicalService
}

func NewMedicalHandler(medical *service.MedicalService) *MedicalHandler {
	return &MedicalHandler{medical: medical}
}

// AddVaccination records a vaccine given by the calling vet
func (h *MedicalHandler) AddVaccination(c echo.Context) error {
	log := logger.FromEcho(c)
	caller := middleware.CallerFromEcho(c)

	var req struct {
		PetID       uint       `json:"pet_id"`
		VaccineName string     `json:"vaccine_name"`
		DateGiven   time.Time  `json:"date_given"`
		NextDueDate *time.Time `json:"next_due_date"`
		Notes       string     `json:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse vaccination request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	vac, err := h.medical.AddVaccination(c.Request().Context(), caller, service.VaccinationRequest{
		PetID:       req.PetID,
		VaccineName: req.VaccineName,
		DateGiven:   req.DateGiven,
		NextDueDate: req.NextDueDate,
		Notes:       req.Notes,
	})
	if err != nil {
		return respondError(c, log, err)
	}

	prometheus.MedicalRecordCounter.WithLabelValues("vaccination").Inc()
	return c.JSON(http.StatusCreated, vac)
}

// AddMedication records a prescription by the calling vet
func (h *MedicalHandler) AddMedication(c echo.Context) error {
	log := logger.FromEcho(c)
	caller := middleware.CallerFromEcho(c)

	var req struct {
		PetID        uint       `json:"pet_id"`
		MedicineName string     `json:"medicine_name"`
		Dosage       string     `json:"dosage"`
		StartDate    time.Time  `json:"start_date"`
		EndDate      *time.Time `json:"end_date"`
		Notes        string     `json:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse medication request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	med, err := h.medical.AddMedication(c.Request().Context(), caller, service.MedicationRequest{
		PetID:        req.PetID,
		MedicineName: req.MedicineName,
		Dosage:       req.Dosage,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Notes:        req.Notes,
	})
	if err != nil {
		return respondError(c, log, err)
	}

	prometheus.MedicalRecordCounter.WithLabelValues("medication").Inc()
	return c.JSON(http.StatusCreated, med)
}

// ListVaccinations returns vaccinations visible to the caller
func (h *MedicalHandler) ListVaccinations(c echo.Context) error {
	log := logger.FromEcho(c)
	caller := middleware.CallerFromEcho(c)

	rows, err := h.medical.ListVaccinations(c.Request().Context(), caller)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// ListMedications returns medications visible to the caller
func (h *MedicalHandler) ListMedications(c echo.Context) error {
	log := logger.FromEcho(c)
	caller := middleware.CallerFromEcho(c)

	rows, err := h.medical.ListMedications(c.Request().Context(), caller)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// PetHistory returns one pet with all its medical rows
func (h *MedicalHandler) PetHistory(c echo.Context) error {
	log := logger.FromEcho(c)
	caller := middleware.CallerFromEcho(c)

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid pet id"})
	}

	history, err := h.medical.PetMedicalHistory(c.Request().Context(), caller, id)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, history)
}

// Reminders returns upcoming vaccination and medication reminders
func (h *MedicalHandler) Reminders(c echo.Context) error {
	log := logger.FromEcho(c)
	caller := middleware.CallerFromEcho(c)

	reminders, err := h.medical.UpcomingReminders(c.Request().Context(), caller)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, reminders)
}
