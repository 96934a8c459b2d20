package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"petcare-service/internal/middleware"
	"petcare-service/internal/service"
	"petcare-service/pkg/logger"
)

// PetHandler exposes pet CRUD.
type PetHandler struct {
	pets *service.PetService
}

func NewPetHandler(pets *service.PetService) *PetHandler {
	return &PetHandler{pets: pets}
}

type petRequest struct {
	OwnerID        uint   `json:"owner_id"`
	Name           string `json:"name"`
	Breed          string `json:"breed"`
	Age            int    `json:"age"`
	Gender         string `json:"gender"`
	MedicalHistory string `json:"medical_history"`
	Image          string `json:"image"`
}

func (r petRequest) toService() service.PetRequest {
	return service.PetRequest{
		OwnerID:        r.OwnerID,
		Name:           r.Name,
		Breed:          r.Breed,
		Age:            r.Age,
		Gender:         r.Gender,
		MedicalHistory: r.MedicalHistory,
		Image:          r.Image,
	}
}

// List returns the pets visible to the caller
func (h *PetHandler) List(c echo.Context) error {
	log := logger.FromEcho(c)
	caller := middleware.CallerFromEcho(c)

	pets, err := h.pets.List(c.Request().Context(), caller)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, pets)
}

// Get returns one pet
func (h *PetHandler) Get(c echo.Context) error {
	log := logger.FromEcho(c)
	caller := middleware.CallerFromEcho(c)

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid pet id"})
	}

	pet, err := h.pets.Get(c.Request().Context(), caller, id)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, pet)
}

// Create adds a pet
func (h *PetHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)
	caller := middleware.CallerFromEcho(c)

	var req petRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse pet request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	pet, err := h.pets.Create(c.Request().Context(), caller, req.toService())
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusCreated, pet)
}

// Update edits a pet
func (h *PetHandler) Update(c echo.Context) error {
	log := logger.FromEcho(c)
	caller := middleware.CallerFromEcho(c)

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid pet id"})
	}

	var req petRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	pet, err := h.pets.Update(c.Request().Context(), caller, id, req.toService())
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, pet)
}

// Delete removes a pet without dependent records
func (h *PetHandler) Delete(c echo.Context) error {
	log := logger.FromEcho(c)
	caller := middleware.CallerFromEcho(c)

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid pet id"})
	}

	if err := h.pets.Delete(c.Request().Context(), caller, id); err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "pet deleted"})
}
