package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"petcare-service/internal/service"
)

// respondError maps service error kinds onto HTTP statuses. Unrecognized
// errors are logged and become a generic 500 so storage details never
// leak to the client.
func respondError(c echo.Context, log *zap.Logger, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, service.ErrSchedulingConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "the selected time slot is already booked"})
	case errors.Is(err, service.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrEmailTaken):
		return c.JSON(http.StatusConflict, echo.Map{"error": "email is already registered"})
	case errors.Is(err, service.ErrPetInUse):
		return c.JSON(http.StatusConflict, echo.Map{"error": "pet has appointments, medical records or expenses and cannot be deleted"})
	default:
		log.Error("Unhandled service error", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
}

// idParam parses the :id route segment.
func idParam(c echo.Context) (uint, error) {
	var id uint
	if err := echo.PathParamsBinder(c).Uint("id", &id).BindError(); err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
