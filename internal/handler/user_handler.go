package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"petcare-service/internal/middleware"
	"petcare-service/internal/model"
	"petcare-service/internal/service"
	"petcare-service/pkg/logger"
)

// UserHandler exposes admin user management and the role-scoped user
// search used by booking and pet forms.
type UserHandler struct {
	users *service.UserAdminService
}

func NewUserHandler(users *service.UserAdminService) *UserHandler {
	return &UserHandler{users: users}
}

// List returns every active account with its role profile
func (h *UserHandler) List(c echo.Context) error {
	log := logger.FromEcho(c)
	caller := middleware.CallerFromEcho(c)

	accounts, err := h.users.List(c.Request().Context(), caller)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, accounts)
}

// Create adds a user of any role
func (h *UserHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)
	caller := middleware.CallerFromEcho(c)

	var req struct {
		FullName       string `json:"full_name"`
		Email          string `json:"email"`
		Password       string `json:"password"`
		Role           string `json:"role"`
		Status         string `json:"status"`
		Phone          string `json:"phone"`
		Address        string `json:"address"`
		Specialization string `json:"specialization"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse create user request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	user, err := h.users.Create(c.Request().Context(), caller, service.CreateUserRequest{
		FullName:       req.FullName,
		Email:          req.Email,
		Password:       req.Password,
		Role:           model.UserRole(req.Role),
		Status:         model.UserStatus(req.Status),
		Phone:          req.Phone,
		Address:        req.Address,
		Specialization: req.Specialization,
	})
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "user created",
		"user_id": user.ID,
	})
}

// Update edits a user and its role profile
func (h *UserHandler) Update(c echo.Context) error {
	log := logger.FromEcho(c)
	caller := middleware.CallerFromEcho(c)

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	var req struct {
		FullName       string `json:"full_name"`
		Role           string `json:"role"`
		Status         string `json:"status"`
		Phone          string `json:"phone"`
		Address        string `json:"address"`
		Specialization string `json:"specialization"`
		Password       string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	err = h.users.Update(c.Request().Context(), caller, id, service.UpdateUserRequest{
		FullName:       req.FullName,
		Role:           model.UserRole(req.Role),
		Status:         model.UserStatus(req.Status),
		Phone:          req.Phone,
		Address:        req.Address,
		Specialization: req.Specialization,
		Password:       req.Password,
	})
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user updated"})
}

// Delete soft-deletes a user
func (h *UserHandler) Delete(c echo.Context) error {
	log := logger.FromEcho(c)
	caller := middleware.CallerFromEcho(c)

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	if err := h.users.SoftDelete(c.Request().Context(), caller, id); err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user deleted"})
}

// Search finds active users of a role by name
func (h *UserHandler) Search(c echo.Context) error {
	log := logger.FromEcho(c)
	caller := middleware.CallerFromEcho(c)

	role := model.UserRole(c.QueryParam("role"))
	query := c.QueryParam("q")
	if role == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "role is required"})
	}

	accounts, err := h.users.Search(c.Request().Context(), caller, role, query)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, accounts)
}
