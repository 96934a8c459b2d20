package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"petcare-service/internal/middleware"
	"petcare-service/internal/model"
	"petcare-service/internal/service"
	"petcare-service/pkg/jwtutil"
	"petcare-service/pkg/logger"
	"petcare-service/prometheus"
)

// AuthHandler exposes registration, login and account self-service.
type AuthHandler struct {
	auth    *service.AuthService
	jwtUtil *jwtutil.JWTUtil
}

func NewAuthHandler(auth *service.AuthService, jwtUtil *jwtutil.JWTUtil) *AuthHandler {
	return &AuthHandler{auth: auth, jwtUtil: jwtUtil}
}

// Register handles self-registration of owners and veterinarians
func (h *AuthHandler) Register(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RegisterCounter.Inc()

	var req struct {
		FullName       string `json:"full_name"`
		Email          string `json:"email"`
		Password       string `json:"password"`
		Role           string `json:"role"`
		Phone          string `json:"phone"`
		Address        string `json:"address"`
		Specialization string `json:"specialization"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse register request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	user, err := h.auth.Register(c.Request().Context(), service.RegisterRequest{
		FullName:       req.FullName,
		Email:          req.Email,
		Password:       req.Password,
		Role:           model.UserRole(req.Role),
		Phone:          req.Phone,
		Address:        req.Address,
		Specialization: req.Specialization,
	})
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "registration successful",
		"user_id": user.ID,
	})
}

// Login handles credential checks and token issuing
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	user, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		log.Warn("Login failed", zap.String("email", req.Email))
		prometheus.RecordAuthError("login_failure")
		return respondError(c, log, err)
	}

	token, err := h.jwtUtil.GenerateToken(user.Email, user.ID, string(user.Role))
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	log.Info("User logged in",
		zap.Uint("user_id", user.ID),
		zap.String("role", string(user.Role)))

	return c.JSON(http.StatusOK, echo.Map{
		"token":     token,
		"user_id":   user.ID,
		"full_name": user.FullName,
		"role":      user.Role,
	})
}

// Profile returns the caller's account merged with its role profile
func (h *AuthHandler) Profile(c echo.Context) error {
	log := logger.FromEcho(c)
	caller := middleware.CallerFromEcho(c)

	account, err := h.auth.Profile(c.Request().Context(), caller)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, account)
}

// UpdateProfile edits the caller's name and contact details
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	log := logger.FromEcho(c)
	caller := middleware.CallerFromEcho(c)

	var req struct {
		FullName       string `json:"full_name"`
		Phone          string `json:"phone"`
		Address        string `json:"address"`
		Specialization string `json:"specialization"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	err := h.auth.UpdateProfile(c.Request().Context(), caller, service.UpdateProfileRequest{
		FullName:       req.FullName,
		Phone:          req.Phone,
		Address:        req.Address,
		Specialization: req.Specialization,
	})
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "profile updated"})
}

// ChangePassword verifies the current password and stores a new one
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	log := logger.FromEcho(c)
	caller := middleware.CallerFromEcho(c)

	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if err := h.auth.ChangePassword(c.Request().Context(), caller, req.CurrentPassword, req.NewPassword); err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "password changed"})
}

// DeleteAccount soft-deletes the caller's own account
func (h *AuthHandler) DeleteAccount(c echo.Context) error {
	log := logger.FromEcho(c)
	caller := middleware.CallerFromEcho(c)

	if err := h.auth.DeleteAccount(c.Request().Context(), caller); err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "account deleted"})
}
