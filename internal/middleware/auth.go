package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"petcare-service/internal/model"
	"petcare-service/internal/service"
	"petcare-service/pkg/jwtutil"
	"petcare-service/pkg/logger"
	"petcare-service/prometheus"
)

const callerKey = "caller"

// JWTAuthMiddleware validates the bearer token, re-checks the account
// against the database and attaches the resolved service.Caller to the
// request context. Tokens of inactive or deleted accounts are rejected
// even before they expire.
func JWTAuthMiddleware(jwtUtil *jwtutil.JWTUtil, users service.UserStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				log.Warn("Missing authorization header")
				prometheus.RecordAuthError("missing_header")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Missing authorization header"})
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				log.Warn("Invalid authorization header format")
				prometheus.RecordAuthError("bad_header")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid authorization header format"})
			}

			claims, err := jwtUtil.ValidateToken(parts[1])
			if err != nil {
				log.Warn("Invalid or expired token", zap.Error(err))
				prometheus.RecordAuthError("invalid_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired token"})
			}

			// GetByID only returns active users, so soft-deleted and
			// deactivated accounts drop out here.
			user, err := users.GetByID(c.Request().Context(), claims.UserID)
			if err != nil {
				log.Warn("Token for unavailable account", zap.Uint("user_id", claims.UserID))
				prometheus.RecordAuthError("inactive_account")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Account is not active"})
			}

			caller := service.Caller{UserID: user.ID, Role: user.Role}
			switch user.Role {
			case model.RolePetOwner:
				owner, err := users.OwnerByUserID(c.Request().Context(), user.ID)
				if err != nil {
					log.Error("Owner profile missing", zap.Uint("user_id", user.ID), zap.Error(err))
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Account profile is incomplete"})
				}
				caller.OwnerID = owner.ID
			case model.RoleVeterinarian:
				vet, err := users.VetByUserID(c.Request().Context(), user.ID)
				if err != nil {
					log.Error("Vet profile missing", zap.Uint("user_id", user.ID), zap.Error(err))
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Account profile is incomplete"})
				}
				caller.VetID = vet.ID
			}

			c.Set(callerKey, caller)
			log.Debug("JWT token validated successfully",
				zap.Uint("user_id", user.ID),
				zap.String("role", string(user.Role)))

			return next(c)
		}
	}
}

// CallerFromEcho returns the caller stored by JWTAuthMiddleware.
func CallerFromEcho(c echo.Context) service.Caller {
	if caller, ok := c.Get(callerKey).(service.Caller); ok {
		return caller
	}
	return service.Caller{}
}
