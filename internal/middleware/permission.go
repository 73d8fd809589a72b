package middleware

import (
	"net/http"

	"pos-service/internal/auth"
	"pos-service/internal/guard"
	"pos-service/internal/handler/response"
	"pos-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequirePermission returns a middleware enforcing that the authenticated
// claims carry every listed permission. It composes statically after
// AuthMiddleware: authenticate, then authorize, then the handler.
func RequirePermission(required ...auth.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			claims, ok := GetClaims(c)
			if !ok {
				log.Warn("Permission check without authenticated claims")
				return c.JSON(http.StatusUnauthorized, response.Error("missing authorization token"))
			}

			if !guard.HasPermissions(claims, required...) {
				log.Warn("Forbidden: insufficient permissions",
					zap.Uint("employee_id", claims.EmployeeID),
					zap.String("role", claims.Role.String()))
				return c.JSON(http.StatusForbidden, response.Error("Forbidden: insufficient permissions"))
			}

			return next(c)
		}
	}
}
