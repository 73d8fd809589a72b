package middleware

import (
	"net/http"
	"strings"

	"pos-service/internal/auth"
	"pos-service/internal/handler/response"
	"pos-service/pkg/jwtutil"
	"pos-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const claimsContextKey = "claims"

// AuthMiddleware validates the bearer token and resolves it into the
// request's authorization claims. A missing, malformed or expired token is
// rejected here with 401, before any permission evaluation runs.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		// Get the Authorization header
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Warn("Missing Authorization header")
			return c.JSON(http.StatusUnauthorized, response.Error("missing authorization token"))
		}

		// Check if it's a Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Warn("Invalid Authorization header format")
			return c.JSON(http.StatusUnauthorized, response.Error("invalid authorization format, expected Bearer token"))
		}

		// Validate the token
		tokenClaims, err := jwtutil.ValidateToken(parts[1])
		if err != nil {
			log.Warn("Invalid or expired token", zap.Error(err))
			return c.JSON(http.StatusUnauthorized, response.Error("invalid or expired token"))
		}

		role, ok := auth.ParseRole(tokenClaims.Role)
		if !ok {
			log.Warn("Token carries unknown role", zap.String("role", tokenClaims.Role))
			return c.JSON(http.StatusUnauthorized, response.Error("invalid or expired token"))
		}

		claims := auth.Claims{
			EmployeeID:  tokenClaims.EmployeeID,
			Email:       tokenClaims.Email,
			Role:        role,
			StoreID:     tokenClaims.StoreID,
			Permissions: auth.NewPermissionSet(tokenClaims.Permissions),
		}
		c.Set(claimsContextKey, claims)

		log.Debug("Request authenticated",
			zap.Uint("employee_id", claims.EmployeeID),
			zap.String("role", claims.Role.String()))

		return next(c)
	}
}

// GetClaims retrieves the resolved claims from the context. ok is false when
// the authentication middleware did not run.
func GetClaims(c echo.Context) (auth.Claims, bool) {
	claims, ok := c.Get(claimsContextKey).(auth.Claims)
	return claims, ok
}
