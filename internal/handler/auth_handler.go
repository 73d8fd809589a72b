package handler

import (
	"net/http"
	"time"

	"pos-service/internal/auth"
	"pos-service/internal/handler/response"
	"pos-service/internal/model"
	"pos-service/pkg/jwtutil"
	"pos-service/pkg/logger"
	"pos-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler issues tokens to employees.
type AuthHandler struct {
	db *gorm.DB
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{db: db}
}

// Login handles POST /auth/login: verifies the employee's credentials and
// issues a token carrying their role, assigned store, and permission set.
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.AuthAttemptsCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Warn("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, response.Error("invalid request"))
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var employee model.Employee
	if err := h.db.Where("email = ?", req.Email).First(&employee).Error; err != nil {
		log.Warn("Employee not found", zap.String("email", req.Email))
		prometheus.RecordAuthError("employee_not_found")
		return c.JSON(http.StatusUnauthorized, response.Error("invalid credentials"))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.Password), []byte(req.Password)); err != nil {
		log.Warn("Invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, response.Error("invalid credentials"))
	}

	permissions := auth.DefaultPermissions(employee.Role)
	token, err := jwtutil.GenerateToken(
		employee.ID,
		employee.Email,
		employee.Role.String(),
		employee.StoreID,
		permissions.Names(),
	)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, response.Error("token error"))
	}

	log.Info("Employee logged in",
		zap.String("email", employee.Email),
		zap.String("role", employee.Role.String()))

	return c.JSON(http.StatusOK, response.OK(echo.Map{
		"token": token,
		"employee": echo.Map{
			"id":       employee.ID,
			"email":    employee.Email,
			"role":     employee.Role,
			"store_id": employee.StoreID,
		},
	}))
}
