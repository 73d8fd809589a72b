package handler

import (
	"errors"
	"net/http"

	"pos-service/internal/auth"
	"pos-service/internal/guard"
	"pos-service/internal/handler/response"
	"pos-service/internal/middleware"
	"pos-service/internal/model"
	"pos-service/internal/service"
	"pos-service/pkg/logger"
	"pos-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrderHandler exposes the order endpoints.
type OrderHandler struct {
	db     *gorm.DB
	orders *service.OrderService
}

func NewOrderHandler(db *gorm.DB, orders *service.OrderService) *OrderHandler {
	return &OrderHandler{db: db, orders: orders}
}

// CreateOrder handles POST /api/orders
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	log := logger.FromContext(c)

	claims, ok := middleware.GetClaims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, response.Error("missing authorization token"))
	}

	var req service.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid order payload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, response.Error("invalid request data"))
	}

	order, err := h.orders.CreateOrder(c.Request().Context(), claims, req)
	if err != nil {
		status, msg := statusFor(err)
		if errors.Is(err, service.ErrInsufficientStock) {
			prometheus.StockRejectionsCounter.Inc()
		}
		prometheus.RecordOrderOperation("rejected")
		log.Warn("Order creation failed",
			zap.Uint("employee_id", claims.EmployeeID),
			zap.Int("status", status),
			zap.Error(err))
		return c.JSON(status, response.Error(msg))
	}

	prometheus.RecordOrderOperation("created")
	return c.JSON(http.StatusOK, response.OK(order))
}

// ListOrders handles GET /api/orders with role-based scoping: privileged
// roles see everything, store roles their store, cashiers their own orders.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	log := logger.FromContext(c)

	claims, ok := middleware.GetClaims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, response.Error("missing authorization token"))
	}

	var orders []model.Order
	query := h.db
	switch {
	case claims.Role.IsPrivileged():
		// No scoping.
	case claims.Role == auth.RoleCashier:
		query = query.Where("employee_id = ?", claims.EmployeeID)
	case claims.HasStore():
		query = query.Where("store_id = ?", *claims.StoreID)
	default:
		return c.JSON(http.StatusForbidden, response.Error("Forbidden: no assigned store"))
	}

	if err := query.Order("id").Find(&orders).Error; err != nil {
		log.Error("Failed to fetch orders", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, response.Error("Failed to fetch orders"))
	}
	return c.JSON(http.StatusOK, response.OK(orders))
}

// GetOrder handles GET /api/orders/:id
func (h *OrderHandler) GetOrder(c echo.Context) error {
	log := logger.FromContext(c)

	claims, ok := middleware.GetClaims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, response.Error("missing authorization token"))
	}

	var order model.Order
	if err := h.db.Preload("Items").First(&order, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, response.Error("Order not found"))
		}
		log.Error("Failed to fetch order", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, response.Error("Failed to fetch order"))
	}

	if !guard.CanAccessOrderResource(claims, order.StoreID, order.EmployeeID) {
		return c.JSON(http.StatusForbidden, response.Error("Forbidden: you do not have access to this order"))
	}
	return c.JSON(http.StatusOK, response.OK(order))
}
