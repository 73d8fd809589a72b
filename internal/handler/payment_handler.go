package handler

import (
	"net/http"

	"pos-service/internal/auth"
	"pos-service/internal/handler/response"
	"pos-service/internal/middleware"
	"pos-service/internal/model"
	"pos-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PaymentHandler exposes the payment ledger read endpoints. The ledger is
// append-only; rows are written exclusively by the order and refund
// workflows.
type PaymentHandler struct {
	db *gorm.DB
}

func NewPaymentHandler(db *gorm.DB) *PaymentHandler {
	return &PaymentHandler{db: db}
}

// ListPayments handles GET /api/payments with the same scoping as orders:
// privileged roles see everything, store roles their store's payments,
// cashiers the payments of their own orders.
func (h *PaymentHandler) ListPayments(c echo.Context) error {
	log := logger.FromContext(c)

	claims, ok := middleware.GetClaims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, response.Error("missing authorization token"))
	}

	query := h.db.Model(&model.Payment{})
	switch {
	case claims.Role.IsPrivileged():
		// No scoping.
	case claims.Role == auth.RoleCashier:
		query = query.
			Joins("JOIN orders ON orders.id = payments.order_id").
			Where("orders.employee_id = ?", claims.EmployeeID)
	case claims.HasStore():
		query = query.
			Joins("JOIN orders ON orders.id = payments.order_id").
			Where("orders.store_id = ?", *claims.StoreID)
	default:
		return c.JSON(http.StatusForbidden, response.Error("Forbidden: no assigned store"))
	}

	var payments []model.Payment
	if err := query.Order("payments.id").Find(&payments).Error; err != nil {
		log.Error("Failed to fetch payments", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, response.Error("Failed to fetch payments"))
	}
	return c.JSON(http.StatusOK, response.OK(payments))
}
