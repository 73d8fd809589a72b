package handler

import (
	"errors"
	"net/http"

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

// RefundHandler exposes the refund endpoints.
type RefundHandler struct {
	db      *gorm.DB
	refunds *service.RefundService
}

func NewRefundHandler(db *gorm.DB, refunds *service.RefundService) *RefundHandler {
	return &RefundHandler{db: db, refunds: refunds}
}

// fullRefund is the POST /api/refunds response payload.
type fullRefund struct {
	Refund *model.Refund      `json:"refund"`
	Items  []model.RefundItem `json:"items"`
}

// CreateRefund handles POST /api/refunds
func (h *RefundHandler) CreateRefund(c echo.Context) error {
	log := logger.FromContext(c)

	claims, ok := middleware.GetClaims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, response.Error("missing authorization token"))
	}

	var req service.CreateRefundRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid refund payload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, response.Error("invalid request data"))
	}

	refund, items, err := h.refunds.CreateRefund(c.Request().Context(), claims, req)
	if err != nil {
		status, msg := statusFor(err)
		prometheus.RecordRefundOperation("rejected")
		log.Warn("Refund creation failed",
			zap.Uint("order_id", req.OrderID),
			zap.Uint("employee_id", claims.EmployeeID),
			zap.Int("status", status),
			zap.Error(err))
		return c.JSON(status, response.Error(msg))
	}

	prometheus.RecordRefundOperation("created")
	return c.JSON(http.StatusOK, response.OK(fullRefund{Refund: refund, Items: items}))
}

// ListRefunds handles GET /api/refunds: privileged roles see everything,
// store managers their store, everyone else is refused.
func (h *RefundHandler) ListRefunds(c echo.Context) error {
	log := logger.FromContext(c)

	claims, ok := middleware.GetClaims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, response.Error("missing authorization token"))
	}

	query := h.db
	switch {
	case claims.Role.IsPrivileged():
		// No scoping.
	case claims.HasStore():
		query = query.Where("store_id = ?", *claims.StoreID)
	default:
		return c.JSON(http.StatusForbidden, response.Error("Forbidden: no assigned store"))
	}

	var refunds []model.Refund
	if err := query.Order("id").Find(&refunds).Error; err != nil {
		log.Error("Failed to fetch refunds", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, response.Error("Failed to fetch refunds"))
	}
	return c.JSON(http.StatusOK, response.OK(refunds))
}

// GetRefund handles GET /api/refunds/:id
func (h *RefundHandler) GetRefund(c echo.Context) error {
	log := logger.FromContext(c)

	claims, ok := middleware.GetClaims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, response.Error("missing authorization token"))
	}

	var refund model.Refund
	if err := h.db.First(&refund, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, response.Error("Refund not found"))
		}
		log.Error("Failed to fetch refund", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, response.Error("Failed to fetch refund"))
	}

	if !guard.CanAccessStore(claims, refund.StoreID) {
		return c.JSON(http.StatusForbidden, response.Error("Forbidden: you do not have access to this refund"))
	}
	return c.JSON(http.StatusOK, response.OK(refund))
}
