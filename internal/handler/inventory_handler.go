package handler

import (
	"net/http"
	"strconv"

	"pos-service/internal/guard"
	"pos-service/internal/handler/response"
	"pos-service/internal/middleware"
	"pos-service/internal/model"
	"pos-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InventoryHandler exposes read access to the inventory ledger. Quantities
// are mutated only through the order and refund workflows.
type InventoryHandler struct {
	db *gorm.DB
}

func NewInventoryHandler(db *gorm.DB) *InventoryHandler {
	return &InventoryHandler{db: db}
}

// ListInventory handles GET /api/inventory. Privileged roles may list any
// store (optionally filtered with ?store_id=); everyone else sees only
// their assigned store.
func (h *InventoryHandler) ListInventory(c echo.Context) error {
	log := logger.FromContext(c)

	claims, ok := middleware.GetClaims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, response.Error("missing authorization token"))
	}

	query := h.db
	if storeParam := c.QueryParam("store_id"); storeParam != "" {
		storeID, err := strconv.ParseUint(storeParam, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, response.Error("invalid store_id"))
		}
		if !guard.CanAccessStore(claims, uint(storeID)) {
			return c.JSON(http.StatusForbidden, response.Error("Forbidden: you do not have access to this store"))
		}
		query = query.Where("store_id = ?", uint(storeID))
	} else if !claims.Role.IsPrivileged() {
		if !claims.HasStore() {
			return c.JSON(http.StatusForbidden, response.Error("Forbidden: no assigned store"))
		}
		query = query.Where("store_id = ?", *claims.StoreID)
	}

	var rows []model.Inventory
	if err := query.Order("id").Find(&rows).Error; err != nil {
		log.Error("Failed to fetch inventory", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, response.Error("Failed to fetch inventory"))
	}
	return c.JSON(http.StatusOK, response.OK(rows))
}
