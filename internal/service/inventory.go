package service

import (
	"time"

	"pos-service/internal/model"

	"gorm.io/gorm"
)

// decreaseStock atomically decrements one (product, store) inventory row
// inside the caller's transaction. The WHERE clause re-validates the floor
// at write time: a concurrent order that drained the stock between the
// availability check and this statement makes the update match zero rows,
// failing the transaction instead of over-selling.
func decreaseStock(tx *gorm.DB, productID, storeID uint, qty int) error {
	res := tx.Model(&model.Inventory{}).
		Where("product_id = ? AND store_id = ? AND quantity >= ?", productID, storeID, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

// increaseStock atomically increments one (product, store) inventory row and
// stamps the restock time, inside the caller's transaction.
func increaseStock(tx *gorm.DB, productID, storeID uint, qty int, at time.Time) error {
	res := tx.Model(&model.Inventory{}).
		Where("product_id = ? AND store_id = ?", productID, storeID).
		Updates(map[string]interface{}{
			"quantity":       gorm.Expr("quantity + ?", qty),
			"last_restocked": at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
