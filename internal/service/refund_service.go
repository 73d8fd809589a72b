package service

import (
	"context"
	"time"

	"pos-service/internal/auth"
	"pos-service/internal/guard"
	"pos-service/internal/model"
	"pos-service/pkg/notify"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RefundLine is one requested refund against an original order item.
type RefundLine struct {
	OrderItemID uint `json:"order_item_id"`
	Quantity    int  `json:"quantity"`
}

// CreateRefundRequest is the payload for creating a refund.
type CreateRefundRequest struct {
	OrderID uint         `json:"order_id"`
	Reason  string       `json:"reason"`
	Items   []RefundLine `json:"items"`
}

// RefundService runs the atomic refund workflow: validate against the
// original order, restock inventory, recompute the order status, and write
// the negative payment ledger entry, all in one transaction.
type RefundService struct {
	db       *gorm.DB
	log      *zap.Logger
	notifier notify.Notifier
}

func NewRefundService(db *gorm.DB, log *zap.Logger, notifier notify.Notifier) *RefundService {
	return &RefundService{db: db, log: log, notifier: notifier}
}

// refundedQuantity is the scan target for the prior-refunds aggregate.
type refundedQuantity struct {
	OrderItemID uint
	Qty         int
}

// CreateRefund reverses part or all of an order. Each refund line is bounded
// by the quantity still refundable on its order item, counting every earlier
// refund, so repeated partial refunds can never jointly exceed the purchase.
func (s *RefundService) CreateRefund(ctx context.Context, claims auth.Claims, req CreateRefundRequest) (*model.Refund, []model.RefundItem, error) {
	if len(req.Items) == 0 {
		return nil, nil, &ValidationError{Reason: "refund must contain at least one item"}
	}
	for _, line := range req.Items {
		if line.Quantity <= 0 {
			return nil, nil, &ValidationError{Reason: "refund quantity must be positive"}
		}
	}

	var refund *model.Refund
	var refundItems []model.RefundItem
	var changed []notify.StockEvent

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		changed = changed[:0]

		var order model.Order
		if err := tx.First(&order, req.OrderID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrOrderNotFound
			}
			return err
		}

		if !guard.CanAccessOrderResource(claims, order.StoreID, order.EmployeeID) {
			return ErrForbidden
		}

		var originalItems []model.OrderItem
		if err := tx.Where("order_id = ?", order.ID).Find(&originalItems).Error; err != nil {
			return err
		}
		itemsByID := make(map[uint]model.OrderItem, len(originalItems))
		totalOriginalQty := 0
		for _, item := range originalItems {
			itemsByID[item.ID] = item
			totalOriginalQty += item.Quantity
		}

		// Quantities already refunded by earlier refunds on this order.
		var prior []refundedQuantity
		if err := tx.Model(&model.RefundItem{}).
			Select("refund_items.order_item_id AS order_item_id, COALESCE(SUM(refund_items.quantity), 0) AS qty").
			Joins("JOIN refunds ON refunds.id = refund_items.refund_id").
			Where("refunds.order_id = ?", order.ID).
			Group("refund_items.order_item_id").
			Scan(&prior).Error; err != nil {
			return err
		}
		priorByItem := make(map[uint]int, len(prior))
		priorTotal := 0
		for _, p := range prior {
			priorByItem[p.OrderItemID] = p.Qty
			priorTotal += p.Qty
		}

		totalRefundAmount := decimal.Zero
		refundQty := 0
		refundItems = make([]model.RefundItem, 0, len(req.Items))

		for _, line := range req.Items {
			original, ok := itemsByID[line.OrderItemID]
			if !ok {
				return &UnknownOrderItemError{OrderItemID: line.OrderItemID}
			}
			remaining := original.Quantity - priorByItem[line.OrderItemID]
			if line.Quantity > remaining {
				return &RefundQuantityError{
					OrderItemID: line.OrderItemID,
					Requested:   line.Quantity,
					Remaining:   remaining,
				}
			}
			// Guard against the same item appearing twice in one payload.
			priorByItem[line.OrderItemID] += line.Quantity

			amount := original.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
			totalRefundAmount = totalRefundAmount.Add(amount)
			refundQty += line.Quantity

			refundItems = append(refundItems, model.RefundItem{
				OrderItemID: line.OrderItemID,
				ProductID:   original.ProductID,
				Quantity:    line.Quantity,
				Amount:      amount,
			})
		}

		refund = &model.Refund{
			OrderID:     order.ID,
			EmployeeID:  claims.EmployeeID,
			StoreID:     order.StoreID,
			Reason:      req.Reason,
			TotalAmount: totalRefundAmount,
		}
		if err := tx.Create(refund).Error; err != nil {
			return err
		}
		for i := range refundItems {
			refundItems[i].RefundID = refund.ID
		}
		if err := tx.Create(&refundItems).Error; err != nil {
			return err
		}

		for _, item := range refundItems {
			if err := increaseStock(tx, item.ProductID, order.StoreID, item.Quantity, now); err != nil {
				return err
			}
			changed = append(changed, notify.StockEvent{
				StoreID:   order.StoreID,
				ProductID: item.ProductID,
				Delta:     item.Quantity,
				Reason:    "refund",
				At:        now,
			})
		}

		newStatus := model.OrderStatusPartiallyRefunded
		if priorTotal+refundQty >= totalOriginalQty {
			newStatus = model.OrderStatusRefunded
		}
		if err := tx.Model(&order).Update("status", newStatus).Error; err != nil {
			return err
		}

		payment := model.Payment{
			OrderID:       order.ID,
			PaymentMethod: model.PaymentMethodRefund,
			Amount:        totalRefundAmount.Neg(),
			PaymentDate:   now,
			Status:        model.PaymentStatusCompleted,
		}
		return tx.Create(&payment).Error
	})
	if err != nil {
		return nil, nil, err
	}

	s.log.Info("refund created",
		zap.Uint("refund_id", refund.ID),
		zap.Uint("order_id", refund.OrderID),
		zap.Uint("employee_id", claims.EmployeeID),
		zap.String("total_amount", refund.TotalAmount.StringFixed(2)),
		zap.Int("item_count", len(refundItems)))

	publishStockEvents(s.log, s.notifier, changed)
	return refund, refundItems, nil
}
