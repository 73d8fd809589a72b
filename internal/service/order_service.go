package service

import (
	"context"
	"time"

	"pos-service/internal/auth"
	"pos-service/internal/model"
	"pos-service/internal/pricing"
	"pos-service/pkg/notify"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrderLine is one requested line item of a new order.
type OrderLine struct {
	ProductID   uint  `json:"product_id"`
	Quantity    int   `json:"quantity"`
	PromotionID *uint `json:"promotion_id,omitempty"`
}

// CreateOrderRequest is the payload for creating an order.
type CreateOrderRequest struct {
	CustomerID    uint        `json:"customer_id"`
	Items         []OrderLine `json:"items"`
	PaymentMethod string      `json:"payment_method"`
}

// OrderService runs the atomic create-order workflow: stock check, pricing,
// inventory decrement, and order/item/payment persistence commit together or
// not at all.
type OrderService struct {
	db       *gorm.DB
	log      *zap.Logger
	notifier notify.Notifier
}

func NewOrderService(db *gorm.DB, log *zap.Logger, notifier notify.Notifier) *OrderService {
	return &OrderService{db: db, log: log, notifier: notifier}
}

// CreateOrder turns a cart of line items into a committed order for the
// employee's assigned store. On success the returned order is Completed,
// carries its items, and a matching payment row exists. On any failure no
// write survives.
func (s *OrderService) CreateOrder(ctx context.Context, claims auth.Claims, req CreateOrderRequest) (*model.Order, error) {
	if !claims.HasStore() {
		return nil, ErrNoAssignedStore
	}
	storeID := *claims.StoreID

	if len(req.Items) == 0 {
		return nil, &ValidationError{Reason: "order must contain at least one item"}
	}
	if req.PaymentMethod == "" {
		return nil, &ValidationError{Reason: "payment_method is required"}
	}
	for _, line := range req.Items {
		if line.Quantity <= 0 {
			return nil, &ValidationError{Reason: "item quantity must be positive"}
		}
	}

	var order *model.Order
	var changed []notify.StockEvent

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()

		products, promotions, err := fetchCatalog(tx, req.Items)
		if err != nil {
			return err
		}

		total := decimal.Zero
		items := make([]model.OrderItem, 0, len(req.Items))
		changed = changed[:0]

		for _, line := range req.Items {
			product, ok := products[line.ProductID]
			if !ok {
				return &UnknownProductError{ProductID: line.ProductID}
			}

			var inv model.Inventory
			result := tx.Where("product_id = ? AND store_id = ?", line.ProductID, storeID).First(&inv)
			if result.Error != nil {
				if result.Error == gorm.ErrRecordNotFound {
					return &NotStockedError{ProductName: product.Name, StoreID: storeID}
				}
				return result.Error
			}
			if inv.Quantity < line.Quantity {
				return &StockError{
					ProductName: product.Name,
					Requested:   line.Quantity,
					Available:   inv.Quantity,
				}
			}

			var promo *model.Promotion
			if line.PromotionID != nil {
				promo = promotions[*line.PromotionID]
			}
			unitPrice, discount := pricing.Evaluate(product, promo, now)

			total = total.Add(unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
			items = append(items, model.OrderItem{
				ProductID:      line.ProductID,
				Quantity:       line.Quantity,
				UnitPrice:      unitPrice,
				DiscountAmount: discount,
				PromotionID:    line.PromotionID,
			})

			if err := decreaseStock(tx, line.ProductID, storeID, line.Quantity); err != nil {
				return err
			}
			changed = append(changed, notify.StockEvent{
				StoreID:   storeID,
				ProductID: line.ProductID,
				Delta:     -line.Quantity,
				Reason:    "order",
				At:        now,
			})
		}

		order = &model.Order{
			CustomerID:  req.CustomerID,
			EmployeeID:  claims.EmployeeID,
			StoreID:     storeID,
			OrderDate:   now,
			TotalAmount: total,
			Status:      model.OrderStatusPending,
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		payment := model.Payment{
			OrderID:       order.ID,
			PaymentMethod: req.PaymentMethod,
			Amount:        total,
			PaymentDate:   now,
			Status:        model.PaymentStatusCompleted,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		if err := tx.Model(order).Update("status", model.OrderStatusCompleted).Error; err != nil {
			return err
		}
		order.Status = model.OrderStatusCompleted
		order.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order created",
		zap.Uint("order_id", order.ID),
		zap.Uint("store_id", storeID),
		zap.Uint("employee_id", claims.EmployeeID),
		zap.String("total_amount", order.TotalAmount.StringFixed(2)),
		zap.Int("item_count", len(order.Items)))

	publishStockEvents(s.log, s.notifier, changed)
	return order, nil
}

// fetchCatalog batch-fetches every referenced product and promotion in two
// queries, so each line item is priced against one consistent snapshot.
func fetchCatalog(tx *gorm.DB, lines []OrderLine) (map[uint]model.Product, map[uint]*model.Promotion, error) {
	productIDs := make([]uint, 0, len(lines))
	promoIDs := make([]uint, 0, len(lines))
	seenProducts := make(map[uint]bool, len(lines))
	seenPromos := make(map[uint]bool, len(lines))

	for _, line := range lines {
		if !seenProducts[line.ProductID] {
			seenProducts[line.ProductID] = true
			productIDs = append(productIDs, line.ProductID)
		}
		if line.PromotionID != nil && !seenPromos[*line.PromotionID] {
			seenPromos[*line.PromotionID] = true
			promoIDs = append(promoIDs, *line.PromotionID)
		}
	}

	var products []model.Product
	if err := tx.Where("id IN ?", productIDs).Find(&products).Error; err != nil {
		return nil, nil, err
	}
	productsByID := make(map[uint]model.Product, len(products))
	for _, p := range products {
		productsByID[p.ID] = p
	}

	promosByID := make(map[uint]*model.Promotion, len(promoIDs))
	if len(promoIDs) > 0 {
		var promos []model.Promotion
		if err := tx.Where("id IN ?", promoIDs).Find(&promos).Error; err != nil {
			return nil, nil, err
		}
		for i := range promos {
			promosByID[promos[i].ID] = &promos[i]
		}
	}

	return productsByID, promosByID, nil
}
