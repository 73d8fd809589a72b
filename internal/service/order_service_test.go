package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"pos-service/internal/auth"
	"pos-service/internal/model"
	"pos-service/pkg/notify"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func TestCreateOrderHappyPath(t *testing.T) {
	db := newTestDB(t)
	notifier := newCaptureNotifier()
	svc := NewOrderService(db, zap.NewNop(), notifier)

	store := seedStore(t, db)
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "espresso beans", "10.00")
	seedInventory(t, db, product.ID, store.ID, 10)

	claims := testClaims(auth.RoleCashier, 1, storeIDRef(store.ID))
	order, err := svc.CreateOrder(context.Background(), claims, CreateOrderRequest{
		CustomerID:    customer.ID,
		PaymentMethod: "CASH",
		Items:         []OrderLine{{ProductID: product.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if order.Status != model.OrderStatusCompleted {
		t.Errorf("order status = %q, want %q", order.Status, model.OrderStatusCompleted)
	}
	assertDecimal(t, order.TotalAmount, "20.00", "order total")
	if order.StoreID != store.ID || order.EmployeeID != claims.EmployeeID {
		t.Errorf("order scoped to store %d employee %d, want %d/%d",
			order.StoreID, order.EmployeeID, store.ID, claims.EmployeeID)
	}
	if len(order.Items) != 1 {
		t.Fatalf("order has %d items, want 1", len(order.Items))
	}
	assertDecimal(t, order.Items[0].UnitPrice, "10.00", "item unit price")

	if got := stockAt(t, db, product.ID, store.ID); got != 8 {
		t.Errorf("inventory after order = %d, want 8", got)
	}

	var payment model.Payment
	if err := db.Where("order_id = ?", order.ID).First(&payment).Error; err != nil {
		t.Fatalf("read payment: %v", err)
	}
	assertDecimal(t, payment.Amount, "20.00", "payment amount")
	if payment.PaymentMethod != "CASH" || payment.Status != model.PaymentStatusCompleted {
		t.Errorf("payment = %q/%q, want CASH/Completed", payment.PaymentMethod, payment.Status)
	}

	events := notifier.wait(t)
	if len(events) != 1 {
		t.Fatalf("published %d stock events, want 1", len(events))
	}
	if events[0].ProductID != product.ID || events[0].Delta != -2 || events[0].Reason != "order" {
		t.Errorf("stock event = %+v, want product %d delta -2 reason order", events[0], product.ID)
	}
}

func TestCreateOrderAppliesPromotion(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db, zap.NewNop(), notify.NopNotifier{})

	store := seedStore(t, db)
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "grinder", "50.00")
	seedInventory(t, db, product.ID, store.ID, 5)

	promo := model.Promotion{
		Name:          "summer sale",
		PromotionType: model.PromotionTypePercentage,
		Value:         decimal.RequireFromString("20"),
		StartDate:     time.Now().UTC().Add(-time.Hour),
		EndDate:       time.Now().UTC().Add(time.Hour),
		IsActive:      true,
	}
	if err := db.Create(&promo).Error; err != nil {
		t.Fatalf("seed promotion: %v", err)
	}

	claims := testClaims(auth.RoleCashier, 1, storeIDRef(store.ID))
	order, err := svc.CreateOrder(context.Background(), claims, CreateOrderRequest{
		CustomerID:    customer.ID,
		PaymentMethod: "CARD",
		Items:         []OrderLine{{ProductID: product.ID, Quantity: 1, PromotionID: &promo.ID}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	assertDecimal(t, order.TotalAmount, "40.00", "discounted total")
	assertDecimal(t, order.Items[0].UnitPrice, "40.00", "discounted unit price")
	assertDecimal(t, order.Items[0].DiscountAmount, "10.00", "item discount")
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db, zap.NewNop(), notify.NopNotifier{})

	store := seedStore(t, db)
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "milk frother", "15.00")
	seedInventory(t, db, product.ID, store.ID, 3)

	claims := testClaims(auth.RoleCashier, 1, storeIDRef(store.ID))
	_, err := svc.CreateOrder(context.Background(), claims, CreateOrderRequest{
		CustomerID:    customer.ID,
		PaymentMethod: "CASH",
		Items:         []OrderLine{{ProductID: product.ID, Quantity: 5}},
	})

	var stockErr *StockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("CreateOrder error = %v, want *StockError", err)
	}
	if stockErr.Requested != 5 || stockErr.Available != 3 {
		t.Errorf("stock error counts = %d/%d, want 5/3", stockErr.Requested, stockErr.Available)
	}
	if !errors.Is(err, ErrInsufficientStock) {
		t.Error("stock error should unwrap to ErrInsufficientStock")
	}

	if got := stockAt(t, db, product.ID, store.ID); got != 3 {
		t.Errorf("inventory after rejection = %d, want 3", got)
	}
	if n := countRows(t, db, &model.Order{}); n != 0 {
		t.Errorf("rejected order left %d order row(s)", n)
	}
}

func TestCreateOrderRollsBackOnLateFailure(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db, zap.NewNop(), notify.NopNotifier{})

	store := seedStore(t, db)
	customer := seedCustomer(t, db)
	plenty := seedProduct(t, db, "filters", "5.00")
	scarce := seedProduct(t, db, "kettle", "80.00")
	seedInventory(t, db, plenty.ID, store.ID, 10)
	seedInventory(t, db, scarce.ID, store.ID, 1)

	claims := testClaims(auth.RoleCashier, 1, storeIDRef(store.ID))
	_, err := svc.CreateOrder(context.Background(), claims, CreateOrderRequest{
		CustomerID:    customer.ID,
		PaymentMethod: "CASH",
		Items: []OrderLine{
			{ProductID: plenty.ID, Quantity: 4},
			{ProductID: scarce.ID, Quantity: 2},
		},
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("CreateOrder error = %v, want insufficient stock", err)
	}

	// The first line was decremented inside the transaction; the failure on
	// the second line must undo it.
	if got := stockAt(t, db, plenty.ID, store.ID); got != 10 {
		t.Errorf("first product inventory after rollback = %d, want 10", got)
	}
	if got := stockAt(t, db, scarce.ID, store.ID); got != 1 {
		t.Errorf("second product inventory after rollback = %d, want 1", got)
	}
	if n := countRows(t, db, &model.Payment{}); n != 0 {
		t.Errorf("rolled-back order left %d payment row(s)", n)
	}
	if n := countRows(t, db, &model.OrderItem{}); n != 0 {
		t.Errorf("rolled-back order left %d item row(s)", n)
	}
}

func TestCreateOrderTotalMatchesItems(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db, zap.NewNop(), notify.NopNotifier{})

	store := seedStore(t, db)
	customer := seedCustomer(t, db)
	a := seedProduct(t, db, "mug", "7.50")
	b := seedProduct(t, db, "spoon", "2.25")
	seedInventory(t, db, a.ID, store.ID, 10)
	seedInventory(t, db, b.ID, store.ID, 10)

	claims := testClaims(auth.RoleStoreManager, 2, storeIDRef(store.ID))
	order, err := svc.CreateOrder(context.Background(), claims, CreateOrderRequest{
		CustomerID:    customer.ID,
		PaymentMethod: "CARD",
		Items: []OrderLine{
			{ProductID: a.ID, Quantity: 3},
			{ProductID: b.ID, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	sum := decimal.Zero
	for _, item := range order.Items {
		sum = sum.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	if !order.TotalAmount.Equal(sum) {
		t.Errorf("order total %s does not equal item sum %s", order.TotalAmount, sum)
	}
	assertDecimal(t, order.TotalAmount, "27.00", "order total")
}

func TestCreateOrderValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db, zap.NewNop(), notify.NopNotifier{})

	store := seedStore(t, db)
	product := seedProduct(t, db, "tamper", "25.00")
	seedInventory(t, db, product.ID, store.ID, 5)
	claims := testClaims(auth.RoleCashier, 1, storeIDRef(store.ID))

	tests := []struct {
		name string
		req  CreateOrderRequest
	}{
		{"no items", CreateOrderRequest{CustomerID: 1, PaymentMethod: "CASH"}},
		{"zero quantity", CreateOrderRequest{CustomerID: 1, PaymentMethod: "CASH",
			Items: []OrderLine{{ProductID: product.ID, Quantity: 0}}}},
		{"negative quantity", CreateOrderRequest{CustomerID: 1, PaymentMethod: "CASH",
			Items: []OrderLine{{ProductID: product.ID, Quantity: -1}}}},
		{"missing payment method", CreateOrderRequest{CustomerID: 1,
			Items: []OrderLine{{ProductID: product.ID, Quantity: 1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateOrder(context.Background(), claims, tt.req)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Errorf("error = %v, want *ValidationError", err)
			}
		})
	}
}

func TestCreateOrderRequiresAssignedStore(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db, zap.NewNop(), notify.NopNotifier{})

	claims := testClaims(auth.RoleCashier, 1, nil)
	_, err := svc.CreateOrder(context.Background(), claims, CreateOrderRequest{
		CustomerID:    1,
		PaymentMethod: "CASH",
		Items:         []OrderLine{{ProductID: 1, Quantity: 1}},
	})
	if !errors.Is(err, ErrNoAssignedStore) {
		t.Fatalf("error = %v, want ErrNoAssignedStore", err)
	}
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db, zap.NewNop(), notify.NopNotifier{})

	store := seedStore(t, db)
	customer := seedCustomer(t, db)
	claims := testClaims(auth.RoleCashier, 1, storeIDRef(store.ID))

	_, err := svc.CreateOrder(context.Background(), claims, CreateOrderRequest{
		CustomerID:    customer.ID,
		PaymentMethod: "CASH",
		Items:         []OrderLine{{ProductID: 9999, Quantity: 1}},
	})
	var unknownErr *UnknownProductError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("error = %v, want *UnknownProductError", err)
	}
	if unknownErr.ProductID != 9999 {
		t.Errorf("error names product %d, want 9999", unknownErr.ProductID)
	}
}

func TestCreateOrderProductNotStockedAtStore(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db, zap.NewNop(), notify.NopNotifier{})

	store := seedStore(t, db)
	other := seedStore(t, db)
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "scale", "30.00")
	// Stocked only at the other store.
	seedInventory(t, db, product.ID, other.ID, 5)

	claims := testClaims(auth.RoleCashier, 1, storeIDRef(store.ID))
	_, err := svc.CreateOrder(context.Background(), claims, CreateOrderRequest{
		CustomerID:    customer.ID,
		PaymentMethod: "CASH",
		Items:         []OrderLine{{ProductID: product.ID, Quantity: 1}},
	})
	var notStocked *NotStockedError
	if !errors.As(err, &notStocked) {
		t.Fatalf("error = %v, want *NotStockedError", err)
	}
	if notStocked.StoreID != store.ID {
		t.Errorf("error names store %d, want %d", notStocked.StoreID, store.ID)
	}
}
