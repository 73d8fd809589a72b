package pricing

import (
	"testing"
	"time"

	"pos-service/internal/model"

	"github.com/shopspring/decimal"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func product(id uint, price string) model.Product {
	return model.Product{ID: id, Name: "test product", Price: decimal.RequireFromString(price)}
}

func activePromo(kind, value string, productID *uint) *model.Promotion {
	return &model.Promotion{
		ID:            1,
		PromotionType: kind,
		Value:         decimal.RequireFromString(value),
		StartDate:     now.Add(-24 * time.Hour),
		EndDate:       now.Add(24 * time.Hour),
		IsActive:      true,
		ProductID:     productID,
	}
}

func assertPrice(t *testing.T, gotUnit, gotDiscount decimal.Decimal, wantUnit, wantDiscount string) {
	t.Helper()
	if !gotUnit.Equal(decimal.RequireFromString(wantUnit)) {
		t.Errorf("unit price = %s, want %s", gotUnit, wantUnit)
	}
	if !gotDiscount.Equal(decimal.RequireFromString(wantDiscount)) {
		t.Errorf("discount = %s, want %s", gotDiscount, wantDiscount)
	}
}

func TestEvaluateNoPromotion(t *testing.T) {
	unit, discount := Evaluate(product(1, "10.00"), nil, now)
	assertPrice(t, unit, discount, "10.00", "0")
}

func TestEvaluatePercentage(t *testing.T) {
	// 20% off a $50 product: unit price $40, discount $10.
	pid := uint(1)
	unit, discount := Evaluate(product(1, "50.00"), activePromo(model.PromotionTypePercentage, "20", &pid), now)
	assertPrice(t, unit, discount, "40.00", "10.00")
}

func TestEvaluateFixedAmount(t *testing.T) {
	unit, discount := Evaluate(product(1, "50.00"), activePromo(model.PromotionTypeFixedAmount, "5.00", nil), now)
	assertPrice(t, unit, discount, "45.00", "5.00")
}

func TestEvaluateFixedAmountClampedAtBasePrice(t *testing.T) {
	unit, discount := Evaluate(product(1, "50.00"), activePromo(model.PromotionTypeFixedAmount, "60.00", nil), now)
	assertPrice(t, unit, discount, "0.00", "50.00")
}

func TestEvaluateInactivePromotion(t *testing.T) {
	promo := activePromo(model.PromotionTypePercentage, "20", nil)
	promo.IsActive = false
	unit, discount := Evaluate(product(1, "50.00"), promo, now)
	assertPrice(t, unit, discount, "50.00", "0")
}

func TestEvaluateOutsideValidityWindow(t *testing.T) {
	promo := activePromo(model.PromotionTypePercentage, "20", nil)

	unit, discount := Evaluate(product(1, "50.00"), promo, promo.StartDate.Add(-time.Hour))
	assertPrice(t, unit, discount, "50.00", "0")

	unit, discount = Evaluate(product(1, "50.00"), promo, promo.EndDate.Add(time.Hour))
	assertPrice(t, unit, discount, "50.00", "0")
}

func TestEvaluateScopedToOtherProduct(t *testing.T) {
	otherID := uint(99)
	unit, discount := Evaluate(product(1, "50.00"), activePromo(model.PromotionTypePercentage, "20", &otherID), now)
	assertPrice(t, unit, discount, "50.00", "0")
}

func TestEvaluateUnknownTypeFallsBack(t *testing.T) {
	unit, discount := Evaluate(product(1, "50.00"), activePromo("BuyOneGetOne", "1", nil), now)
	assertPrice(t, unit, discount, "50.00", "0")
}

func TestEvaluateIsDeterministic(t *testing.T) {
	pid := uint(1)
	promo := activePromo(model.PromotionTypePercentage, "15", &pid)
	firstUnit, firstDiscount := Evaluate(product(1, "33.33"), promo, now)
	for i := 0; i < 10; i++ {
		unit, discount := Evaluate(product(1, "33.33"), promo, now)
		if !unit.Equal(firstUnit) || !discount.Equal(firstDiscount) {
			t.Fatalf("evaluation not deterministic: got (%s, %s), want (%s, %s)",
				unit, discount, firstUnit, firstDiscount)
		}
	}
}
