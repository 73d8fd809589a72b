// Package pricing computes effective unit prices under promotions. The
// evaluator is a pure function: callers batch-fetch the promotion snapshot
// once per order and evaluate every line item against that snapshot.
package pricing

import (
	"time"

	"pos-service/internal/model"

	"github.com/shopspring/decimal"
)

// Evaluate returns the effective unit price and per-unit discount for a
// product under an optional promotion at a point in time.
//
// A promotion applies only when it is active, the timestamp falls inside its
// [start, end] window, and it is either unscoped or scoped to this product.
// A non-applicable or unknown-typed promotion yields the base price with
// zero discount; it is not an error.
func Evaluate(product model.Product, promo *model.Promotion, asOf time.Time) (unitPrice, discount decimal.Decimal) {
	base := product.Price
	if !applies(product, promo, asOf) {
		return base, decimal.Zero
	}

	switch promo.PromotionType {
	case model.PromotionTypePercentage:
		discount = base.Mul(promo.Value).Div(decimal.NewFromInt(100)).Round(2)
	case model.PromotionTypeFixedAmount:
		discount = promo.Value
		// A fixed discount larger than the price bottoms out at a free
		// unit; the unit price never goes negative.
		if discount.GreaterThan(base) {
			discount = base
		}
	default:
		return base, decimal.Zero
	}

	return base.Sub(discount), discount
}

func applies(product model.Product, promo *model.Promotion, asOf time.Time) bool {
	if promo == nil || !promo.IsActive {
		return false
	}
	if asOf.Before(promo.StartDate) || asOf.After(promo.EndDate) {
		return false
	}
	if promo.ProductID != nil && *promo.ProductID != product.ID {
		return false
	}
	return true
}
