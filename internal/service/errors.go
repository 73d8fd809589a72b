package service

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying workflow failures. Handlers map these onto
// HTTP statuses in one place.
var (
	// ErrOrderNotFound means the referenced order does not exist.
	ErrOrderNotFound = errors.New("order not found")

	// ErrNoAssignedStore means the acting employee has no assigned store
	// and therefore cannot create orders.
	ErrNoAssignedStore = errors.New("employee has no assigned store")

	// ErrForbidden means the claims fail the store-scope check for the
	// target resource.
	ErrForbidden = errors.New("forbidden")

	// ErrInsufficientStock is returned by the inventory ledger when a
	// decrement would push a quantity below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ValidationError reports a malformed request.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// UnknownProductError reports a line item referencing a product that does
// not exist in the catalog.
type UnknownProductError struct {
	ProductID uint
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("unknown product with ID %d", e.ProductID)
}

// NotStockedError reports a product that has no inventory row at the acting
// store.
type NotStockedError struct {
	ProductName string
	StoreID     uint
}

func (e *NotStockedError) Error() string {
	return fmt.Sprintf("product %q is not stocked at store %d", e.ProductName, e.StoreID)
}

// StockError reports an availability shortfall, naming the product and the
// requested/available counts.
type StockError struct {
	ProductName string
	Requested   int
	Available   int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}

func (e *StockError) Unwrap() error {
	return ErrInsufficientStock
}

// UnknownOrderItemError reports a refund line referencing an item that is
// not part of the order.
type UnknownOrderItemError struct {
	OrderItemID uint
}

func (e *UnknownOrderItemError) Error() string {
	return fmt.Sprintf("item with ID %d not found in original order", e.OrderItemID)
}

// RefundQuantityError reports a refund line exceeding the quantity still
// refundable on the original order item.
type RefundQuantityError struct {
	OrderItemID uint
	Requested   int
	Remaining   int
}

func (e *RefundQuantityError) Error() string {
	return fmt.Sprintf("cannot refund %d of item %d: only %d unit(s) remain refundable",
		e.Requested, e.OrderItemID, e.Remaining)
}
