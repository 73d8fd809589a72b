package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses. An order is Pending only inside the creation transaction;
// committed orders are Completed until a refund moves them on.
const (
	OrderStatusPending           = "Pending"
	OrderStatusCompleted         = "Completed"
	OrderStatusRefunded          = "Refunded"
	OrderStatusPartiallyRefunded = "Partially Refunded"
)

// Payment statuses and the reserved method written by refunds.
const (
	PaymentStatusCompleted = "Completed"
	PaymentMethodRefund    = "REFUND"
)

// Order is a completed sale. TotalAmount is derived from its items, never
// entered independently.
type Order struct {
	ID          uint            `json:"id" gorm:"primarykey"`
	CustomerID  uint            `json:"customer_id" gorm:"index;not null"`
	EmployeeID  uint            `json:"employee_id" gorm:"index;not null"`
	StoreID     uint            `json:"store_id" gorm:"index;not null"`
	OrderDate   time.Time       `json:"order_date" gorm:"not null"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	Status      string          `json:"status" gorm:"type:varchar(32);not null"`
	Items       []OrderItem     `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// OrderItem captures the price actually charged at order time, so historical
// orders are immune to later price or promotion changes. UnitPrice is the
// post-discount price per unit.
type OrderItem struct {
	ID             uint            `json:"id" gorm:"primarykey"`
	OrderID        uint            `json:"order_id" gorm:"index;not null"`
	ProductID      uint            `json:"product_id" gorm:"index;not null"`
	Quantity       int             `json:"quantity" gorm:"not null"`
	UnitPrice      decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	DiscountAmount decimal.Decimal `json:"discount_amount" gorm:"type:decimal(10,2);not null"`
	PromotionID    *uint           `json:"promotion_id"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Payment is an append-only ledger entry against an order. Refunds write a
// new negative-amount row rather than mutating an existing one.
type Payment struct {
	ID            uint            `json:"id" gorm:"primarykey"`
	OrderID       uint            `json:"order_id" gorm:"index;not null"`
	PaymentMethod string          `json:"payment_method" gorm:"type:varchar(50);not null"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	PaymentDate   time.Time       `json:"payment_date" gorm:"not null"`
	Status        string          `json:"status" gorm:"type:varchar(32);not null"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
