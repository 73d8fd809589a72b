package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Refund reverses part or all of an order: it restocks inventory and writes
// a negative payment ledger entry.
type Refund struct {
	ID          uint            `json:"id" gorm:"primarykey"`
	OrderID     uint            `json:"order_id" gorm:"index;not null"`
	EmployeeID  uint            `json:"employee_id" gorm:"index;not null"`
	StoreID     uint            `json:"store_id" gorm:"index;not null"`
	Reason      string          `json:"reason" gorm:"type:text"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// RefundItem ties a refunded quantity back to the original order item.
// Cumulative refunded quantity per order item never exceeds the purchased
// quantity.
type RefundItem struct {
	ID          uint            `json:"id" gorm:"primarykey"`
	RefundID    uint            `json:"refund_id" gorm:"index;not null"`
	OrderItemID uint            `json:"order_item_id" gorm:"index;not null"`
	ProductID   uint            `json:"product_id" gorm:"not null"`
	Quantity    int             `json:"quantity" gorm:"not null"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
