package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Promotion types. Anything else falls back to no discount.
const (
	PromotionTypePercentage  = "Percentage"
	PromotionTypeFixedAmount = "FixedAmount"
)

// Product is a catalog item. The catalog is read-only to this service;
// products are managed by the back-office system.
type Product struct {
	ID          uint            `json:"id" gorm:"primarykey"`
	Name        string          `json:"name" gorm:"type:varchar(255);not null"`
	Description string          `json:"description" gorm:"type:text"`
	SKU         string          `json:"sku" gorm:"type:varchar(100);unique;not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	IsActive    bool            `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Promotion is a time-bounded discount rule, optionally scoped to a single
// product (nil ProductID applies to any product).
type Promotion struct {
	ID            uint            `json:"id" gorm:"primarykey"`
	Name          string          `json:"name" gorm:"type:varchar(255);not null"`
	Description   string          `json:"description" gorm:"type:text"`
	PromotionType string          `json:"promotion_type" gorm:"type:varchar(32);not null"`
	Value         decimal.Decimal `json:"value" gorm:"type:decimal(10,2);not null"`
	StartDate     time.Time       `json:"start_date" gorm:"not null"`
	EndDate       time.Time       `json:"end_date" gorm:"not null"`
	IsActive      bool            `json:"is_active" gorm:"default:true"`
	ProductID     *uint           `json:"product_id" gorm:"index"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Inventory is the per (product, store) quantity counter. Quantity never
// goes below zero; it is mutated only through the ledger operations.
type Inventory struct {
	ID            uint       `json:"id" gorm:"primarykey"`
	ProductID     uint       `json:"product_id" gorm:"uniqueIndex:idx_product_store;not null"`
	StoreID       uint       `json:"store_id" gorm:"uniqueIndex:idx_product_store;not null"`
	Quantity      int        `json:"quantity" gorm:"not null;default:0"`
	LastRestocked *time.Time `json:"last_restocked"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
