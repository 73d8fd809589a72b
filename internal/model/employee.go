package model

import (
	"time"

	"pos-service/internal/auth"
)

// Employee represents a store worker. StoreID is nil for top-level roles
// (Owner, Admin) that are not tied to a single location. Employees are never
// hard-deleted while orders reference them.
type Employee struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	FirstName string    `json:"first_name" gorm:"type:varchar(100);not null"`
	LastName  string    `json:"last_name" gorm:"type:varchar(100);not null"`
	Email     string    `json:"email" gorm:"type:varchar(255);unique;not null"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null"`
	Role      auth.Role `json:"role" gorm:"type:varchar(32);not null"`
	StoreID   *uint     `json:"store_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
