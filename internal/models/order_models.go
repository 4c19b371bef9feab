package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a recorded sale. OrderNumber follows ORD-YYYYMMDD-NNNN with the
// 4-digit sequence restarting each day per tenant.
type Order struct {
	ID            int64           `json:"id" db:"id"`
	OrderNumber   string          `json:"order_number" db:"order_number"`
	Customer      string          `json:"customer" db:"customer"`
	CustomerEmail *string         `json:"customer_email,omitempty" db:"customer_email"`
	CustomerPhone *string         `json:"customer_phone,omitempty" db:"customer_phone"`
	Status        string          `json:"status" db:"status"`
	Total         decimal.Decimal `json:"total" db:"total"`
	Notes         *string         `json:"notes,omitempty" db:"notes"`
	UserID        int64           `json:"user_id" db:"user_id"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
	Items         []OrderItem     `json:"items,omitempty" db:"-"`
}

// OrderItem is one line of an order. ItemName is denormalized at sale time so
// the line stays meaningful after the inventory item is deleted; ItemID is
// nulled when that happens.
type OrderItem struct {
	ID           int64           `json:"id" db:"id"`
	OrderID      int64           `json:"order_id" db:"order_id"`
	ItemID       *int64          `json:"item_id,omitempty" db:"item_id"`
	ItemName     string          `json:"item_name" db:"item_name"`
	Quantity     int             `json:"quantity" db:"quantity"`
	Price        decimal.Decimal `json:"price" db:"price"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	CategoryName *string         `json:"category_name,omitempty" db:"-"`
}
