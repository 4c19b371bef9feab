package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is a stocked product owned by a tenant. Quantity has no
// floor: order placement decrements it without a check and it may go negative.
type InventoryItem struct {
	ID           int64               `json:"id" db:"id"`
	Name         string              `json:"name" db:"name"`
	Description  *string             `json:"description,omitempty" db:"description"`
	CategoryID   *int64              `json:"category_id,omitempty" db:"category_id"`
	CategoryName *string             `json:"category_name,omitempty" db:"-"`
	Quantity     int                 `json:"quantity" db:"quantity"`
	Price        decimal.Decimal     `json:"price" db:"price"`
	Cost         decimal.NullDecimal `json:"cost,omitempty" db:"cost"`
	SKU          *string             `json:"sku,omitempty" db:"sku"`
	Barcode      *string             `json:"barcode,omitempty" db:"barcode"`
	MinStock     int                 `json:"min_stock" db:"min_stock"`
	MaxStock     *int                `json:"max_stock,omitempty" db:"max_stock"`
	UserID       int64               `json:"user_id" db:"user_id"`
	CreatedAt    time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at" db:"updated_at"`
}

// AvailableItem is the trimmed view served to the order form: in-stock items
// with their category name resolved.
type AvailableItem struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	CategoryName string          `json:"category_name"`
}
