package models

import "time"

// History action labels written by the mutating flows.
const (
	ActionStockIncreased     = "Stock Increased"
	ActionStockDecreased     = "Stock Decreased"
	ActionItemUpdated        = "Item Updated"
	ActionItemDeleted        = "Item Deleted"
	ActionCompanyNameUpdated = "Company Name Updated"
)

// HistoryEntry is an append-only audit row. Entries are never updated or
// deleted.
type HistoryEntry struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Action    string    `json:"action" db:"action"`
	Item      *string   `json:"item,omitempty" db:"item"`
	Details   *string   `json:"details,omitempty" db:"details"`
	Category  *string   `json:"category,omitempty" db:"category"`
	Quantity  *int      `json:"quantity,omitempty" db:"quantity"`
	OrderID   *int64    `json:"order_id,omitempty" db:"order_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
