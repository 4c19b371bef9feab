package models

import "time"

// Setting keys in use.
const (
	SettingCurrency = "currency"

	// DefaultCurrency is seeded for every new tenant at registration.
	DefaultCurrency = "₹"
)

// Setting is a per-tenant key/value pair, unique per (user, key).
type Setting struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Key       string    `json:"setting_key" db:"setting_key"`
	Value     *string   `json:"setting_value,omitempty" db:"setting_value"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
