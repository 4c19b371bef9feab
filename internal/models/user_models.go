package models

import "time"

// User is a registered tenant. Every other entity in the system hangs off a
// user via user_id.
type User struct {
	ID          int64     `json:"id" db:"id"`
	Email       string    `json:"email" db:"email"`
	Username    string    `json:"username" db:"username"`
	CompanyName *string   `json:"company_name,omitempty" db:"company_name"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
