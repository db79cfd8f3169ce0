package model

import "time"

// Customer is a person buying tickets.  Email is unique, phone is
// optional but unique when present.  A customer with tickets cannot be
// deleted.
type Customer struct {
	ID        uint64    `json:"id"`         // customers.id
	Name      string    `json:"name"`       // customers.name
	Phone     *string   `json:"phone"`      // customers.phone (nullable)
	Email     string    `json:"email"`      // customers.email
	IsActive  bool      `json:"is_active"`  // customers.is_active
	CreatedBy uint64    `json:"created_by"` // customers.created_by
	CreatedAt time.Time `json:"created_at"` // customers.created_at
	UpdatedAt time.Time `json:"updated_at"` // customers.updated_at
}
