package domain

import (
	"time"
)

// Vendor is the marketplace-facing projection of a user with the vendor role.
type Vendor struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StoreName string    `json:"store_name"`
	Email     string    `json:"email"`
	Suspended bool      `json:"suspended"`
	CreatedAt time.Time `json:"created_at"`
}
