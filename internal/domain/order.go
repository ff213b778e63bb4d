package domain

import (
	"time"
)

// Order status constants.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order represents a purchase of a single product. Campus orders are one
// product per order; a cart checkout produces one order row per line.
// VendorID is denormalized from the product by repository queries so the
// aggregation layer never has to re-resolve ownership.
type Order struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	VendorID      string    `json:"vendor_id,omitempty"`
	BuyerID       string    `json:"buyer_id"`
	Quantity      int       `json:"quantity"`
	UnitPrice     int64     `json:"unit_price"`
	Total         int64     `json:"total"`
	Status        string    `json:"status"`
	PickupPointID *string   `json:"pickup_point_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ValidOrderStatuses returns the set of valid order statuses.
func ValidOrderStatuses() []string {
	return []string{OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled}
}

// IsValidOrderStatus checks whether the given status is a valid order status.
func IsValidOrderStatus(status string) bool {
	for _, s := range ValidOrderStatuses() {
		if s == status {
			return true
		}
	}
	return false
}
