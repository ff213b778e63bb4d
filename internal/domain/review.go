package domain

import (
	"time"
)

// Review represents a product review submitted by a buyer. Rating is a 1-5
// integer. Hidden reviews stay in the store but are excluded from public
// listings; the stats aggregator still reads them through vendor-scoped
// queries that filter on visibility.
type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	VendorID  string    `json:"vendor_id,omitempty"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Visible   bool      `json:"visible"`
	CreatedAt time.Time `json:"created_at"`
}
