package domain

import (
	"time"
)

// Product status constants. A product enters the catalog as pending and is
// moved to approved or rejected by the moderation workflow only.
const (
	ProductStatusPending  = "pending"
	ProductStatusApproved = "approved"
	ProductStatusRejected = "rejected"
)

// Product represents an item listed by a vendor.
type Product struct {
	ID            string     `json:"id"`
	VendorID      string     `json:"vendor_id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Category      string     `json:"category"`
	Price         int64      `json:"price"`
	Views         int        `json:"views"`
	Status        string     `json:"status"`
	IsFlagged     bool       `json:"is_flagged"`
	FlaggedReason *string    `json:"flagged_reason,omitempty"`
	ApprovedAt    *time.Time `json:"approved_at,omitempty"`
	ApprovedBy    *string    `json:"approved_by,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ValidStatuses returns the set of valid product statuses.
func ValidStatuses() []string {
	return []string{ProductStatusPending, ProductStatusApproved, ProductStatusRejected}
}

// IsValidStatus checks whether the given status string is a valid product status.
func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// RejectionReasons returns the fixed set of reasons an admin may select when
// rejecting a product. Anything outside this set is a validation error.
func RejectionReasons() []string {
	return []string{
		"Inappropriate content",
		"Poor quality images",
		"Incomplete product description",
		"Suspicious pricing",
		"Duplicate product",
		"Violates marketplace policies",
		"Incorrect category",
		"Other",
	}
}

// IsValidRejectionReason checks whether the given reason is in the fixed set.
func IsValidRejectionReason(reason string) bool {
	for _, r := range RejectionReasons() {
		if r == reason {
			return true
		}
	}
	return false
}
