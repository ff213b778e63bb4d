package domain

import (
	"time"
)

// Notification type constants. Types name the event that produced the
// notification, not the delivery channel.
const (
	NotificationTypeProductApproved = "PRODUCT_APPROVED"
	NotificationTypeProductRejected = "PRODUCT_REJECTED"
	NotificationTypeFlaggedProduct  = "FLAGGED_PRODUCT"
	NotificationTypeFraudAlert      = "FRAUD_ALERT"
	NotificationTypeOrderPlaced     = "ORDER_PLACED"
)

// Notification represents an in-app notification addressed to a user.
// Metadata carries the structured payload (product id, reason, ...) so
// dashboard views can deep-link without parsing the message text.
type Notification struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Read      bool           `json:"read"`
	ReadAt    *time.Time     `json:"read_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// ValidNotificationTypes returns the set of valid notification types.
func ValidNotificationTypes() []string {
	return []string{
		NotificationTypeProductApproved,
		NotificationTypeProductRejected,
		NotificationTypeFlaggedProduct,
		NotificationTypeFraudAlert,
		NotificationTypeOrderPlaced,
	}
}

// IsValidNotificationType checks whether the given type is valid.
func IsValidNotificationType(t string) bool {
	for _, v := range ValidNotificationTypes() {
		if v == t {
			return true
		}
	}
	return false
}
