package repository

import (
	"context"
	"time"

	"github.com/Ostelo999925/uniket-sub002/internal/domain"
)

// ProductFilter defines filter criteria for listing products.
type ProductFilter struct {
	VendorID *string
	Status   *string
	Flagged  *bool
	Search   *string
	Page     int
	PerPage  int
}

// ProductRepository defines the interface for product persistence operations.
type ProductRepository interface {
	// Create inserts a new product into the store.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// ListByVendor returns every product owned by the given vendor.
	ListByVendor(ctx context.Context, vendorID string) ([]domain.Product, error)

	// List returns products matching the given filter along with the total count.
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, int, error)

	// UpdateModeration persists the moderation fields of a product: status,
	// is_flagged, flagged_reason, approved_at, approved_by.
	UpdateModeration(ctx context.Context, product *domain.Product) error

	// CountByVendor returns the number of products per vendor id.
	CountByVendor(ctx context.Context) (map[string]int, error)
}

// OrderFilter defines filter criteria for listing orders.
type OrderFilter struct {
	VendorID *string
	BuyerID  *string
	Status   *string
	Page     int
	PerPage  int
}

// OrderRepository defines the interface for order persistence operations.
// Vendor-scoped queries join through products to attach the owning vendor id
// to every returned row.
type OrderRepository interface {
	// GetByID retrieves an order by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// ListCompletedByVendor returns all completed orders on the vendor's
	// products, newest first, with no time bound.
	ListCompletedByVendor(ctx context.Context, vendorID string) ([]domain.Order, error)

	// ListCompletedSince returns all completed orders created at or after the
	// given instant, across all vendors, with VendorID populated.
	ListCompletedSince(ctx context.Context, since time.Time) ([]domain.Order, error)

	// List returns orders matching the given filter along with the total count.
	List(ctx context.Context, filter OrderFilter) ([]domain.Order, int, error)
}

// ReviewRepository defines the interface for review persistence operations.
type ReviewRepository interface {
	// GetByID retrieves a review by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Review, error)

	// ListVisibleByVendor returns all visible reviews on the vendor's
	// products, with no time bound.
	ListVisibleByVendor(ctx context.Context, vendorID string) ([]domain.Review, error)

	// ListVisibleSince returns all visible reviews created at or after the
	// given instant, across all vendors, with VendorID populated.
	ListVisibleSince(ctx context.Context, since time.Time) ([]domain.Review, error)

	// SetVisibility toggles the visibility flag of a review.
	SetVisibility(ctx context.Context, id string, visible bool) error
}

// VendorRepository defines the interface for vendor lookups.
type VendorRepository interface {
	// GetByID retrieves a vendor by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Vendor, error)

	// ListAll returns every vendor, including suspended ones.
	ListAll(ctx context.Context) ([]domain.Vendor, error)
}

// NotificationRepository defines the interface for notification persistence.
type NotificationRepository interface {
	// Create inserts a new notification into the store.
	Create(ctx context.Context, notification *domain.Notification) error

	// ListByUser returns notifications for the given user, newest first,
	// along with the total count.
	ListByUser(ctx context.Context, userID string, page, perPage int) ([]domain.Notification, int, error)

	// MarkRead sets the read flag and read timestamp on a notification.
	MarkRead(ctx context.Context, id string) error
}

// PickupPointRepository defines the interface for pickup point persistence.
type PickupPointRepository interface {
	// Create inserts a new pickup point into the store.
	Create(ctx context.Context, point *domain.PickupPoint) error

	// GetByID retrieves a pickup point by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.PickupPoint, error)

	// List returns pickup points, optionally restricted to active ones.
	List(ctx context.Context, activeOnly bool) ([]domain.PickupPoint, error)

	// Update modifies an existing pickup point.
	Update(ctx context.Context, point *domain.PickupPoint) error

	// Delete removes a pickup point from the store.
	Delete(ctx context.Context, id string) error
}

// SettingsRepository defines the interface for the marketplace settings row.
type SettingsRepository interface {
	// Get returns the current marketplace settings.
	Get(ctx context.Context) (*domain.Settings, error)

	// Update overwrites the marketplace settings.
	Update(ctx context.Context, settings *domain.Settings) error
}
