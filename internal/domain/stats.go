package domain

import (
	"time"
)

// Leaderboard category constants.
const (
	LeaderboardTopSellers   = "topSellers"
	LeaderboardMostOrders   = "mostOrders"
	LeaderboardMostProducts = "mostProducts"
	LeaderboardBestRated    = "bestRated"
)

// ValidLeaderboardCategories returns the selectable leaderboard categories.
func ValidLeaderboardCategories() []string {
	return []string{
		LeaderboardTopSellers,
		LeaderboardMostOrders,
		LeaderboardMostProducts,
		LeaderboardBestRated,
	}
}

// IsValidLeaderboardCategory checks whether the given category is selectable.
func IsValidLeaderboardCategory(category string) bool {
	for _, c := range ValidLeaderboardCategories() {
		if c == category {
			return true
		}
	}
	return false
}

// VendorStats is the per-vendor metrics snapshot. It is derived on every
// request from freshly fetched rows and never persisted.
type VendorStats struct {
	VendorID         string               `json:"vendor_id"`
	TotalSales       int                  `json:"total_sales"`
	TotalRevenue     int64                `json:"total_revenue"`
	TotalViews       int                  `json:"total_views"`
	AverageRating    float64              `json:"average_rating"`
	SatisfactionRate float64              `json:"satisfaction_rate"`
	ConversionRate   float64              `json:"conversion_rate"`
	TopProducts      []ProductPerformance `json:"top_products"`
	RecentOrders     []RecentOrder        `json:"recent_orders"`
	SalesOverTime    []MonthlySales       `json:"sales_over_time"`
}

// ProductPerformance is the per-product rollup inside a vendor snapshot.
type ProductPerformance struct {
	ProductID     string  `json:"product_id"`
	Name          string  `json:"name"`
	Revenue       int64   `json:"revenue"`
	Sales         int     `json:"sales"`
	Views         int     `json:"views"`
	AverageRating float64 `json:"average_rating"`
}

// RecentOrder is an order annotated with its resolved product name for the
// vendor dashboard.
type RecentOrder struct {
	OrderID     string    `json:"order_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	Total       int64     `json:"total"`
	CreatedAt   time.Time `json:"created_at"`
}

// MonthlySales is one bucket of the trailing 12-month sales series.
// Month is the sort key ("2026-08"); Label is the display form ("Aug 26").
type MonthlySales struct {
	Month   string `json:"month"`
	Label   string `json:"label"`
	Sales   int    `json:"sales"`
	Revenue int64  `json:"revenue"`
}

// LeaderboardEntry is one row of the vendor leaderboard, computed over the
// trailing 30-day completed-order window.
type LeaderboardEntry struct {
	VendorID      string  `json:"vendor_id"`
	StoreName     string  `json:"store_name"`
	Sales         int     `json:"sales"`
	Orders        int     `json:"orders"`
	Products      int     `json:"products"`
	Revenue       int64   `json:"revenue"`
	AverageRating float64 `json:"average_rating"`
}
