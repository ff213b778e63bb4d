package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/Ostelo999925/uniket-sub002/internal/domain"
	"github.com/Ostelo999925/uniket-sub002/internal/repository"
)

// Number of entries returned by the leaderboard and of top products and
// recent orders in a vendor snapshot.
const (
	leaderboardSize   = 10
	topProductsLimit  = 5
	recentOrdersLimit = 5
	salesMonths       = 12
	leaderboardWindow = 30 * 24 * time.Hour
)

// unknownProductName is used when a recent order references a product that no
// longer resolves.
const unknownProductName = "Unknown product"

// StatsService computes vendor metrics snapshots and the vendor leaderboard.
// Every call recomputes from freshly fetched rows; nothing is cached here.
type StatsService struct {
	vendors  repository.VendorRepository
	products repository.ProductRepository
	orders   repository.OrderRepository
	reviews  repository.ReviewRepository
	logger   *slog.Logger
	now      func() time.Time
}

// NewStatsService creates a new stats service.
func NewStatsService(
	vendors repository.VendorRepository,
	products repository.ProductRepository,
	orders repository.OrderRepository,
	reviews repository.ReviewRepository,
	logger *slog.Logger,
) *StatsService {
	return &StatsService{
		vendors:  vendors,
		products: products,
		orders:   orders,
		reviews:  reviews,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// VendorStats returns the metrics snapshot for the given vendor. A vendor
// with no products yields an all-zero snapshot, not an error.
func (s *StatsService) VendorStats(ctx context.Context, vendorID string) (*domain.VendorStats, error) {
	if _, err := s.vendors.GetByID(ctx, vendorID); err != nil {
		return nil, fmt.Errorf("get vendor: %w", err)
	}

	stats := &domain.VendorStats{
		VendorID:      vendorID,
		TopProducts:   []domain.ProductPerformance{},
		RecentOrders:  []domain.RecentOrder{},
		SalesOverTime: s.emptySalesBuckets(),
	}

	products, err := s.products.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list vendor products: %w", err)
	}
	if len(products) == 0 {
		return stats, nil
	}

	orders, err := s.orders.ListCompletedByVendor(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list vendor orders: %w", err)
	}

	reviews, err := s.reviews.ListVisibleByVendor(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list vendor reviews: %w", err)
	}

	// Per-product accumulators, built in product-list order so the final
	// ranking is deterministic.
	type productAgg struct {
		perf        domain.ProductPerformance
		ratingSum   int
		ratingCount int
	}
	aggs := make(map[string]*productAgg, len(products))
	ordered := make([]*productAgg, 0, len(products))
	productNames := make(map[string]string, len(products))

	for _, p := range products {
		stats.TotalViews += p.Views
		productNames[p.ID] = p.Name
		agg := &productAgg{perf: domain.ProductPerformance{
			ProductID: p.ID,
			Name:      p.Name,
			Views:     p.Views,
		}}
		aggs[p.ID] = agg
		ordered = append(ordered, agg)
	}

	// Each completed order is one product line, so summing per order counts
	// every sale exactly once.
	for _, o := range orders {
		stats.TotalSales += o.Quantity
		stats.TotalRevenue += o.Total
		if agg, ok := aggs[o.ProductID]; ok {
			agg.perf.Sales += o.Quantity
			agg.perf.Revenue += o.Total
		}
	}

	var (
		ratingSum int
		satisfied int
	)
	for _, r := range reviews {
		ratingSum += r.Rating
		if r.Rating >= 4 {
			satisfied++
		}
		if agg, ok := aggs[r.ProductID]; ok {
			agg.ratingSum += r.Rating
			agg.ratingCount++
		}
	}

	if len(reviews) > 0 {
		stats.AverageRating = round1(float64(ratingSum) / float64(len(reviews)))
		stats.SatisfactionRate = round1(float64(satisfied) / float64(len(reviews)) * 100)
	}
	if stats.TotalViews > 0 {
		stats.ConversionRate = round1(float64(stats.TotalSales) / float64(stats.TotalViews) * 100)
	}

	for _, agg := range ordered {
		if agg.ratingCount > 0 {
			agg.perf.AverageRating = round1(float64(agg.ratingSum) / float64(agg.ratingCount))
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].perf.Revenue > ordered[j].perf.Revenue
	})
	for i, agg := range ordered {
		if i == topProductsLimit {
			break
		}
		stats.TopProducts = append(stats.TopProducts, agg.perf)
	}

	stats.RecentOrders = recentOrders(orders, productNames)
	s.fillSalesOverTime(stats.SalesOverTime, orders)

	return stats, nil
}

// Leaderboard returns the top vendors ranked by the selected category over
// the trailing 30-day completed-order window. Unknown categories fall back to
// topSellers. Ties are broken by ascending vendor id for determinism.
func (s *StatsService) Leaderboard(ctx context.Context, category string) ([]domain.LeaderboardEntry, error) {
	if !domain.IsValidLeaderboardCategory(category) {
		category = domain.LeaderboardTopSellers
	}

	vendors, err := s.vendors.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}

	productCounts, err := s.products.CountByVendor(ctx)
	if err != nil {
		return nil, fmt.Errorf("count products by vendor: %w", err)
	}

	since := s.now().Add(-leaderboardWindow)

	orders, err := s.orders.ListCompletedSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("list completed orders: %w", err)
	}

	reviews, err := s.reviews.ListVisibleSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	type vendorAgg struct {
		entry       domain.LeaderboardEntry
		ratingSum   int
		ratingCount int
	}
	aggs := make(map[string]*vendorAgg, len(vendors))
	entries := make([]*vendorAgg, 0, len(vendors))

	for _, v := range vendors {
		agg := &vendorAgg{entry: domain.LeaderboardEntry{
			VendorID:  v.ID,
			StoreName: v.StoreName,
			Products:  productCounts[v.ID],
		}}
		aggs[v.ID] = agg
		entries = append(entries, agg)
	}

	for _, o := range orders {
		if agg, ok := aggs[o.VendorID]; ok {
			agg.entry.Sales += o.Quantity
			agg.entry.Revenue += o.Total
			agg.entry.Orders++
		}
	}

	for _, r := range reviews {
		if agg, ok := aggs[r.VendorID]; ok {
			agg.ratingSum += r.Rating
			agg.ratingCount++
		}
	}

	for _, agg := range entries {
		if agg.ratingCount > 0 {
			agg.entry.AverageRating = round1(float64(agg.ratingSum) / float64(agg.ratingCount))
		}
	}

	metric := leaderboardMetric(category)
	sort.Slice(entries, func(i, j int) bool {
		mi, mj := metric(&entries[i].entry), metric(&entries[j].entry)
		if mi != mj {
			return mi > mj
		}
		return entries[i].entry.VendorID < entries[j].entry.VendorID
	})

	result := make([]domain.LeaderboardEntry, 0, leaderboardSize)
	for i, agg := range entries {
		if i == leaderboardSize {
			break
		}
		result = append(result, agg.entry)
	}

	return result, nil
}

// leaderboardMetric returns the ranking metric extractor for a category.
func leaderboardMetric(category string) func(*domain.LeaderboardEntry) float64 {
	switch category {
	case domain.LeaderboardMostOrders:
		return func(e *domain.LeaderboardEntry) float64 { return float64(e.Orders) }
	case domain.LeaderboardMostProducts:
		return func(e *domain.LeaderboardEntry) float64 { return float64(e.Products) }
	case domain.LeaderboardBestRated:
		return func(e *domain.LeaderboardEntry) float64 { return e.AverageRating }
	default:
		return func(e *domain.LeaderboardEntry) float64 { return float64(e.Sales) }
	}
}

// recentOrders returns up to recentOrdersLimit orders, newest first, each
// annotated with its resolved product name.
func recentOrders(orders []domain.Order, productNames map[string]string) []domain.RecentOrder {
	sorted := make([]domain.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	recent := make([]domain.RecentOrder, 0, recentOrdersLimit)
	for i, o := range sorted {
		if i == recentOrdersLimit {
			break
		}
		name, ok := productNames[o.ProductID]
		if !ok || name == "" {
			name = unknownProductName
		}
		recent = append(recent, domain.RecentOrder{
			OrderID:     o.ID,
			ProductName: name,
			Quantity:    o.Quantity,
			Total:       o.Total,
			CreatedAt:   o.CreatedAt,
		})
	}

	return recent
}

// emptySalesBuckets builds the 12 zero-initialized monthly buckets ending at
// the current month, in chronological order.
func (s *StatsService) emptySalesBuckets() []domain.MonthlySales {
	now := s.now()
	// Normalize to the first of the month so AddDate arithmetic never skips
	// short months.
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	buckets := make([]domain.MonthlySales, 0, salesMonths)
	for i := salesMonths - 1; i >= 0; i-- {
		month := current.AddDate(0, -i, 0)
		buckets = append(buckets, domain.MonthlySales{
			Month: month.Format("2006-01"),
			Label: month.Format("Jan 06"),
		})
	}

	return buckets
}

// fillSalesOverTime increments the monthly buckets with matching orders.
// Orders outside the trailing 12 months are ignored.
func (s *StatsService) fillSalesOverTime(buckets []domain.MonthlySales, orders []domain.Order) {
	index := make(map[string]int, len(buckets))
	for i, b := range buckets {
		index[b.Month] = i
	}

	for _, o := range orders {
		key := o.CreatedAt.UTC().Format("2006-01")
		if i, ok := index[key]; ok {
			buckets[i].Sales += o.Quantity
			buckets[i].Revenue += o.Total
		}
	}
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
