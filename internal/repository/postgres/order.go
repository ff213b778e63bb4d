package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Ostelo999925/uniket-sub002/internal/domain"
	"github.com/Ostelo999925/uniket-sub002/internal/repository"
	"github.com/Ostelo999925/uniket-sub002/pkg/database"
	apperrors "github.com/Ostelo999925/uniket-sub002/pkg/errors"
)

const orderColumns = `o.id, o.product_id, p.vendor_id, o.buyer_id, o.quantity, o.unit_price,
		o.total, o.status, o.pickup_point_id, o.created_at, o.updated_at`

// OrderRepository implements repository.OrderRepository using PostgreSQL.
// Every query joins products so the owning vendor id travels with each row.
type OrderRepository struct {
	pool database.DBTX
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool database.DBTX) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// GetByID retrieves an order by its ID.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders o
		JOIN products p ON p.id = o.product_id
		WHERE o.id = $1`, orderColumns)

	var o domain.Order
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&o.ID,
		&o.ProductID,
		&o.VendorID,
		&o.BuyerID,
		&o.Quantity,
		&o.UnitPrice,
		&o.Total,
		&o.Status,
		&o.PickupPointID,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("order", id)
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}

	return &o, nil
}

// ListCompletedByVendor returns all completed orders on the vendor's products,
// newest first, with no time bound.
func (r *OrderRepository) ListCompletedByVendor(ctx context.Context, vendorID string) ([]domain.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders o
		JOIN products p ON p.id = o.product_id
		WHERE p.vendor_id = $1 AND o.status = $2
		ORDER BY o.created_at DESC`, orderColumns)

	rows, err := r.pool.Query(ctx, query, vendorID, domain.OrderStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("list completed orders by vendor: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

// ListCompletedSince returns all completed orders created at or after the
// given instant, across all vendors.
func (r *OrderRepository) ListCompletedSince(ctx context.Context, since time.Time) ([]domain.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders o
		JOIN products p ON p.id = o.product_id
		WHERE o.status = $1 AND o.created_at >= $2
		ORDER BY o.created_at DESC`, orderColumns)

	rows, err := r.pool.Query(ctx, query, domain.OrderStatusCompleted, since)
	if err != nil {
		return nil, fmt.Errorf("list completed orders since: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

// List returns orders matching the given filter with the total count.
func (r *OrderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, int, error) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	if filter.VendorID != nil {
		conditions = append(conditions, fmt.Sprintf("p.vendor_id = $%d", argIndex))
		args = append(args, *filter.VendorID)
		argIndex++
	}

	if filter.BuyerID != nil {
		conditions = append(conditions, fmt.Sprintf("o.buyer_id = $%d", argIndex))
		args = append(args, *filter.BuyerID)
		argIndex++
	}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("o.status = $%d", argIndex))
		args = append(args, *filter.Status)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT %s, count(*) OVER() AS total_count
		FROM orders o
		JOIN products p ON p.id = o.product_id
		%s
		ORDER BY o.created_at DESC
		LIMIT $%d OFFSET $%d`,
		orderColumns, whereClause, argIndex, argIndex+1,
	)

	limit := filter.PerPage
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if filter.Page > 1 {
		offset = (filter.Page - 1) * limit
	}

	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var (
		orders     []domain.Order
		totalCount int
	)

	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(
			&o.ID,
			&o.ProductID,
			&o.VendorID,
			&o.BuyerID,
			&o.Quantity,
			&o.UnitPrice,
			&o.Total,
			&o.Status,
			&o.PickupPointID,
			&o.CreatedAt,
			&o.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate order rows: %w", err)
	}

	if orders == nil {
		orders = []domain.Order{}
	}

	return orders, totalCount, nil
}

// scanOrders collects order rows into a slice.
func scanOrders(rows pgx.Rows) ([]domain.Order, error) {
	var orders []domain.Order

	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(
			&o.ID,
			&o.ProductID,
			&o.VendorID,
			&o.BuyerID,
			&o.Quantity,
			&o.UnitPrice,
			&o.Total,
			&o.Status,
			&o.PickupPointID,
			&o.CreatedAt,
			&o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	if orders == nil {
		orders = []domain.Order{}
	}

	return orders, nil
}
