package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/Ostelo999925/uniket-sub002/internal/domain"
	"github.com/Ostelo999925/uniket-sub002/internal/repository"
	"github.com/Ostelo999925/uniket-sub002/pkg/database"
	apperrors "github.com/Ostelo999925/uniket-sub002/pkg/errors"
)

const productColumns = `id, vendor_id, name, description, category, price, views, status,
		is_flagged, flagged_reason, approved_at, approved_by, created_at, updated_at`

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	pool database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool database.DBTX) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// Create inserts a new product into the database.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `
		INSERT INTO products (id, vendor_id, name, description, category, price, views, status,
			is_flagged, flagged_reason, approved_at, approved_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.pool.Exec(ctx, query,
		p.ID,
		p.VendorID,
		p.Name,
		p.Description,
		p.Category,
		p.Price,
		p.Views,
		p.Status,
		p.IsFlagged,
		p.FlaggedReason,
		p.ApprovedAt,
		p.ApprovedBy,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("product", "id", p.ID)
		}
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

// GetByID retrieves a product by its ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)

	var p domain.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.VendorID,
		&p.Name,
		&p.Description,
		&p.Category,
		&p.Price,
		&p.Views,
		&p.Status,
		&p.IsFlagged,
		&p.FlaggedReason,
		&p.ApprovedAt,
		&p.ApprovedBy,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}

	return &p, nil
}

// ListByVendor returns all products owned by the given vendor, newest first.
func (r *ProductRepository) ListByVendor(ctx context.Context, vendorID string) ([]domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE vendor_id = $1
		ORDER BY created_at DESC`, productColumns)

	rows, err := r.pool.Query(ctx, query, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list products by vendor: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// List returns products matching the given filter with the total count.
func (r *ProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, int, error) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	if filter.VendorID != nil {
		conditions = append(conditions, fmt.Sprintf("vendor_id = $%d", argIndex))
		args = append(args, *filter.VendorID)
		argIndex++
	}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, *filter.Status)
		argIndex++
	}

	if filter.Flagged != nil {
		conditions = append(conditions, fmt.Sprintf("is_flagged = $%d", argIndex))
		args = append(args, *filter.Flagged)
		argIndex++
	}

	if filter.Search != nil {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+*filter.Search+"%")
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Use count(*) OVER() for total count in a single query.
	query := fmt.Sprintf(`
		SELECT %s, count(*) OVER() AS total_count
		FROM products
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		productColumns, whereClause, argIndex, argIndex+1,
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
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var (
		products   []domain.Product
		totalCount int
	)

	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID,
			&p.VendorID,
			&p.Name,
			&p.Description,
			&p.Category,
			&p.Price,
			&p.Views,
			&p.Status,
			&p.IsFlagged,
			&p.FlaggedReason,
			&p.ApprovedAt,
			&p.ApprovedBy,
			&p.CreatedAt,
			&p.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate product rows: %w", err)
	}

	if products == nil {
		products = []domain.Product{}
	}

	return products, totalCount, nil
}

// UpdateModeration persists the moderation fields of a product.
func (r *ProductRepository) UpdateModeration(ctx context.Context, p *domain.Product) error {
	query := `
		UPDATE products
		SET status = $1, is_flagged = $2, flagged_reason = $3,
			approved_at = $4, approved_by = $5, updated_at = $6
		WHERE id = $7`

	ct, err := r.pool.Exec(ctx, query,
		p.Status,
		p.IsFlagged,
		p.FlaggedReason,
		p.ApprovedAt,
		p.ApprovedBy,
		p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product moderation: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", p.ID)
	}

	return nil
}

// CountByVendor returns the number of products per vendor id.
func (r *ProductRepository) CountByVendor(ctx context.Context) (map[string]int, error) {
	query := `SELECT vendor_id, count(*) FROM products GROUP BY vendor_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count products by vendor: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			vendorID string
			count    int
		)
		if err := rows.Scan(&vendorID, &count); err != nil {
			return nil, fmt.Errorf("scan product count row: %w", err)
		}
		counts[vendorID] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product count rows: %w", err)
	}

	return counts, nil
}

// scanProducts collects product rows into a slice.
func scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	var products []domain.Product

	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID,
			&p.VendorID,
			&p.Name,
			&p.Description,
			&p.Category,
			&p.Price,
			&p.Views,
			&p.Status,
			&p.IsFlagged,
			&p.FlaggedReason,
			&p.ApprovedAt,
			&p.ApprovedBy,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	if products == nil {
		products = []domain.Product{}
	}

	return products, nil
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
