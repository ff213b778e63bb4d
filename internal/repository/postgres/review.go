package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Ostelo999925/uniket-sub002/internal/domain"
	"github.com/Ostelo999925/uniket-sub002/pkg/database"
	apperrors "github.com/Ostelo999925/uniket-sub002/pkg/errors"
)

const reviewColumns = `r.id, r.product_id, p.vendor_id, r.user_id, r.rating, r.comment,
		r.visible, r.created_at`

// ReviewRepository implements repository.ReviewRepository using PostgreSQL.
type ReviewRepository struct {
	pool database.DBTX
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool database.DBTX) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// GetByID retrieves a review by its ID.
func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM reviews r
		JOIN products p ON p.id = r.product_id
		WHERE r.id = $1`, reviewColumns)

	var rv domain.Review
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&rv.ID,
		&rv.ProductID,
		&rv.VendorID,
		&rv.UserID,
		&rv.Rating,
		&rv.Comment,
		&rv.Visible,
		&rv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("review", id)
		}
		return nil, fmt.Errorf("scan review: %w", err)
	}

	return &rv, nil
}

// ListVisibleByVendor returns all visible reviews on the vendor's products.
func (r *ReviewRepository) ListVisibleByVendor(ctx context.Context, vendorID string) ([]domain.Review, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM reviews r
		JOIN products p ON p.id = r.product_id
		WHERE p.vendor_id = $1 AND r.visible = true
		ORDER BY r.created_at DESC`, reviewColumns)

	rows, err := r.pool.Query(ctx, query, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list reviews by vendor: %w", err)
	}
	defer rows.Close()

	return scanReviews(rows)
}

// ListVisibleSince returns all visible reviews created at or after the given
// instant, across all vendors.
func (r *ReviewRepository) ListVisibleSince(ctx context.Context, since time.Time) ([]domain.Review, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM reviews r
		JOIN products p ON p.id = r.product_id
		WHERE r.visible = true AND r.created_at >= $1
		ORDER BY r.created_at DESC`, reviewColumns)

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("list reviews since: %w", err)
	}
	defer rows.Close()

	return scanReviews(rows)
}

// SetVisibility toggles the visibility flag of a review.
func (r *ReviewRepository) SetVisibility(ctx context.Context, id string, visible bool) error {
	query := `UPDATE reviews SET visible = $1 WHERE id = $2`

	ct, err := r.pool.Exec(ctx, query, visible, id)
	if err != nil {
		return fmt.Errorf("set review visibility: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("review", id)
	}

	return nil
}

// scanReviews collects review rows into a slice.
func scanReviews(rows pgx.Rows) ([]domain.Review, error) {
	var reviews []domain.Review

	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(
			&rv.ID,
			&rv.ProductID,
			&rv.VendorID,
			&rv.UserID,
			&rv.Rating,
			&rv.Comment,
			&rv.Visible,
			&rv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	if reviews == nil {
		reviews = []domain.Review{}
	}

	return reviews, nil
}
