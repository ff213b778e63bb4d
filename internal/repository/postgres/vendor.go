package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Ostelo999925/uniket-sub002/internal/domain"
	"github.com/Ostelo999925/uniket-sub002/pkg/database"
	apperrors "github.com/Ostelo999925/uniket-sub002/pkg/errors"
)

// VendorRepository implements repository.VendorRepository using PostgreSQL.
// Vendors are users with the vendor role; the queries project only the
// marketplace-facing fields.
type VendorRepository struct {
	pool database.DBTX
}

// NewVendorRepository creates a new PostgreSQL-backed vendor repository.
func NewVendorRepository(pool database.DBTX) *VendorRepository {
	return &VendorRepository{pool: pool}
}

// GetByID retrieves a vendor by its ID.
func (r *VendorRepository) GetByID(ctx context.Context, id string) (*domain.Vendor, error) {
	query := `
		SELECT id, name, store_name, email, suspended, created_at
		FROM users
		WHERE id = $1 AND role = 'vendor'`

	var v domain.Vendor
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&v.ID,
		&v.Name,
		&v.StoreName,
		&v.Email,
		&v.Suspended,
		&v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("vendor", id)
		}
		return nil, fmt.Errorf("scan vendor: %w", err)
	}

	return &v, nil
}

// ListAll returns every vendor, including suspended ones.
func (r *VendorRepository) ListAll(ctx context.Context) ([]domain.Vendor, error) {
	query := `
		SELECT id, name, store_name, email, suspended, created_at
		FROM users
		WHERE role = 'vendor'
		ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()

	var vendors []domain.Vendor
	for rows.Next() {
		var v domain.Vendor
		if err := rows.Scan(
			&v.ID,
			&v.Name,
			&v.StoreName,
			&v.Email,
			&v.Suspended,
			&v.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan vendor row: %w", err)
		}
		vendors = append(vendors, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vendor rows: %w", err)
	}

	if vendors == nil {
		vendors = []domain.Vendor{}
	}

	return vendors, nil
}
