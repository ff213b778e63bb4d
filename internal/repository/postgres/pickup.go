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

// PickupPointRepository implements repository.PickupPointRepository using PostgreSQL.
type PickupPointRepository struct {
	pool database.DBTX
}

// NewPickupPointRepository creates a new PostgreSQL-backed pickup point repository.
func NewPickupPointRepository(pool database.DBTX) *PickupPointRepository {
	return &PickupPointRepository{pool: pool}
}

// Create inserts a new pickup point into the database.
func (r *PickupPointRepository) Create(ctx context.Context, p *domain.PickupPoint) error {
	query := `
		INSERT INTO pickup_points (id, name, location, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		p.ID,
		p.Name,
		p.Location,
		p.Active,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("pickup point", "name", p.Name)
		}
		return fmt.Errorf("insert pickup point: %w", err)
	}

	return nil
}

// GetByID retrieves a pickup point by its ID.
func (r *PickupPointRepository) GetByID(ctx context.Context, id string) (*domain.PickupPoint, error) {
	query := `
		SELECT id, name, location, active, created_at, updated_at
		FROM pickup_points
		WHERE id = $1`

	var p domain.PickupPoint
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Location,
		&p.Active,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("pickup point", id)
		}
		return nil, fmt.Errorf("scan pickup point: %w", err)
	}

	return &p, nil
}

// List returns pickup points, optionally restricted to active ones.
func (r *PickupPointRepository) List(ctx context.Context, activeOnly bool) ([]domain.PickupPoint, error) {
	query := `
		SELECT id, name, location, active, created_at, updated_at
		FROM pickup_points`
	if activeOnly {
		query += ` WHERE active = true`
	}
	query += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list pickup points: %w", err)
	}
	defer rows.Close()

	var points []domain.PickupPoint
	for rows.Next() {
		var p domain.PickupPoint
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Location,
			&p.Active,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan pickup point row: %w", err)
		}
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pickup point rows: %w", err)
	}

	if points == nil {
		points = []domain.PickupPoint{}
	}

	return points, nil
}

// Update modifies an existing pickup point.
func (r *PickupPointRepository) Update(ctx context.Context, p *domain.PickupPoint) error {
	query := `
		UPDATE pickup_points
		SET name = $1, location = $2, active = $3, updated_at = $4
		WHERE id = $5`

	ct, err := r.pool.Exec(ctx, query,
		p.Name,
		p.Location,
		p.Active,
		p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("update pickup point: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("pickup point", p.ID)
	}

	return nil
}

// Delete removes a pickup point from the database.
func (r *PickupPointRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM pickup_points WHERE id = $1`

	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete pickup point: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("pickup point", id)
	}

	return nil
}
