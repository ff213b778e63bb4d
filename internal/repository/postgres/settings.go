package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Ostelo999925/uniket-sub002/internal/domain"
	"github.com/Ostelo999925/uniket-sub002/pkg/database"
)

// SettingsRepository implements repository.SettingsRepository using PostgreSQL.
// The settings table holds a single row keyed by a fixed id.
type SettingsRepository struct {
	pool database.DBTX
}

// NewSettingsRepository creates a new PostgreSQL-backed settings repository.
func NewSettingsRepository(pool database.DBTX) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

// Get returns the current marketplace settings. Defaults are returned when no
// row has been written yet.
func (r *SettingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	query := `
		SELECT commission_percent, min_withdrawal, max_withdrawal, updated_by, updated_at
		FROM marketplace_settings
		WHERE id = 1`

	var s domain.Settings
	err := r.pool.QueryRow(ctx, query).Scan(
		&s.CommissionPercent,
		&s.MinWithdrawal,
		&s.MaxWithdrawal,
		&s.UpdatedBy,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.Settings{
				CommissionPercent: 10,
				MinWithdrawal:     1000,
				MaxWithdrawal:     500000,
			}, nil
		}
		return nil, fmt.Errorf("scan settings: %w", err)
	}

	return &s, nil
}

// Update overwrites the marketplace settings row.
func (r *SettingsRepository) Update(ctx context.Context, s *domain.Settings) error {
	query := `
		INSERT INTO marketplace_settings (id, commission_percent, min_withdrawal, max_withdrawal, updated_by, updated_at)
		VALUES (1, $1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET commission_percent = EXCLUDED.commission_percent,
			min_withdrawal = EXCLUDED.min_withdrawal,
			max_withdrawal = EXCLUDED.max_withdrawal,
			updated_by = EXCLUDED.updated_by,
			updated_at = EXCLUDED.updated_at`

	_, err := r.pool.Exec(ctx, query,
		s.CommissionPercent,
		s.MinWithdrawal,
		s.MaxWithdrawal,
		s.UpdatedBy,
		s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}

	return nil
}
