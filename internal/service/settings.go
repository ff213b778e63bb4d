package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Ostelo999925/uniket-sub002/internal/domain"
	"github.com/Ostelo999925/uniket-sub002/internal/event"
	"github.com/Ostelo999925/uniket-sub002/internal/repository"
	apperrors "github.com/Ostelo999925/uniket-sub002/pkg/errors"
)

// SettingsService manages marketplace-wide settings and pickup points.
type SettingsService struct {
	settings repository.SettingsRepository
	pickups  repository.PickupPointRepository
	events   *event.Producer
	logger   *slog.Logger
	now      func() time.Time
}

// NewSettingsService creates a new settings service.
func NewSettingsService(
	settings repository.SettingsRepository,
	pickups repository.PickupPointRepository,
	events *event.Producer,
	logger *slog.Logger,
) *SettingsService {
	return &SettingsService{
		settings: settings,
		pickups:  pickups,
		events:   events,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// GetSettings returns the current marketplace settings.
func (s *SettingsService) GetSettings(ctx context.Context) (*domain.Settings, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return settings, nil
}

// UpdateSettings validates and persists new marketplace settings, then
// publishes a settings.updated event.
func (s *SettingsService) UpdateSettings(ctx context.Context, settings *domain.Settings, updatedBy string) (*domain.Settings, error) {
	if settings.CommissionPercent < 0 || settings.CommissionPercent > 100 {
		return nil, apperrors.InvalidInput("commission percent must be between 0 and 100")
	}
	if settings.MinWithdrawal < 0 {
		return nil, apperrors.InvalidInput("minimum withdrawal must not be negative")
	}
	if settings.MaxWithdrawal < settings.MinWithdrawal {
		return nil, apperrors.InvalidInput("maximum withdrawal must not be below minimum withdrawal")
	}

	settings.UpdatedAt = s.now()
	if updatedBy != "" {
		settings.UpdatedBy = &updatedBy
	}

	if err := s.settings.Update(ctx, settings); err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}

	if err := s.events.PublishSettingsUpdated(ctx, settings); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish settings updated event",
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "marketplace settings updated",
		slog.Float64("commission_percent", settings.CommissionPercent),
		slog.String("updated_by", updatedBy),
	)

	return settings, nil
}

// CreatePickupPoint registers a new campus pickup point.
func (s *SettingsService) CreatePickupPoint(ctx context.Context, name, location string) (*domain.PickupPoint, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.InvalidInput("pickup point name is required")
	}
	if strings.TrimSpace(location) == "" {
		return nil, apperrors.InvalidInput("pickup point location is required")
	}

	now := s.now()
	point := &domain.PickupPoint{
		ID:        uuid.NewString(),
		Name:      name,
		Location:  location,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.pickups.Create(ctx, point); err != nil {
		return nil, fmt.Errorf("create pickup point: %w", err)
	}

	return point, nil
}

// ListPickupPoints returns pickup points, optionally restricted to active ones.
func (s *SettingsService) ListPickupPoints(ctx context.Context, activeOnly bool) ([]domain.PickupPoint, error) {
	points, err := s.pickups.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list pickup points: %w", err)
	}
	return points, nil
}

// UpdatePickupPoint modifies a pickup point's name, location or active flag.
func (s *SettingsService) UpdatePickupPoint(ctx context.Context, id, name, location string, active bool) (*domain.PickupPoint, error) {
	point, err := s.pickups.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get pickup point: %w", err)
	}

	if strings.TrimSpace(name) != "" {
		point.Name = name
	}
	if strings.TrimSpace(location) != "" {
		point.Location = location
	}
	point.Active = active
	point.UpdatedAt = s.now()

	if err := s.pickups.Update(ctx, point); err != nil {
		return nil, fmt.Errorf("update pickup point: %w", err)
	}

	return point, nil
}

// DeletePickupPoint removes a pickup point.
func (s *SettingsService) DeletePickupPoint(ctx context.Context, id string) error {
	if err := s.pickups.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete pickup point: %w", err)
	}
	return nil
}
