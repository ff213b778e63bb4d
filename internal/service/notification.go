package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Ostelo999925/uniket-sub002/internal/domain"
	"github.com/Ostelo999925/uniket-sub002/internal/repository"
)

// NotificationService exposes a user's in-app notification feed.
type NotificationService struct {
	notifications repository.NotificationRepository
	logger        *slog.Logger
}

// NewNotificationService creates a new notification service.
func NewNotificationService(notifications repository.NotificationRepository, logger *slog.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		logger:        logger,
	}
}

// ListForUser returns a page of the user's notifications, newest first, along
// with the total count.
func (s *NotificationService) ListForUser(ctx context.Context, userID string, page, perPage int) ([]domain.Notification, int, error) {
	notifications, total, err := s.notifications.ListByUser(ctx, userID, page, perPage)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, total, nil
}

// MarkRead marks a single notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	if err := s.notifications.MarkRead(ctx, id); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}
