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

// ModerationConfig carries the tunable parts of the moderation workflow.
type ModerationConfig struct {
	// RejectionReasons is the closed set an admin may pick from. Empty means
	// the built-in set.
	RejectionReasons []string

	// BannedWords are matched case-insensitively against product text during
	// screening. The match is advisory and never changes product state.
	BannedWords []string
}

// ScreeningResult is the advisory outcome of matching product text against
// the banned word list.
type ScreeningResult struct {
	Flagged bool     `json:"flagged"`
	Matches []string `json:"matches,omitempty"`
}

// QueueItem is a product awaiting moderation together with its screening
// result.
type QueueItem struct {
	domain.Product
	Screening ScreeningResult `json:"screening"`
}

// ModerationService implements the admin product moderation workflow:
// pending products move to approved or rejected exactly once, the vendor is
// notified, and a domain event is published.
type ModerationService struct {
	products      repository.ProductRepository
	reviews       repository.ReviewRepository
	notifications repository.NotificationRepository
	events        *event.Producer
	reasons       []string
	bannedWords   []string
	logger        *slog.Logger
	now           func() time.Time
}

// NewModerationService creates a new moderation service.
func NewModerationService(
	products repository.ProductRepository,
	reviews repository.ReviewRepository,
	notifications repository.NotificationRepository,
	events *event.Producer,
	cfg ModerationConfig,
	logger *slog.Logger,
) *ModerationService {
	reasons := cfg.RejectionReasons
	if len(reasons) == 0 {
		reasons = domain.RejectionReasons()
	}

	return &ModerationService{
		products:      products,
		reviews:       reviews,
		notifications: notifications,
		events:        events,
		reasons:       reasons,
		bannedWords:   cfg.BannedWords,
		logger:        logger,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// RejectionReasons returns the configured set of admissible rejection reasons.
func (s *ModerationService) RejectionReasons() []string {
	out := make([]string, len(s.reasons))
	copy(out, s.reasons)
	return out
}

// Queue returns products matching the filter, each annotated with its
// content screening result. The default filter selects pending products.
func (s *ModerationService) Queue(ctx context.Context, filter repository.ProductFilter) ([]QueueItem, int, error) {
	if filter.Status == nil {
		status := domain.ProductStatusPending
		filter.Status = &status
	}

	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}

	items := make([]QueueItem, 0, len(products))
	for _, p := range products {
		items = append(items, QueueItem{
			Product:   p,
			Screening: s.ScreenContent(p.Name + " " + p.Description),
		})
	}

	return items, total, nil
}

// ApproveProduct moves a pending product to approved, clears any flag on it,
// stamps the approver, notifies the vendor and publishes a product.approved
// event. Only pending products can be approved.
func (s *ModerationService) ApproveProduct(ctx context.Context, productID, approverID string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}

	if product.Status != domain.ProductStatusPending {
		return nil, apperrors.InvalidInput(fmt.Sprintf("product is not pending moderation: status is %s", product.Status))
	}

	now := s.now()
	product.Status = domain.ProductStatusApproved
	product.IsFlagged = false
	product.FlaggedReason = nil
	product.ApprovedAt = &now
	product.ApprovedBy = &approverID
	product.UpdatedAt = now

	if err := s.products.UpdateModeration(ctx, product); err != nil {
		return nil, fmt.Errorf("update product moderation: %w", err)
	}

	s.notifyVendor(ctx, product.VendorID, domain.NotificationTypeProductApproved,
		fmt.Sprintf("Your product %q has been approved and is now live.", product.Name),
		map[string]any{"product_id": product.ID},
	)

	if err := s.events.PublishProductApproved(ctx, product, approverID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product approved event",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product approved",
		slog.String("product_id", product.ID),
		slog.String("approved_by", approverID),
	)

	return product, nil
}

// RejectProduct moves a pending product to rejected with the given reason.
// The reason must come from the configured set; anything else is a validation
// error and leaves the product untouched.
func (s *ModerationService) RejectProduct(ctx context.Context, productID, reason string) (*domain.Product, error) {
	if !s.isValidReason(reason) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid rejection reason: %q", reason))
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}

	if product.Status != domain.ProductStatusPending {
		return nil, apperrors.InvalidInput(fmt.Sprintf("product is not pending moderation: status is %s", product.Status))
	}

	now := s.now()
	product.Status = domain.ProductStatusRejected
	product.IsFlagged = true
	product.FlaggedReason = &reason
	product.UpdatedAt = now

	if err := s.products.UpdateModeration(ctx, product); err != nil {
		return nil, fmt.Errorf("update product moderation: %w", err)
	}

	s.notifyVendor(ctx, product.VendorID, domain.NotificationTypeProductRejected,
		fmt.Sprintf("Your product %q was rejected: %s", product.Name, reason),
		map[string]any{"product_id": product.ID, "reason": reason},
	)

	if err := s.events.PublishProductRejected(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product rejected event",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product rejected",
		slog.String("product_id", product.ID),
		slog.String("reason", reason),
	)

	return product, nil
}

// FlagProduct marks a product for review without changing its status. The
// vendor is notified and a product.flagged event is published.
func (s *ModerationService) FlagProduct(ctx context.Context, productID, reason string) (*domain.Product, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, apperrors.InvalidInput("flag reason is required")
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}

	product.IsFlagged = true
	product.FlaggedReason = &reason
	product.UpdatedAt = s.now()

	if err := s.products.UpdateModeration(ctx, product); err != nil {
		return nil, fmt.Errorf("update product moderation: %w", err)
	}

	s.notifyVendor(ctx, product.VendorID, domain.NotificationTypeFlaggedProduct,
		fmt.Sprintf("Your product %q has been flagged for review: %s", product.Name, reason),
		map[string]any{"product_id": product.ID, "reason": reason},
	)

	if err := s.events.PublishProductFlagged(ctx, product, reason); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product flagged event",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
	}

	return product, nil
}

// SetReviewVisibility hides or restores a customer review.
func (s *ModerationService) SetReviewVisibility(ctx context.Context, reviewID string, visible bool) (*domain.Review, error) {
	if err := s.reviews.SetVisibility(ctx, reviewID, visible); err != nil {
		return nil, fmt.Errorf("set review visibility: %w", err)
	}

	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}

	s.logger.InfoContext(ctx, "review visibility changed",
		slog.String("review_id", reviewID),
		slog.Bool("visible", visible),
	)

	return review, nil
}

// ScreenContent matches text against the banned word list, case-insensitively.
// The result is advisory; it never blocks or mutates a product.
func (s *ModerationService) ScreenContent(text string) ScreeningResult {
	lowered := strings.ToLower(text)

	var matches []string
	for _, word := range s.bannedWords {
		if word == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(word)) {
			matches = append(matches, word)
		}
	}

	return ScreeningResult{
		Flagged: len(matches) > 0,
		Matches: matches,
	}
}

func (s *ModerationService) isValidReason(reason string) bool {
	for _, r := range s.reasons {
		if r == reason {
			return true
		}
	}
	return false
}

// notifyVendor records an in-app notification. A failure here is logged and
// swallowed so moderation outcomes are never rolled back by it.
func (s *ModerationService) notifyVendor(ctx context.Context, vendorID, notifType, message string, metadata map[string]any) {
	notification := &domain.Notification{
		ID:        uuid.NewString(),
		UserID:    vendorID,
		Type:      notifType,
		Message:   message,
		Metadata:  metadata,
		CreatedAt: s.now(),
	}

	if err := s.notifications.Create(ctx, notification); err != nil {
		s.logger.ErrorContext(ctx, "failed to create notification",
			slog.String("user_id", vendorID),
			slog.String("type", notifType),
			slog.String("error", err.Error()),
		)
	}
}
