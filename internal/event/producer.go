package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Ostelo999925/uniket-sub002/internal/domain"
	pkgkafka "github.com/Ostelo999925/uniket-sub002/pkg/kafka"
)

// Kafka topic constants for marketplace domain events.
const (
	TopicProductApproved = "uniket.product.approved"
	TopicProductRejected = "uniket.product.rejected"
	TopicProductFlagged  = "uniket.product.flagged"
	TopicSettingsUpdated = "uniket.settings.updated"
)

// Aggregate type constants.
const (
	AggregateTypeProduct  = "product"
	AggregateTypeSettings = "settings"
)

// Source identifier for events originating from this service.
const SourceMarketplace = "marketplace"

// ProductModeratedData is the payload for product.approved and
// product.rejected events.
type ProductModeratedData struct {
	ID            string  `json:"id"`
	VendorID      string  `json:"vendor_id"`
	Name          string  `json:"name"`
	Status        string  `json:"status"`
	FlaggedReason *string `json:"flagged_reason,omitempty"`
	ModeratorID   string  `json:"moderator_id,omitempty"`
}

// ProductFlaggedData is the payload for a product.flagged event.
type ProductFlaggedData struct {
	ID       string `json:"id"`
	VendorID string `json:"vendor_id"`
	Reason   string `json:"reason"`
}

// SettingsUpdatedData is the payload for a settings.updated event.
type SettingsUpdatedData struct {
	CommissionPercent float64 `json:"commission_percent"`
	MinWithdrawal     int64   `json:"min_withdrawal"`
	MaxWithdrawal     int64   `json:"max_withdrawal"`
	UpdatedBy         string  `json:"updated_by,omitempty"`
}

// Producer publishes marketplace domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the marketplace service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishProductApproved publishes a product.approved event.
func (p *Producer) PublishProductApproved(ctx context.Context, product *domain.Product, moderatorID string) error {
	data := ProductModeratedData{
		ID:          product.ID,
		VendorID:    product.VendorID,
		Name:        product.Name,
		Status:      product.Status,
		ModeratorID: moderatorID,
	}

	return p.publish(ctx, TopicProductApproved, product.ID, AggregateTypeProduct, data)
}

// PublishProductRejected publishes a product.rejected event.
func (p *Producer) PublishProductRejected(ctx context.Context, product *domain.Product) error {
	data := ProductModeratedData{
		ID:            product.ID,
		VendorID:      product.VendorID,
		Name:          product.Name,
		Status:        product.Status,
		FlaggedReason: product.FlaggedReason,
	}

	return p.publish(ctx, TopicProductRejected, product.ID, AggregateTypeProduct, data)
}

// PublishProductFlagged publishes a product.flagged event.
func (p *Producer) PublishProductFlagged(ctx context.Context, product *domain.Product, reason string) error {
	data := ProductFlaggedData{
		ID:       product.ID,
		VendorID: product.VendorID,
		Reason:   reason,
	}

	return p.publish(ctx, TopicProductFlagged, product.ID, AggregateTypeProduct, data)
}

// PublishSettingsUpdated publishes a settings.updated event.
func (p *Producer) PublishSettingsUpdated(ctx context.Context, settings *domain.Settings) error {
	data := SettingsUpdatedData{
		CommissionPercent: settings.CommissionPercent,
		MinWithdrawal:     settings.MinWithdrawal,
		MaxWithdrawal:     settings.MaxWithdrawal,
	}
	if settings.UpdatedBy != nil {
		data.UpdatedBy = *settings.UpdatedBy
	}

	return p.publish(ctx, TopicSettingsUpdated, "marketplace", AggregateTypeSettings, data)
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) error {
	event, err := pkgkafka.NewEvent(topic, aggregateID, aggregateType, SourceMarketplace, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published event",
		slog.String("topic", topic),
		slog.String("aggregate_id", aggregateID),
	)

	return nil
}
