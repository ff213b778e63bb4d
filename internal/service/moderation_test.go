package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Ostelo999925/uniket-sub002/pkg/errors"
	pkgkafka "github.com/Ostelo999925/uniket-sub002/pkg/kafka"

	"github.com/Ostelo999925/uniket-sub002/internal/domain"
	"github.com/Ostelo999925/uniket-sub002/internal/event"
	"github.com/Ostelo999925/uniket-sub002/internal/repository"
)

// --- Mock notification repository ---

type mockNotificationRepository struct {
	mock.Mock
}

func (m *mockNotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *mockNotificationRepository) ListByUser(ctx context.Context, userID string, page, perPage int) ([]domain.Notification, int, error) {
	args := m.Called(ctx, userID, page, perPage)
	return args.Get(0).([]domain.Notification), args.Int(1), args.Error(2)
}

func (m *mockNotificationRepository) MarkRead(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Test helpers ---

func newTestModerationService(
	products *mockProductRepository,
	reviews *mockReviewRepository,
	notifications *mockNotificationRepository,
	cfg ModerationConfig,
) *ModerationService {
	logger := newTestLogger()
	// Kafka publishes fail silently in tests (no real broker); the service
	// logs and carries on.
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	kafkaProducer := pkgkafka.NewProducer(kafkaCfg, logger)
	producer := event.NewProducer(kafkaProducer, logger)

	svc := NewModerationService(products, reviews, notifications, producer, cfg, logger)
	svc.now = func() time.Time { return testNow }
	return svc
}

func pendingProduct() *domain.Product {
	reason := "Suspicious pricing"
	return &domain.Product{
		ID:            "prod-1",
		VendorID:      "vendor-1",
		Name:          "Desk Lamp",
		Description:   "A bright desk lamp",
		Status:        domain.ProductStatusPending,
		IsFlagged:     true,
		FlaggedReason: &reason,
		CreatedAt:     testNow.Add(-time.Hour),
		UpdatedAt:     testNow.Add(-time.Hour),
	}
}

// --- ApproveProduct tests ---

func TestApproveProduct_Success(t *testing.T) {
	products := new(mockProductRepository)
	reviews := new(mockReviewRepository)
	notifications := new(mockNotificationRepository)
	svc := newTestModerationService(products, reviews, notifications, ModerationConfig{})
	ctx := context.Background()

	products.On("GetByID", ctx, "prod-1").Return(pendingProduct(), nil)
	products.On("UpdateModeration", ctx, mock.AnythingOfType("*domain.Product")).Return(nil)
	notifications.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

	product, err := svc.ApproveProduct(ctx, "prod-1", "admin-1")

	require.NoError(t, err)
	assert.Equal(t, domain.ProductStatusApproved, product.Status)
	// Approval clears any flag, whatever its reason was.
	assert.False(t, product.IsFlagged)
	assert.Nil(t, product.FlaggedReason)
	require.NotNil(t, product.ApprovedAt)
	assert.Equal(t, testNow, *product.ApprovedAt)
	require.NotNil(t, product.ApprovedBy)
	assert.Equal(t, "admin-1", *product.ApprovedBy)

	notifications.AssertCalled(t, "Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.Type == domain.NotificationTypeProductApproved &&
			n.UserID == "vendor-1" &&
			n.Metadata["product_id"] == "prod-1"
	}))

	products.AssertExpectations(t)
	notifications.AssertExpectations(t)
}

func TestApproveProduct_NotPending(t *testing.T) {
	products := new(mockProductRepository)
	reviews := new(mockReviewRepository)
	notifications := new(mockNotificationRepository)
	svc := newTestModerationService(products, reviews, notifications, ModerationConfig{})
	ctx := context.Background()

	approved := pendingProduct()
	approved.Status = domain.ProductStatusApproved
	products.On("GetByID", ctx, "prod-1").Return(approved, nil)

	product, err := svc.ApproveProduct(ctx, "prod-1", "admin-1")

	assert.Nil(t, product)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	products.AssertNotCalled(t, "UpdateModeration", mock.Anything, mock.Anything)
	notifications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestApproveProduct_NotFound(t *testing.T) {
	products := new(mockProductRepository)
	reviews := new(mockReviewRepository)
	notifications := new(mockNotificationRepository)
	svc := newTestModerationService(products, reviews, notifications, ModerationConfig{})
	ctx := context.Background()

	products.On("GetByID", ctx, "missing").Return(nil, apperrors.NotFound("product", "missing"))

	product, err := svc.ApproveProduct(ctx, "missing", "admin-1")

	assert.Nil(t, product)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestApproveProduct_NotificationFailureDoesNotFail(t *testing.T) {
	products := new(mockProductRepository)
	reviews := new(mockReviewRepository)
	notifications := new(mockNotificationRepository)
	svc := newTestModerationService(products, reviews, notifications, ModerationConfig{})
	ctx := context.Background()

	products.On("GetByID", ctx, "prod-1").Return(pendingProduct(), nil)
	products.On("UpdateModeration", ctx, mock.AnythingOfType("*domain.Product")).Return(nil)
	notifications.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).
		Return(apperrors.Internal(assert.AnError))

	product, err := svc.ApproveProduct(ctx, "prod-1", "admin-1")

	require.NoError(t, err)
	assert.Equal(t, domain.ProductStatusApproved, product.Status)
}

// --- RejectProduct tests ---

func TestRejectProduct_Success(t *testing.T) {
	products := new(mockProductRepository)
	reviews := new(mockReviewRepository)
	notifications := new(mockNotificationRepository)
	svc := newTestModerationService(products, reviews, notifications, ModerationConfig{})
	ctx := context.Background()

	fresh := pendingProduct()
	fresh.IsFlagged = false
	fresh.FlaggedReason = nil
	products.On("GetByID", ctx, "prod-1").Return(fresh, nil)
	products.On("UpdateModeration", ctx, mock.AnythingOfType("*domain.Product")).Return(nil)
	notifications.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

	product, err := svc.RejectProduct(ctx, "prod-1", "Duplicate product")

	require.NoError(t, err)
	assert.Equal(t, domain.ProductStatusRejected, product.Status)
	assert.True(t, product.IsFlagged)
	require.NotNil(t, product.FlaggedReason)
	assert.Equal(t, "Duplicate product", *product.FlaggedReason)

	notifications.AssertCalled(t, "Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.Type == domain.NotificationTypeProductRejected &&
			n.UserID == "vendor-1" &&
			n.Metadata["reason"] == "Duplicate product"
	}))

	products.AssertExpectations(t)
}

func TestRejectProduct_InvalidReason_NoStateChange(t *testing.T) {
	products := new(mockProductRepository)
	reviews := new(mockReviewRepository)
	notifications := new(mockNotificationRepository)
	svc := newTestModerationService(products, reviews, notifications, ModerationConfig{})
	ctx := context.Background()

	product, err := svc.RejectProduct(ctx, "prod-1", "I just do not like it")

	assert.Nil(t, product)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	products.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	products.AssertNotCalled(t, "UpdateModeration", mock.Anything, mock.Anything)
	notifications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRejectProduct_AllFixedReasonsAccepted(t *testing.T) {
	for _, reason := range domain.RejectionReasons() {
		products := new(mockProductRepository)
		reviews := new(mockReviewRepository)
		notifications := new(mockNotificationRepository)
		svc := newTestModerationService(products, reviews, notifications, ModerationConfig{})
		ctx := context.Background()

		products.On("GetByID", ctx, "prod-1").Return(pendingProduct(), nil)
		products.On("UpdateModeration", ctx, mock.AnythingOfType("*domain.Product")).Return(nil)
		notifications.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		product, err := svc.RejectProduct(ctx, "prod-1", reason)

		require.NoError(t, err, "reason %q", reason)
		assert.Equal(t, domain.ProductStatusRejected, product.Status)
	}
}

func TestRejectProduct_NotPending(t *testing.T) {
	products := new(mockProductRepository)
	reviews := new(mockReviewRepository)
	notifications := new(mockNotificationRepository)
	svc := newTestModerationService(products, reviews, notifications, ModerationConfig{})
	ctx := context.Background()

	rejected := pendingProduct()
	rejected.Status = domain.ProductStatusRejected
	products.On("GetByID", ctx, "prod-1").Return(rejected, nil)

	product, err := svc.RejectProduct(ctx, "prod-1", "Other")

	assert.Nil(t, product)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	products.AssertNotCalled(t, "UpdateModeration", mock.Anything, mock.Anything)
}

// --- FlagProduct tests ---

func TestFlagProduct_Success(t *testing.T) {
	products := new(mockProductRepository)
	reviews := new(mockReviewRepository)
	notifications := new(mockNotificationRepository)
	svc := newTestModerationService(products, reviews, notifications, ModerationConfig{})
	ctx := context.Background()

	approved := pendingProduct()
	approved.Status = domain.ProductStatusApproved
	approved.IsFlagged = false
	approved.FlaggedReason = nil
	products.On("GetByID", ctx, "prod-1").Return(approved, nil)
	products.On("UpdateModeration", ctx, mock.AnythingOfType("*domain.Product")).Return(nil)
	notifications.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

	product, err := svc.FlagProduct(ctx, "prod-1", "Reported by three buyers")

	require.NoError(t, err)
	// Flagging never changes the moderation status.
	assert.Equal(t, domain.ProductStatusApproved, product.Status)
	assert.True(t, product.IsFlagged)
	require.NotNil(t, product.FlaggedReason)
	assert.Equal(t, "Reported by three buyers", *product.FlaggedReason)

	notifications.AssertCalled(t, "Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.Type == domain.NotificationTypeFlaggedProduct
	}))
}

func TestFlagProduct_EmptyReason(t *testing.T) {
	products := new(mockProductRepository)
	reviews := new(mockReviewRepository)
	notifications := new(mockNotificationRepository)
	svc := newTestModerationService(products, reviews, notifications, ModerationConfig{})
	ctx := context.Background()

	product, err := svc.FlagProduct(ctx, "prod-1", "   ")

	assert.Nil(t, product)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	products.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

// --- ScreenContent tests ---

func TestScreenContent_MatchesCaseInsensitively(t *testing.T) {
	svc := newTestModerationService(
		new(mockProductRepository),
		new(mockReviewRepository),
		new(mockNotificationRepository),
		ModerationConfig{BannedWords: []string{"counterfeit", "replica"}},
	)

	result := svc.ScreenContent("Genuine COUNTERFEIT watch, not a Replica")

	assert.True(t, result.Flagged)
	assert.ElementsMatch(t, []string{"counterfeit", "replica"}, result.Matches)
}

func TestScreenContent_NoMatch(t *testing.T) {
	svc := newTestModerationService(
		new(mockProductRepository),
		new(mockReviewRepository),
		new(mockNotificationRepository),
		ModerationConfig{BannedWords: []string{"counterfeit"}},
	)

	result := svc.ScreenContent("A perfectly ordinary desk lamp")

	assert.False(t, result.Flagged)
	assert.Empty(t, result.Matches)
}

// --- Queue tests ---

func TestQueue_DefaultsToPendingAndAnnotates(t *testing.T) {
	products := new(mockProductRepository)
	reviews := new(mockReviewRepository)
	notifications := new(mockNotificationRepository)
	svc := newTestModerationService(products, reviews, notifications, ModerationConfig{
		BannedWords: []string{"replica"},
	})
	ctx := context.Background()

	pending := domain.ProductStatusPending
	products.On("List", ctx, mock.MatchedBy(func(f repository.ProductFilter) bool {
		return f.Status != nil && *f.Status == pending
	})).Return([]domain.Product{
		{ID: "p1", Name: "Designer replica bag", Status: pending},
		{ID: "p2", Name: "Notebook", Status: pending},
	}, 2, nil)

	items, total, err := svc.Queue(ctx, repository.ProductFilter{Page: 1, PerPage: 20})

	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, items, 2)
	assert.True(t, items[0].Screening.Flagged)
	assert.False(t, items[1].Screening.Flagged)
}

// --- SetReviewVisibility tests ---

func TestSetReviewVisibility_Success(t *testing.T) {
	products := new(mockProductRepository)
	reviews := new(mockReviewRepository)
	notifications := new(mockNotificationRepository)
	svc := newTestModerationService(products, reviews, notifications, ModerationConfig{})
	ctx := context.Background()

	reviews.On("SetVisibility", ctx, "rev-1", false).Return(nil)
	reviews.On("GetByID", ctx, "rev-1").Return(&domain.Review{ID: "rev-1", Visible: false}, nil)

	review, err := svc.SetReviewVisibility(ctx, "rev-1", false)

	require.NoError(t, err)
	assert.False(t, review.Visible)
	reviews.AssertExpectations(t)
}

func TestSetReviewVisibility_NotFound(t *testing.T) {
	products := new(mockProductRepository)
	reviews := new(mockReviewRepository)
	notifications := new(mockNotificationRepository)
	svc := newTestModerationService(products, reviews, notifications, ModerationConfig{})
	ctx := context.Background()

	reviews.On("SetVisibility", ctx, "missing", true).Return(apperrors.NotFound("review", "missing"))

	review, err := svc.SetReviewVisibility(ctx, "missing", true)

	assert.Nil(t, review)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
