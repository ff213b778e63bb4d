package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ostelo999925/uniket-sub002/internal/domain"
	"github.com/Ostelo999925/uniket-sub002/internal/repository"
	"github.com/Ostelo999925/uniket-sub002/pkg/database"
	apperrors "github.com/Ostelo999925/uniket-sub002/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// helpers
// ─────────────────────────────────────────────────────────────────────────────

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	return mock
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

var now = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

// ─── Product column definitions ─────────────────────────────────────────────

var productCols = []string{
	"id", "vendor_id", "name", "description", "category", "price", "views",
	"status", "is_flagged", "flagged_reason", "approved_at", "approved_by",
	"created_at", "updated_at",
}

var productColsWithCount = append(append([]string{}, productCols...), "total_count")

func sampleProduct() domain.Product {
	return domain.Product{
		ID:          "prod-1",
		VendorID:    "vendor-1",
		Name:        "Desk Lamp",
		Description: "A bright desk lamp",
		Category:    "electronics",
		Price:       2500,
		Views:       120,
		Status:      domain.ProductStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func productRow(p domain.Product) []any {
	return []any{
		p.ID, p.VendorID, p.Name, p.Description, p.Category, p.Price, p.Views,
		p.Status, p.IsFlagged, p.FlaggedReason, p.ApprovedAt, p.ApprovedBy,
		p.CreatedAt, p.UpdatedAt,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// ProductRepository
// ─────────────────────────────────────────────────────────────────────────────

func TestProductRepository_GetByID_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	p := sampleProduct()
	mock.ExpectQuery("SELECT (.+) FROM products WHERE id =").
		WithArgs("prod-1").
		WillReturnRows(pgxmock.NewRows(productCols).AddRow(productRow(p)...))

	got, err := repo.GetByID(context.Background(), "prod-1")

	require.NoError(t, err)
	assert.Equal(t, "Desk Lamp", got.Name)
	assert.Equal(t, domain.ProductStatusPending, got.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetByID_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	mock.ExpectQuery("SELECT (.+) FROM products WHERE id =").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.GetByID(context.Background(), "missing")

	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestProductRepository_ListByVendor(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	p1 := sampleProduct()
	p2 := sampleProduct()
	p2.ID = "prod-2"
	p2.Name = "Notebook"

	mock.ExpectQuery("SELECT (.+) FROM products").
		WithArgs("vendor-1").
		WillReturnRows(pgxmock.NewRows(productCols).
			AddRow(productRow(p1)...).
			AddRow(productRow(p2)...))

	got, err := repo.ListByVendor(context.Background(), "vendor-1")

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Notebook", got[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_List_WithFilters(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	p := sampleProduct()
	pending := domain.ProductStatusPending
	flagged := false

	mock.ExpectQuery("SELECT (.+) FROM products").
		WithArgs(pending, flagged, 20, 0).
		WillReturnRows(pgxmock.NewRows(productColsWithCount).
			AddRow(append(productRow(p), 7)...))

	got, total, err := repo.List(context.Background(), repository.ProductFilter{
		Status:  &pending,
		Flagged: boolPtr(false),
		Page:    1,
		PerPage: 20,
	})

	require.NoError(t, err)
	assert.Equal(t, 7, total)
	require.Len(t, got, 1)
	assert.Equal(t, "prod-1", got[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_List_EmptyResult(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	mock.ExpectQuery("SELECT (.+) FROM products").
		WithArgs(20, 0).
		WillReturnRows(pgxmock.NewRows(productColsWithCount))

	got, total, err := repo.List(context.Background(), repository.ProductFilter{Page: 1, PerPage: 20})

	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestProductRepository_UpdateModeration_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	p := sampleProduct()
	p.Status = domain.ProductStatusApproved
	p.ApprovedAt = &now
	p.ApprovedBy = strPtr("admin-1")

	mock.ExpectExec("UPDATE products").
		WithArgs(p.Status, p.IsFlagged, p.FlaggedReason, p.ApprovedAt, p.ApprovedBy, p.UpdatedAt, p.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.UpdateModeration(context.Background(), &p)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_UpdateModeration_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	p := sampleProduct()
	mock.ExpectExec("UPDATE products").
		WithArgs(p.Status, p.IsFlagged, p.FlaggedReason, p.ApprovedAt, p.ApprovedBy, p.UpdatedAt, p.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdateModeration(context.Background(), &p)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestProductRepository_CountByVendor(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	mock.ExpectQuery("SELECT vendor_id, count").
		WillReturnRows(pgxmock.NewRows([]string{"vendor_id", "count"}).
			AddRow("vendor-1", 3).
			AddRow("vendor-2", 1))

	counts, err := repo.CountByVendor(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, counts["vendor-1"])
	assert.Equal(t, 1, counts["vendor-2"])
}
