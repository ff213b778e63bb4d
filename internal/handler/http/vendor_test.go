package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Ostelo999925/uniket-sub002/pkg/errors"

	"github.com/Ostelo999925/uniket-sub002/internal/domain"
	"github.com/Ostelo999925/uniket-sub002/internal/service"
)

func vendorTestRouter(
	vendors *mockVendorRepo,
	products *mockProductRepo,
	orders *mockOrderRepo,
	reviews *mockReviewRepo,
) *chi.Mux {
	logger := handlerTestLogger()
	stats := service.NewStatsService(vendors, products, orders, reviews, logger)
	handler := NewVendorHandler(stats, logger)

	r := chi.NewRouter()
	r.Route("/api/v1/vendors", func(r chi.Router) {
		r.Get("/leaderboard", handler.Leaderboard)
		r.Get("/{id}/stats", handler.GetVendorStats)
	})
	return r
}

func TestGetVendorStatsEndpoint_Success(t *testing.T) {
	vendors := new(mockVendorRepo)
	products := new(mockProductRepo)
	orders := new(mockOrderRepo)
	reviews := new(mockReviewRepo)
	router := vendorTestRouter(vendors, products, orders, reviews)

	now := time.Now().UTC()
	vendors.On("GetByID", mock.Anything, testVendorID).Return(&domain.Vendor{ID: testVendorID}, nil)
	products.On("ListByVendor", mock.Anything, testVendorID).Return([]domain.Product{
		{ID: "p1", VendorID: testVendorID, Name: "Desk Lamp", Views: 100},
	}, nil)
	orders.On("ListCompletedByVendor", mock.Anything, testVendorID).Return([]domain.Order{
		{ID: "o1", ProductID: "p1", Quantity: 2, Total: 40, CreatedAt: now},
	}, nil)
	reviews.On("ListVisibleByVendor", mock.Anything, testVendorID).Return([]domain.Review{
		{ID: "r1", ProductID: "p1", Rating: 5},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/vendors/"+testVendorID+"/stats", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.Nil(t, resp.Error)

	data := resp.Data.(map[string]any)
	assert.Equal(t, float64(2), data["total_sales"])
	assert.Equal(t, float64(40), data["total_revenue"])
	assert.Equal(t, float64(100), data["total_views"])
	assert.Len(t, data["sales_over_time"], 12)
}

func TestGetVendorStatsEndpoint_UnknownVendor(t *testing.T) {
	vendors := new(mockVendorRepo)
	router := vendorTestRouter(vendors, new(mockProductRepo), new(mockOrderRepo), new(mockReviewRepo))

	vendors.On("GetByID", mock.Anything, testVendorID).
		Return(nil, apperrors.NotFound("vendor", testVendorID))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/vendors/"+testVendorID+"/stats", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetVendorStatsEndpoint_InvalidUUID(t *testing.T) {
	router := vendorTestRouter(new(mockVendorRepo), new(mockProductRepo), new(mockOrderRepo), new(mockReviewRepo))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/vendors/nope/stats", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLeaderboardEndpoint_Success(t *testing.T) {
	vendors := new(mockVendorRepo)
	products := new(mockProductRepo)
	orders := new(mockOrderRepo)
	reviews := new(mockReviewRepo)
	router := vendorTestRouter(vendors, products, orders, reviews)

	vendors.On("ListAll", mock.Anything).Return([]domain.Vendor{
		{ID: "v1", StoreName: "Alpha Store"},
		{ID: "v2", StoreName: "Beta Store"},
	}, nil)
	products.On("CountByVendor", mock.Anything).Return(map[string]int{"v1": 2}, nil)
	orders.On("ListCompletedSince", mock.Anything, mock.AnythingOfType("time.Time")).Return([]domain.Order{
		{ID: "o1", VendorID: "v2", Quantity: 4, Total: 100, CreatedAt: time.Now().UTC()},
	}, nil)
	reviews.On("ListVisibleSince", mock.Anything, mock.AnythingOfType("time.Time")).Return([]domain.Review{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/vendors/leaderboard?category=topSellers", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []domain.LeaderboardEntry `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "v2", resp.Data[0].VendorID)
	assert.Equal(t, 4, resp.Data[0].Sales)
}

func TestLeaderboardEndpoint_UnknownCategoryStillOK(t *testing.T) {
	vendors := new(mockVendorRepo)
	products := new(mockProductRepo)
	orders := new(mockOrderRepo)
	reviews := new(mockReviewRepo)
	router := vendorTestRouter(vendors, products, orders, reviews)

	vendors.On("ListAll", mock.Anything).Return([]domain.Vendor{}, nil)
	products.On("CountByVendor", mock.Anything).Return(map[string]int{}, nil)
	orders.On("ListCompletedSince", mock.Anything, mock.AnythingOfType("time.Time")).Return([]domain.Order{}, nil)
	reviews.On("ListVisibleSince", mock.Anything, mock.AnythingOfType("time.Time")).Return([]domain.Review{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/vendors/leaderboard?category=whatever", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
