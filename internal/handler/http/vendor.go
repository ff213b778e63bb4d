package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Ostelo999925/uniket-sub002/internal/service"
	"github.com/Ostelo999925/uniket-sub002/pkg/httputil"
)

// VendorHandler handles HTTP requests for vendor dashboard endpoints.
type VendorHandler struct {
	stats  *service.StatsService
	logger *slog.Logger
}

// NewVendorHandler creates a new vendor HTTP handler.
func NewVendorHandler(stats *service.StatsService, logger *slog.Logger) *VendorHandler {
	return &VendorHandler{
		stats:  stats,
		logger: logger,
	}
}

// GetVendorStats handles GET /api/v1/vendors/{id}/stats
// @Summary Vendor metrics snapshot
// @Description Returns sales, revenue, views, rating rates, top products, recent orders and a 12-month sales series for one vendor
// @Tags vendors
// @Produce json
// @Param id path string true "Vendor UUID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/vendors/{id}/stats [get]
func (h *VendorHandler) GetVendorStats(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	stats, err := h.stats.VendorStats(r.Context(), id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: stats})
}

// Leaderboard handles GET /api/v1/vendors/leaderboard
// @Summary Vendor leaderboard
// @Description Returns the top 10 vendors ranked by the selected category over the trailing 30 days
// @Tags vendors
// @Produce json
// @Param category query string false "Ranking category" Enums(topSellers,mostOrders,mostProducts,bestRated) default(topSellers)
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/vendors/leaderboard [get]
func (h *VendorHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	entries, err := h.stats.Leaderboard(r.Context(), category)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: entries})
}
