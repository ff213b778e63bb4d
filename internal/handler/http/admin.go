package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Ostelo999925/uniket-sub002/internal/domain"
	"github.com/Ostelo999925/uniket-sub002/internal/repository"
	"github.com/Ostelo999925/uniket-sub002/internal/service"
	"github.com/Ostelo999925/uniket-sub002/pkg/httputil"
	"github.com/Ostelo999925/uniket-sub002/pkg/validator"
)

// AdminHandler handles HTTP requests for the admin moderation endpoints.
type AdminHandler struct {
	moderation *service.ModerationService
	logger     *slog.Logger
}

// NewAdminHandler creates a new admin HTTP handler.
func NewAdminHandler(moderation *service.ModerationService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		moderation: moderation,
		logger:     logger,
	}
}

// --- Request DTOs ---

// RejectProductRequest is the JSON request body for rejecting a product.
type RejectProductRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// FlagProductRequest is the JSON request body for flagging a product.
type FlagProductRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}

// ReviewVisibilityRequest is the JSON request body for toggling review visibility.
type ReviewVisibilityRequest struct {
	Visible *bool `json:"visible" validate:"required"`
}

// --- Handlers ---

// ListProducts handles GET /api/v1/admin/products
// @Summary List products for moderation
// @Description Returns a paginated product list, pending by default, each annotated with its content screening result
// @Tags admin
// @Produce json
// @Param status query string false "Filter by status" Enums(pending,approved,rejected)
// @Param flagged query bool false "Filter by flagged state"
// @Param vendor_id query string false "Filter by vendor UUID"
// @Param search query string false "Search in name and description"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page (max 100)" default(20)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/admin/products [get]
func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter := repository.ProductFilter{
		Page:    1,
		PerPage: 20,
	}

	if v := r.URL.Query().Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "page must be a valid positive integer"},
			})
			return
		}
		filter.Page = page
	}
	if v := r.URL.Query().Get("per_page"); v != "" {
		perPage, err := strconv.Atoi(v)
		if err != nil || perPage < 1 || perPage > 100 {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "per_page must be a valid integer between 1 and 100"},
			})
			return
		}
		filter.PerPage = perPage
	}
	if v := r.URL.Query().Get("status"); v != "" {
		if !domain.IsValidStatus(v) {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "status must be one of: pending, approved, rejected"},
			})
			return
		}
		filter.Status = &v
	}
	if v := r.URL.Query().Get("flagged"); v != "" {
		flagged, err := strconv.ParseBool(v)
		if err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "flagged must be true or false"},
			})
			return
		}
		filter.Flagged = &flagged
	}
	if v := r.URL.Query().Get("vendor_id"); v != "" {
		filter.VendorID = &v
	}
	if v := r.URL.Query().Get("search"); v != "" {
		filter.Search = &v
	}

	items, total, err := h.moderation.Queue(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.NewPaginatedResponse(items, total, filter.Page, filter.PerPage))
}

// ListRejectionReasons handles GET /api/v1/admin/rejection-reasons
// @Summary List admissible rejection reasons
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/admin/rejection-reasons [get]
func (h *AdminHandler) ListRejectionReasons(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.moderation.RejectionReasons()})
}

// ApproveProduct handles POST /api/v1/admin/products/{id}/approve
// @Summary Approve a pending product
// @Description Moves a pending product to approved, clears any flag and notifies the vendor
// @Tags admin
// @Produce json
// @Param id path string true "Product UUID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/admin/products/{id}/approve [post]
func (h *AdminHandler) ApproveProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	approverID, _ := userIDFromContext(r.Context())

	product, err := h.moderation.ApproveProduct(r.Context(), id.String(), approverID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// RejectProduct handles POST /api/v1/admin/products/{id}/reject
// @Summary Reject a pending product
// @Description Moves a pending product to rejected with a reason from the fixed set and notifies the vendor
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Product UUID"
// @Param request body RejectProductRequest true "Rejection reason"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/admin/products/{id}/reject [post]
func (h *AdminHandler) RejectProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req RejectProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	product, err := h.moderation.RejectProduct(r.Context(), id.String(), req.Reason)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// FlagProduct handles POST /api/v1/admin/products/{id}/flag
// @Summary Flag a product for review
// @Description Marks a product as flagged without changing its status and notifies the vendor
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Product UUID"
// @Param request body FlagProductRequest true "Flag reason"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/admin/products/{id}/flag [post]
func (h *AdminHandler) FlagProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req FlagProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	product, err := h.moderation.FlagProduct(r.Context(), id.String(), req.Reason)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// SetReviewVisibility handles PATCH /api/v1/admin/reviews/{id}/visibility
// @Summary Hide or restore a customer review
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Review UUID"
// @Param request body ReviewVisibilityRequest true "Visibility flag"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/admin/reviews/{id}/visibility [patch]
func (h *AdminHandler) SetReviewVisibility(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req ReviewVisibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	review, err := h.moderation.SetReviewVisibility(r.Context(), id.String(), *req.Visible)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: review})
}
