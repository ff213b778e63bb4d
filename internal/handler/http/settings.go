package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Ostelo999925/uniket-sub002/internal/domain"
	"github.com/Ostelo999925/uniket-sub002/internal/service"
	"github.com/Ostelo999925/uniket-sub002/pkg/httputil"
	"github.com/Ostelo999925/uniket-sub002/pkg/validator"
)

// SettingsHandler handles HTTP requests for marketplace settings and pickup
// points.
type SettingsHandler struct {
	service *service.SettingsService
	logger  *slog.Logger
}

// NewSettingsHandler creates a new settings HTTP handler.
func NewSettingsHandler(svc *service.SettingsService, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// UpdateSettingsRequest is the JSON request body for updating marketplace settings.
type UpdateSettingsRequest struct {
	CommissionPercent float64 `json:"commission_percent" validate:"gte=0,lte=100"`
	MinWithdrawal     int64   `json:"min_withdrawal" validate:"gte=0"`
	MaxWithdrawal     int64   `json:"max_withdrawal" validate:"gte=0"`
}

// CreatePickupPointRequest is the JSON request body for creating a pickup point.
type CreatePickupPointRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=200"`
	Location string `json:"location" validate:"required,min=2,max=500"`
}

// UpdatePickupPointRequest is the JSON request body for updating a pickup point.
type UpdatePickupPointRequest struct {
	Name     string `json:"name" validate:"omitempty,min=2,max=200"`
	Location string `json:"location" validate:"omitempty,min=2,max=500"`
	Active   bool   `json:"active"`
}

// --- Handlers ---

// GetSettings handles GET /api/v1/admin/settings
// @Summary Get marketplace settings
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/admin/settings [get]
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.GetSettings(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: settings})
}

// UpdateSettings handles PUT /api/v1/admin/settings
// @Summary Update marketplace settings
// @Tags admin
// @Accept json
// @Produce json
// @Param request body UpdateSettingsRequest true "New settings"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/admin/settings [put]
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req UpdateSettingsRequest
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

	updatedBy, _ := userIDFromContext(r.Context())

	settings := &domain.Settings{
		CommissionPercent: req.CommissionPercent,
		MinWithdrawal:     req.MinWithdrawal,
		MaxWithdrawal:     req.MaxWithdrawal,
	}

	updated, err := h.service.UpdateSettings(r.Context(), settings, updatedBy)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: updated})
}

// ListPickupPoints handles GET /api/v1/pickup-points
// @Summary List pickup points
// @Tags pickup-points
// @Produce json
// @Param active query bool false "Only active pickup points"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/pickup-points [get]
func (h *SettingsHandler) ListPickupPoints(w http.ResponseWriter, r *http.Request) {
	activeOnly := false
	if v := r.URL.Query().Get("active"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "active must be true or false"},
			})
			return
		}
		activeOnly = parsed
	}

	points, err := h.service.ListPickupPoints(r.Context(), activeOnly)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: points})
}

// CreatePickupPoint handles POST /api/v1/admin/pickup-points
// @Summary Create a pickup point
// @Tags admin
// @Accept json
// @Produce json
// @Param request body CreatePickupPointRequest true "Pickup point to create"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/admin/pickup-points [post]
func (h *SettingsHandler) CreatePickupPoint(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CreatePickupPointRequest
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

	point, err := h.service.CreatePickupPoint(r.Context(), req.Name, req.Location)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: point})
}

// UpdatePickupPoint handles PUT /api/v1/admin/pickup-points/{id}
// @Summary Update a pickup point
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Pickup point UUID"
// @Param request body UpdatePickupPointRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/admin/pickup-points/{id} [put]
func (h *SettingsHandler) UpdatePickupPoint(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req UpdatePickupPointRequest
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

	point, err := h.service.UpdatePickupPoint(r.Context(), id.String(), req.Name, req.Location, req.Active)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: point})
}

// DeletePickupPoint handles DELETE /api/v1/admin/pickup-points/{id}
// @Summary Delete a pickup point
// @Tags admin
// @Produce json
// @Param id path string true "Pickup point UUID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/admin/pickup-points/{id} [delete]
func (h *SettingsHandler) DeletePickupPoint(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.service.DeletePickupPoint(r.Context(), id.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "status": "deleted"}})
}
