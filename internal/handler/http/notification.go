package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Ostelo999925/uniket-sub002/internal/service"
	"github.com/Ostelo999925/uniket-sub002/pkg/httputil"
	"github.com/Ostelo999925/uniket-sub002/pkg/pagination"
)

// NotificationHandler handles HTTP requests for the user notification feed.
type NotificationHandler struct {
	service *service.NotificationService
	logger  *slog.Logger
}

// NewNotificationHandler creates a new notification HTTP handler.
func NewNotificationHandler(svc *service.NotificationService, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: svc,
		logger:  logger,
	}
}

// ListNotifications handles GET /api/v1/notifications
// @Summary List the caller's notifications
// @Tags notifications
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page (max 100)" default(20)
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/v1/notifications [get]
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "authentication required"},
		})
		return
	}

	params := pagination.FromRequest(r)

	notifications, total, err := h.service.ListForUser(r.Context(), userID, params.Page, params.PerPage)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.NewPaginatedResponse(notifications, total, params.Page, params.PerPage))
}

// MarkRead handles POST /api/v1/notifications/{id}/read
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Param id path string true "Notification UUID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.service.MarkRead(r.Context(), id.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "status": "read"}})
}
