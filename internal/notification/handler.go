package notification

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Jaydev1110/TripShare/internal/auth"
	"github.com/Jaydev1110/TripShare/pkg/response"
)

// Handler handles HTTP requests for notifications
type Handler struct {
	repo Repository
}

// NewHandler creates a new notification handler
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// Routes returns the router for notification endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/{id}/read", h.MarkRead)
	return r
}

// List handles GET /notifications
// @Summary      List my notifications
// @Tags         notifications
// @Produce      json
// @Success      200 {object} response.APIResponse
// @Router       /notifications [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	notifications, err := h.repo.ListByRecipient(r.Context(), identity.UserID)
	if err != nil {
		response.InternalError(w, "Failed to list notifications")
		return
	}

	response.JSON(w, http.StatusOK, notifications)
}

// MarkRead handles POST /notifications/{id}/read
// @Summary      Mark a notification as read
// @Tags         notifications
// @Produce      json
// @Param        id path string true "Notification ID"
// @Success      200 {object} response.APIResponse
// @Router       /notifications/{id}/read [post]
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	if err := h.repo.MarkRead(r.Context(), chi.URLParam(r, "id"), identity.UserID); err != nil {
		response.InternalError(w, "Failed to update notification")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Notification updated"})
}
