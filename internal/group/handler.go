package group

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Jaydev1110/TripShare/internal/auth"
	"github.com/Jaydev1110/TripShare/pkg/response"
)

// Handler handles HTTP requests for group operations
type Handler struct {
	service *Service
}

// NewHandler creates a new group handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for group endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.ListMine)
	r.Post("/join", h.Join)
	r.Get("/{id}", h.Get)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/approve", h.ApproveMember)
	r.Get("/{id}/members", h.ListMembers)
	r.Post("/{id}/leave", h.Leave)
	r.Post("/{id}/extend", h.Extend)
	r.Get("/{id}/qr", h.QRCode)

	return r
}

func (h *Handler) identity(w http.ResponseWriter, r *http.Request) (*auth.Identity, bool) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
	}
	return identity, ok
}

// Create handles POST /groups
// @Summary      Create a new group
// @Description  Create a time-bounded group; the caller becomes the approved owner
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        request body CreateGroupRequest true "Group creation request"
// @Success      201 {object} response.APIResponse{data=GroupResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /groups [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Title == "" || req.ExpiresInDays < 1 {
		response.BadRequest(w, "title and a positive expires_in_days are required")
		return
	}

	g, err := h.service.Create(r.Context(), identity.UserID, req.Title, req.ExpiresInDays)
	if err != nil {
		if errors.Is(err, ErrCodeExhausted) {
			response.Conflict(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to create group")
		return
	}

	response.JSON(w, http.StatusCreated, ToGroupResponse(g))
}

// ListMine handles GET /groups
// @Summary      List my groups
// @Tags         groups
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]GroupResponse}
// @Router       /groups [get]
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	groups, err := h.service.ListMine(r.Context(), identity.UserID)
	if err != nil {
		response.InternalError(w, "Failed to list groups")
		return
	}

	resp := make([]*GroupResponse, len(groups))
	for i, g := range groups {
		resp[i] = ToGroupResponse(g)
	}
	response.JSON(w, http.StatusOK, resp)
}

// Get handles GET /groups/{id}
// @Summary      Get group metadata
// @Tags         groups
// @Produce      json
// @Param        id path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=GroupResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.identity(w, r); !ok {
		return
	}

	g, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get group")
		return
	}

	response.JSON(w, http.StatusOK, ToGroupResponse(g))
}

// Join handles POST /groups/join
// @Summary      Join a group by code
// @Description  Creates a pending membership; re-joining is idempotent
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        request body JoinGroupRequest true "Join request"
// @Success      200 {object} response.APIResponse{data=JoinResult}
// @Failure      404 {object} response.APIResponse
// @Failure      410 {object} response.APIResponse
// @Router       /groups/join [post]
func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req JoinGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Code == "" {
		response.BadRequest(w, "code is required")
		return
	}

	result, err := h.service.Join(r.Context(), identity.UserID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, ErrGroupNotFound):
			response.NotFound(w, "Invalid group code")
		case errors.Is(err, ErrGroupExpired):
			response.Gone(w, err.Error())
		default:
			response.InternalError(w, "Failed to join group")
		}
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// ApproveMember handles POST /groups/{id}/approve
// @Summary      Approve or reject a pending member
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        id path string true "Group ID"
// @Param        request body ApproveMemberRequest true "Approval request"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{id}/approve [post]
func (h *Handler) ApproveMember(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req ApproveMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.MemberID == "" {
		response.BadRequest(w, "member_id is required")
		return
	}

	err := h.service.ApproveMember(r.Context(), identity.UserID, chi.URLParam(r, "id"), req.MemberID, req.Approve)
	if err != nil {
		h.writeServiceError(w, err, "Failed to update member")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Member updated"})
}

// ListMembers handles GET /groups/{id}/members
// @Summary      List group members
// @Tags         groups
// @Produce      json
// @Param        id path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]MemberResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{id}/members [get]
func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	members, err := h.service.ListMembers(r.Context(), identity.UserID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, err, "Failed to list members")
		return
	}

	resp := make([]*MemberResponse, len(members))
	for i, m := range members {
		resp[i] = ToMemberResponse(m)
	}
	response.JSON(w, http.StatusOK, resp)
}

// Leave handles POST /groups/{id}/leave
// @Summary      Leave a group
// @Tags         groups
// @Produce      json
// @Param        id path string true "Group ID"
// @Success      200 {object} response.APIResponse
// @Router       /groups/{id}/leave [post]
func (h *Handler) Leave(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	if err := h.service.Leave(r.Context(), identity.UserID, chi.URLParam(r, "id")); err != nil {
		response.InternalError(w, "Failed to leave group")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Left group"})
}

// Extend handles POST /groups/{id}/extend
// @Summary      Extend a group's expiry
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        id path string true "Group ID"
// @Param        request body ExtendGroupRequest true "Extension request"
// @Success      200 {object} response.APIResponse{data=ExtendGroupResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{id}/extend [post]
func (h *Handler) Extend(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req ExtendGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.ExtendDays < 1 {
		response.BadRequest(w, "extend_days must be positive")
		return
	}

	newExpiresAt, err := h.service.Extend(r.Context(), identity.UserID, chi.URLParam(r, "id"), req.ExtendDays)
	if err != nil {
		h.writeServiceError(w, err, "Failed to extend group")
		return
	}

	response.JSON(w, http.StatusOK, &ExtendGroupResponse{ExpiresAt: newExpiresAt.Format("2006-01-02T15:04:05Z07:00")})
}

// Delete handles DELETE /groups/{id}
// @Summary      Delete a group and all its photos
// @Tags         groups
// @Produce      json
// @Param        id path string true "Group ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), identity.UserID, chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, err, "Failed to delete group")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Group deleted"})
}

// QRCode handles GET /groups/{id}/qr
// @Summary      Render the join link as a QR image
// @Tags         groups
// @Produce      png
// @Param        id path string true "Group ID"
// @Success      200 {string} binary "PNG image"
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{id}/qr [get]
func (h *Handler) QRCode(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.identity(w, r); !ok {
		return
	}

	png, err := h.service.QRCode(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to render QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrGroupNotFound), errors.Is(err, ErrMemberNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrNotAuthorized):
		response.Forbidden(w, err.Error())
	case errors.Is(err, ErrGroupExpired):
		response.Gone(w, err.Error())
	default:
		response.InternalError(w, fallback)
	}
}
