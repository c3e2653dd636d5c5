package photo

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Jaydev1110/TripShare/internal/auth"
	"github.com/Jaydev1110/TripShare/pkg/response"
)

// defaultSignedURLTTL is used when the request does not specify one.
const defaultSignedURLTTL = time.Hour

// Handler handles HTTP requests for photo operations
type Handler struct {
	service  *Service
	maxBytes int64
}

// NewHandler creates a new photo handler
func NewHandler(service *Service, maxBytes int64) *Handler {
	return &Handler{service: service, maxBytes: maxBytes}
}

// Routes returns the router for photo endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/upload", h.Upload)
	r.Get("/groups/{groupID}", h.ListByGroup)
	r.Post("/signed-urls", h.SignedURLs)
	r.Delete("/{id}", h.Delete)

	return r
}

// Upload handles POST /photos/upload
// @Summary      Upload a photo to a group
// @Description  Multipart upload; requires approved membership in an unexpired group
// @Tags         photos
// @Accept       multipart/form-data
// @Produce      json
// @Param        group_id formData string true "Group ID"
// @Param        file formData file true "Image file"
// @Success      201 {object} response.APIResponse{data=UploadResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      410 {object} response.APIResponse
// @Failure      413 {object} response.APIResponse
// @Router       /photos/upload [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	// Cap the request body slightly above the photo limit so an oversize
	// upload is rejected by the service, not by a connection reset.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+1<<20)

	if err := r.ParseMultipartForm(h.maxBytes + 1<<20); err != nil {
		response.PayloadTooLarge(w, "Upload too large")
		return
	}

	groupID := r.FormValue("group_id")
	if groupID == "" {
		response.BadRequest(w, "group_id is required")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(w, "Failed to read file")
		return
	}

	mimeType := header.Header.Get("Content-Type")

	p, err := h.service.Upload(r.Context(), identity.UserID, groupID, header.Filename, mimeType, data)
	if err != nil {
		h.writeServiceError(w, err, "Failed to upload photo")
		return
	}

	response.JSON(w, http.StatusCreated, ToUploadResponse(p))
}

// ListByGroup handles GET /photos/groups/{groupID}
// @Summary      List a group's photos
// @Tags         photos
// @Produce      json
// @Param        groupID path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]PhotoResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /photos/groups/{groupID} [get]
func (h *Handler) ListByGroup(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	photos, err := h.service.List(r.Context(), identity.UserID, chi.URLParam(r, "groupID"))
	if err != nil {
		h.writeServiceError(w, err, "Failed to list photos")
		return
	}

	resp := make([]*PhotoResponse, len(photos))
	for i, p := range photos {
		resp[i] = ToPhotoResponse(p)
	}
	response.JSON(w, http.StatusOK, resp)
}

// SignedURLs handles POST /photos/signed-urls
// @Summary      Get download links for photos
// @Description  Returns URLs only for photos in groups the caller is approved in
// @Tags         photos
// @Accept       json
// @Produce      json
// @Param        request body SignedURLRequest true "Photo ids and TTL"
// @Success      200 {object} response.APIResponse{data=[]SignedURL}
// @Router       /photos/signed-urls [post]
func (h *Handler) SignedURLs(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	var req SignedURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if len(req.PhotoIDs) == 0 {
		response.BadRequest(w, "photo_ids is required")
		return
	}

	ttl := defaultSignedURLTTL
	if req.ExpiresInSeconds > 0 {
		ttl = time.Duration(req.ExpiresInSeconds) * time.Second
	}

	urls, err := h.service.SignedURLs(r.Context(), identity.UserID, req.PhotoIDs, ttl)
	if err != nil {
		response.InternalError(w, "Failed to create signed URLs")
		return
	}

	response.JSON(w, http.StatusOK, urls)
}

// Delete handles DELETE /photos/{id}
// @Summary      Delete a photo
// @Description  Allowed for the uploader and the group owner
// @Tags         photos
// @Produce      json
// @Param        id path string true "Photo ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /photos/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	if err := h.service.Delete(r.Context(), identity.UserID, chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, err, "Failed to delete photo")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Photo deleted"})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrPhotoNotFound), errors.Is(err, ErrGroupNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrNotAuthorized):
		response.Forbidden(w, err.Error())
	case errors.Is(err, ErrGroupExpired):
		response.Gone(w, err.Error())
	case errors.Is(err, ErrFileTooLarge):
		response.PayloadTooLarge(w, err.Error())
	case errors.Is(err, ErrInvalidMimeType):
		response.BadRequest(w, err.Error())
	default:
		response.InternalError(w, fallback)
	}
}
