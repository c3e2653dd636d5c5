package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/Jaydev1110/TripShare/internal/models"
	"github.com/Jaydev1110/TripShare/internal/user"
	"github.com/Jaydev1110/TripShare/pkg/response"
)

// Handler handles HTTP requests for authentication
type Handler struct {
	provider Provider
	users    user.Repository
}

// NewHandler creates a new auth handler
func NewHandler(provider Provider, users user.Repository) *Handler {
	return &Handler{provider: provider, users: users}
}

// Routes returns the router for public auth endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/signup", h.Signup)
	r.Post("/login", h.Login)
	return r
}

// Signup handles POST /auth/signup
// @Summary      Create an account
// @Description  Pass-through registration against the identity provider
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body SignupRequest true "Signup request"
// @Success      201 {object} response.APIResponse
// @Failure      400 {object} response.APIResponse
// @Router       /auth/signup [post]
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" || req.Username == "" {
		response.BadRequest(w, "email, password and username are required")
		return
	}

	identity, err := h.provider.Signup(r.Context(), req.Email, req.Password, req.Username)
	if err != nil {
		if errors.Is(err, ErrSignupRejected) {
			response.BadRequest(w, "Signup rejected by identity provider")
			return
		}
		response.InternalError(w, "Signup failed")
		return
	}

	// Mirror into the local users table. The provider account already
	// exists, so a mirror failure is logged rather than failing signup.
	mirror := &models.User{ID: identity.UserID, Username: identity.Username, Email: identity.Email}
	if err := h.users.Upsert(r.Context(), mirror); err != nil {
		logrus.WithError(err).WithField("user_id", identity.UserID).Error("failed to mirror user record")
	}

	response.JSON(w, http.StatusCreated, identity)
}

// Login handles POST /auth/login
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login request"
// @Success      200 {object} response.APIResponse
// @Failure      401 {object} response.APIResponse
// @Router       /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	token, err := h.provider.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			response.Unauthorized(w, "Invalid credentials")
			return
		}
		response.InternalError(w, "Login failed")
		return
	}

	response.JSON(w, http.StatusOK, token)
}

// Me handles GET /auth/me (mounted behind the auth middleware)
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200 {object} response.APIResponse
// @Failure      401 {object} response.APIResponse
// @Router       /auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := FromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	if u, err := h.users.GetByID(r.Context(), identity.UserID); err == nil && u != nil {
		response.JSON(w, http.StatusOK, u)
		return
	}
	response.JSON(w, http.StatusOK, identity)
}
