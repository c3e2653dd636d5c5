package group

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Jaydev1110/TripShare/internal/auth"
	"github.com/Jaydev1110/TripShare/internal/mocks"
	"github.com/Jaydev1110/TripShare/internal/models"
	"github.com/Jaydev1110/TripShare/pkg/response"
)

// newTestRouter mounts the handler behind middleware that injects a fixed
// caller identity, the way the auth middleware does in production.
func newTestRouter(repo Repository, userID string) http.Handler {
	h := NewHandler(newTestService(repo, nil))

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := auth.NewContext(req.Context(), &auth.Identity{UserID: userID, Username: userID})
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Mount("/groups", h.Routes())
	return r
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, *response.APIResponse) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope response.APIResponse
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	}
	return rec, &envelope
}

func TestCreateGroupEndpoint(t *testing.T) {
	repo := new(mocks.GroupRepositoryMock)
	repo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	router := newTestRouter(repo, "alice")
	rec, envelope := doRequest(t, router, http.MethodPost, "/groups", `{"title":"Trip","expires_in_days":7}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.True(t, envelope.Success)

	data := envelope.Data.(map[string]interface{})
	require.Equal(t, "Trip", data["title"])
	require.Len(t, data["code"], 6)
}

func TestCreateGroupEndpointValidation(t *testing.T) {
	router := newTestRouter(new(mocks.GroupRepositoryMock), "alice")

	rec, envelope := doRequest(t, router, http.MethodPost, "/groups", `{"title":"","expires_in_days":0}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "BAD_REQUEST", envelope.Error.Code)
}

func TestJoinEndpointPending(t *testing.T) {
	repo := new(mocks.GroupRepositoryMock)
	g := &models.Group{ID: "g1", Code: "ABC123", ExpiresAt: testNow.Add(24 * time.Hour)}
	repo.On("GetByCode", mock.Anything, "ABC123").Return(g, nil).Once()
	repo.On("GetMember", mock.Anything, "g1", "bob").Return(nil, nil).Once()
	repo.On("AddMember", mock.Anything, mock.Anything).Return(nil).Once()

	router := newTestRouter(repo, "bob")
	rec, envelope := doRequest(t, router, http.MethodPost, "/groups/join", `{"code":"ABC123"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	data := envelope.Data.(map[string]interface{})
	require.Equal(t, string(JoinStatusPending), data["status"])
	require.Equal(t, false, data["approved"])
}

func TestJoinEndpointExpiredGroupIsGone(t *testing.T) {
	repo := new(mocks.GroupRepositoryMock)
	g := &models.Group{ID: "g1", Code: "ABC123", ExpiresAt: testNow.Add(-time.Hour)}
	repo.On("GetByCode", mock.Anything, "ABC123").Return(g, nil).Once()

	router := newTestRouter(repo, "bob")
	rec, envelope := doRequest(t, router, http.MethodPost, "/groups/join", `{"code":"ABC123"}`)

	require.Equal(t, http.StatusGone, rec.Code)
	require.Equal(t, "GONE", envelope.Error.Code)
}

func TestJoinEndpointInvalidCodeIs404(t *testing.T) {
	repo := new(mocks.GroupRepositoryMock)
	repo.On("GetByCode", mock.Anything, "NOPE00").Return(nil, nil).Once()

	router := newTestRouter(repo, "bob")
	rec, _ := doRequest(t, router, http.MethodPost, "/groups/join", `{"code":"NOPE00"}`)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExtendEndpointForbiddenForNonOwner(t *testing.T) {
	repo := new(mocks.GroupRepositoryMock)
	repo.On("GetByID", mock.Anything, "g1").Return(&models.Group{ID: "g1", OwnerID: "alice"}, nil).Once()

	router := newTestRouter(repo, "bob")
	rec, envelope := doRequest(t, router, http.MethodPost, "/groups/g1/extend", `{"extend_days":7}`)

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "FORBIDDEN", envelope.Error.Code)
}

func TestGetEndpointUnknownGroupIs404(t *testing.T) {
	repo := new(mocks.GroupRepositoryMock)
	repo.On("GetByID", mock.Anything, "missing").Return(nil, nil).Once()

	router := newTestRouter(repo, "bob")
	rec, _ := doRequest(t, router, http.MethodGet, "/groups/missing", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestQREndpointServesPNG(t *testing.T) {
	repo := new(mocks.GroupRepositoryMock)
	g := &models.Group{ID: "g1", Code: "ABC123", ExpiresAt: testNow.Add(time.Hour)}
	repo.On("GetByID", mock.Anything, "g1").Return(g, nil).Once()

	router := newTestRouter(repo, "bob")
	rec, _ := doRequest(t, router, http.MethodGet, "/groups/g1/qr", "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	require.True(t, rec.Body.Len() > 0)
}
