package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/satirist/server/internal/auth"
	"codeberg.org/satirist/server/satirist/users"
)

func newRouter(repo users.Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), repo, []string{"github"}, false)

	return r
}

func TestGetCurrentUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	repo := users.NewMemoryRepository()
	user, err := repo.FindOrCreateByProvider(context.Background(), users.ProviderIdentity{
		Provider: "github", ProviderID: "7", Email: "cartoonist@example.com", Name: "Cartoonist",
	})
	require.NoError(t, err)

	token, err := auth.GenerateJWT(user.ID, user.Email, user.Name)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	newRouter(repo).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, user.ID, resp.User.ID)
}

func TestGetCurrentUser_Unauthenticated(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	w := httptest.NewRecorder()
	newRouter(users.NewMemoryRepository()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetCurrentUser_DeletedUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := auth.GenerateJWT("ghost", "ghost@example.com", "")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	newRouter(users.NewMemoryRepository()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBeginAuth_UnknownProvider(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(users.NewMemoryRepository()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/auth/myspace", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProvidersAndLogout(t *testing.T) {
	r := newRouter(users.NewMemoryRepository())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/auth/providers", nil))
	assert.JSONEq(t, `{"providers":["github"]}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, strings.Join(w.Header().Values("Set-Cookie"), "\n"), auth.TokenCookie+"=;")
}
