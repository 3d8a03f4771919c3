package register

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/satirist/server/internal/auth"
	"codeberg.org/satirist/server/internal/errors"
	"codeberg.org/satirist/server/internal/quota"
)

func register(t *testing.T, r *gin.Engine, userID string) *httptest.ResponseRecorder {
	t.Helper()

	token, err := auth.GenerateJWT(userID, userID+"@example.com", userID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/mvp-register", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func TestRegister_UntilCapacity(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	svc := quota.NewService(quota.NewMemoryStore(), quota.Options{DailyLimit: 10, Capacity: 2})
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), svc)

	for i, user := range []string{"ana", "ben"} {
		w := register(t, r, user)
		require.Equal(t, http.StatusOK, w.Code)

		var resp Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, i+1, resp.UserNumber)
	}

	w := register(t, r, "cat")
	require.Equal(t, http.StatusForbidden, w.Code)

	var closed errors.RegistrationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &closed))
	assert.True(t, closed.Waitlist)
	assert.Equal(t, errors.CodeRegistrationClosed, closed.Error)

	// a registered user keeps their number after the cap is reached
	w = register(t, r, "ana")
	require.Equal(t, http.StatusOK, w.Code)

	var again Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &again))
	assert.Equal(t, 1, again.UserNumber)
	assert.Contains(t, again.Message, "already")
}

func TestRegister_Unauthenticated(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), quota.NewService(quota.NewMemoryStore(), quota.Options{Capacity: 1}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/mvp-register", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
