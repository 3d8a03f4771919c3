package feedback

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/satirist/server/internal/auth"
	"codeberg.org/satirist/server/satirist/feedback"
)

func setup(t *testing.T) (*gin.Engine, *feedback.Store, string) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	store := feedback.NewStore(t.TempDir())

	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), store)

	token, err := auth.GenerateJWT("user-9", "critic@example.com", "Critic")
	require.NoError(t, err)

	return r, store, token
}

func submit(r *gin.Engine, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "test-agent")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func TestSubmit(t *testing.T) {
	r, store, token := setup(t)

	w := submit(r, token, `{"feedbackType":"bug","rating":4,"message":"caption overflows on mobile"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp SubmitResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	entries, err := store.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, resp.ID, entries[0].ID)
	assert.Equal(t, "user-9", entries[0].UserID)
	assert.Equal(t, "critic@example.com", entries[0].Email)
	assert.Equal(t, "test-agent", entries[0].UserAgent)
	require.NotNil(t, entries[0].Rating)
	assert.Equal(t, 4, *entries[0].Rating)
}

func TestSubmit_Invalid(t *testing.T) {
	r, store, token := setup(t)

	tests := []struct {
		name string
		body string
	}{
		{"unknown type", `{"feedbackType":"praise","message":"hi"}`},
		{"rating too high", `{"feedbackType":"general","rating":6,"message":"hi"}`},
		{"rating zero", `{"feedbackType":"general","rating":0,"message":"hi"}`},
		{"missing message", `{"feedbackType":"general"}`},
		{"blank message", `{"feedbackType":"general","message":"   "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := submit(r, token, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	entries, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSubmit_Unauthenticated(t *testing.T) {
	r, _, _ := setup(t)

	w := submit(r, "", `{"feedbackType":"general","message":"hello"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDownload(t *testing.T) {
	r, _, token := setup(t)

	require.Equal(t, http.StatusCreated, submit(r, token, `{"feedbackType":"feature_request","message":"dark mode, please"}`).Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/feedback/download", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "id,"))
	assert.Contains(t, lines[1], "dark mode, please")
}
