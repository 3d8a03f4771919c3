package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestQuotaExceeded_EchoesUsage(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	QuotaExceeded(c, 10, 10, "")

	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, false, body["success"])
	assert.Equal(t, CodeQuotaExceeded, body["error"])
	assert.Equal(t, float64(10), body["current"])
	assert.Equal(t, float64(10), body["limit"])
}

func TestRegistrationClosed_SetsWaitlist(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RegistrationClosed(c, "")

	assert.Equal(t, http.StatusForbidden, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["waitlist"])
}

func TestClassifyError(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	tests := []struct {
		name     string
		err      error
		category string
		message  string
	}{
		{"deadline", context.DeadlineExceeded, CategoryTimeout, "request timed out"},
		{"wrapped cancel", fmt.Errorf("call: %w", context.Canceled), CategoryTimeout, "request canceled"},
		{"network", fmt.Errorf("dial tcp: connection refused"), CategoryNetwork, "connection error occurred"},
		{"unknown", fmt.Errorf("boom"), CategoryUnknown, "an error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := classifyError(tt.err)
			assert.Equal(t, tt.category, info.category)
			assert.Equal(t, tt.message, info.sanitized)
		})
	}
}

func TestSanitizeError_Development(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")

	assert.Equal(t, "boom", sanitizeError(fmt.Errorf("boom")))
	assert.Equal(t, "", sanitizeError(nil))
}
