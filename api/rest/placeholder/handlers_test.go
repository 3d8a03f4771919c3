package placeholder

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, query url.Values) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/placeholder-comic?"+query.Encode(), nil))

	return w
}

func TestHandler_RendersCaption(t *testing.T) {
	w := serve(t, url.Values{
		"dialogue":  {"We have formed a committee to study the committee"},
		"situation": {"Minister inaugurates pothole"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "image/svg+xml"))
	assert.Contains(t, w.Header().Get("Cache-Control"), "no-cache")
	assert.Contains(t, w.Body.String(), "<svg")
	assert.Contains(t, w.Body.String(), "committee")
}

func TestHandler_EscapesMarkup(t *testing.T) {
	w := serve(t, url.Values{"dialogue": {`<script>alert("x")</script>`}})

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "<script>")
}

func TestHandler_Deterministic(t *testing.T) {
	q := url.Values{"dialogue": {"Same words"}, "situation": {"protest rally"}}

	assert.Equal(t, serve(t, q).Body.String(), serve(t, q).Body.String())
}

func TestHandler_EmptyQuery(t *testing.T) {
	w := serve(t, url.Values{})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "</svg>")
}
