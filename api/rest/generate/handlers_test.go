package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/satirist/server/api/rest/placeholder"
	"codeberg.org/satirist/server/internal/auth"
	"codeberg.org/satirist/server/internal/comics"
	"codeberg.org/satirist/server/internal/errors"
	"codeberg.org/satirist/server/internal/imagegen"
	"codeberg.org/satirist/server/internal/llm"
	"codeberg.org/satirist/server/internal/prompt"
	"codeberg.org/satirist/server/internal/quota"
	"codeberg.org/satirist/server/internal/retry"
	"codeberg.org/satirist/server/internal/satire"
)

// answers caption prompts with a quote and anything else with a scene
type scriptedLLM struct {
	calls atomic.Int32
	err   error
}

func (s *scriptedLLM) GenerateText(_ context.Context, req llm.TextGenerationRequest) (*llm.TextGenerationResponse, error) {
	s.calls.Add(1)

	if s.err != nil {
		return nil, s.err
	}

	if strings.HasPrefix(req.SystemPrompt, "You write captions") {
		return &llm.TextGenerationResponse{Text: `"We have agreed to meet again next year to agree."`}, nil
	}

	return &llm.TextGenerationResponse{Text: "Delegates in suits nap under a melting banner while the Common Man fans himself."}, nil
}

func (s *scriptedLLM) Model() string { return "scripted" }

type harness struct {
	router *gin.Engine
	llm    *scriptedLLM
	token  string
}

func newHarness(t *testing.T, dailyLimit int) *harness {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	gen := &scriptedLLM{}
	writer := satire.NewWriter(gen, satire.WithRetryPolicy(retry.Policy{MaxAttempts: 2, Delay: time.Millisecond}))

	// no image providers configured
	images := imagegen.NewChain(retry.Policy{MaxAttempts: 1}, 1)

	pipeline := comics.NewPipeline(writer, images, prompt.NewOptimizer(), comics.Options{
		PublicSiteURL: "http://satirist.test",
	})

	quotas := quota.NewService(quota.NewMemoryStore(), quota.Options{DailyLimit: dailyLimit, Capacity: 100})

	r := gin.New()
	api := r.Group("/api/v1")
	RegisterRoutes(api, writer, pipeline, quotas, nil)
	placeholder.RegisterRoutes(api)

	token, err := auth.GenerateJWT("user-1", "reader@example.com", "Reader")
	require.NoError(t, err)

	return &harness{router: r, llm: gen, token: token}
}

func (h *harness) post(t *testing.T, path string, body any, authed bool) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)

	return w
}

func TestGenerateComic_FallsBackToPlaceholder(t *testing.T) {
	h := newHarness(t, 10)

	w := h.post(t, "/api/v1/generate-comic", ComicRequest{Situation: "Ministers attending climate summits while using private jets"}, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp ComicResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Comic)

	assert.True(t, resp.Success)
	assert.False(t, resp.Comic.AIGenerated)
	assert.Equal(t, "We have agreed to meet again next year to agree.", resp.Comic.Dialogue)
	assert.True(t, strings.HasPrefix(resp.Comic.ImageURL, "http://satirist.test"+comics.PlaceholderPath+"?"))

	u, err := url.Parse(resp.Comic.ImageURL)
	require.NoError(t, err)

	svg := httptest.NewRecorder()
	h.router.ServeHTTP(svg, httptest.NewRequest(http.MethodGet, u.RequestURI(), nil))

	require.Equal(t, http.StatusOK, svg.Code)
	assert.Contains(t, svg.Header().Get("Content-Type"), "image/svg+xml")
	assert.Contains(t, svg.Body.String(), "agreed")

	captionLines := strings.Count(svg.Body.String(), `font-family="Georgia, serif"`)
	assert.GreaterOrEqual(t, captionLines, 1)
	assert.LessOrEqual(t, captionLines, 2)
}

func TestGenerateComic_EmptySituation(t *testing.T) {
	h := newHarness(t, 10)

	w := h.post(t, "/api/v1/generate-comic", ComicRequest{Situation: "   "}, true)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, h.llm.calls.Load())
}

func TestGenerateComic_RequiresAuth(t *testing.T) {
	h := newHarness(t, 10)

	w := h.post(t, "/api/v1/generate-comic", ComicRequest{Situation: "budget day"}, false)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, h.llm.calls.Load())
}

func TestGenerateComic_DailyLimit(t *testing.T) {
	h := newHarness(t, 10)
	req := ComicRequest{Situation: "fuel prices rise again", Quote: "Walking is healthy", Description: "a crowded bus stop"}

	for i := range 10 {
		w := h.post(t, "/api/v1/generate-comic", req, true)
		require.Equal(t, http.StatusOK, w.Code, "generation %d", i+1)
	}

	w := h.post(t, "/api/v1/generate-comic", req, true)
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	var resp errors.QuotaErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, errors.CodeQuotaExceeded, resp.Error)
	assert.Equal(t, 10, resp.Current)
	assert.Equal(t, 10, resp.Limit)
}

func TestGenerateComic_SuppliedTextSkipsWriter(t *testing.T) {
	h := newHarness(t, 10)

	w := h.post(t, "/api/v1/generate-comic", ComicRequest{
		Situation:   "new flyover opens",
		Quote:       "It only leads to another flyover",
		Description: "a flyover looping over itself",
	}, true)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, h.llm.calls.Load())
}

func TestGenerateComic_TextFailure(t *testing.T) {
	h := newHarness(t, 10)
	h.llm.err = assert.AnError

	w := h.post(t, "/api/v1/generate-comic", ComicRequest{Situation: "election results"}, true)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.EqualValues(t, 2, h.llm.calls.Load())
}

func TestGenerateQuote(t *testing.T) {
	h := newHarness(t, 10)

	w := h.post(t, "/api/v1/generate-quote", QuoteRequest{Situation: "traffic jam"}, false)
	require.Equal(t, http.StatusOK, w.Code)

	var resp QuoteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "We have agreed to meet again next year to agree.", resp.Quote)
	assert.LessOrEqual(t, len([]rune(resp.Quote)), satire.MaxQuoteChars)
}

func TestGenerateQuote_EmptySituation(t *testing.T) {
	h := newHarness(t, 10)

	w := h.post(t, "/api/v1/generate-quote", QuoteRequest{}, false)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, h.llm.calls.Load())
}

func TestGenerateQuote_ProviderUnavailable(t *testing.T) {
	h := newHarness(t, 10)
	h.llm.err = llm.ErrUnavailable

	w := h.post(t, "/api/v1/generate-quote", QuoteRequest{Situation: "traffic jam"}, false)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.EqualValues(t, 1, h.llm.calls.Load())
}

func TestGenerateDescription(t *testing.T) {
	h := newHarness(t, 10)

	w := h.post(t, "/api/v1/generate-description", DescriptionRequest{Situation: "water shortage", Quote: "Drink less"}, false)
	require.Equal(t, http.StatusOK, w.Code)

	var resp DescriptionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Description, "Common Man")
}

func TestGenerateDescription_EmptySituation(t *testing.T) {
	h := newHarness(t, 10)

	w := h.post(t, "/api/v1/generate-description", DescriptionRequest{Situation: " ", Quote: "Drink less"}, false)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, h.llm.calls.Load())
}
