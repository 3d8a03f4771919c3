package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTextGenerator(t *testing.T) {
	tests := []struct {
		provider Provider
		model    string
	}{
		{ProviderAnthropic, defaultAnthropicModel},
		{"", defaultAnthropicModel},
		{ProviderOpenAI, defaultOpenAIModel},
		{ProviderGemini, defaultGeminiModel},
	}

	for _, tt := range tests {
		t.Run(string(tt.provider), func(t *testing.T) {
			gen, err := NewTextGenerator(Config{Provider: tt.provider})
			require.NoError(t, err)
			assert.Equal(t, tt.model, gen.Model())
		})
	}

	_, err := NewTextGenerator(Config{Provider: "mystery"})
	assert.Error(t, err)
}

func TestMissingKeyIsUnavailable(t *testing.T) {
	req := TextGenerationRequest{Messages: []Message{{Role: "user", Content: "hi"}}}

	for _, p := range []Provider{ProviderAnthropic, ProviderOpenAI, ProviderGemini} {
		gen, err := NewTextGenerator(Config{Provider: p})
		require.NoError(t, err)

		_, err = gen.GenerateText(context.Background(), req)
		assert.ErrorIs(t, err, ErrUnavailable, "provider %s", p)
	}
}

func TestAnthropicGenerateText(t *testing.T) {
	var got anthropicRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"  Development is a state of mind.  "}],"usage":{"input_tokens":12,"output_tokens":7}}`))
	}))
	defer srv.Close()

	gen := NewAnthropicGenerator(Config{APIKey: "test-key", BaseURL: srv.URL})
	resp, err := gen.GenerateText(context.Background(), TextGenerationRequest{
		SystemPrompt: "be a politician",
		Messages:     []Message{{Role: "user", Content: "potholes"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Development is a state of mind.", resp.Text)
	assert.Equal(t, 12, resp.Usage.InputTokens)
	assert.Equal(t, 7, resp.Usage.OutputTokens)
	assert.Equal(t, "be a politician", got.System)
	assert.Equal(t, defaultMaxTokens, got.MaxTokens)
	assert.Len(t, got.Messages, 1)
}

func TestAnthropicErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"overloaded"}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	gen := NewAnthropicGenerator(Config{APIKey: "k", BaseURL: srv.URL})
	_, err := gen.GenerateText(context.Background(), TextGenerationRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestOpenAIGenerateText(t *testing.T) {
	var got chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"We have formed a committee."}}],"usage":{"prompt_tokens":5,"completion_tokens":6}}`))
	}))
	defer srv.Close()

	gen := NewOpenAIGenerator(Config{APIKey: "sk-test", BaseURL: srv.URL, Model: "gpt-test"})
	resp, err := gen.GenerateText(context.Background(), TextGenerationRequest{
		SystemPrompt: "system",
		Messages:     []Message{{Role: "user", Content: "floods"}},
		MaxTokens:    50,
	})
	require.NoError(t, err)

	assert.Equal(t, "We have formed a committee.", resp.Text)
	assert.Equal(t, "gpt-test", got.Model)
	assert.Equal(t, 50, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "floods", got.Messages[1].Content)
}

func TestOpenAINoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	gen := NewOpenAIGenerator(Config{APIKey: "k", BaseURL: srv.URL})
	_, err := gen.GenerateText(context.Background(), TextGenerationRequest{})
	assert.ErrorContains(t, err, "no choices")
}
