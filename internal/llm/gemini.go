package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// text generation through the Google GenAI SDK
type GeminiGenerator struct {
	config Config

	once    sync.Once
	client  *genai.Client
	initErr error
}

func NewGeminiGenerator(config Config) *GeminiGenerator {
	if config.Model == "" {
		config.Model = defaultGeminiModel
	}

	if config.MaxTokens == 0 {
		config.MaxTokens = defaultMaxTokens
	}

	if config.Temperature == 0 {
		config.Temperature = defaultTemperature
	}

	return &GeminiGenerator{config: config}
}

func (g *GeminiGenerator) Model() string {
	return g.config.Model
}

// the SDK client is created lazily so a missing key never fails startup
func (g *GeminiGenerator) getClient(ctx context.Context) (*genai.Client, error) {
	g.once.Do(func() {
		cc := &genai.ClientConfig{
			APIKey:  g.config.APIKey,
			Backend: genai.BackendGeminiAPI,
		}

		if g.config.BaseURL != "" {
			cc.HTTPOptions = genai.HTTPOptions{BaseURL: g.config.BaseURL}
		}

		g.client, g.initErr = genai.NewClient(ctx, cc)
	})

	return g.client, g.initErr
}

func (g *GeminiGenerator) GenerateText(ctx context.Context, req TextGenerationRequest) (*TextGenerationResponse, error) {
	if g.config.APIKey == "" {
		return nil, ErrUnavailable
	}

	client, err := g.getClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, msg := range req.Messages {
		role := genai.Role(genai.RoleUser)
		if msg.Role == "assistant" {
			role = genai.RoleModel
		}

		contents = append(contents, genai.NewContentFromText(msg.Content, role))
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = g.config.MaxTokens
	}

	temperature := req.Temperature
	if temperature == 0 {
		temperature = g.config.Temperature
	}

	genConfig := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxTokens), //nolint:gosec // bounded by config
		Temperature:     genai.Ptr(temperature),
	}

	if req.SystemPrompt != "" {
		genConfig.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}

	result, err := client.Models.GenerateContent(ctx, g.config.Model, contents, genConfig)
	if err != nil {
		return nil, fmt.Errorf("GenAI generate failed: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return nil, fmt.Errorf("no content in response")
	}

	resp := &TextGenerationResponse{Text: text}
	if result.UsageMetadata != nil {
		resp.Usage = Usage{
			InputTokens:  int(result.UsageMetadata.PromptTokenCount),
			OutputTokens: int(result.UsageMetadata.CandidatesTokenCount),
		}
	}

	return resp, nil
}
