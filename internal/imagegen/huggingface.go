package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	huggingFaceBaseURL      = "https://api-inference.huggingface.co"
	defaultHuggingFaceModel = "stabilityai/stable-diffusion-xl-base-1.0"
)

type HuggingFaceOptions struct {
	Token          string
	Model          string
	BaseURL        string
	NegativePrompt string
	HTTPClient     *http.Client
}

// generates images through the Hugging Face inference API
type HuggingFace struct {
	opts HuggingFaceOptions
}

type huggingFaceRequest struct {
	Inputs     string                `json:"inputs"`
	Parameters huggingFaceParameters `json:"parameters"`
	Options    huggingFaceOptions    `json:"options"`
}

type huggingFaceParameters struct {
	NegativePrompt string `json:"negative_prompt,omitempty"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
}

type huggingFaceOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

func NewHuggingFace(opts HuggingFaceOptions) *HuggingFace {
	if opts.Model == "" {
		opts.Model = defaultHuggingFaceModel
	}

	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if opts.BaseURL == "" {
		opts.BaseURL = huggingFaceBaseURL
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = defaultHTTPClient
	}

	return &HuggingFace{opts: opts}
}

func (h *HuggingFace) Name() string {
	return "huggingface"
}

func (h *HuggingFace) Available() bool {
	return h.opts.Token != ""
}

func (h *HuggingFace) Generate(ctx context.Context, prompt string) (*Image, error) {
	if !h.Available() {
		return nil, ErrUnavailable
	}

	body, err := json.Marshal(huggingFaceRequest{
		Inputs: prompt,
		Parameters: huggingFaceParameters{
			NegativePrompt: h.opts.NegativePrompt,
			Width:          1024,
			Height:         768,
		},
		Options: huggingFaceOptions{WaitForModel: true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s", h.opts.BaseURL, h.opts.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "image/png")
	req.Header.Set("Authorization", "Bearer "+h.opts.Token)

	resp, err := h.opts.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096)) //nolint:errcheck
		return nil, &StatusError{Provider: h.Name(), StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	return readImage(resp, h.Name())
}
