package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	replicateBaseURL      = "https://api.replicate.com"
	defaultReplicateModel = "black-forest-labs/flux-schnell"
	defaultPollInterval   = time.Second
)

type ReplicateOptions struct {
	Token          string
	Model          string // owner/name
	BaseURL        string
	NegativePrompt string
	PollInterval   time.Duration
	MaxPolls       int // polls before a stuck prediction fails the attempt
	HTTPClient     *http.Client
}

// generates images through Replicate predictions
type Replicate struct {
	opts ReplicateOptions
}

type replicatePredictionRequest struct {
	Input map[string]any `json:"input"`
}

type replicatePrediction struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Output json.RawMessage `json:"output"`
	Error  any             `json:"error"`
	URLs   struct {
		Get string `json:"get"`
	} `json:"urls"`
}

func NewReplicate(opts ReplicateOptions) *Replicate {
	if opts.Model == "" {
		opts.Model = defaultReplicateModel
	}

	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if opts.BaseURL == "" {
		opts.BaseURL = replicateBaseURL
	}

	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}

	if opts.MaxPolls <= 0 {
		opts.MaxPolls = defaultMaxPolls
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = defaultHTTPClient
	}

	return &Replicate{opts: opts}
}

func (r *Replicate) Name() string {
	return "replicate"
}

func (r *Replicate) Available() bool {
	return r.opts.Token != ""
}

func (r *Replicate) Generate(ctx context.Context, prompt string) (*Image, error) {
	if !r.Available() {
		return nil, ErrUnavailable
	}

	input := map[string]any{
		"prompt":        prompt,
		"aspect_ratio":  "4:3",
		"output_format": "png",
	}
	if r.opts.NegativePrompt != "" {
		input["negative_prompt"] = r.opts.NegativePrompt
	}

	body, err := json.Marshal(replicatePredictionRequest{Input: input})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/models/%s/predictions", r.opts.BaseURL, r.opts.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "wait")

	prediction, err := r.doPrediction(req)
	if err != nil {
		return nil, err
	}

	for polls := 0; prediction.Status == "starting" || prediction.Status == "processing"; polls++ {
		if polls >= r.opts.MaxPolls {
			return nil, fmt.Errorf("replicate prediction %s still %s after %d polls", prediction.ID, prediction.Status, polls)
		}

		if prediction.URLs.Get == "" {
			return nil, fmt.Errorf("%w: prediction %s has no poll url", ErrMalformedResponse, prediction.ID)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.opts.PollInterval):
		}

		pollReq, err := http.NewRequestWithContext(ctx, http.MethodGet, prediction.URLs.Get, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create poll request: %w", err)
		}

		prediction, err = r.doPrediction(pollReq)
		if err != nil {
			return nil, err
		}
	}

	if prediction.Status != "succeeded" {
		return nil, fmt.Errorf("replicate prediction %s %s: %v", prediction.ID, prediction.Status, prediction.Error)
	}

	outputURL, err := firstOutputURL(prediction.Output)
	if err != nil {
		return nil, err
	}

	return r.download(ctx, outputURL)
}

func (r *Replicate) doPrediction(req *http.Request) (*replicatePrediction, error) {
	req.Header.Set("Authorization", "Bearer "+r.opts.Token)

	resp, err := r.opts.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096)) //nolint:errcheck
		return nil, &StatusError{Provider: r.Name(), StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	var prediction replicatePrediction
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return &prediction, nil
}

// output is either a single URL or a list of URLs depending on the model
func firstOutputURL(raw json.RawMessage) (string, error) {
	var single string
	if err := json.Unmarshal(raw, &single); err == nil && single != "" {
		return single, nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 && list[0] != "" {
		return list[0], nil
	}

	return "", fmt.Errorf("%w: prediction has no output url", ErrMalformedResponse)
}

func (r *Replicate) download(ctx context.Context, url string) (*Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := r.opts.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Provider: r.Name(), StatusCode: resp.StatusCode, Body: "image download failed"}
	}

	return readImage(resp, r.Name())
}

func readImage(resp *http.Response, provider string) (*Image, error) {
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	if int64(len(data)) > maxImageBytes {
		return nil, fmt.Errorf("%w: image exceeds %d bytes", ErrMalformedResponse, maxImageBytes)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty image body", ErrMalformedResponse)
	}

	mimeType := strings.TrimSpace(strings.SplitN(resp.Header.Get("Content-Type"), ";", 2)[0])
	if !strings.HasPrefix(mimeType, "image/") {
		sniffed := http.DetectContentType(data)
		if !strings.HasPrefix(sniffed, "image/") {
			return nil, fmt.Errorf("%w: content type %q", ErrMalformedResponse, mimeType)
		}
		mimeType = sniffed
	}

	return &Image{Data: data, MIMEType: mimeType, Provider: provider}, nil
}
