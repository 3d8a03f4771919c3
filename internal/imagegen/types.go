package imagegen

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// returned by a provider whose token is not configured
	ErrUnavailable = errors.New("image provider not configured")

	// returned by Chain when every available provider exhausted its retries
	ErrAllProvidersFailed = errors.New("all image providers failed")

	// the provider answered 2xx but the body was not a usable image
	ErrMalformedResponse = errors.New("malformed provider response")
)

// a generated raster image
type Image struct {
	Data     []byte
	MIMEType string
	Provider string
}

// a text-to-image backend
type Provider interface {
	Name() string
	Available() bool
	Generate(ctx context.Context, prompt string) (*Image, error)
}

// non-2xx answer from a provider
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// shared HTTP client for image provider calls
var defaultHTTPClient = &http.Client{
	Timeout: 2 * time.Minute,
	Transport: &http.Transport{
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// polls of a replicate prediction before the attempt is abandoned
const defaultMaxPolls = 120

// larger bodies are rejected rather than truncated
var maxImageBytes int64 = 20 << 20
