package comics

import (
	"context"
	"time"

	"codeberg.org/satirist/server/internal/imagegen"
)

// what the caller asks for; Quote and Description are optional
type Request struct {
	Situation   string
	Quote       string
	Description string
	Characters  string
	Setting     string
	Tone        string
	Style       string
}

// a finished cartoon as returned to clients
type Comic struct {
	ID          string    `json:"id"`
	Prompt      string    `json:"prompt"`
	ImageURL    string    `json:"imageUrl"`
	AIGenerated bool      `json:"aiGenerated"`
	Dialogue    string    `json:"dialogue"`
	Situation   string    `json:"situation"`
	Description string    `json:"description"`
	Characters  string    `json:"characters,omitempty"`
	Setting     string    `json:"setting,omitempty"`
	Tone        string    `json:"tone,omitempty"`
	Style       string    `json:"style,omitempty"`
	Provider    string    `json:"provider,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// writes the quote and scene description when the caller did not supply them
type ContentWriter interface {
	Quote(ctx context.Context, situation string) (string, error)
	Description(ctx context.Context, situation, quote string) (string, error)
}

type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (*imagegen.Image, error)
}

type Watermarker interface {
	Apply(data []byte) ([]byte, error)
}

type Uploader interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type Options struct {
	PublicSiteURL string
	Watermarker   Watermarker // optional
	Uploader      Uploader    // optional; images are inlined as data URLs without it
	Clock         func() time.Time
}
