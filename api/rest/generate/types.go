package generate

import (
	"context"

	"codeberg.org/satirist/server/internal/comics"
	"codeberg.org/satirist/server/internal/quota"
)

// QuoteRequest is the body of POST /generate-quote
type QuoteRequest struct {
	Situation string `json:"situation" binding:"max=2000"`
}

// DescriptionRequest is the body of POST /generate-description
type DescriptionRequest struct {
	Situation string `json:"situation" binding:"max=2000"`
	Quote     string `json:"quote" binding:"max=500"`
}

// ComicRequest is the body of POST /generate-comic. quote and description
// are normally produced by the two previous endpoints
type ComicRequest struct {
	Situation   string `json:"situation" binding:"max=2000"`
	Quote       string `json:"quote" binding:"max=500"`
	Description string `json:"description" binding:"max=4000"`
	Characters  string `json:"characters" binding:"max=500"`
	Setting     string `json:"setting" binding:"max=500"`
	Tone        string `json:"tone" binding:"max=50"`
	Style       string `json:"style" binding:"max=50"`
}

type QuoteResponse struct {
	Success bool   `json:"success"`
	Quote   string `json:"quote"`
}

type DescriptionResponse struct {
	Success     bool   `json:"success"`
	Description string `json:"description"`
}

type ComicResponse struct {
	Success bool          `json:"success"`
	Comic   *comics.Comic `json:"comic"`
}

type Writer interface {
	Quote(ctx context.Context, situation string) (string, error)
	Description(ctx context.Context, situation, quote string) (string, error)
}

type ComicGenerator interface {
	Generate(ctx context.Context, req comics.Request) (*comics.Comic, error)
}

type QuotaService interface {
	CheckDailyLimit(ctx context.Context, id quota.Identity) (quota.Status, error)
	IncrementCount(ctx context.Context, id quota.Identity) error
}
