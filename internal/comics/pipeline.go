// Package comics turns a situation into a finished cartoon: text, image and
// post-processing, degrading to the deterministic SVG renderer on failure.
package comics

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"codeberg.org/satirist/server/internal/imagegen"
	"codeberg.org/satirist/server/internal/logger"
	"codeberg.org/satirist/server/internal/objectstore"
	"codeberg.org/satirist/server/internal/prompt"
	"codeberg.org/satirist/server/internal/satire"
	"codeberg.org/satirist/server/internal/scene"
)

// PlaceholderPath serves the SVG fallback renderer
const PlaceholderPath = "/api/v1/placeholder-comic"

// longest description carried in a placeholder URL
const maxPlaceholderDescription = 300

// text generation failed and no caller-supplied content was available
var ErrContentUnavailable = errors.New("could not write the cartoon text")

type Pipeline struct {
	writer  ContentWriter
	images  ImageGenerator
	prompts *prompt.Optimizer
	opts    Options
}

func NewPipeline(writer ContentWriter, images ImageGenerator, prompts *prompt.Optimizer, opts Options) *Pipeline {
	opts.PublicSiteURL = strings.TrimRight(opts.PublicSiteURL, "/")

	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	return &Pipeline{
		writer:  writer,
		images:  images,
		prompts: prompts,
		opts:    opts,
	}
}

// resolves text, attempts an AI image and post-processes it. image failures
// never fail the call: the comic then points at the placeholder renderer
func (p *Pipeline) Generate(ctx context.Context, req Request) (*Comic, error) {
	req.Situation = strings.TrimSpace(req.Situation)
	if req.Situation == "" {
		return nil, satire.ErrEmptySituation
	}

	quote, description, err := p.resolveContent(ctx, req)
	if err != nil {
		return nil, err
	}

	dialogue := scene.StripQuotes(quote)
	imagePrompt := p.prompts.Build(prompt.Input{
		Situation:   req.Situation,
		Quote:       quote,
		Description: description,
		Characters:  req.Characters,
		Setting:     req.Setting,
		Tone:        req.Tone,
		Style:       req.Style,
	})

	comic := &Comic{
		ID:          uuid.NewString(),
		Prompt:      imagePrompt,
		Dialogue:    dialogue,
		Situation:   req.Situation,
		Description: description,
		Characters:  req.Characters,
		Setting:     req.Setting,
		Tone:        req.Tone,
		Style:       req.Style,
		CreatedAt:   p.opts.Clock().UTC(),
	}

	img, err := p.images.Generate(ctx, imagePrompt)
	if err != nil {
		if errors.Is(err, imagegen.ErrUnavailable) {
			logger.Info("no image provider configured, using placeholder", "comic_id", comic.ID)
		} else {
			logger.Warn("image generation failed, using placeholder", "comic_id", comic.ID, "error", err)
		}

		comic.ImageURL = PlaceholderURL(p.opts.PublicSiteURL, dialogue, req.Situation, description)
		return comic, nil
	}

	comic.AIGenerated = true
	comic.Provider = img.Provider
	comic.ImageURL = p.postprocess(ctx, comic.ID, img)

	return comic, nil
}

func (p *Pipeline) resolveContent(ctx context.Context, req Request) (string, string, error) {
	quote := strings.TrimSpace(req.Quote)
	description := strings.TrimSpace(req.Description)

	if quote == "" {
		q, err := p.writer.Quote(ctx, req.Situation)
		if err != nil {
			return "", "", fmt.Errorf("%w: %w", ErrContentUnavailable, err)
		}
		quote = q
	}

	if description == "" {
		d, err := p.writer.Description(ctx, req.Situation, quote)
		if err != nil {
			return "", "", fmt.Errorf("%w: %w", ErrContentUnavailable, err)
		}
		description = d
	}

	return quote, description, nil
}

// watermarks and stores the raster; each step falls back to what it was given
func (p *Pipeline) postprocess(ctx context.Context, comicID string, img *imagegen.Image) string {
	data, mimeType := img.Data, img.MIMEType

	if p.opts.Watermarker != nil {
		marked, err := p.opts.Watermarker.Apply(data)
		if err != nil {
			logger.Warn("watermark failed, returning original image", "comic_id", comicID, "error", err)
		} else {
			data, mimeType = marked, "image/png"
		}
	}

	if p.opts.Uploader != nil {
		key := objectstore.ComicKey(p.opts.Clock(), extensionFor(mimeType))

		url, err := p.opts.Uploader.Put(ctx, key, data, mimeType)
		if err == nil {
			return url
		}

		logger.Warn("upload failed, inlining image", "comic_id", comicID, "error", err)
	}

	return DataURL(mimeType, data)
}

// builds the absolute URL of the SVG fallback for the given caption
func PlaceholderURL(baseURL, dialogue, situation, description string) string {
	if r := []rune(description); len(r) > maxPlaceholderDescription {
		description = string(r[:maxPlaceholderDescription])
	}

	q := url.Values{}
	q.Set("dialogue", dialogue)
	q.Set("situation", situation)
	q.Set("description", description)

	return strings.TrimRight(baseURL, "/") + PlaceholderPath + "?" + q.Encode()
}

func DataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/png":
		return "png"
	case "image/jpeg":
		return "jpg"
	case "image/webp":
		return "webp"
	}

	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		return strings.TrimPrefix(exts[0], ".")
	}

	return "bin"
}
