package main

import (
	"context"
	"fmt"

	"codeberg.org/satirist/server/internal/comics"
	"codeberg.org/satirist/server/internal/config"
	"codeberg.org/satirist/server/internal/imagegen"
	"codeberg.org/satirist/server/internal/llm"
	"codeberg.org/satirist/server/internal/logger"
	"codeberg.org/satirist/server/internal/objectstore"
	"codeberg.org/satirist/server/internal/prompt"
	"codeberg.org/satirist/server/internal/retry"
	"codeberg.org/satirist/server/internal/satire"
	"codeberg.org/satirist/server/internal/watermark"
)

// creates the text and image provider clients and the comic pipeline
func InitializeServices(ctx context.Context, cfg *config.Config) (*Services, error) {
	textConfig := llm.Config{
		Provider: llm.Provider(cfg.TextProvider),
		Model:    cfg.TextModel,
	}

	switch textConfig.Provider {
	case llm.ProviderOpenAI:
		textConfig.APIKey = cfg.OpenAIKey
	case llm.ProviderGemini:
		textConfig.APIKey = cfg.GeminiKey
	default:
		textConfig.APIKey = cfg.AnthropicKey
	}

	generator, err := llm.NewTextGenerator(textConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create text generator: %w", err)
	}

	if textConfig.APIKey == "" {
		logger.Warn("text provider has no API key, text endpoints will return 503", "provider", cfg.TextProvider)
	}

	policy := retry.Policy{MaxAttempts: cfg.ProviderRetries, Delay: cfg.ProviderRetryDelay}
	writer := satire.NewWriter(generator, satire.WithRetryPolicy(policy))

	negative := prompt.NegativePrompt()
	images := imagegen.NewChain(
		policy,
		cfg.MaxConcurrent,
		imagegen.NewReplicate(imagegen.ReplicateOptions{
			Token:          cfg.ReplicateToken,
			NegativePrompt: negative,
		}),
		imagegen.NewHuggingFace(imagegen.HuggingFaceOptions{
			Token:          cfg.HuggingFaceToken,
			NegativePrompt: negative,
		}),
	)

	if !images.Available() {
		logger.Warn("no image provider configured, comics will use the placeholder renderer")
	}

	opts := comics.Options{
		PublicSiteURL: cfg.PublicSiteURL,
		Watermarker:   watermark.New(cfg.WatermarkPath, watermark.Options{}),
	}

	if cfg.S3Bucket != "" {
		store, err := objectstore.NewS3(ctx, objectstore.Options{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create object store: %w", err)
		}

		opts.Uploader = store
	}

	return &Services{
		TextProvider: string(textConfig.Provider),
		Writer:       writer,
		Images:       images,
		Comics:       comics.NewPipeline(writer, images, prompt.NewOptimizer(), opts),
	}, nil
}
