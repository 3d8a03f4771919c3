package satire

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"codeberg.org/satirist/server/internal/llm"
	"codeberg.org/satirist/server/internal/logger"
	"codeberg.org/satirist/server/internal/retry"
	"codeberg.org/satirist/server/internal/scene"
)

const (
	// MaxQuoteChars bounds a generated quote, counted in runes
	MaxQuoteChars = 120

	quoteMaxTokens       = 120
	descriptionMaxTokens = 400
	truncationSuffix     = "..."
)

var ErrEmptySituation = errors.New("situation is required")

const quoteSystemPrompt = `You write captions for political cartoons in the tradition of R.K. Laxman's "The Common Man".
Given a political situation, reply with ONE short quote a politician or official might say about it.
The quote must be dry, ironic and under 100 characters. Reply with the quote only, no attribution, no explanation.`

const descriptionSystemPrompt = `You describe single-panel political cartoon scenes for an illustrator.
Given a political situation and the caption quote, describe in 2-3 sentences what the panel shows:
who is present, their body language, the setting and one visual irony. Do not include any text, signs or speech bubbles.
Reply with the description only.`

// produces satirical captions and scene descriptions from a situation
type Writer struct {
	generator llm.TextGenerator
	policy    retry.Policy
}

type Option func(*Writer)

// overrides the retry policy for provider calls
func WithRetryPolicy(policy retry.Policy) Option {
	return func(w *Writer) {
		w.policy = policy
	}
}

func NewWriter(generator llm.TextGenerator, opts ...Option) *Writer {
	w := &Writer{
		generator: generator,
		policy:    retry.DefaultPolicy(),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// calls the provider under the retry policy. an unconfigured provider fails
// at once; a response that is empty after cleaning counts as a failed attempt
func (w *Writer) generate(ctx context.Context, req llm.TextGenerationRequest, clean func(string) string) (string, *llm.TextGenerationResponse, error) {
	var (
		text string
		resp *llm.TextGenerationResponse
	)

	err := w.policy.Do(ctx, func(ctx context.Context, attempt int) error {
		var err error
		resp, err = w.generator.GenerateText(ctx, req)
		if errors.Is(err, llm.ErrUnavailable) {
			return retry.Permanent(err)
		}

		if err == nil {
			text = clean(resp.Text)
			if text == "" {
				err = errors.New("empty response")
			}
		}

		if err != nil {
			logger.Warn("text generation attempt failed",
				"model", w.generator.Model(),
				"attempt", attempt,
				"error", err,
			)
		}

		return err
	})

	return text, resp, err
}

// generates a single satirical quote of at most MaxQuoteChars runes
func (w *Writer) Quote(ctx context.Context, situation string) (string, error) {
	situation = strings.TrimSpace(situation)
	if situation == "" {
		return "", ErrEmptySituation
	}

	quote, resp, err := w.generate(ctx, llm.TextGenerationRequest{
		SystemPrompt: quoteSystemPrompt,
		Messages:     []llm.Message{{Role: "user", Content: "Situation: " + situation}},
		MaxTokens:    quoteMaxTokens,
	}, func(text string) string {
		return TruncateQuote(scene.StripQuotes(firstLine(text)))
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate quote: %w", err)
	}

	logger.Debug("quote generated",
		"model", w.generator.Model(),
		"chars", utf8.RuneCountInString(quote),
		"output_tokens", resp.Usage.OutputTokens,
	)

	return quote, nil
}

// generates a scene description for the illustrator; quote may be empty
func (w *Writer) Description(ctx context.Context, situation, quote string) (string, error) {
	situation = strings.TrimSpace(situation)
	if situation == "" {
		return "", ErrEmptySituation
	}

	var sb strings.Builder
	sb.WriteString("Situation: ")
	sb.WriteString(situation)

	if q := strings.TrimSpace(quote); q != "" {
		sb.WriteString("\nCaption: ")
		sb.WriteString(q)
	}

	description, _, err := w.generate(ctx, llm.TextGenerationRequest{
		SystemPrompt: descriptionSystemPrompt,
		Messages:     []llm.Message{{Role: "user", Content: sb.String()}},
		MaxTokens:    descriptionMaxTokens,
	}, strings.TrimSpace)
	if err != nil {
		return "", fmt.Errorf("failed to generate description: %w", err)
	}

	return description, nil
}

// shortens a quote to MaxQuoteChars runes, ending in an ellipsis when cut
func TruncateQuote(quote string) string {
	quote = strings.TrimSpace(quote)
	if utf8.RuneCountInString(quote) <= MaxQuoteChars {
		return quote
	}

	runes := []rune(quote)
	keep := MaxQuoteChars - utf8.RuneCountInString(truncationSuffix)

	return strings.TrimRight(string(runes[:keep]), " ") + truncationSuffix
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}

	return s
}
