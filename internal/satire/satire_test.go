package satire

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/satirist/server/internal/llm"
	"codeberg.org/satirist/server/internal/retry"
)

type fakeGenerator struct {
	text     string
	err      error
	failures int // calls answered with err before succeeding; 0 fails every call
	calls    int
	last     llm.TextGenerationRequest
}

func (f *fakeGenerator) GenerateText(_ context.Context, req llm.TextGenerationRequest) (*llm.TextGenerationResponse, error) {
	f.calls++
	f.last = req

	if f.err != nil && (f.failures == 0 || f.calls <= f.failures) {
		return nil, f.err
	}

	return &llm.TextGenerationResponse{Text: f.text}, nil
}

func (f *fakeGenerator) Model() string { return "fake" }

func TestQuoteStripsQuotesAndExtraLines(t *testing.T) {
	gen := &fakeGenerator{text: "\"The road is fine, it is the cars that are wrong.\"\nExplanation: irony"}
	w := NewWriter(gen)

	quote, err := w.Quote(context.Background(), "potholes everywhere")
	require.NoError(t, err)

	assert.Equal(t, "The road is fine, it is the cars that are wrong.", quote)
	assert.Contains(t, gen.last.Messages[0].Content, "potholes everywhere")
}

func TestQuoteLengthBounded(t *testing.T) {
	for _, n := range []int{1, 119, 120, 121, 500} {
		gen := &fakeGenerator{text: strings.Repeat("a", n)}
		quote, err := NewWriter(gen).Quote(context.Background(), "x")
		require.NoError(t, err)
		assert.LessOrEqual(t, utf8.RuneCountInString(quote), MaxQuoteChars, "input length %d", n)
	}
}

func TestTruncateQuote(t *testing.T) {
	long := strings.Repeat("वादा ", 60)
	got := TruncateQuote(long)

	assert.LessOrEqual(t, utf8.RuneCountInString(got), MaxQuoteChars)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.True(t, strings.HasPrefix(got, "वादा वादा"))

	exact := strings.Repeat("b", MaxQuoteChars+5)
	assert.Equal(t, strings.Repeat("b", MaxQuoteChars-3)+"...", TruncateQuote(exact))

	assert.Equal(t, "short", TruncateQuote("  short "))
}

func TestEmptySituationSkipsProvider(t *testing.T) {
	gen := &fakeGenerator{text: "unused"}
	w := NewWriter(gen)

	_, err := w.Quote(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptySituation)

	_, err = w.Description(context.Background(), "", "quote")
	assert.ErrorIs(t, err, ErrEmptySituation)

	assert.Zero(t, gen.calls)
}

func TestDescriptionIncludesQuote(t *testing.T) {
	gen := &fakeGenerator{text: "  A minister waves from a private jet.  "}
	desc, err := NewWriter(gen).Description(context.Background(), "climate summit", "We fly so you don't have to.")
	require.NoError(t, err)

	assert.Equal(t, "A minister waves from a private jet.", desc)
	assert.Contains(t, gen.last.Messages[0].Content, "Caption: We fly so you don't have to.")
}

func fastRetry() Option {
	return WithRetryPolicy(retry.Policy{MaxAttempts: 3, Delay: time.Millisecond})
}

func TestProviderErrorWrapped(t *testing.T) {
	gen := &fakeGenerator{err: llm.ErrUnavailable}

	_, err := NewWriter(gen, fastRetry()).Quote(context.Background(), "x")
	assert.True(t, errors.Is(err, llm.ErrUnavailable))
	assert.Equal(t, 1, gen.calls)

	gen = &fakeGenerator{text: "   "}
	_, err = NewWriter(gen, fastRetry()).Description(context.Background(), "x", "")
	assert.Error(t, err)
	assert.Equal(t, 3, gen.calls)
}

func TestQuoteRetriesTransientFailure(t *testing.T) {
	gen := &fakeGenerator{
		text:     "Overloaded? We prefer the word popular.",
		err:      errors.New("API request failed with status 503: overloaded"),
		failures: 1,
	}

	quote, err := NewWriter(gen, fastRetry()).Quote(context.Background(), "server outage")
	require.NoError(t, err)

	assert.Equal(t, "Overloaded? We prefer the word popular.", quote)
	assert.Equal(t, 2, gen.calls)
}

func TestDescriptionGivesUpAfterPolicyAttempts(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("connection reset")}

	_, err := NewWriter(gen, fastRetry()).Description(context.Background(), "x", "")
	assert.ErrorContains(t, err, "connection reset")
	assert.Equal(t, 3, gen.calls)
}
