package imagegen

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/semaphore"

	"codeberg.org/satirist/server/internal/logger"
	"codeberg.org/satirist/server/internal/retry"
)

// tries providers in order, each under the same retry policy
type Chain struct {
	providers []Provider
	policy    retry.Policy
	sem       *semaphore.Weighted
}

// creates a chain; maxConcurrent caps generations in flight across requests
func NewChain(policy retry.Policy, maxConcurrent int, providers ...Provider) *Chain {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	if policy.Retryable == nil {
		policy.Retryable = IsRetryable
	}

	return &Chain{
		providers: providers,
		policy:    policy,
		sem:       semaphore.NewWeighted(int64(maxConcurrent)),
	}
}

// reports whether any provider is configured
func (c *Chain) Available() bool {
	for _, p := range c.providers {
		if p.Available() {
			return true
		}
	}

	return false
}

// returns ErrUnavailable when no provider is configured and
// ErrAllProvidersFailed when every configured provider gave up
func (c *Chain) Generate(ctx context.Context, prompt string) (*Image, error) {
	if !c.Available() {
		return nil, ErrUnavailable
	}

	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("waiting for generation slot: %w", err)
	}
	defer c.sem.Release(1)

	var errs []error

	for _, p := range c.providers {
		if !p.Available() {
			logger.Debug("skipping unconfigured image provider", "provider", p.Name())
			continue
		}

		var img *Image
		err := c.policy.Do(ctx, func(ctx context.Context, attempt int) error {
			var genErr error
			img, genErr = p.Generate(ctx, prompt)
			if genErr != nil {
				logger.Warn("image generation attempt failed",
					"provider", p.Name(),
					"attempt", attempt,
					"error", genErr,
				)
			}

			return genErr
		})
		if err == nil {
			return img, nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
	}

	return nil, fmt.Errorf("%w: %w", ErrAllProvidersFailed, errors.Join(errs...))
}

// retries transport errors, every non-2xx status and malformed bodies.
// an unconfigured provider and errors marked retry.Permanent are final
func IsRetryable(err error) bool {
	return !errors.Is(err, ErrUnavailable) && !retry.IsPermanent(err)
}
