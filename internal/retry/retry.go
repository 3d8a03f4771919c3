// Package retry is the single retry policy used for outbound provider calls.
package retry

import (
	"context"
	"errors"
	"time"

	goretry "github.com/sethvargo/go-retry"
)

const (
	defaultMaxAttempts = 3
	defaultDelay       = 2 * time.Second
)

// decides whether an attempt's error is worth another try
type Predicate func(err error) bool

// fixed-delay retry policy
type Policy struct {
	MaxAttempts int           // total attempts including the first one
	Delay       time.Duration // pause between attempts
	Retryable   Predicate     // nil retries everything not marked Permanent
}

// returns the policy used for image and text providers
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: defaultMaxAttempts,
		Delay:       defaultDelay,
	}
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// marks err as not retryable under any policy
func Permanent(err error) error {
	if err == nil {
		return nil
	}

	return &permanentError{err: err}
}

// reports whether err was marked with Permanent
func IsPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}

// runs fn until it succeeds, the error is not retryable, attempts run out or
// ctx is done. attempt numbers start at 1. the last error is returned unwrapped
// from any Permanent marker
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context, attempt int) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	backoff := goretry.WithMaxRetries(uint64(attempts-1), goretry.NewConstant(p.delay()))
	attempt := 0

	err := goretry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++

		err := fn(ctx, attempt)
		if err == nil {
			return nil
		}

		if p.shouldRetry(err) {
			return goretry.RetryableError(err)
		}

		return err
	})

	var perm *permanentError
	if errors.As(err, &perm) {
		return perm.err
	}

	return err
}

func (p Policy) shouldRetry(err error) bool {
	if IsPermanent(err) {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	if p.Retryable != nil {
		return p.Retryable(err)
	}

	return true
}

func (p Policy) delay() time.Duration {
	if p.Delay <= 0 {
		// go-retry rejects a zero base
		return time.Nanosecond
	}

	return p.Delay
}
