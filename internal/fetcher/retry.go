package fetcher

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

const (
	defaultRetryWaitTime    = 200 * time.Millisecond
	defaultRetryMaxWaitTime = 2 * time.Second
)

// RetryOptions configures WithRetry.
type RetryOptions struct {
	// MaxRetries is the number of extra attempts after the first one. Zero disables retrying.
	MaxRetries       int
	RetryWaitTime    time.Duration
	RetryMaxWaitTime time.Duration
	Logger           *zap.Logger
}

type retrying[T any] struct {
	next Source[T]
	opts RetryOptions
}

// WithRetry decorates src so that Failed results carrying a retryable
// FetchError are retried with exponential backoff. Unavailable results and
// non-retryable failures are returned as they are.
// When MaxRetries is zero src is returned unchanged.
func WithRetry[T any](src Source[T], opts RetryOptions) Source[T] {
	if opts.MaxRetries <= 0 {
		return src
	}
	if opts.RetryWaitTime <= 0 {
		opts.RetryWaitTime = defaultRetryWaitTime
	}
	if opts.RetryMaxWaitTime <= 0 {
		opts.RetryMaxWaitTime = defaultRetryMaxWaitTime
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &retrying[T]{next: src, opts: opts}
}

// Name implements Source
func (r *retrying[T]) Name() string {
	return r.next.Name()
}

// Fetch implements Source
func (r *retrying[T]) Fetch(ctx context.Context, id uint64) Result[T] {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = r.opts.RetryWaitTime
	eb.MaxInterval = r.opts.RetryMaxWaitTime
	eb.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(r.opts.MaxRetries)), ctx)

	var (
		result  Result[T]
		attempt int
	)
	op := func() error {
		attempt++
		result = r.next.Fetch(ctx, id)
		if result.Status != StatusFailed {
			return nil
		}
		if !IsRetryable(result.Err) {
			return backoff.Permanent(result.Err)
		}
		return result.Err
	}
	notify := func(err error, wait time.Duration) {
		r.opts.Logger.Debug("retrying source query",
			zap.String("source", r.next.Name()),
			zap.Uint64("app_id", id),
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err))
	}

	// The final result is kept in result; the returned error only mirrors it.
	_ = backoff.RetryNotify(op, policy, notify)

	return result
}
