// Package retry wraps avast/retry-go with the exponential backoff settings
// used for infrastructure connections at startup. Request-path submissions
// are never retried; this helper is for connect-time transients only.
package retry

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
)

// Config holds retry configuration.
type Config struct {
	MaxAttempts  uint
	InitialDelay time.Duration
	MaxDelay     time.Duration
	OnRetry      func(attempt uint, err error)
}

// ConnectDefaults returns the backoff used when connecting to databases and
// caches during bootstrap.
func ConnectDefaults() Config {
	return Config{
		MaxAttempts:  5,
		InitialDelay: 1 * time.Second,
		MaxDelay:     15 * time.Second,
	}
}

// Do executes fn with exponential backoff until it succeeds, the attempts are
// exhausted, or ctx is done. Only the last error is returned.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	onRetry := cfg.OnRetry
	if onRetry == nil {
		onRetry = func(uint, error) {}
	}
	return retry.Do(
		fn,
		retry.Context(ctx),
		retry.Attempts(cfg.MaxAttempts),
		retry.Delay(cfg.InitialDelay),
		retry.MaxDelay(cfg.MaxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(onRetry),
	)
}

// DoWithResult executes fn with the same backoff and returns its result.
func DoWithResult[T any](ctx context.Context, cfg Config, fn func() (T, error)) (T, error) {
	var result T
	err := Do(ctx, cfg, func() error {
		var err error
		result, err = fn()
		return err
	})
	return result, err
}
