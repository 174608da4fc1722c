package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// Config controls the exponential backoff schedule.
type Config struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

// DefaultConfig returns the schedule used for store repair operations.
func DefaultConfig() Config {
	return Config{
		MaxRetries:      3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		Multiplier:      1.5,
	}
}

// Do runs operation with exponential backoff until it succeeds, the retry
// budget is exhausted, or ctx is cancelled.
func Do(ctx context.Context, log zerolog.Logger, operationName string, operation func() error, cfg Config) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = cfg.InitialInterval
	bo.MaxInterval = cfg.MaxInterval
	bo.Multiplier = cfg.Multiplier
	bo.Reset()

	retryable := backoff.WithMaxRetries(bo, cfg.MaxRetries)
	retryableWithContext := backoff.WithContext(retryable, ctx)

	notify := func(err error, next time.Duration) {
		log.Warn().
			Str("operation", operationName).
			Err(err).
			Str("next_attempt_in", next.Round(time.Millisecond).String()).
			Msg("operation failed, retrying")
	}

	return backoff.RetryNotify(operation, retryableWithContext, notify)
}
