package oracle

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// retryKind says whether a failed Similarity call is worth repeating.
type retryKind int

const (
	retryNever retryKind = iota // caller gave up or the inputs can never score
	retryOnce                   // malformed model output; one more try
	retryTransient              // rate limits, outages, network errors
)

func classify(err error) retryKind {
	var invalid *ErrInvalidResponse
	switch {
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, ErrDimensionMismatch),
		errors.Is(err, ErrNotConfigured):
		return retryNever
	case errors.As(err, &invalid):
		return retryOnce
	}
	return retryTransient
}

// RetryOracle is a decorator that retries failed calls with exponential
// backoff and jitter.
type RetryOracle struct {
	inner  Oracle
	config RetryConfig
}

// WithRetry wraps an Oracle with retry logic. MaxAttempts below 1 means a
// single call.
func WithRetry(o Oracle, cfg RetryConfig) Oracle {
	cfg.MaxAttempts = max(cfg.MaxAttempts, 1)
	return &RetryOracle{inner: o, config: cfg}
}

func (r *RetryOracle) Similarity(ctx context.Context, a, b string) (float64, error) {
	usedOnce := false
	for attempt := 1; ; attempt++ {
		score, err := r.inner.Similarity(ctx, a, b)
		if err == nil {
			return score, nil
		}

		switch classify(err) {
		case retryNever:
			return 0, err
		case retryOnce:
			if usedOnce {
				return 0, err
			}
			usedOnce = true
		}
		if attempt >= r.config.MaxAttempts {
			return 0, err
		}

		timer := time.NewTimer(r.wait(attempt, err))
		select {
		case <-ctx.Done():
			timer.Stop()
			return 0, ctx.Err()
		case <-timer.C:
		}
	}
}

func (r *RetryOracle) ModelID() string {
	return r.inner.ModelID()
}

// wait returns the delay before retry number attempt (1-based). A server
// Retry-After wins over the computed backoff.
func (r *RetryOracle) wait(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	d := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt-1))
	d = math.Min(d, float64(r.config.MaxWait))
	jitter := 1 + 0.2*(2*rand.Float64()-1) // ±20%
	return time.Duration(max(d*jitter, 0))
}
