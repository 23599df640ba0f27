package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// RetryProvider is a decorator that retries transient errors with
// exponential backoff and jitter.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
	logger *zap.Logger

	// jitter returns a value in [0, 1). sleep waits d or until ctx ends.
	jitter func() float64
	sleep  func(ctx context.Context, d time.Duration) error
}

// WithRetry wraps a Provider with retry logic. logger may be nil.
func WithRetry(p Provider, cfg RetryConfig, logger *zap.Logger) Provider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.Multiplier < 1 {
		cfg.Multiplier = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RetryProvider{
		inner:  p,
		config: cfg,
		logger: logger,
		jitter: rand.Float64,
		sleep:  sleepContext,
	}
}

// verdict is what the retry policy decides about one failed attempt.
type verdict int

const (
	giveUp verdict = iota
	retry
	// retryOnce allows a single extra attempt per Generate call.
	retryOnce
)

// classifyRetry decides whether err is worth another attempt.
func classifyRetry(err error) verdict {
	var (
		rejected *ErrRejected
		maxTok   *ErrMaxTokensExceeded
		invalid  *ErrInvalidResponse
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return giveUp
	case errors.As(err, &rejected), errors.As(err, &maxTok):
		return giveUp
	case errors.As(err, &invalid):
		return retryOnce
	}
	// Rate limits, outages and network errors.
	return retry
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	usedOnce := false
	for attempt := 1; ; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		switch classifyRetry(err) {
		case giveUp:
			return nil, err
		case retryOnce:
			if usedOnce {
				return nil, err
			}
			usedOnce = true
		}
		if attempt >= r.config.MaxAttempts {
			return nil, err
		}

		wait := r.backoff(attempt, err)
		r.logger.Debug("retrying llm request",
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
		if err := r.sleep(ctx, wait); err != nil {
			return nil, err
		}
	}
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// backoff returns the wait after the given 1-based attempt. A provider
// supplied Retry-After wins over the computed delay.
func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	base := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt-1))
	if r.config.MaxWait > 0 {
		base = math.Min(base, float64(r.config.MaxWait))
	}

	// ±20% jitter.
	wait := base * (0.8 + 0.4*r.jitter())
	return time.Duration(max(wait, 0))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
