package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// RetryProvider retries transient failures with jittered exponential
// backoff. A response that fails schema validation is retried once.
type RetryProvider struct {
	inner Provider
	cfg   RetryConfig
}

// WithRetry wraps p. A MaxAttempts below 1 behaves as 1.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryProvider{inner: p, cfg: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var err error
	invalidSeen := false
	for attempt := 0; attempt < r.cfg.MaxAttempts; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(r.wait(attempt-1, err))
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}

		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if !retryable(err) {
			return nil, err
		}
		var invalid *ErrInvalidResponse
		if errors.As(err, &invalid) {
			if invalidSeen {
				return nil, err
			}
			invalidSeen = true
		}
	}
	return nil, err
}

func (r *RetryProvider) ModelID() string { return r.inner.ModelID() }

// wait is the pause before retry n (0-based). A rate limit with a
// RetryAfter hint is honored as-is; otherwise the wait grows by
// Multiplier per attempt, capped at MaxWait, with up to 20% jitter.
func (r *RetryProvider) wait(n int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	d := float64(r.cfg.InitialWait)
	for i := 0; i < n; i++ {
		d *= r.cfg.Multiplier
	}
	if max := float64(r.cfg.MaxWait); max > 0 && d > max {
		d = max
	}
	d *= 1 + 0.2*(2*rand.Float64()-1)
	if d < 0 {
		return 0
	}
	return time.Duration(d)
}
