package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

type retrying struct {
	inner  Provider
	cfg    RetryConfig
	logger *zap.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

// WithRetry retries rate limits and outages with exponential backoff. An
// empty reply is retried once. Rejected and truncated requests fail
// immediately since repeating them gives the same result.
func WithRetry(p Provider, cfg RetryConfig, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &retrying{inner: p, cfg: cfg, logger: logger.Named("retry"), sleep: sleepCtx}
}

func (r *retrying) Model() string { return r.inner.Model() }

func (r *retrying) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	emptySeen := false
	for attempt := 1; ; attempt++ {
		c, err := r.inner.Complete(ctx, p)
		if err == nil {
			return c, nil
		}

		kind, ok := KindOf(err)
		if !ok || attempt >= r.cfg.MaxAttempts {
			return nil, err
		}
		switch kind {
		case KindRejected, KindTruncated:
			return nil, err
		case KindEmpty:
			if emptySeen {
				return nil, err
			}
			emptySeen = true
		}

		wait := r.delay(attempt, err)
		r.logger.Warn("retrying llm request",
			zap.String("purpose", string(p.Purpose)),
			zap.Int("attempt", attempt),
			zap.Stringer("kind", kind),
			zap.Duration("wait", wait),
		)
		if serr := r.sleep(ctx, wait); serr != nil {
			return nil, serr
		}
	}
}

// delay is the wait after the given 1-based attempt: a server Retry-After
// when present, otherwise InitialWait * Multiplier^(attempt-1) capped at
// MaxWait, with up to 20% jitter either way.
func (r *retrying) delay(attempt int, err error) time.Duration {
	var e *Error
	if errors.As(err, &e) && e.RetryAfter > 0 {
		return e.RetryAfter
	}
	wait := float64(r.cfg.InitialWait)
	for range attempt - 1 {
		wait *= r.cfg.Multiplier
	}
	if max := float64(r.cfg.MaxWait); max > 0 && wait > max {
		wait = max
	}
	wait *= 0.8 + 0.4*rand.Float64()
	return time.Duration(wait)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
