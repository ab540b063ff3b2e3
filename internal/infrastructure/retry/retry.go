package retry

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/SyedaAimanAli/AIAgents/internal/application/port/output"
)

// ErrExhausted signals that every attempt failed. Callers treat it as "no
// result available", ordinary data rather than a fatal condition.
var ErrExhausted = errors.New("retry: attempts exhausted")

// ErrUnavailable signals that the wrapped dependency is not configured at
// all. It short-circuits before the backoff loop instead of burning through
// the full retry schedule.
var ErrUnavailable = errors.New("retry: dependency unavailable")

// Config bounds the backoff loop. The delay before attempt k+1 is
// BaseDelay*2^k plus a uniform jitter in [0, Jitter) so concurrent callers
// do not retry in lockstep.
type Config struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Jitter      time.Duration
	Logger      output.LoggerPort
}

// DefaultConfig matches the production schedule: 5 attempts, each followed
// by its delay of 5s, 10s, 20s, 40s, 80s.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 5,
		BaseDelay:   5 * time.Second,
		Jitter:      time.Second,
	}
}

func (c Config) withDefaults() Config {
	if c.MaxAttempts < 1 {
		c.MaxAttempts = 1
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = 5 * time.Second
	}
	return c
}

// Do runs op until it succeeds or cfg.MaxAttempts attempts have failed. A
// failed attempt is an op that returns a non-nil error; transport faults and
// empty responses are the same failure class, op converts both to an error.
// Every failed attempt is followed by its backoff sleep, the last one
// included, so exhaustion always waits out the full geometric schedule.
// Context cancellation aborts the backoff sleep and returns ctx.Err().
func Do[T any](ctx context.Context, cfg Config, op func(context.Context) (T, error)) (T, error) {
	var zero T
	cfg = cfg.withDefaults()

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		v, err := op(ctx)
		if err == nil {
			return v, nil
		}

		delay := Backoff(cfg, attempt)
		if cfg.Logger != nil {
			cfg.Logger.Warn("call failed, backing off",
				"attempt", attempt+1, "delay", delay.String(), "error", err.Error())
		}
		if err := sleep(ctx, delay); err != nil {
			return zero, err
		}
	}

	if cfg.Logger != nil {
		cfg.Logger.Warn("call failed after all retries", "attempts", cfg.MaxAttempts)
	}
	return zero, ErrExhausted
}

// Backoff returns the delay after a failed zero-based attempt: geometric
// growth plus jitter. Jitter only ever adds to the base delay.
func Backoff(cfg Config, attempt int) time.Duration {
	delay := cfg.BaseDelay << uint(attempt)
	if cfg.Jitter > 0 {
		delay += time.Duration(rand.Int63n(int64(cfg.Jitter)))
	}
	return delay
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
