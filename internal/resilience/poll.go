package resilience

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ErrPollExhausted is returned when every poll attempt reported not ready.
var ErrPollExhausted = eris.New("poll attempts exhausted")

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// ContextSleep is the default SleepFunc backed by a real timer.
func ContextSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// PollConfig controls a fixed-interval poll loop.
type PollConfig struct {
	// Interval is the wait before every attempt, including the first.
	Interval time.Duration

	// MaxAttempts bounds the number of probes. Interval*MaxAttempts is the
	// total wait before giving up.
	MaxAttempts int

	// Sleep replaces the wall-clock wait. Tests inject a no-op.
	Sleep SleepFunc

	// OnNotReady is called after an attempt that did not finish.
	OnNotReady func(attempt int, err error)
}

// PollFunc probes once. done=false with a nil error means not ready yet.
// A transient error is treated the same as not ready; any other error
// stops the loop.
type PollFunc[T any] func(ctx context.Context) (val T, done bool, err error)

// Poll waits Interval, probes, and repeats up to MaxAttempts times.
func Poll[T any](ctx context.Context, cfg PollConfig, fn PollFunc[T]) (T, error) {
	var zero T
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	sleep := cfg.Sleep
	if sleep == nil {
		sleep = ContextSleep
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := sleep(ctx, cfg.Interval); err != nil {
			return zero, eris.Wrap(err, "poll: wait interrupted")
		}

		val, done, err := fn(ctx)
		switch {
		case err != nil && !IsTransient(err):
			return zero, err
		case err == nil && done:
			return val, nil
		}

		lastErr = err
		if cfg.OnNotReady != nil {
			cfg.OnNotReady(attempt, err)
		}
	}

	if lastErr != nil {
		return zero, eris.Wrapf(ErrPollExhausted, "after %d attempts (last error: %v)", cfg.MaxAttempts, lastErr)
	}
	return zero, eris.Wrapf(ErrPollExhausted, "after %d attempts", cfg.MaxAttempts)
}

// PollLogger returns an OnNotReady callback that logs each pending attempt.
func PollLogger(service, operation string) func(int, error) {
	return func(attempt int, err error) {
		fields := []zap.Field{
			zap.String("service", service),
			zap.String("operation", operation),
			zap.Int("attempt", attempt),
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		zap.L().Debug("result not ready", fields...)
	}
}
