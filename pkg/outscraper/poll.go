package outscraper

import (
	"context"
	"errors"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/reputation-cli/internal/resilience"
)

const (
	defaultPollInterval = 5 * time.Second
	defaultPollAttempts = 18
)

// PollOption configures polling behavior.
type PollOption func(*resilience.PollConfig)

// WithPollInterval overrides the wait before each poll.
func WithPollInterval(d time.Duration) PollOption {
	return func(c *resilience.PollConfig) {
		if d > 0 {
			c.Interval = d
		}
	}
}

// WithPollAttempts overrides the attempt ceiling.
func WithPollAttempts(n int) PollOption {
	return func(c *resilience.PollConfig) {
		if n > 0 {
			c.MaxAttempts = n
		}
	}
}

// WithSleep replaces the wall-clock wait between polls.
func WithSleep(fn resilience.SleepFunc) PollOption {
	return func(c *resilience.PollConfig) {
		c.Sleep = fn
	}
}

// PollResult waits on a job's results location until it reports Success.
// Defaults to 18 attempts 5s apart (a 90s ceiling). Pending responses and
// any non-2xx reply from the results location count as not ready; a Failed
// job or an undecodable body stops polling. Exhausting the ceiling returns an
// error wrapping resilience.ErrPollExhausted.
func PollResult(ctx context.Context, client Client, resultsLocation string, opts ...PollOption) (*ResultResponse, error) {
	cfg := resilience.PollConfig{
		Interval:    defaultPollInterval,
		MaxAttempts: defaultPollAttempts,
		OnNotReady:  resilience.PollLogger("outscraper", "get_result"),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return resilience.Poll(ctx, cfg, func(ctx context.Context) (*ResultResponse, bool, error) {
		resp, err := client.GetResult(ctx, resultsLocation)
		if err != nil {
			var apiErr *APIError
			if errors.As(err, &apiErr) {
				return nil, false, resilience.NewTransientError(err, apiErr.StatusCode)
			}
			return nil, false, err
		}

		switch resp.Status {
		case StatusSuccess:
			return resp, true, nil
		case StatusFailed, StatusError:
			return nil, false, eris.Errorf("outscraper: request %s finished with status %q", resp.ID, resp.Status)
		default:
			return nil, false, nil
		}
	})
}
