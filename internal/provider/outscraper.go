package provider

import (
	"context"
	"errors"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/reputation-cli/internal/model"
	"github.com/sells-group/reputation-cli/internal/resilience"
	"github.com/sells-group/reputation-cli/pkg/outscraper"
)

// OutscraperOptions shapes the search job submitted to Outscraper.
type OutscraperOptions struct {
	QuerySuffix  string
	Language     string
	Region       string
	ReviewsLimit int
}

// DefaultOutscraperOptions targets dental clinics in Colombia.
func DefaultOutscraperOptions() OutscraperOptions {
	return OutscraperOptions{
		QuerySuffix:  "dental clinic",
		Language:     "es",
		Region:       "CO",
		ReviewsLimit: 50,
	}
}

// Outscraper acquires snapshots through the submit-and-poll protocol.
type Outscraper struct {
	client   outscraper.Client
	opts     OutscraperOptions
	pollOpts []outscraper.PollOption
}

// NewOutscraper wires an Outscraper provider. Poll options are passed
// through to outscraper.PollResult.
func NewOutscraper(client outscraper.Client, opts OutscraperOptions, pollOpts ...outscraper.PollOption) *Outscraper {
	return &Outscraper{client: client, opts: opts, pollOpts: pollOpts}
}

// Name implements Client.
func (o *Outscraper) Name() string { return NameOutscraper }

// SampleLimit implements Client.
func (o *Outscraper) SampleLimit() int { return 50 }

// Query builds the free-text search query for a listing.
func (o *Outscraper) Query(name, location string) string {
	parts := []string{strings.TrimSpace(name), strings.TrimSpace(location)}
	if s := strings.TrimSpace(o.opts.QuerySuffix); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

// FetchSnapshot submits a maps search job, polls its results location and
// unwraps the first place from the [[{place}]] envelope.
func (o *Outscraper) FetchSnapshot(ctx context.Context, name, location string) (*model.ListingSnapshot, error) {
	log := zap.L().With(
		zap.String("provider", NameOutscraper),
		zap.String("listing", name),
		zap.String("location", location),
	)

	job, err := o.client.SearchMaps(ctx, outscraper.SearchRequest{
		Query:        o.Query(name, location),
		Language:     o.opts.Language,
		Region:       o.opts.Region,
		ReviewsLimit: o.opts.ReviewsLimit,
	})
	if err != nil {
		return nil, acquisitionError(err, "outscraper: submit search")
	}
	if job.ResultsLocation == "" {
		return nil, acquisitionError(nil, "outscraper: job %s returned no results_location", job.ID)
	}

	log.Info("outscraper: job submitted, waiting for results", zap.String("job_id", job.ID))

	result, err := outscraper.PollResult(ctx, o.client, job.ResultsLocation, o.pollOpts...)
	if err != nil {
		switch {
		case errors.Is(err, resilience.ErrPollExhausted):
			return nil, eris.Wrapf(model.ErrPollTimeout, "outscraper: job %s", job.ID)
		case ctx.Err() != nil:
			return nil, eris.Wrapf(err, "outscraper: job %s", job.ID)
		default:
			return nil, acquisitionError(err, "outscraper: job %s", job.ID)
		}
	}

	place, err := outscraper.UnwrapPlace(result.Data)
	if err != nil {
		return nil, acquisitionError(err, "outscraper: job %s", job.ID)
	}

	snap := snapshotFromOutscraper(place)
	log.Info("outscraper: listing acquired",
		zap.String("job_id", job.ID),
		zap.String("name", snap.Name),
		zap.Float64("rating", snap.AverageRating),
		zap.Int("total_reviews", snap.TotalReviewCount),
		zap.Int("detailed_reviews", len(snap.Reviews)),
	)
	return snap, nil
}
