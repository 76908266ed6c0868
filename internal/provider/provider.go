// Package provider acquires listing snapshots from review-data providers.
// Two protocols sit behind one Client: Outscraper's submit-and-poll job API
// and Google Places' search-then-fetch pair of calls.
package provider

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/sells-group/reputation-cli/internal/model"
)

// Provider names accepted by configuration.
const (
	NameOutscraper = "outscraper"
	NameGoogle     = "google"
)

// Client produces a normalized snapshot for one listing.
type Client interface {
	// Name identifies the provider in reports and logs.
	Name() string
	// SampleLimit caps the reviews handed to the qualitative step.
	SampleLimit() int
	// FetchSnapshot returns the listing or an error wrapping one of
	// model.ErrAcquisition, model.ErrPollTimeout or model.ErrNoData.
	FetchSnapshot(ctx context.Context, name, location string) (*model.ListingSnapshot, error)
}

// acquisitionError wraps cause under model.ErrAcquisition so callers can
// classify it while the message keeps the underlying detail.
func acquisitionError(cause error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if cause == nil {
		return eris.Wrap(model.ErrAcquisition, msg)
	}
	return eris.Wrapf(model.ErrAcquisition, "%s: %v", msg, cause)
}
