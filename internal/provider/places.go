package provider

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/reputation-cli/internal/model"
	"github.com/sells-group/reputation-cli/pkg/google"
)

// Places acquires snapshots through Google Places: a text search picks the
// first candidate and a details call fetches its reviews.
type Places struct {
	client google.Client
}

// NewPlaces wires a Places provider.
func NewPlaces(client google.Client) *Places {
	return &Places{client: client}
}

// Name implements Client.
func (p *Places) Name() string { return NameGoogle }

// SampleLimit implements Client. Places returns at most a handful of reviews
// per listing.
func (p *Places) SampleLimit() int { return 20 }

// FetchSnapshot implements Client. The first search result wins; no fuzzy
// matching against name is attempted.
func (p *Places) FetchSnapshot(ctx context.Context, name, location string) (*model.ListingSnapshot, error) {
	query := strings.TrimSpace(strings.TrimSpace(name) + " " + strings.TrimSpace(location))

	search, err := p.client.TextSearch(ctx, query)
	if err != nil {
		return nil, acquisitionError(err, "google: search %q", query)
	}
	if len(search.Places) == 0 {
		return nil, eris.Wrapf(model.ErrNoData, "google: no candidates for %q", query)
	}

	candidate := search.Places[0]
	if candidate.ID == "" {
		return nil, acquisitionError(nil, "google: first candidate for %q has no id", query)
	}

	details, err := p.client.PlaceDetails(ctx, candidate.ID)
	if err != nil {
		return nil, acquisitionError(err, "google: details for %s", candidate.ID)
	}

	snap := snapshotFromGoogle(details)
	if snap.Name == "" {
		snap.Name = candidate.DisplayName.Text
	}
	if snap.Address == "" {
		snap.Address = candidate.FormattedAddress
	}

	zap.L().Info("google: listing acquired",
		zap.String("provider", NameGoogle),
		zap.String("listing", name),
		zap.String("place_id", candidate.ID),
		zap.Int("candidates", len(search.Places)),
		zap.Int("detailed_reviews", len(snap.Reviews)),
	)
	return snap, nil
}
