// Package report merges a snapshot, its score and the qualitative analysis
// into a ReputationReport and renders it for files and terminals.
package report

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/reputation-cli/internal/model"
)

// SampleSize is the default number of raw reviews kept on a report.
const SampleSize = 10

// Input carries everything Assemble copies into a report.
type Input struct {
	ID          string
	Request     model.ListingRequest
	Provider    string
	GeneratedAt time.Time
	Snapshot    *model.ListingSnapshot
	Breakdown   model.ScoreBreakdown
	Analysis    model.QualitativeAnalysis
	Verdict     model.Recommendation
	// SampleSize caps RawReviewsSample; zero means SampleSize.
	SampleSize int
}

// Assemble builds the report. It fails with model.ErrNoData when no
// snapshot was acquired. Name and location fall back to the request when
// the provider left them blank.
func Assemble(in Input) (*model.ReputationReport, error) {
	snap := in.Snapshot
	if snap == nil {
		return nil, eris.Wrapf(model.ErrNoData, "report: no snapshot for %q", in.Request.Name)
	}

	size := in.SampleSize
	if size <= 0 {
		size = SampleSize
	}
	n := min(len(snap.Reviews), size)
	sample := make([]model.Review, n)
	copy(sample, snap.Reviews[:n])

	return &model.ReputationReport{
		ID:          in.ID,
		ListingName: orDefault(snap.Name, in.Request.Name),
		Location:    orDefault(snap.Address, in.Request.Location),
		Provider:    in.Provider,
		GeneratedAt: in.GeneratedAt.UTC(),
		Listing: model.ListingSummary{
			Rating:          snap.AverageRating,
			TotalReviews:    snap.TotalReviewCount,
			ReviewsAnalyzed: len(snap.Reviews),
			Phone:           snap.Phone,
			Website:         snap.Website,
			Address:         snap.Address,
		},
		Score:            in.Breakdown.Total,
		Breakdown:        in.Breakdown,
		Analysis:         in.Analysis,
		Recommendation:   in.Verdict,
		RawReviewsSample: sample,
	}, nil
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
