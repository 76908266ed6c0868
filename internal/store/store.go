// Package store persists reputation reports: one JSON file per run, plus an
// optional queryable history in SQLite or Postgres.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/reputation-cli/internal/model"
)

// ErrNotFound is returned by GetReport when no report has the given id.
var ErrNotFound = eris.New("report not found")

// ErrHistoryUnsupported is returned by stores that only write artifacts.
var ErrHistoryUnsupported = eris.New("store does not keep report history")

const defaultListLimit = 50

// ReportFilter narrows ListReports. ListingName is a case-insensitive
// substring match.
type ReportFilter struct {
	ListingName    string               `json:"listing_name,omitempty"`
	Recommendation model.Recommendation `json:"recommendation,omitempty"`
	Limit          int                  `json:"limit,omitempty"`
	Offset         int                  `json:"offset,omitempty"`
}

func (f ReportFilter) limit() uint64 {
	if f.Limit <= 0 {
		return defaultListLimit
	}
	return uint64(f.Limit)
}

func (f ReportFilter) offset() uint64 {
	if f.Offset < 0 {
		return 0
	}
	return uint64(f.Offset)
}

// Store defines report persistence. Reports are immutable; saving a report
// with an existing id replaces the stored copy.
type Store interface {
	SaveReport(ctx context.Context, r *model.ReputationReport) error
	GetReport(ctx context.Context, id string) (*model.ReputationReport, error)
	ListReports(ctx context.Context, filter ReportFilter) ([]model.ReputationReport, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
