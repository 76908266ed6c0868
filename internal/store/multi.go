package store

import (
	"context"
	"errors"

	"github.com/sells-group/reputation-cli/internal/model"
)

// Multi fans writes out to every store and serves reads from the first.
type Multi []Store

func (m Multi) SaveReport(ctx context.Context, r *model.ReputationReport) error {
	for _, s := range m {
		if err := s.SaveReport(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

func (m Multi) GetReport(ctx context.Context, id string) (*model.ReputationReport, error) {
	if len(m) == 0 {
		return nil, ErrHistoryUnsupported
	}
	return m[0].GetReport(ctx, id)
}

func (m Multi) ListReports(ctx context.Context, filter ReportFilter) ([]model.ReputationReport, error) {
	if len(m) == 0 {
		return nil, ErrHistoryUnsupported
	}
	return m[0].ListReports(ctx, filter)
}

func (m Multi) Migrate(ctx context.Context) error {
	for _, s := range m {
		if err := s.Migrate(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (m Multi) Close() error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}
