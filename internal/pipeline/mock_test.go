package pipeline

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/reputation-cli/internal/model"
	"github.com/sells-group/reputation-cli/internal/store"
)

// --- Provider Mock ---

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Name() string { return "outscraper" }

func (m *mockProvider) SampleLimit() int { return 50 }

func (m *mockProvider) FetchSnapshot(ctx context.Context, name, location string) (*model.ListingSnapshot, error) {
	args := m.Called(ctx, name, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ListingSnapshot), args.Error(1)
}

// --- Analyzer Mock ---

type mockAnalyzer struct {
	mock.Mock
}

func (m *mockAnalyzer) Analyze(ctx context.Context, reviews []model.Review, limit int) model.QualitativeAnalysis {
	args := m.Called(ctx, reviews, limit)
	return args.Get(0).(model.QualitativeAnalysis)
}

// --- Store Mock ---

type mockStore struct {
	mock.Mock
}

func (m *mockStore) SaveReport(ctx context.Context, r *model.ReputationReport) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockStore) GetReport(ctx context.Context, id string) (*model.ReputationReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReputationReport), args.Error(1)
}

func (m *mockStore) ListReports(ctx context.Context, filter store.ReportFilter) ([]model.ReputationReport, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ReputationReport), args.Error(1)
}

func (m *mockStore) Migrate(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *mockStore) Close() error { return m.Called().Error(0) }
