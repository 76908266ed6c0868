package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/reputation-cli/internal/model"
	"github.com/sells-group/reputation-cli/internal/scorer"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testSnapshot() *model.ListingSnapshot {
	return &model.ListingSnapshot{
		Name:             "Dental Excellence",
		Address:          "Cra 43A #1-50, Medellín",
		Phone:            "+57 604 000 0000",
		Website:          "https://dental.example",
		AverageRating:    4.8,
		TotalReviewCount: 250,
		Reviews: []model.Review{
			{Text: "Excelente atención", Rating: 5, TimestampUTC: "2026-02-20 10:00:00", AuthorName: "Ana"},
			{Text: "Muy profesionales", Rating: 5, TimestampUTC: "2026-02-10 10:00:00", AuthorName: "Luis"},
			{Text: "", Rating: 4, TimestampUTC: "2025-01-10 10:00:00", AuthorName: "Anonymous"},
		},
	}
}

func newTestPipeline(pc *mockProvider, an Analyzer, st *mockStore) *Pipeline {
	opts := []Option{
		WithClock(func() time.Time { return fixedNow }),
		WithIDFunc(func() string { return "report-1" }),
	}
	sc := scorer.New(scorer.WithClock(func() time.Time { return fixedNow }))
	if st == nil {
		return New(pc, an, sc, nil, opts...)
	}
	return New(pc, an, sc, st, opts...)
}

func TestRun_Success(t *testing.T) {
	ctx := context.Background()
	snap := testSnapshot()
	qa := model.QualitativeAnalysis{
		SentimentDistribution:  model.SentimentDistribution{Positive: 2},
		ProviderRecommendation: model.ProviderGo,
	}

	pc := &mockProvider{}
	pc.On("FetchSnapshot", ctx, "Dental Excellence", "Medellín").Return(snap, nil)
	an := &mockAnalyzer{}
	an.On("Analyze", ctx, snap.Reviews, 50).Return(qa)
	st := &mockStore{}
	st.On("SaveReport", ctx, mock.AnythingOfType("*model.ReputationReport")).Return(nil)

	p := newTestPipeline(pc, an, st)
	r, err := p.Run(ctx, model.ListingRequest{Name: "Dental Excellence", Location: "Medellín"})
	require.NoError(t, err)

	want := scorer.New(scorer.WithClock(func() time.Time { return fixedNow })).Score(snap, qa)
	assert.Equal(t, "report-1", r.ID)
	assert.Equal(t, "outscraper", r.Provider)
	assert.Equal(t, fixedNow, r.GeneratedAt)
	assert.Equal(t, want, r.Breakdown)
	assert.Equal(t, want.Total, r.Score)
	assert.Equal(t, model.RecommendationGo, r.Recommendation)
	assert.Equal(t, "Cra 43A #1-50, Medellín", r.Location)
	assert.Equal(t, 3, r.Listing.ReviewsAnalyzed)
	assert.Len(t, r.RawReviewsSample, 3)

	pc.AssertExpectations(t)
	an.AssertExpectations(t)
	st.AssertExpectations(t)
}

func TestRun_HighSeverityForcesNoGo(t *testing.T) {
	ctx := context.Background()
	snap := testSnapshot()
	qa := model.QualitativeAnalysis{
		RedFlags:               []model.RedFlag{{Type: "malpractice", Severity: model.SeverityHigh}},
		ProviderRecommendation: model.ProviderGo,
	}

	pc := &mockProvider{}
	pc.On("FetchSnapshot", ctx, "Dental Excellence", "Medellín").Return(snap, nil)
	an := &mockAnalyzer{}
	an.On("Analyze", ctx, snap.Reviews, 50).Return(qa)

	r, err := newTestPipeline(pc, an, nil).Run(ctx, model.ListingRequest{Name: "Dental Excellence", Location: "Medellín"})
	require.NoError(t, err)
	assert.Equal(t, model.RecommendationNoGo, r.Recommendation)
}

func TestRun_EmptyAnalysisStillProducesReport(t *testing.T) {
	ctx := context.Background()
	snap := testSnapshot()

	pc := &mockProvider{}
	pc.On("FetchSnapshot", ctx, "Dental Excellence", "Medellín").Return(snap, nil)
	an := &mockAnalyzer{}
	an.On("Analyze", ctx, snap.Reviews, 50).Return(model.QualitativeAnalysis{})

	r, err := newTestPipeline(pc, an, nil).Run(ctx, model.ListingRequest{Name: "Dental Excellence", Location: "Medellín"})
	require.NoError(t, err)
	assert.True(t, r.Analysis.IsEmpty())
	assert.Equal(t, 10, r.Breakdown.RedFlagPenalty)
	// Without a Go from the qualitative layer a high score is INVESTIGATE.
	assert.Equal(t, model.RecommendationInvestigate, r.Recommendation)
}

func TestRun_NilAnalyzer(t *testing.T) {
	ctx := context.Background()
	pc := &mockProvider{}
	pc.On("FetchSnapshot", ctx, "Dental Excellence", "Medellín").Return(testSnapshot(), nil)

	r, err := newTestPipeline(pc, nil, nil).Run(ctx, model.ListingRequest{Name: "Dental Excellence", Location: "Medellín"})
	require.NoError(t, err)
	assert.True(t, r.Analysis.IsEmpty())
}

func TestRun_InvalidRequest(t *testing.T) {
	pc := &mockProvider{}
	_, err := newTestPipeline(pc, nil, nil).Run(context.Background(), model.ListingRequest{Name: "  ", Location: "Cali"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidRequest))
	pc.AssertNotCalled(t, "FetchSnapshot", mock.Anything, mock.Anything, mock.Anything)
}

func TestRun_AcquisitionFailureSavesNothing(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"acquisition", eris.Wrap(model.ErrAcquisition, "bad payload"), model.ErrAcquisition},
		{"poll timeout", eris.Wrap(model.ErrPollTimeout, "18 attempts"), model.ErrPollTimeout},
		{"no data", eris.Wrap(model.ErrNoData, "no candidates"), model.ErrNoData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			pc := &mockProvider{}
			pc.On("FetchSnapshot", ctx, "Dental Excellence", "Medellín").Return(nil, tt.err)
			an := &mockAnalyzer{}
			st := &mockStore{}

			r, err := newTestPipeline(pc, an, st).Run(ctx, model.ListingRequest{Name: "Dental Excellence", Location: "Medellín"})
			require.Error(t, err)
			assert.Nil(t, r)
			assert.True(t, errors.Is(err, tt.sentinel))
			an.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything, mock.Anything)
			st.AssertNotCalled(t, "SaveReport", mock.Anything, mock.Anything)
		})
	}
}

func TestRun_NilSnapshotIsNoData(t *testing.T) {
	ctx := context.Background()
	pc := &mockProvider{}
	pc.On("FetchSnapshot", ctx, "Dental Excellence", "Medellín").Return(nil, nil)

	_, err := newTestPipeline(pc, nil, nil).Run(ctx, model.ListingRequest{Name: "Dental Excellence", Location: "Medellín"})
	assert.True(t, errors.Is(err, model.ErrNoData))
}

func TestRun_SaveFailureReturnsReport(t *testing.T) {
	ctx := context.Background()
	pc := &mockProvider{}
	pc.On("FetchSnapshot", ctx, "Dental Excellence", "Medellín").Return(testSnapshot(), nil)
	st := &mockStore{}
	st.On("SaveReport", ctx, mock.Anything).Return(errors.New("disk full"))

	r, err := newTestPipeline(pc, nil, st).Run(ctx, model.ListingRequest{Name: "Dental Excellence", Location: "Medellín"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	require.NotNil(t, r)
	assert.Equal(t, "report-1", r.ID)
}

func TestRunBatch_CountsFailures(t *testing.T) {
	ctx := context.Background()
	pc := &mockProvider{}
	pc.On("FetchSnapshot", mock.Anything, "Dental Excellence", "Medellín").Return(testSnapshot(), nil)
	pc.On("FetchSnapshot", mock.Anything, "Ghost Clinic", "Cali").Return(nil, eris.Wrap(model.ErrNoData, "none"))

	p := newTestPipeline(pc, nil, nil)
	summary, err := p.RunBatch(ctx, []model.ListingRequest{
		{Name: "Dental Excellence", Location: "Medellín"},
		{Name: "Ghost Clinic", Location: "Cali"},
		{Name: "", Location: "Bogotá"},
	}, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 2, summary.Failed)
	require.Len(t, summary.Results, 3)
	assert.NotNil(t, summary.Results[0].Report)
	assert.True(t, errors.Is(summary.Results[1].Err, model.ErrNoData))
	assert.True(t, errors.Is(summary.Results[2].Err, model.ErrInvalidRequest))
}

func TestRunBatch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pc := &mockProvider{}
	summary, err := newTestPipeline(pc, nil, nil).RunBatch(ctx, []model.ListingRequest{{Name: "A", Location: "B"}}, 0)
	require.Error(t, err)
	assert.Equal(t, 1, summary.Failed)
	pc.AssertNotCalled(t, "FetchSnapshot", mock.Anything, mock.Anything, mock.Anything)
}
