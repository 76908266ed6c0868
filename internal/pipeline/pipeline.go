// Package pipeline runs one reputation evaluation end to end: acquire,
// analyze, score, recommend, assemble and persist.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/reputation-cli/internal/model"
	"github.com/sells-group/reputation-cli/internal/provider"
	"github.com/sells-group/reputation-cli/internal/report"
	"github.com/sells-group/reputation-cli/internal/scorer"
	"github.com/sells-group/reputation-cli/internal/store"
)

// Analyzer is the qualitative step. Implementations never fail; an
// unavailable analysis is the zero value.
type Analyzer interface {
	Analyze(ctx context.Context, reviews []model.Review, limit int) model.QualitativeAnalysis
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock overrides the report timestamp source.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// WithIDFunc overrides report ID generation.
func WithIDFunc(fn func() string) Option {
	return func(p *Pipeline) { p.newID = fn }
}

// WithSampleSize sets how many raw reviews each report keeps.
func WithSampleSize(n int) Option {
	return func(p *Pipeline) { p.sampleSize = n }
}

// Pipeline holds no per-run state, so one value serves concurrent runs.
type Pipeline struct {
	provider provider.Client
	analyzer Analyzer
	scorer   *scorer.Scorer
	store    store.Store
	now      func() time.Time
	newID    func() string

	sampleSize int
}

// New creates a Pipeline. st may be nil, in which case reports are returned
// but not persisted.
func New(pc provider.Client, an Analyzer, sc *scorer.Scorer, st store.Store, opts ...Option) *Pipeline {
	p := &Pipeline{
		provider: pc,
		analyzer: an,
		scorer:   sc,
		store:    st,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
	if p.scorer == nil {
		p.scorer = scorer.New()
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Provider returns the name of the acquisition backend.
func (p *Pipeline) Provider() string { return p.provider.Name() }

// Run evaluates one listing. Acquisition failures are fatal and nothing is
// saved. A persistence failure returns the assembled report alongside the
// error so callers can still show it.
func (p *Pipeline) Run(ctx context.Context, req model.ListingRequest) (*model.ReputationReport, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	log := zap.L().With(
		zap.String("listing", req.Name),
		zap.String("location", req.Location),
		zap.String("provider", p.provider.Name()),
	)
	log.Info("pipeline: starting evaluation")
	start := time.Now()

	snap, err := p.provider.FetchSnapshot(ctx, req.Name, req.Location)
	if err != nil {
		log.Error("pipeline: acquisition failed", zap.Error(err))
		return nil, eris.Wrap(err, "pipeline: fetch snapshot")
	}
	if snap == nil {
		return nil, eris.Wrapf(model.ErrNoData, "pipeline: provider returned no listing for %q", req.Name)
	}
	log.Info("pipeline: snapshot acquired",
		zap.Int("reviews", len(snap.Reviews)),
		zap.Int("total_reviews", snap.TotalReviewCount),
		zap.Float64("rating", snap.AverageRating),
	)

	var qa model.QualitativeAnalysis
	if p.analyzer != nil {
		qa = p.analyzer.Analyze(ctx, snap.Reviews, p.provider.SampleLimit())
	}

	breakdown := p.scorer.Score(snap, qa)
	verdict := scorer.Recommend(breakdown.Total, qa)

	r, err := report.Assemble(report.Input{
		ID:          p.newID(),
		Request:     req,
		Provider:    p.provider.Name(),
		GeneratedAt: p.now(),
		Snapshot:    snap,
		Breakdown:   breakdown,
		Analysis:    qa,
		Verdict:     verdict,
		SampleSize:  p.sampleSize,
	})
	if err != nil {
		return nil, err
	}

	log.Info("pipeline: evaluation complete",
		zap.String("report_id", r.ID),
		zap.Int("score", r.Score),
		zap.String("recommendation", string(r.Recommendation)),
		zap.Duration("elapsed", time.Since(start)),
	)

	if p.store == nil {
		return r, nil
	}
	if err := p.store.SaveReport(ctx, r); err != nil {
		log.Error("pipeline: save report failed", zap.Error(err))
		return r, eris.Wrap(err, "pipeline: save report")
	}
	return r, nil
}
