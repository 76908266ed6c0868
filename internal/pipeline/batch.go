package pipeline

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/reputation-cli/internal/model"
)

// BatchResult records the outcome for one listing of a batch.
type BatchResult struct {
	Request model.ListingRequest
	Report  *model.ReputationReport
	Err     error
}

// BatchSummary counts batch outcomes.
type BatchSummary struct {
	Results   []BatchResult
	Succeeded int
	Failed    int
}

// RunBatch evaluates every request with at most concurrency runs in flight.
// Per-listing failures are recorded, not returned; the error is non-nil
// only when ctx ends before the batch completes.
func (p *Pipeline) RunBatch(ctx context.Context, reqs []model.ListingRequest, concurrency int) (*BatchSummary, error) {
	if concurrency <= 0 {
		concurrency = 1
	}
	results := make([]BatchResult, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var mu sync.Mutex
	summary := &BatchSummary{}

	for i, req := range reqs {
		g.Go(func() error {
			var (
				r   *model.ReputationReport
				err = gctx.Err()
			)
			if err == nil {
				r, err = p.Run(gctx, req)
			}
			results[i] = BatchResult{Request: req, Report: r, Err: err}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				summary.Failed++
				zap.L().Warn("batch: listing failed",
					zap.String("listing", req.Name),
					zap.String("location", req.Location),
					zap.Error(err),
				)
				return nil
			}
			summary.Succeeded++
			return nil
		})
	}
	_ = g.Wait()

	summary.Results = results
	return summary, ctx.Err()
}
