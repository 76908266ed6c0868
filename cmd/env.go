package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/reputation-cli/internal/analyzer"
	"github.com/sells-group/reputation-cli/internal/config"
	"github.com/sells-group/reputation-cli/internal/pipeline"
	"github.com/sells-group/reputation-cli/internal/provider"
	"github.com/sells-group/reputation-cli/internal/scorer"
	"github.com/sells-group/reputation-cli/internal/store"
	anthropicpkg "github.com/sells-group/reputation-cli/pkg/anthropic"
	"github.com/sells-group/reputation-cli/pkg/google"
	"github.com/sells-group/reputation-cli/pkg/outscraper"
)

// pipelineEnv holds the store and pipeline needed by analyze, batch and serve.
type pipelineEnv struct {
	Store    store.Store
	Files    *store.FileStore
	Pipeline *pipeline.Pipeline
}

// Close releases resources held by the environment.
func (pe *pipelineEnv) Close() {
	if pe.Store != nil {
		_ = pe.Store.Close()
	}
}

// initPipeline validates config for mode, opens the store and builds the
// pipeline. Callers should defer env.Close().
func initPipeline(ctx context.Context, mode string) (*pipelineEnv, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	pc, err := newProvider(cfg)
	if err != nil {
		return nil, err
	}

	st, files, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New(pc, newAnalyzer(cfg), scorer.New(), st,
		pipeline.WithSampleSize(cfg.Report.SampleSize),
	)
	return &pipelineEnv{Store: st, Files: files, Pipeline: p}, nil
}

// newProvider builds the acquisition client named by cfg.Provider.Kind.
func newProvider(c *config.Config) (provider.Client, error) {
	switch c.Provider.Kind {
	case config.ProviderOutscraper:
		client := outscraper.NewClient(c.Outscraper.Key, outscraper.WithBaseURL(c.Outscraper.BaseURL))
		return provider.NewOutscraper(client, provider.OutscraperOptions{
			QuerySuffix:  c.Provider.QuerySuffix,
			Language:     c.Provider.Language,
			Region:       c.Provider.Region,
			ReviewsLimit: c.Outscraper.ReviewsLimit,
		},
			outscraper.WithPollInterval(c.Provider.PollInterval()),
			outscraper.WithPollAttempts(c.Provider.PollAttempts),
		), nil
	case config.ProviderGoogle:
		client := google.NewClient(c.Google.Key,
			google.WithBaseURL(c.Google.BaseURL),
			google.WithLanguage(c.Provider.Language),
		)
		return provider.NewPlaces(client), nil
	default:
		return nil, eris.Errorf("unsupported provider: %s", c.Provider.Kind)
	}
}

// newAnalyzer returns an analyzer; without an Anthropic key every report
// carries an empty qualitative section.
func newAnalyzer(c *config.Config) *analyzer.Analyzer {
	acfg := analyzer.Config{
		Model:       c.Anthropic.Model,
		MaxTokens:   c.Anthropic.MaxTokens,
		Temperature: c.Anthropic.Temperature,
	}
	if c.Anthropic.Key == "" {
		zap.L().Warn("anthropic.key not set, qualitative analysis disabled")
		return analyzer.New(nil, acfg)
	}
	return analyzer.New(anthropicpkg.NewClient(c.Anthropic.Key), acfg)
}

// initStore opens the configured history backend. Report files are always
// written to report.output_dir; a database driver is written first and
// serves reads.
func initStore(ctx context.Context) (store.Store, *store.FileStore, error) {
	files := store.NewFileStore(cfg.Report.OutputDir)

	var st store.Store
	switch cfg.Store.Driver {
	case config.DriverFile, "":
		st = files
	case config.DriverSQLite:
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "reputation.db"
		}
		db, err := store.NewSQLite(dsn)
		if err != nil {
			return nil, nil, err
		}
		st = store.Multi{db, files}
	case config.DriverPostgres:
		db, err := store.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
		if err != nil {
			return nil, nil, err
		}
		st = store.Multi{db, files}
	default:
		return nil, nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}

	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, nil, eris.Wrap(err, "migrate store")
	}
	return st, files, nil
}
