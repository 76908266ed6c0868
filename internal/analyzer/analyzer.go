// Package analyzer produces the qualitative layer of a reputation report by
// sending a bounded review sample to Claude and parsing its structured reply.
// It never fails the run: every problem degrades to an empty analysis.
package analyzer

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/reputation-cli/internal/model"
	"github.com/sells-group/reputation-cli/pkg/anthropic"
)

// Defaults used when Config fields are zero.
const (
	DefaultModel       = "claude-haiku-4-5-20251001"
	DefaultMaxTokens   = 2000
	DefaultTemperature = 0.3
)

const costPhase = "qualitative"

// Config controls the classification call.
type Config struct {
	Model       string
	MaxTokens   int64
	Temperature float64
}

func (c Config) withDefaults() Config {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.Temperature <= 0 {
		c.Temperature = DefaultTemperature
	}
	return c
}

// Analyzer classifies reviews. It holds no per-request state and is safe
// for concurrent use.
type Analyzer struct {
	client anthropic.Client
	cfg    Config
}

// New creates an Analyzer. A nil client means no credential was configured;
// every call then returns the empty analysis.
func New(client anthropic.Client, cfg Config) *Analyzer {
	return &Analyzer{client: client, cfg: cfg.withDefaults()}
}

// Analyze classifies up to limit reviews. Failures are logged and yield the
// zero QualitativeAnalysis.
func (a *Analyzer) Analyze(ctx context.Context, reviews []model.Review, limit int) model.QualitativeAnalysis {
	qa, err := a.analyze(ctx, reviews, limit)
	if err != nil {
		zap.L().Warn("analyzer: qualitative analysis unavailable",
			zap.Int("reviews", len(reviews)),
			zap.Error(err),
		)
		return model.QualitativeAnalysis{}
	}
	return qa
}

func (a *Analyzer) analyze(ctx context.Context, reviews []model.Review, limit int) (model.QualitativeAnalysis, error) {
	var empty model.QualitativeAnalysis

	if a == nil || a.client == nil {
		return empty, eris.Wrap(model.ErrQualitativeUnavailable, "anthropic credential not configured")
	}
	if len(reviews) == 0 {
		return empty, eris.Wrap(model.ErrQualitativeUnavailable, "no reviews to analyze")
	}

	sample := BuildSample(reviews, limit)
	if sample == "" {
		return empty, eris.Wrap(model.ErrQualitativeUnavailable, "no review carries text")
	}

	temp := a.cfg.Temperature
	resp, err := a.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       a.cfg.Model,
		MaxTokens:   a.cfg.MaxTokens,
		System:      systemPrompt,
		Messages:    []anthropic.Message{{Role: "user", Content: userPrompt(sample)}},
		Temperature: &temp,
	})
	if err != nil {
		return empty, eris.Wrapf(model.ErrQualitativeUnavailable, "classification call: %v", err)
	}
	resp.Usage.LogCost(a.cfg.Model, costPhase)

	qa, err := ParseAnalysis(resp.Text())
	if err != nil {
		return empty, eris.Wrapf(model.ErrQualitativeUnavailable, "parse reply: %v", err)
	}
	return qa, nil
}
