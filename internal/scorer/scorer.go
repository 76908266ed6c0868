// Package scorer turns a listing snapshot and its qualitative analysis into
// a bounded 0-100 reputation score and a final recommendation.
package scorer

import (
	"time"

	"github.com/sells-group/reputation-cli/internal/model"
)

// Sub-score ceilings.
const (
	MaxRating  = 40
	MaxVolume  = 20
	MaxRecency = 15
	MaxTrend   = 15
	MaxRedFlag = 10
)

const (
	// DefaultRecencyWindow is how far back a review still counts as recent.
	DefaultRecencyWindow = 180 * 24 * time.Hour

	// NeutralRecency is awarded when there are no reviews at all.
	NeutralRecency = 10.0

	// NeutralTrend is a fixed placeholder; no historical baseline exists.
	NeutralTrend = 10
)

// Option configures a Scorer.
type Option func(*Scorer)

// WithClock overrides the time source used for recency.
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRecencyWindow overrides DefaultRecencyWindow.
func WithRecencyWindow(d time.Duration) Option {
	return func(s *Scorer) {
		if d > 0 {
			s.window = d
		}
	}
}

// Scorer computes ScoreBreakdowns. It is stateless apart from its clock.
type Scorer struct {
	now    func() time.Time
	window time.Duration
}

// New creates a Scorer using the wall clock.
func New(opts ...Option) *Scorer {
	s := &Scorer{now: time.Now, window: DefaultRecencyWindow}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Score computes every sub-score. Total is the truncated sum.
func (s *Scorer) Score(snap *model.ListingSnapshot, qa model.QualitativeAnalysis) model.ScoreBreakdown {
	if snap == nil {
		snap = &model.ListingSnapshot{}
	}
	b := model.ScoreBreakdown{
		Rating:         RatingScore(snap.AverageRating),
		Volume:         VolumeScore(snap.TotalReviewCount, len(snap.Reviews)),
		Recency:        RecencyScore(snap.Reviews, s.now(), s.window),
		Trend:          TrendScore(),
		RedFlagPenalty: RedFlagScore(qa),
	}
	b.Total = int(b.Rating + float64(b.Volume) + b.Recency + float64(b.Trend) + float64(b.RedFlagPenalty))
	return b
}

// RatingScore scales a 0-5 average onto 0-40.
func RatingScore(avg float64) float64 {
	return avg / 5 * MaxRating
}

// VolumeScore is a step function of the provider-reported total, falling
// back to the retrieved count when the total is zero.
func VolumeScore(total, retrieved int) int {
	n := total
	if n <= 0 {
		n = retrieved
	}
	switch {
	case n >= 100:
		return 20
	case n >= 50:
		return 15
	case n >= 20:
		return 10
	default:
		return 5
	}
}

// RecencyScore is the share of reviews published after now-window, scaled
// to 15. Reviews whose timestamp is missing or unparseable count toward the
// denominator only. An empty slice scores NeutralRecency.
func RecencyScore(reviews []model.Review, now time.Time, window time.Duration) float64 {
	if len(reviews) == 0 {
		return NeutralRecency
	}
	cutoff := now.Add(-window)
	var recent int
	for _, r := range reviews {
		t, ok := r.PublishedAt()
		if ok && t.After(cutoff) {
			recent++
		}
	}
	return float64(recent) / float64(len(reviews)) * MaxRecency
}

// TrendScore returns NeutralTrend.
func TrendScore() int {
	return NeutralTrend
}

// RedFlagScore maps red-flag severities onto 0-10. An empty analysis scores
// the full 10.
func RedFlagScore(qa model.QualitativeAnalysis) int {
	medium := qa.CountSeverity(model.SeverityMedium)
	switch {
	case qa.HasHighSeverity():
		return 0
	case medium > 2:
		return 3
	case medium > 0:
		return 6
	default:
		return MaxRedFlag
	}
}
