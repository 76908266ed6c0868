package store

import (
	"fmt"
	"time"

	"github.com/sells-group/reputation-cli/internal/model"
)

var baseTime = time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

func testReport(id, name string, offset time.Duration, rec model.Recommendation) *model.ReputationReport {
	return &model.ReputationReport{
		ID:          id,
		ListingName: name,
		Location:    "Medellín",
		Provider:    "outscraper",
		GeneratedAt: baseTime.Add(offset),
		Listing:     model.ListingSummary{Rating: 4.5, TotalReviews: 120, ReviewsAnalyzed: 2},
		Score:       91,
		Breakdown:   model.ScoreBreakdown{Rating: 36, Volume: 20, Recency: 15, Trend: 10, RedFlagPenalty: 10, Total: 91},
		Analysis: model.QualitativeAnalysis{
			SentimentDistribution:  model.SentimentDistribution{Positive: 2},
			ProviderRecommendation: model.ProviderGo,
		},
		Recommendation: rec,
		RawReviewsSample: []model.Review{
			{Text: fmt.Sprintf("%s review", name), Rating: 5, AuthorName: "Ana", TimestampUTC: "2026-01-10 10:00:00"},
		},
	}
}
