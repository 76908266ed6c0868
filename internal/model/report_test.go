package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReputationReport_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	original := ReputationReport{
		ID:          "7d3c2f0e-4b7a-4c3e-9a51-0f6f3b2a1c11",
		ListingName: "Dental Excellence",
		Location:    "Cra. 43A #1-50, Medellín",
		Provider:    "outscraper",
		GeneratedAt: time.Date(2026, 1, 15, 10, 4, 5, 0, time.UTC),
		Listing: ListingSummary{
			Rating:          4.5,
			TotalReviews:    120,
			ReviewsAnalyzed: 2,
			Phone:           "+57 604 000 0000",
			Website:         "https://dental.example.co",
			Address:         "Cra. 43A #1-50, Medellín",
		},
		Score: 91,
		Breakdown: ScoreBreakdown{
			Rating: 36, Volume: 20, Recency: 15, Trend: 10, RedFlagPenalty: 10, Total: 91,
		},
		Analysis: QualitativeAnalysis{
			SentimentDistribution: SentimentDistribution{Positive: 2},
			Themes: map[ThemeKey]ThemeScore{
				ThemeQuality: {Mentions: 2, AverageSentiment: 4.5},
			},
			KeyCitations:           []Citation{{Sentiment: "positive", Text: "Excelente atención", Author: "Ana"}},
			ProviderRecommendation: ProviderGo,
			ProviderReasoning:      "Consistently positive reviews",
		},
		Recommendation: RecommendationGo,
		RawReviewsSample: []Review{
			{Text: "Excelente atención", Rating: 5, TimestampUTC: "2026-01-10 12:00:00", AuthorName: "Ana"},
			{Rating: 4, AuthorName: AnonymousAuthor},
		},
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded ReputationReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
}

func TestReputationReport_JSONFieldNames(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(ReputationReport{Recommendation: RecommendationNoGo})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"clinic_name", "clinic_location", "analysis_date", "reputation_score", "score_breakdown", "qualitative_analysis", "recommendation", "raw_reviews_sample"} {
		assert.Contains(t, raw, key)
	}
	assert.Equal(t, "NO-GO", raw["recommendation"])
}
