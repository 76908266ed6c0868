package model

import "time"

// Recommendation is the final verdict of a reputation run.
type Recommendation string

const (
	RecommendationGo          Recommendation = "GO"
	RecommendationNoGo        Recommendation = "NO-GO"
	RecommendationInvestigate Recommendation = "INVESTIGATE"
)

// ScoreBreakdown holds the five sub-scores and their truncated sum.
// Ranges: rating 0-40, volume 0-20, recency 0-15, trend 0-15, red flags 0-10.
type ScoreBreakdown struct {
	Rating         float64 `json:"rating"`
	Volume         int     `json:"volume"`
	Recency        float64 `json:"recency"`
	Trend          int     `json:"trend"`
	RedFlagPenalty int     `json:"red_flag_penalty"`
	Total          int     `json:"total"`
}

// ListingSummary is the snapshot metadata carried into the report.
type ListingSummary struct {
	Rating          float64 `json:"rating"`
	TotalReviews    int     `json:"total_reviews"`
	ReviewsAnalyzed int     `json:"reviews_analyzed"`
	Phone           string  `json:"phone"`
	Website         string  `json:"website"`
	Address         string  `json:"address"`
}

// ReputationReport is the immutable artifact of one acquisition run.
type ReputationReport struct {
	ID               string              `json:"id"`
	ListingName      string              `json:"clinic_name"`
	Location         string              `json:"clinic_location"`
	Provider         string              `json:"provider"`
	GeneratedAt      time.Time           `json:"analysis_date"`
	Listing          ListingSummary      `json:"listing"`
	Score            int                 `json:"reputation_score"`
	Breakdown        ScoreBreakdown      `json:"score_breakdown"`
	Analysis         QualitativeAnalysis `json:"qualitative_analysis"`
	Recommendation   Recommendation      `json:"recommendation"`
	RawReviewsSample []Review            `json:"raw_reviews_sample"`
}
