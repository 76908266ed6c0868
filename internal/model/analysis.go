package model

// Severity ranks a red flag.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// ThemeKey is one of the fixed review themes.
type ThemeKey string

const (
	ThemeQuality       ThemeKey = "quality"
	ThemeService       ThemeKey = "service"
	ThemeHygiene       ThemeKey = "hygiene"
	ThemeDelay         ThemeKey = "delay"
	ThemePrice         ThemeKey = "price"
	ThemeComplications ThemeKey = "complications"
)

// ThemeKeys lists every theme in prompt order.
var ThemeKeys = []ThemeKey{
	ThemeQuality,
	ThemeService,
	ThemeHygiene,
	ThemeDelay,
	ThemePrice,
	ThemeComplications,
}

// ProviderRecommendation is the qualitative layer's own verdict.
type ProviderRecommendation string

const (
	ProviderGo          ProviderRecommendation = "Go"
	ProviderNoGo        ProviderRecommendation = "No-Go"
	ProviderInvestigate ProviderRecommendation = "Investigate"
)

// RedFlag is a severity-ranked reputational risk found in reviews.
type RedFlag struct {
	Type        string   `json:"type"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
}

// SentimentDistribution counts classified reviews.
type SentimentDistribution struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// ThemeScore summarizes how often a theme is mentioned and how it is perceived.
type ThemeScore struct {
	Mentions         int     `json:"mentions"`
	AverageSentiment float64 `json:"average_sentiment"`
}

// Citation is a representative excerpt quoted from a review.
type Citation struct {
	Sentiment string `json:"sentiment,omitempty"`
	Text      string `json:"text"`
	Author    string `json:"author,omitempty"`
}

// QualitativeAnalysis is the structured output of the text-classification
// step. The zero value means the step was unavailable.
type QualitativeAnalysis struct {
	SentimentDistribution  SentimentDistribution   `json:"sentiment_distribution"`
	Themes                 map[ThemeKey]ThemeScore `json:"themes,omitempty"`
	RedFlags               []RedFlag               `json:"red_flags,omitempty"`
	KeyCitations           []Citation              `json:"key_citations,omitempty"`
	ProviderRecommendation ProviderRecommendation  `json:"recommendation,omitempty"`
	ProviderReasoning      string                  `json:"recommendation_reason,omitempty"`
}

// IsEmpty reports whether the analysis carries no data at all.
func (q QualitativeAnalysis) IsEmpty() bool {
	return q.SentimentDistribution == (SentimentDistribution{}) &&
		len(q.Themes) == 0 &&
		len(q.RedFlags) == 0 &&
		len(q.KeyCitations) == 0 &&
		q.ProviderRecommendation == "" &&
		q.ProviderReasoning == ""
}

// Recommendation returns the provider verdict, defaulting to Investigate.
func (q QualitativeAnalysis) Recommendation() ProviderRecommendation {
	if q.ProviderRecommendation == "" {
		return ProviderInvestigate
	}
	return q.ProviderRecommendation
}

// CountSeverity returns the number of red flags with the given severity.
func (q QualitativeAnalysis) CountSeverity(s Severity) int {
	var n int
	for _, rf := range q.RedFlags {
		if rf.Severity == s {
			n++
		}
	}
	return n
}

// HasHighSeverity reports whether any red flag is high severity.
func (q QualitativeAnalysis) HasHighSeverity() bool {
	return q.CountSeverity(SeverityHigh) > 0
}
