package scorer

import "github.com/sells-group/reputation-cli/internal/model"

// Recommendation thresholds.
const (
	GoThreshold   = 75
	NoGoThreshold = 60
)

// Recommend resolves the final verdict. Rules apply in order: a high
// severity red flag forces NO-GO; a total of at least 75 with a Go from the
// qualitative layer is GO; a total under 60 is NO-GO; anything else is
// INVESTIGATE.
func Recommend(total int, qa model.QualitativeAnalysis) model.Recommendation {
	switch {
	case qa.HasHighSeverity():
		return model.RecommendationNoGo
	case total >= GoThreshold && qa.Recommendation() == model.ProviderGo:
		return model.RecommendationGo
	case total < NoGoThreshold:
		return model.RecommendationNoGo
	default:
		return model.RecommendationInvestigate
	}
}
