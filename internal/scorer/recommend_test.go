package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/reputation-cli/internal/model"
)

func TestRecommend(t *testing.T) {
	high := []model.RedFlag{{Type: "infection", Severity: model.SeverityHigh}}
	medium := []model.RedFlag{{Type: "delay", Severity: model.SeverityMedium}}

	tests := []struct {
		name  string
		total int
		qa    model.QualitativeAnalysis
		want  model.Recommendation
	}{
		{"high flag beats perfect score", 100, model.QualitativeAnalysis{RedFlags: high, ProviderRecommendation: model.ProviderGo}, model.RecommendationNoGo},
		{"go at threshold", 75, model.QualitativeAnalysis{ProviderRecommendation: model.ProviderGo}, model.RecommendationGo},
		{"go with medium flag", 80, model.QualitativeAnalysis{RedFlags: medium, ProviderRecommendation: model.ProviderGo}, model.RecommendationGo},
		{"high score without go", 90, model.QualitativeAnalysis{ProviderRecommendation: model.ProviderInvestigate}, model.RecommendationInvestigate},
		{"high score provider no-go", 90, model.QualitativeAnalysis{ProviderRecommendation: model.ProviderNoGo}, model.RecommendationInvestigate},
		{"empty analysis", 90, model.QualitativeAnalysis{}, model.RecommendationInvestigate},
		{"just under go", 74, model.QualitativeAnalysis{ProviderRecommendation: model.ProviderGo}, model.RecommendationInvestigate},
		{"at no-go threshold", 60, model.QualitativeAnalysis{}, model.RecommendationInvestigate},
		{"under no-go threshold", 59, model.QualitativeAnalysis{ProviderRecommendation: model.ProviderGo}, model.RecommendationNoGo},
		{"zero", 0, model.QualitativeAnalysis{}, model.RecommendationNoGo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Recommend(tt.total, tt.qa))
		})
	}
}

func TestRecommend_Total(t *testing.T) {
	recs := []model.ProviderRecommendation{model.ProviderGo, model.ProviderNoGo, model.ProviderInvestigate}
	valid := map[model.Recommendation]bool{
		model.RecommendationGo:          true,
		model.RecommendationNoGo:        true,
		model.RecommendationInvestigate: true,
	}
	for total := 0; total <= 100; total++ {
		for _, rec := range recs {
			for _, withHigh := range []bool{false, true} {
				qa := model.QualitativeAnalysis{ProviderRecommendation: rec}
				if withHigh {
					qa.RedFlags = []model.RedFlag{{Severity: model.SeverityHigh}}
				}
				got := Recommend(total, qa)
				assert.True(t, valid[got])
				if withHigh {
					assert.Equal(t, model.RecommendationNoGo, got)
				}
			}
		}
	}
}
