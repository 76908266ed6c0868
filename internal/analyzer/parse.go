package analyzer

import (
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/reputation-cli/internal/model"
)

// stripFences removes one leading ```json or ``` marker and one trailing
// ``` marker.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(text, "```json"):
		text = strings.TrimPrefix(text, "```json")
	case strings.HasPrefix(text, "```"):
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

// ParseAnalysis decodes a classification reply. Unknown theme keys are
// dropped and severities are lowercased. The recommendation is kept
// verbatim; only an exact "Go" counts as a Go verdict.
func ParseAnalysis(text string) (model.QualitativeAnalysis, error) {
	var qa model.QualitativeAnalysis

	body := stripFences(text)
	if body == "" {
		return qa, eris.New("analyzer: empty reply")
	}

	var raw struct {
		SentimentDistribution model.SentimentDistribution `json:"sentiment_distribution"`
		Themes                map[string]model.ThemeScore `json:"themes"`
		RedFlags              []model.RedFlag             `json:"red_flags"`
		KeyCitations          []model.Citation            `json:"key_citations"`
		Recommendation        string                      `json:"recommendation"`
		RecommendationReason  string                      `json:"recommendation_reason"`
	}
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return qa, eris.Wrap(err, "analyzer: decode reply")
	}

	qa.SentimentDistribution = raw.SentimentDistribution
	qa.KeyCitations = raw.KeyCitations
	qa.ProviderReasoning = raw.RecommendationReason
	qa.ProviderRecommendation = model.ProviderRecommendation(raw.Recommendation)

	for _, key := range model.ThemeKeys {
		ts, ok := raw.Themes[string(key)]
		if !ok {
			continue
		}
		if qa.Themes == nil {
			qa.Themes = make(map[model.ThemeKey]model.ThemeScore, len(model.ThemeKeys))
		}
		qa.Themes[key] = ts
	}

	for _, rf := range raw.RedFlags {
		rf.Severity = model.Severity(strings.ToLower(strings.TrimSpace(string(rf.Severity))))
		qa.RedFlags = append(qa.RedFlags, rf)
	}
	return qa, nil
}
