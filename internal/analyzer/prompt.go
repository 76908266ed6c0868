package analyzer

import (
	"fmt"
	"strings"

	"github.com/sells-group/reputation-cli/internal/model"
)

const systemPrompt = "You are an expert in data analysis and dental clinic reputation."

// BuildSample renders the first limit reviews as numbered prompt lines.
// Reviews without text keep their ordinal but produce no line. A limit <= 0
// means no cap.
func BuildSample(reviews []model.Review, limit int) string {
	if limit > 0 && len(reviews) > limit {
		reviews = reviews[:limit]
	}
	lines := make([]string, 0, len(reviews))
	for i, r := range reviews {
		text := strings.TrimSpace(r.Text)
		if text == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("Review %d (%d★): %s", i+1, r.Rating, text))
	}
	return strings.Join(lines, "\n\n")
}

func userPrompt(sample string) string {
	var sb strings.Builder
	sb.WriteString("Analyze these Google reviews of a dental clinic in Colombia and produce a structured report.\n\n")
	sb.WriteString("REVIEWS:\n")
	sb.WriteString(sample)
	sb.WriteString(`

INSTRUCTIONS:
1. Classify each review as positive, neutral or negative.
2. Identify the main themes (quality, service, hygiene, delay, price, complications).
3. Detect critical red flags (infections, scams, serious complications).
4. Extract 3-5 representative citations.
5. Recommend Go, No-Go or Investigate.

RESPONSE FORMAT (strict JSON):
{
  "sentiment_distribution": {"positive": <n>, "neutral": <n>, "negative": <n>},
  "themes": {
`)
	for i, key := range model.ThemeKeys {
		fmt.Fprintf(&sb, `    "%s": {"mentions": <n>, "average_sentiment": <1-5>}`, key)
		if i < len(model.ThemeKeys)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(`  },
  "red_flags": [{"type": "<type>", "severity": "low|medium|high", "description": "<description>"}],
  "key_citations": [{"sentiment": "positive|negative", "text": "<quote>", "author": "<name>"}],
  "recommendation": "Go|No-Go|Investigate",
  "recommendation_reason": "<explanation>"
}

Reply ONLY with valid JSON, nothing else.`)
	return sb.String()
}
