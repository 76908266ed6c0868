package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/reputation-cli/internal/model"
)

// Output formats accepted by Write.
const (
	FormatJSON    = "json"
	FormatYAML    = "yaml"
	FormatSummary = "summary"
)

// Write renders r to w in the named format.
func Write(w io.Writer, r *model.ReputationReport, format string) error {
	switch strings.ToLower(format) {
	case "", FormatJSON:
		return WriteJSON(w, r)
	case FormatYAML, "yml":
		return WriteYAML(w, r)
	case FormatSummary:
		return Summary(w, r)
	default:
		return eris.Errorf("report: unknown format %q", format)
	}
}

// WriteJSON writes indented UTF-8 JSON. Non-ASCII text is kept as is.
func WriteJSON(w io.Writer, r *model.ReputationReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return eris.Wrap(err, "report: encode json")
	}
	return nil
}

// WriteYAML writes the report as YAML using its JSON field names.
func WriteYAML(w io.Writer, r *model.ReputationReport) error {
	// Round-trip through JSON so YAML keys match the JSON document.
	raw, err := json.Marshal(r)
	if err != nil {
		return eris.Wrap(err, "report: marshal")
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return eris.Wrap(err, "report: unmarshal")
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return eris.Wrap(err, "report: encode yaml")
	}
	return eris.Wrap(enc.Close(), "report: close yaml encoder")
}

// Summary prints the human-readable digest shown at the end of a CLI run.
func Summary(w io.Writer, r *model.ReputationReport) error {
	b := r.Breakdown
	var sb strings.Builder
	line := strings.Repeat("=", 60)

	sb.WriteString(line + "\n")
	sb.WriteString("REPUTATION SUMMARY\n")
	sb.WriteString(line + "\n")
	fmt.Fprintf(&sb, "Listing:          %s\n", r.ListingName)
	fmt.Fprintf(&sb, "Location:         %s\n", r.Location)
	fmt.Fprintf(&sb, "Provider:         %s\n", r.Provider)
	fmt.Fprintf(&sb, "Rating:           %.1f/5 (%d reviews)\n", r.Listing.Rating, r.Listing.TotalReviews)
	fmt.Fprintf(&sb, "Reviews analyzed: %d\n", r.Listing.ReviewsAnalyzed)
	sb.WriteString("\nSCORE BREAKDOWN\n")
	fmt.Fprintf(&sb, "  Rating:     %5.1f/40\n", b.Rating)
	fmt.Fprintf(&sb, "  Volume:     %5d/20\n", b.Volume)
	fmt.Fprintf(&sb, "  Recency:    %5.1f/15\n", b.Recency)
	fmt.Fprintf(&sb, "  Trend:      %5d/15\n", b.Trend)
	fmt.Fprintf(&sb, "  Red flags:  %5d/10\n", b.RedFlagPenalty)
	fmt.Fprintf(&sb, "  TOTAL:      %5d/100\n", r.Score)
	fmt.Fprintf(&sb, "\nRECOMMENDATION: %s\n", r.Recommendation)

	if len(r.Analysis.RedFlags) > 0 {
		fmt.Fprintf(&sb, "\nRED FLAGS (%d)\n", len(r.Analysis.RedFlags))
		for _, rf := range r.Analysis.RedFlags {
			fmt.Fprintf(&sb, "  [%s] %s: %s\n", strings.ToUpper(string(rf.Severity)), rf.Type, rf.Description)
		}
	}
	if r.Analysis.IsEmpty() {
		sb.WriteString("\nQualitative analysis unavailable.\n")
	} else if r.Analysis.ProviderReasoning != "" {
		fmt.Fprintf(&sb, "\nReasoning: %s\n", r.Analysis.ProviderReasoning)
	}
	sb.WriteString(line + "\n")

	_, err := io.WriteString(w, sb.String())
	return eris.Wrap(err, "report: write summary")
}
