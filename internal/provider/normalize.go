package provider

import (
	"strings"
	"time"

	"github.com/sells-group/reputation-cli/internal/model"
	"github.com/sells-group/reputation-cli/pkg/google"
	"github.com/sells-group/reputation-cli/pkg/outscraper"
)

// timestampLayouts are tried in order. Outscraper has shipped both the ISO
// style and a US month-first style; Places uses RFC3339.
var timestampLayouts = []string{
	model.TimestampLayout,
	"01/02/2006 15:04:05",
	time.RFC3339Nano,
}

// NormalizeTimestamp rewrites a provider timestamp into model.TimestampLayout
// in UTC. Input that matches no known layout is returned trimmed but
// otherwise untouched so downstream consumers can skip it.
func NormalizeTimestamp(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, layout := range timestampLayouts {
		t, err := time.ParseInLocation(layout, raw, time.UTC)
		if err == nil {
			return t.UTC().Format(model.TimestampLayout)
		}
	}
	return raw
}

func normalizeRating(r int) int {
	if r < 1 || r > 5 {
		return 0
	}
	return r
}

func normalizeAuthor(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.AnonymousAuthor
	}
	return name
}

// NormalizeOutscraperReview maps one Outscraper review record.
func NormalizeOutscraperReview(r outscraper.Review) model.Review {
	return model.Review{
		Text:         strings.TrimSpace(r.ReviewText),
		Rating:       normalizeRating(r.ReviewRating),
		TimestampUTC: NormalizeTimestamp(r.ReviewDatetimeUTC),
		AuthorName:   normalizeAuthor(r.AuthorTitle),
	}
}

// NormalizeGoogleReview maps one Places review. The localized text wins over
// the original-language text when both are present.
func NormalizeGoogleReview(r google.Review) model.Review {
	text := r.Text.Text
	if strings.TrimSpace(text) == "" {
		text = r.OriginalText.Text
	}
	return model.Review{
		Text:         strings.TrimSpace(text),
		Rating:       normalizeRating(r.Rating),
		TimestampUTC: NormalizeTimestamp(r.PublishTime),
		AuthorName:   normalizeAuthor(r.AuthorAttribution.DisplayName),
	}
}

func snapshotFromOutscraper(p *outscraper.Place) *model.ListingSnapshot {
	snap := &model.ListingSnapshot{
		Name:             p.Name,
		Address:          firstNonEmpty(p.FullAddress, p.Address),
		Phone:            p.Phone,
		Website:          firstNonEmpty(p.Site, p.Website),
		AverageRating:    p.Rating,
		TotalReviewCount: max(p.Reviews, 0),
		Reviews:          make([]model.Review, 0, len(p.ReviewsData)),
	}
	for _, r := range p.ReviewsData {
		snap.Reviews = append(snap.Reviews, NormalizeOutscraperReview(r))
	}
	return snap
}

func snapshotFromGoogle(p *google.Place) *model.ListingSnapshot {
	snap := &model.ListingSnapshot{
		Name:             p.DisplayName.Text,
		Address:          p.FormattedAddress,
		Phone:            firstNonEmpty(p.NationalPhoneNumber, p.InternationalPhoneNumber),
		Website:          p.WebsiteURI,
		AverageRating:    p.Rating,
		TotalReviewCount: max(p.UserRatingCount, 0),
		Reviews:          make([]model.Review, 0, len(p.Reviews)),
	}
	for _, r := range p.Reviews {
		snap.Reviews = append(snap.Reviews, NormalizeGoogleReview(r))
	}
	return snap
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
