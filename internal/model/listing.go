package model

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// TimestampLayout is the canonical layout for Review.TimestampUTC.
const TimestampLayout = "2006-01-02 15:04:05"

// AnonymousAuthor is used when a provider omits the review author.
const AnonymousAuthor = "Anonymous"

// ListingRequest identifies the listing to evaluate.
type ListingRequest struct {
	Name     string `json:"clinic_name"`
	Location string `json:"clinic_location"`
}

// Validate rejects requests missing either field.
func (r ListingRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return eris.Wrap(ErrInvalidRequest, "clinic_name is required")
	}
	if strings.TrimSpace(r.Location) == "" {
		return eris.Wrap(ErrInvalidRequest, "clinic_location is required")
	}
	return nil
}

// Review is a single normalized provider review.
type Review struct {
	Text         string `json:"text"`
	Rating       int    `json:"rating"`
	TimestampUTC string `json:"timestamp_utc,omitempty"`
	AuthorName   string `json:"author_name"`
}

// PublishedAt parses TimestampUTC. The second return is false when the
// timestamp is absent or not in TimestampLayout.
func (r Review) PublishedAt() (time.Time, bool) {
	if r.TimestampUTC == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(TimestampLayout, r.TimestampUTC, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ListingSnapshot is a point-in-time capture of a listing and its reviews.
// TotalReviewCount is provider-reported and may exceed len(Reviews).
type ListingSnapshot struct {
	Name             string   `json:"name"`
	Address          string   `json:"address"`
	Phone            string   `json:"phone"`
	Website          string   `json:"website"`
	AverageRating    float64  `json:"average_rating"`
	TotalReviewCount int      `json:"total_review_count"`
	Reviews          []Review `json:"reviews"`
}

// ReviewsWithText counts reviews carrying non-blank text.
func (s *ListingSnapshot) ReviewsWithText() int {
	var n int
	for _, r := range s.Reviews {
		if strings.TrimSpace(r.Text) != "" {
			n++
		}
	}
	return n
}
