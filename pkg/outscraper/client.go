package outscraper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

// Default base URL for the Outscraper API.
const defaultBaseURL = "https://api.app.outscraper.com"

// Status values reported by the results endpoint.
const (
	StatusPending = "Pending"
	StatusSuccess = "Success"
	StatusFailed  = "Failed"
	StatusError   = "Error"
)

// Client defines the Outscraper Maps operations. Searches are computed
// out-of-band: SearchMaps submits a job and GetResult reads its result location.
type Client interface {
	SearchMaps(ctx context.Context, req SearchRequest) (*SearchResponse, error)
	GetResult(ctx context.Context, resultsLocation string) (*ResultResponse, error)
}

// SearchRequest is the body for POST /maps/search-v3.
type SearchRequest struct {
	Query        string `json:"query"`
	Language     string `json:"language,omitempty"`
	Region       string `json:"region,omitempty"`
	ReviewsLimit int    `json:"reviewsLimit,omitempty"`
}

// SearchResponse is the job handle returned by POST /maps/search-v3.
type SearchResponse struct {
	ID              string `json:"id"`
	Status          string `json:"status"`
	ResultsLocation string `json:"results_location"`
}

// ResultResponse is the body served at a job's results location. Data stays
// raw until UnwrapPlace validates its nesting.
type ResultResponse struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// Place is a single Maps listing as returned inside the result envelope.
type Place struct {
	PlaceID     string   `json:"place_id"`
	Name        string   `json:"name"`
	FullAddress string   `json:"full_address"`
	Address     string   `json:"address"`
	Phone       string   `json:"phone"`
	Site        string   `json:"site"`
	Website     string   `json:"website"`
	Rating      float64  `json:"rating"`
	Reviews     int      `json:"reviews"`
	ReviewsData []Review `json:"reviews_data"`
}

// Review is a single review record from reviews_data. Records are routinely
// sparse; absent fields decode to zero values.
type Review struct {
	ReviewID          string `json:"review_id"`
	AuthorTitle       string `json:"author_title"`
	ReviewText        string `json:"review_text"`
	ReviewRating      int    `json:"review_rating"`
	ReviewDatetimeUTC string `json:"review_datetime_utc"`
}

// APIError is returned when Outscraper responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("outscraper: HTTP %d: %s", e.StatusCode, e.Body)
}

// HTTPStatus exposes the status code for transient-error classification.
func (e *APIError) HTTPStatus() int {
	return e.StatusCode
}

// Option configures the httpClient.
type Option func(*httpClient)

// WithBaseURL overrides the default base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a new Outscraper client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) SearchMaps(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	buf, err := json.Marshal(req)
	if err != nil {
		return nil, eris.Wrap(err, "outscraper: marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/maps/search-v3", bytes.NewReader(buf))
	if err != nil {
		return nil, eris.Wrap(err, "outscraper: create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	var resp SearchResponse
	if err := c.do(httpReq, &resp); err != nil {
		return nil, eris.Wrap(err, "outscraper: submit search")
	}
	return &resp, nil
}

func (c *httpClient) GetResult(ctx context.Context, resultsLocation string) (*ResultResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, resultsLocation, nil)
	if err != nil {
		return nil, eris.Wrap(err, "outscraper: create request")
	}

	var resp ResultResponse
	if err := c.do(httpReq, &resp); err != nil {
		return nil, eris.Wrapf(err, "outscraper: get result %s", resultsLocation)
	}
	return &resp, nil
}

func (c *httpClient) do(req *http.Request, out any) error {
	req.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "execute request")
	}
	defer resp.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Body:       string(data),
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return eris.Wrap(err, "decode response")
	}
	return nil
}
