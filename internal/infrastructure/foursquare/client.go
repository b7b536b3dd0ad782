package foursquare

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/convenuence/backend/internal/domain"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL    = "https://api.foursquare.com/v3"
	defaultMaxRetries = 3
	defaultRetryDelay = 1 * time.Second
	defaultTimeout    = 30 * time.Second

	// Foursquare allows 50 QPS per key; stay comfortably under it.
	requestsPerSecond = 10
	requestBurst      = 5
)

// Config holds the knobs for the Foursquare client. Zero values fall back to
// the defaults above.
type Config struct {
	APIKey     string
	BaseURL    string
	MaxRetries int
	RetryDelay time.Duration
	Timeout    time.Duration
}

// Client talks to the Foursquare Places v3 API. It implements
// domain.VenueAPIClient.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	maxRetries  int
	retryDelay  time.Duration
	rateLimiter *rate.Limiter
}

// NewClient creates a Foursquare Places API client.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = defaultRetryDelay
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		apiKey:      cfg.APIKey,
		baseURL:     baseURL,
		maxRetries:  maxRetries,
		retryDelay:  retryDelay,
		rateLimiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestBurst),
	}
}

// SearchVenues searches for venues matching the request's query around its
// location.
func (c *Client) SearchVenues(ctx context.Context, req domain.SearchVenuesRequest) ([]domain.Venue, error) {
	params := url.Values{}
	params.Set("query", req.Query)
	params.Set("ll", formatLatLng(req.Location))
	params.Set("radius", strconv.Itoa(req.Radius))
	params.Set("limit", strconv.Itoa(req.Limit))
	params.Set("offset", strconv.Itoa(req.Offset))

	var resp searchResponseDTO
	if err := c.getJSON(ctx, c.baseURL+"/places/search", params, &resp); err != nil {
		return nil, translateError(err)
	}
	return mapVenues(resp.Results), nil
}

// FetchVenueDetails retrieves the detail record for one venue.
func (c *Client) FetchVenueDetails(ctx context.Context, req domain.FetchVenueDetailsRequest) (*domain.VenueDetail, error) {
	var resp venueDetailsDTO
	if err := c.getJSON(ctx, c.placeURL(req.ID), nil, &resp); err != nil {
		return nil, translateError(err)
	}
	detail := mapVenueDetails(resp)
	return &detail, nil
}

// FetchVenuePhotos retrieves photo metadata for a venue and derives display
// URLs from it.
func (c *Client) FetchVenuePhotos(ctx context.Context, id domain.VenueID) ([]string, error) {
	var resp []photoDTO
	if err := c.getJSON(ctx, c.placeURL(id)+"/photos", nil, &resp); err != nil {
		return nil, translateError(err)
	}
	return mapPhotoURLs(resp), nil
}

func (c *Client) placeURL(id domain.VenueID) string {
	return c.baseURL + "/places/" + url.PathEscape(string(id))
}

func formatLatLng(location domain.Coordinate) string {
	return strconv.FormatFloat(location.Latitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(location.Longitude, 'f', -1, 64)
}

// translateError keeps the executor's taxonomy where the caller can act on it
// and folds anything else into the generic API error bucket.
func translateError(err error) error {
	switch {
	case errors.Is(err, domain.ErrNetwork),
		errors.Is(err, domain.ErrInvalidResponse),
		errors.Is(err, domain.ErrDecoding),
		errors.Is(err, domain.ErrMaxRetriesExceeded):
		return err
	default:
		return fmt.Errorf("%w: %v", domain.ErrVenueAPI, err)
	}
}
