package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/el-remph/hertzian-steam-tech-test/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// Prometheus metrics for review page requests.
var (
	steamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "steam_requests_total",
		Help: "Total review page requests by HTTP status",
	}, []string{"status"})

	steamRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "steam_request_duration_seconds",
		Help:    "Review page request duration in seconds",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	})

	steamReviewsFetched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "steam_reviews_fetched_total",
		Help: "Total raw reviews received across all pages",
	})
)

// Config holds the review client configuration.
type Config struct {
	// BaseURL is the store endpoint root (default: the public Steam store).
	BaseURL string

	// PageSize is the upper bound on reviews per page (num_per_page).
	PageSize int

	// Timeout bounds a single page request.
	Timeout time.Duration

	// UserAgent is sent on every request.
	UserAgent string
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:   "https://store.steampowered.com",
		PageSize:  5000,
		Timeout:   30 * time.Second,
		UserAgent: "hertzian-steam-tech-test/0.1.0",
	}
}

// Client fetches single review pages over HTTP. The underlying http.Client
// is shared across sequential fetches so the TCP connection is reused.
type Client struct {
	httpClient *http.Client
	config     Config
	logger     zerolog.Logger
}

// NewClient creates a new review page client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if cfg.PageSize <= 0 {
		return nil, fmt.Errorf("page size must be positive (got %d)", cfg.PageSize)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		config: cfg,
		logger: logging.NewLogger("steam-client"),
	}, nil
}

// PageSize returns the configured per-page review bound.
func (c *Client) PageSize() int {
	return c.config.PageSize
}

// FetchPage requests one page of reviews for appID at the given cursor.
// Returns a *RequestError for a non-2xx status and a *ProtocolError when
// the envelope reports failure or the declared count does not match the
// number of reviews present.
func (c *Client) FetchPage(ctx context.Context, appID int64, basis DateBasis, cursor string) (*Envelope, error) {
	endpoint := fmt.Sprintf("%s/appreviews/%d", c.config.BaseURL, appID)

	params := url.Values{}
	params.Set("json", "1")
	params.Set("filter", basis.Filter())
	params.Set("num_per_page", strconv.Itoa(c.config.PageSize))
	params.Set("cursor", cursor)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Int64("collection", appID).
		Str("cursor", cursor).
		Str("filter", basis.Filter()).
		Msg("Fetching review page")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	steamRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		steamRequestsTotal.WithLabelValues("network_error").Inc()
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	steamRequestsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error().
			Int64("collection", appID).
			Int("status", resp.StatusCode).
			Msg("Review page request failed")
		return nil, &RequestError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &ProtocolError{Reason: "decode envelope", Err: err}
	}

	if env.Success == 0 {
		return nil, &ProtocolError{Reason: "api reported failure"}
	}
	if env.QuerySummary.NumReviews != len(env.Reviews) {
		return nil, &ProtocolError{Reason: fmt.Sprintf(
			"declared %d reviews but payload holds %d",
			env.QuerySummary.NumReviews, len(env.Reviews))}
	}

	steamReviewsFetched.Add(float64(len(env.Reviews)))

	return &env, nil
}
