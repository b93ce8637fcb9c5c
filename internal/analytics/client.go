package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/cpghub/cpghub-api/pkg/circuitbreaker"
	"github.com/cpghub/cpghub-api/pkg/httpclient"
	"github.com/cpghub/cpghub-api/pkg/logger"
	"github.com/cpghub/cpghub-api/pkg/metrics"
)

// Event is a single tracked page view or interaction.
type Event struct {
	Bucket    string            `json:"bucket"`
	Name      string            `json:"name"`
	Path      string            `json:"path,omitempty"`
	Referrer  string            `json:"referrer,omitempty"`
	Meta      map[string]string `json:"meta,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// Page is one page of query results plus the role-distribution counts the
// aggregation endpoint computes over the whole bucket.
type Page struct {
	Items      []Event        `json:"items"`
	RoleCounts map[string]int `json:"role_counts"`
	Total      int            `json:"total"`
	Limit      int            `json:"limit"`
	Offset     int            `json:"offset"`
}

// Query narrows an event listing.
type Query struct {
	Bucket string
	Q      string
	Limit  int
	Offset int
}

// Client talks to the external analytics endpoint. All calls run behind a
// circuit breaker so a slow or failing analytics backend never takes the
// marketplace down with it.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient httpclient.Client
	breaker    *gobreaker.CircuitBreaker
}

// NewClient creates an analytics client
func NewClient(baseURL, apiToken string, httpClient httpclient.Client) *Client {
	return &Client{
		baseURL:    baseURL,
		apiToken:   apiToken,
		httpClient: httpClient,
		breaker:    circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig("analytics")),
	}
}

// Enabled reports whether an analytics endpoint is configured.
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// QueryEvents fetches one page of events. When the circuit is open an empty
// page is returned instead of an error; analytics reads are best effort.
func (c *Client) QueryEvents(ctx context.Context, q Query) (*Page, error) {
	if !c.Enabled() {
		return &Page{Items: []Event{}, RoleCounts: map[string]int{}}, nil
	}

	start := time.Now()
	operation := "queryEvents"

	if q.Limit <= 0 || q.Limit > 200 {
		q.Limit = 50
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	page, err := circuitbreaker.ExecuteWithFallback(c.breaker,
		func() (*Page, error) {
			return c.fetchPage(ctx, q)
		},
		func() (*Page, error) {
			logger.Warn("Analytics circuit open, returning empty page",
				zap.String("bucket", q.Bucket))
			return &Page{Items: []Event{}, RoleCounts: map[string]int{}, Limit: q.Limit, Offset: q.Offset}, nil
		},
	)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		metrics.AnalyticsRequestDuration.WithLabelValues(operation, "error").Observe(duration)
		metrics.AnalyticsRequestTotal.WithLabelValues(operation, "error").Inc()
		logger.LogAPICall("analytics", operation, "error", duration, zap.Error(err))
		return nil, circuitbreaker.FormatError("analytics", err)
	}

	metrics.AnalyticsRequestDuration.WithLabelValues(operation, "success").Observe(duration)
	metrics.AnalyticsRequestTotal.WithLabelValues(operation, "success").Inc()
	logger.LogAPICall("analytics", operation, "success", duration,
		zap.String("bucket", q.Bucket),
		zap.Int("count", len(page.Items)))

	return page, nil
}

func (c *Client) fetchPage(ctx context.Context, q Query) (*Page, error) {
	params := url.Values{}
	params.Set("bucket", q.Bucket)
	params.Set("limit", fmt.Sprintf("%d", q.Limit))
	params.Set("offset", fmt.Sprintf("%d", q.Offset))
	if q.Q != "" {
		params.Set("q", q.Q)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/events?%s", c.baseURL, params.Encode()), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build analytics request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analytics request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("analytics endpoint returned status %d", resp.StatusCode)
	}

	var page Page
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode analytics response: %w", err)
	}
	if page.Items == nil {
		page.Items = []Event{}
	}
	if page.RoleCounts == nil {
		page.RoleCounts = map[string]int{}
	}

	return &page, nil
}
