package analytics_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpghub/cpghub-api/internal/analytics"
	"github.com/cpghub/cpghub-api/pkg/logger"
)

func init() {
	_ = logger.Initialize(logger.Config{Level: "error", Environment: "development"})
}

type stubHTTPClient struct {
	resp *http.Response
	err  error
	req  *http.Request
}

func (c *stubHTTPClient) Post(url, contentType string, body io.Reader) (*http.Response, error) {
	return c.resp, c.err
}

func (c *stubHTTPClient) Get(url string) (*http.Response, error) {
	return c.resp, c.err
}

func (c *stubHTTPClient) Do(req *http.Request) (*http.Response, error) {
	c.req = req
	return c.resp, c.err
}

func jsonResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestClient_QueryEvents_DecodesRoleCounts(t *testing.T) {
	stub := &stubHTTPClient{resp: jsonResponse(`{
		"items": [{"bucket": "signups", "name": "Jordan"}],
		"role_counts": {"brand": 12, "talent": 30, "service": 5},
		"total": 47,
		"limit": 50,
		"offset": 0
	}`)}

	client := analytics.NewClient("https://analytics.example.com", "token", stub)

	page, err := client.QueryEvents(context.Background(), analytics.Query{Bucket: "signups"})
	require.NoError(t, err)

	assert.Len(t, page.Items, 1)
	assert.Equal(t, 47, page.Total)
	assert.Equal(t, map[string]int{"brand": 12, "talent": 30, "service": 5}, page.RoleCounts)
	assert.Equal(t, "Bearer token", stub.req.Header.Get("Authorization"))
	assert.Contains(t, stub.req.URL.RawQuery, "bucket=signups")
}

func TestClient_QueryEvents_EmptyPageWhenDisabled(t *testing.T) {
	client := analytics.NewClient("", "", &stubHTTPClient{})

	page, err := client.QueryEvents(context.Background(), analytics.Query{Bucket: "signups"})
	require.NoError(t, err)

	assert.Empty(t, page.Items)
	assert.NotNil(t, page.RoleCounts)
}

func TestClient_QueryEvents_MissingCountsDecodeEmpty(t *testing.T) {
	stub := &stubHTTPClient{resp: jsonResponse(`{"items": [], "total": 0, "limit": 50, "offset": 0}`)}
	client := analytics.NewClient("https://analytics.example.com", "token", stub)

	page, err := client.QueryEvents(context.Background(), analytics.Query{Bucket: "signups"})
	require.NoError(t, err)

	assert.NotNil(t, page.Items)
	assert.NotNil(t, page.RoleCounts)
}
