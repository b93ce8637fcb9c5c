package services

import (
	"context"

	"github.com/cpghub/cpghub-api/internal/analytics"
)

// AnalyticsService exposes read access to the tracking backend for admin
// dashboards.
type AnalyticsService struct {
	client *analytics.Client
}

// NewAnalyticsService creates a new analytics service instance
func NewAnalyticsService(client *analytics.Client) *AnalyticsService {
	return &AnalyticsService{client: client}
}

// Enabled reports whether an analytics endpoint is configured.
func (s *AnalyticsService) Enabled() bool {
	return s.client.Enabled()
}

// QueryEvents fetches one page of tracked events.
func (s *AnalyticsService) QueryEvents(ctx context.Context, q analytics.Query) (*analytics.Page, error) {
	return s.client.QueryEvents(ctx, q)
}
