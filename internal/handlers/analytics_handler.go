package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cpghub/cpghub-api/internal/analytics"
	"github.com/cpghub/cpghub-api/internal/services"
)

type AnalyticsHandler struct {
	service services.AnalyticsServiceInterface
}

func NewAnalyticsHandler(service services.AnalyticsServiceInterface) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// QueryEvents serves one page of tracked events for admin dashboards.
func (h *AnalyticsHandler) QueryEvents(c *gin.Context) {
	if !h.service.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Analytics is not configured"})
		return
	}

	q := analytics.Query{
		Bucket: c.Query("bucket"),
		Q:      c.Query("q"),
	}
	if q.Bucket == "" {
		respondError(c, http.StatusBadRequest, "bucket is required", nil)
		return
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		q.Limit = limit
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid offset", err)
			return
		}
		q.Offset = offset
	}

	page, err := h.service.QueryEvents(c.Request.Context(), q)
	if err != nil {
		respondError(c, http.StatusBadGateway, "Analytics query failed", err)
		return
	}

	c.JSON(http.StatusOK, page)
}
