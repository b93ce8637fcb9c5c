package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cpghub/cpghub-api/internal/middleware"
	"github.com/cpghub/cpghub-api/internal/models"
	"github.com/cpghub/cpghub-api/internal/services"
)

type FeedbackHandler struct {
	service services.FeedbackServiceInterface
}

func NewFeedbackHandler(service services.FeedbackServiceInterface) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

// SubmitFeedback handles the public feedback form.
func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	var req models.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request", ParseValidationErrors(err), err)
		return
	}

	resp, err := h.service.SubmitFeedback(c.Request.Context(), &req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	if !resp.Success {
		c.JSON(http.StatusBadRequest, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SubmitConnectRequest handles introduction requests between signed-in users
// and profile owners.
func (h *FeedbackHandler) SubmitConnectRequest(c *gin.Context) {
	user, err := middleware.GetSessionUser(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var req models.ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request", ParseValidationErrors(err), err)
		return
	}

	resp, err := h.service.SubmitConnectRequest(c.Request.Context(), user, &req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SubscribeNewsletter handles the public newsletter signup form.
func (h *FeedbackHandler) SubscribeNewsletter(c *gin.Context) {
	var req models.NewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request", ParseValidationErrors(err), err)
		return
	}

	resp, err := h.service.SubscribeNewsletter(c.Request.Context(), &req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
