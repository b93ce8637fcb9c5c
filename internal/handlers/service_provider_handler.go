package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cpghub/cpghub-api/internal/middleware"
	"github.com/cpghub/cpghub-api/internal/models"
	"github.com/cpghub/cpghub-api/internal/services"
)

type ServiceProviderHandler struct {
	service services.ServiceProviderServiceInterface
	guard   submitGuard
}

func NewServiceProviderHandler(service services.ServiceProviderServiceInterface, sessions services.FormSessionServiceInterface) *ServiceProviderHandler {
	return &ServiceProviderHandler{service: service, guard: submitGuard{sessions: sessions}}
}

// SubmitProfile handles the service-provider onboarding form.
func (h *ServiceProviderHandler) SubmitProfile(c *gin.Context) {
	user, err := middleware.GetSessionUser(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var req models.ServiceProviderRequest
	var details []ValidationError
	if err := c.ShouldBindJSON(&req); err != nil {
		details = ParseValidationErrors(err)
		if len(details) == 0 {
			respondError(c, http.StatusBadRequest, "Invalid request", err)
			return
		}
	}

	details = append(details, fieldErrors(req.Validate())...)
	if len(details) > 0 {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request", details, nil)
		return
	}

	if !h.guard.begin(c, req.FormSessionID) {
		return
	}

	resp, err := h.service.SubmitProfile(c.Request.Context(), user, &req)
	if err != nil {
		h.guard.fail(req.FormSessionID)
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	if !resp.Success {
		h.guard.fail(req.FormSessionID)
		c.JSON(http.StatusBadRequest, resp)
		return
	}

	h.guard.complete(req.FormSessionID)
	c.JSON(http.StatusOK, resp)
}

// UpdateProfile handles provider profile edits.
func (h *ServiceProviderHandler) UpdateProfile(c *gin.Context) {
	user, err := middleware.GetSessionUser(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid ID", err)
		return
	}

	var req models.ServiceProviderRequest
	var details []ValidationError
	if err := c.ShouldBindJSON(&req); err != nil {
		details = ParseValidationErrors(err)
		if len(details) == 0 {
			respondError(c, http.StatusBadRequest, "Invalid request", err)
			return
		}
	}

	details = append(details, fieldErrors(req.Validate())...)
	if len(details) > 0 {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request", details, nil)
		return
	}

	if !h.guard.begin(c, req.FormSessionID) {
		return
	}

	resp, err := h.service.UpdateProfile(c.Request.Context(), user, id, &req)
	if err != nil {
		h.guard.fail(req.FormSessionID)
		respondDomainError(c, err)
		return
	}

	if !resp.Success {
		h.guard.fail(req.FormSessionID)
		c.JSON(http.StatusBadRequest, resp)
		return
	}

	h.guard.complete(req.FormSessionID)
	c.JSON(http.StatusOK, resp)
}

// GetProviders lists all provider profiles.
func (h *ServiceProviderHandler) GetProviders(c *gin.Context) {
	providers, err := h.service.ListProfiles(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch service providers", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"providers": providers})
}

// GetProvider fetches a single provider by numeric ID or slug.
func (h *ServiceProviderHandler) GetProvider(c *gin.Context) {
	key := c.Param("id")

	if id, err := strconv.ParseInt(key, 10, 64); err == nil {
		provider, err := h.service.GetProfile(c.Request.Context(), id)
		if err != nil {
			respondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, provider)
		return
	}

	provider, err := h.service.GetProfileBySlug(c.Request.Context(), key)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, provider)
}

// DeleteProfile removes a service-provider profile.
func (h *ServiceProviderHandler) DeleteProfile(c *gin.Context) {
	user, err := middleware.GetSessionUser(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid ID", err)
		return
	}

	if err := h.service.DeleteProfile(c.Request.Context(), user, id); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
