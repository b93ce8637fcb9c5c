package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cpghub/cpghub-api/internal/middleware"
	"github.com/cpghub/cpghub-api/internal/models"
	"github.com/cpghub/cpghub-api/internal/services"
)

type BrandHandler struct {
	service services.BrandServiceInterface
	guard   submitGuard
}

func NewBrandHandler(service services.BrandServiceInterface, sessions services.FormSessionServiceInterface) *BrandHandler {
	return &BrandHandler{service: service, guard: submitGuard{sessions: sessions}}
}

// RegisterBrand handles the brand onboarding form.
func (h *BrandHandler) RegisterBrand(c *gin.Context) {
	user, err := middleware.GetSessionUser(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var req models.BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request", ParseValidationErrors(err), err)
		return
	}

	if req.Logo.Present() && !req.Logo.IsImage() {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request",
			[]ValidationError{{Field: "logo", Message: "must be a png or jpeg image"}}, nil)
		return
	}

	if !h.guard.begin(c, req.FormSessionID) {
		return
	}

	resp, err := h.service.RegisterBrand(c.Request.Context(), user, &req)
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

// UpdateBrand handles brand profile edits.
func (h *BrandHandler) UpdateBrand(c *gin.Context) {
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

	var req models.BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request", ParseValidationErrors(err), err)
		return
	}

	if !h.guard.begin(c, req.FormSessionID) {
		return
	}

	resp, err := h.service.UpdateBrand(c.Request.Context(), user, id, &req)
	if err != nil {
		h.guard.fail(req.FormSessionID)
		respondDomainError(c, err)
		return
	}

	if !resp.Success {
		h.guard.fail(req.FormSessionID)
		c.JSON(http.StatusForbidden, resp)
		return
	}

	h.guard.complete(req.FormSessionID)
	c.JSON(http.StatusOK, resp)
}

// GetBrands lists all brands.
func (h *BrandHandler) GetBrands(c *gin.Context) {
	brands, err := h.service.ListBrands(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch brands", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"brands": brands})
}

// GetBrand fetches a single brand by numeric ID or slug.
func (h *BrandHandler) GetBrand(c *gin.Context) {
	key := c.Param("id")

	if id, err := strconv.ParseInt(key, 10, 64); err == nil {
		brand, err := h.service.GetBrand(c.Request.Context(), id)
		if err != nil {
			respondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, brand)
		return
	}

	brand, err := h.service.GetBrandBySlug(c.Request.Context(), key)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, brand)
}

// DeleteBrand removes a brand profile.
func (h *BrandHandler) DeleteBrand(c *gin.Context) {
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

	if err := h.service.DeleteBrand(c.Request.Context(), user, id); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
