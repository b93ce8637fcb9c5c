package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cpghub/cpghub-api/internal/middleware"
	"github.com/cpghub/cpghub-api/internal/models"
	"github.com/cpghub/cpghub-api/internal/services"
)

type TalentHandler struct {
	service services.TalentServiceInterface
	guard   submitGuard
}

func NewTalentHandler(service services.TalentServiceInterface, sessions services.FormSessionServiceInterface) *TalentHandler {
	return &TalentHandler{service: service, guard: submitGuard{sessions: sessions}}
}

// SubmitProfile handles the talent onboarding form.
func (h *TalentHandler) SubmitProfile(c *gin.Context) {
	user, err := middleware.GetSessionUser(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var req models.TalentRequest
	var details []ValidationError
	if err := c.ShouldBindJSON(&req); err != nil {
		details = ParseValidationErrors(err)
		if len(details) == 0 {
			respondError(c, http.StatusBadRequest, "Invalid request", err)
			return
		}
	}

	details = append(details, fieldErrors(req.ValidateCreate())...)
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

// UpdateProfile handles talent profile edits.
func (h *TalentHandler) UpdateProfile(c *gin.Context) {
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

	var req models.TalentRequest
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

// GetProfiles lists all talent profiles.
func (h *TalentHandler) GetProfiles(c *gin.Context) {
	talents, err := h.service.ListProfiles(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch talent profiles", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"talents": talents})
}

// GetProfile fetches a talent profile by ID.
func (h *TalentHandler) GetProfile(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid ID", err)
		return
	}

	talent, err := h.service.GetProfile(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, talent)
}

// GetOwnProfile fetches the signed-in user's talent profile.
func (h *TalentHandler) GetOwnProfile(c *gin.Context) {
	user, err := middleware.GetSessionUser(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	talent, err := h.service.GetProfileByOwner(c.Request.Context(), user.ID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, talent)
}

// DeleteProfile removes a talent profile.
func (h *TalentHandler) DeleteProfile(c *gin.Context) {
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
