package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cpghub/cpghub-api/internal/middleware"
	"github.com/cpghub/cpghub-api/internal/models"
	"github.com/cpghub/cpghub-api/internal/services"
)

type JobHandler struct {
	service services.JobServiceInterface
	guard   submitGuard
}

func NewJobHandler(service services.JobServiceInterface, sessions services.FormSessionServiceInterface) *JobHandler {
	return &JobHandler{service: service, guard: submitGuard{sessions: sessions}}
}

// SubmitJobPosting handles the composite job-posting form. Binding failures
// and cross-field failures are merged so the form can mark every broken
// field in one round trip.
func (h *JobHandler) SubmitJobPosting(c *gin.Context) {
	user, err := middleware.GetSessionUser(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var req models.JobPostingRequest
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

	resp, err := h.service.SubmitJobPosting(c.Request.Context(), user, &req)
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

// GetJobPostings lists postings, open ones only unless all=true.
func (h *JobHandler) GetJobPostings(c *gin.Context) {
	filter := models.JobFilterOptions{
		OnlyOpen:       c.Query("all") != "true",
		OwnerID:        c.Query("owner"),
		Specialization: c.Query("specialization"),
	}

	if brandStr := c.Query("brand"); brandStr != "" {
		brandID, err := strconv.ParseInt(brandStr, 10, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid brand ID", err)
			return
		}
		filter.BrandID = &brandID
	}

	jobs, err := h.service.ListJobPostings(c.Request.Context(), filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch job postings", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// GetJobPosting fetches a single posting by numeric ID or slug.
func (h *JobHandler) GetJobPosting(c *gin.Context) {
	key := c.Param("id")

	if id, err := strconv.ParseInt(key, 10, 64); err == nil {
		job, err := h.service.GetJobPosting(c.Request.Context(), id)
		if err != nil {
			respondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, job)
		return
	}

	job, err := h.service.GetJobPostingBySlug(c.Request.Context(), key)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// SetJobPostingStatus closes or reopens a posting.
func (h *JobHandler) SetJobPostingStatus(c *gin.Context) {
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

	var body struct {
		IsOpen *bool `json:"is_open" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "is_open is required", err)
		return
	}

	if err := h.service.SetJobPostingOpen(c.Request.Context(), user, id, *body.IsOpen); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "isOpen": *body.IsOpen})
}

// DeleteJobPosting removes a posting from the board.
func (h *JobHandler) DeleteJobPosting(c *gin.Context) {
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

	if err := h.service.DeleteJobPosting(c.Request.Context(), user, id); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetOwnJobPostings lists the signed-in user's postings, closed ones
// included.
func (h *JobHandler) GetOwnJobPostings(c *gin.Context) {
	user, err := middleware.GetSessionUser(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	jobs, err := h.service.ListOwnJobPostings(c.Request.Context(), user)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs, "count": len(jobs)})
}

// SaveJob bookmarks a posting for the signed-in user.
func (h *JobHandler) SaveJob(c *gin.Context) {
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

	if err := h.service.SaveJob(c.Request.Context(), user, id); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UnsaveJob removes a bookmark.
func (h *JobHandler) UnsaveJob(c *gin.Context) {
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

	if err := h.service.UnsaveJob(c.Request.Context(), user, id); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetSavedJobs lists the signed-in user's bookmarked postings.
func (h *JobHandler) GetSavedJobs(c *gin.Context) {
	user, err := middleware.GetSessionUser(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	jobs, err := h.service.ListSavedJobs(c.Request.Context(), user)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs, "count": len(jobs)})
}
