package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cpghub/cpghub-api/internal/services"
	"github.com/cpghub/cpghub-api/internal/validation"
)

// FormSessionHandler exposes the server-side form state: the category
// selector with its "Other" sub-flow, the dependent field groups and the
// submit/dirty guards.
type FormSessionHandler struct {
	service services.FormSessionServiceInterface
}

func NewFormSessionHandler(service services.FormSessionServiceInterface) *FormSessionHandler {
	return &FormSessionHandler{service: service}
}

// StartSession creates a new form session.
func (h *FormSessionHandler) StartSession(c *gin.Context) {
	var body struct {
		Kind string `json:"kind" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "kind is required", err)
		return
	}

	state, err := h.service.StartSession(body.Kind)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// GetState returns the current session snapshot.
func (h *FormSessionHandler) GetState(c *gin.Context) {
	state, err := h.service.State(c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// Toggle flips a label in the selector.
func (h *FormSessionHandler) Toggle(c *gin.Context) {
	var body struct {
		Label string `json:"label" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "label is required", err)
		return
	}

	state, err := h.service.Toggle(c.Param("id"), body.Label)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// AddCustom validates and appends a free-text label.
func (h *FormSessionHandler) AddCustom(c *gin.Context) {
	var body struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "text is required", err)
		return
	}

	state, err := h.service.AddCustom(c.Param("id"), body.Text)
	if err != nil {
		if fieldErr, ok := err.(validation.FieldError); ok {
			respondErrorWithDetails(c, http.StatusBadRequest, "Invalid label",
				[]ValidationError{{Field: fieldErr.Field, Message: fieldErr.Message}}, err)
			return
		}
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// Remove drops a chip from the selection.
func (h *FormSessionHandler) Remove(c *gin.Context) {
	var body struct {
		Label string `json:"label" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "label is required", err)
		return
	}

	state, err := h.service.Remove(c.Param("id"), body.Label)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// SetGroupValues replaces the values of a dependent field group.
func (h *FormSessionHandler) SetGroupValues(c *gin.Context) {
	var body struct {
		Field  string   `json:"field" binding:"required"`
		Values []string `json:"values"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "field is required", err)
		return
	}

	state, err := h.service.SetGroupValues(c.Param("id"), body.Field, body.Values)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// BeginSubmit attempts the one-shot submit latch.
func (h *FormSessionHandler) BeginSubmit(c *gin.Context) {
	ok, err := h.service.BeginSubmit(c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "A submission is already in flight"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// FailSubmit re-arms the latch after a failed submission.
func (h *FormSessionHandler) FailSubmit(c *gin.Context) {
	if err := h.service.FailSubmit(c.Param("id")); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CompleteSubmit marks the form saved and drops the session.
func (h *FormSessionHandler) CompleteSubmit(c *gin.Context) {
	if err := h.service.CompleteSubmit(c.Param("id")); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Discard drops unsaved changes and removes the session.
func (h *FormSessionHandler) Discard(c *gin.Context) {
	if err := h.service.Discard(c.Param("id")); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
