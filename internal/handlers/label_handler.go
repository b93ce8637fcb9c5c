package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cpghub/cpghub-api/internal/services"
)

type LabelHandler struct {
	service services.LabelServiceInterface
}

func NewLabelHandler(service services.LabelServiceInterface) *LabelHandler {
	return &LabelHandler{service: service}
}

// GetOptions serves the option list of one label kind for the selector
// components.
func (h *LabelHandler) GetOptions(c *gin.Context) {
	values, err := h.service.GetOptions(c.Request.Context(), c.Param("kind"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"options": values})
}
