package models

import (
	"strings"
	"time"

	"github.com/cpghub/cpghub-api/internal/validation"
)

// Brand represents a CPG brand profile. One brand per owning user; the
// uniqueness constraint lives in the database, not in this layer.
type Brand struct {
	ID          int64     `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Website     string    `json:"website,omitempty"`
	LinkedInURL string    `json:"linkedinUrl,omitempty"`
	HQ          string    `json:"hq,omitempty"`
	Description string    `json:"description,omitempty"`
	LogoURL     string    `json:"logoUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BrandRequest is the onboarding/edit form submission for a brand.
type BrandRequest struct {
	Name        string  `json:"brand_name" binding:"required,max=100"`
	Website     string  `json:"website" binding:"omitempty,website,max=500"`
	LinkedInURL string  `json:"linkedin_url" binding:"omitempty,linkedin,max=500"`
	HQ          string  `json:"brand_hq" binding:"omitempty,max=200"`
	Description string  `json:"brand_desc" binding:"omitempty,max=5000"`
	Logo        *Upload `json:"logo" binding:"omitempty"`

	// References the server-side form session holding the submit latch.
	FormSessionID string `json:"form_session_id" binding:"omitempty,max=100"`
}

// Normalize trims free text and guarantees scheme-prefixed URLs. Called
// after validation succeeded.
func (r *BrandRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.HQ = strings.TrimSpace(r.HQ)
	r.Description = strings.TrimSpace(r.Description)
	if r.Website != "" {
		r.Website = validation.NormalizeURL(r.Website)
	}
	if r.LinkedInURL != "" {
		r.LinkedInURL = validation.NormalizeURL(r.LinkedInURL)
	}
}

// BrandResponse is the create/update result returned to the client.
type BrandResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	BrandID int64  `json:"brandId,omitempty"`
	Slug    string `json:"slug,omitempty"`
	Error   string `json:"error,omitempty"`
}
