package models

import (
	"strings"
	"time"

	"github.com/cpghub/cpghub-api/internal/validation"
)

// Talent represents a fractional talent profile.
type Talent struct {
	ID                   int64     `json:"id"`
	OwnerID              string    `json:"ownerId"`
	LevelOfExperience    []string  `json:"levelOfExperience"`
	IndustryExperience   string    `json:"industryExperience"`
	AreaOfSpecialization []string  `json:"areaOfSpecialization"`
	LinkedInURL          string    `json:"linkedinUrl,omitempty"`
	PortfolioURL         string    `json:"portfolioUrl,omitempty"`
	ResumeURL            string    `json:"resumeUrl,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// TalentRequest is the onboarding/edit form submission for a talent profile.
// An empty area_of_specialization array is always a failure, never defaulted.
type TalentRequest struct {
	LevelOfExperience    []string `json:"level_of_experience" binding:"required,min=1,dive,oneof=Entry Mid-level Senior Executive"`
	IndustryExperience   string   `json:"industry_experience" binding:"required,max=5000"`
	AreaOfSpecialization []string `json:"area_of_specialization" binding:"required,min=1,dive,categorytext"`
	LinkedInURL          string   `json:"linkedin_url" binding:"omitempty,linkedin,max=500"`
	PortfolioURL         string   `json:"portfolio_url" binding:"omitempty,website,max=500"`
	Resume               *Upload  `json:"resume" binding:"omitempty"`

	// References the server-side form session holding the submit latch.
	FormSessionID string `json:"form_session_id" binding:"omitempty,max=100"`
}

// Validate layers the upload MIME rule on top of the binding tags.
func (r *TalentRequest) Validate() validation.Errors {
	var errs validation.Errors

	if r.Resume.Present() && !r.Resume.IsDocument() {
		errs = errs.Add("resume", "must be a pdf, doc or docx file")
	}

	return errs
}

// ValidateCreate adds the create-only presence rules. A new profile must
// carry a resume; edits keep the stored one when none is re-uploaded.
func (r *TalentRequest) ValidateCreate() validation.Errors {
	errs := r.Validate()

	if !r.Resume.Present() {
		errs = errs.Add("resume", "resume is required")
	}

	return errs
}

// Normalize trims free text and guarantees scheme-prefixed URLs.
func (r *TalentRequest) Normalize() {
	r.IndustryExperience = strings.TrimSpace(r.IndustryExperience)
	if r.LinkedInURL != "" {
		r.LinkedInURL = validation.NormalizeURL(r.LinkedInURL)
	}
	if r.PortfolioURL != "" {
		r.PortfolioURL = validation.NormalizeURL(r.PortfolioURL)
	}
}

// TalentResponse is the create/update result returned to the client.
type TalentResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	TalentID int64  `json:"talentId,omitempty"`
	Error    string `json:"error,omitempty"`
}
