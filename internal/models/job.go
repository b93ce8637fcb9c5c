package models

import (
	"strings"
	"time"

	"github.com/cpghub/cpghub-api/internal/validation"
)

// Brand selection discriminator values. The rule set applied to the
// brand-related fields of a job posting branches on this three-way choice.
const (
	BrandSelectionNone     = "none"
	BrandSelectionExisting = "existing"
	BrandSelectionNew      = "new"
)

// JobPosting represents a published job in the marketplace. The poster is
// either an attached brand (BrandID set) or a bare poster identity carried
// on the posting itself.
type JobPosting struct {
	ID                   int64     `json:"id"`
	OwnerID              string    `json:"ownerId"`
	Slug                 string    `json:"slug"`
	Title                string    `json:"title"`
	PreferredExperience  string    `json:"preferredExperience"`
	LevelOfExperience    []string  `json:"levelOfExperience"`
	AreaOfSpecialization []string  `json:"areaOfSpecialization"`
	WorkLocation         string    `json:"workLocation"`
	ScopeOfWork          string    `json:"scopeOfWork"`
	EstimatedHrsPerWk    int       `json:"estimatedHrsPerWk"`
	JobDescriptionURL    string    `json:"jobDescriptionUrl,omitempty"`
	IsOpen               bool      `json:"isOpen"`
	BrandID              *int64    `json:"brandId,omitempty"`
	PosterName           string    `json:"posterName,omitempty"`
	PosterLocation       string    `json:"posterLocation,omitempty"`
	PosterLogoURL        string    `json:"posterLogoUrl,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// JobPostingRequest is the composite job-posting form submission: the base
// job fields plus the brand-selection sub-contract. Cross-field conditional
// rules are layered in Validate, so failures are additive with the binding
// tag failures - a submission can fail "brand_name required" and "job_title
// required" together.
type JobPostingRequest struct {
	Title                string   `json:"job_title" binding:"required,max=200"`
	PreferredExperience  string   `json:"preferred_experience" binding:"required,max=5000"`
	LevelOfExperience    []string `json:"level_of_experience" binding:"required,min=1,dive,oneof=Entry Mid-level Senior Executive"`
	AreaOfSpecialization []string `json:"area_of_specialization" binding:"required,min=1,dive,categorytext"`
	WorkLocation         string   `json:"work_location" binding:"required,oneof=Remote In-office Hybrid"`
	ScopeOfWork          string   `json:"scope_of_work" binding:"required,oneof=Project-based Ongoing"`
	EstimatedHrsPerWk    FlexInt  `json:"estimated_hrs_per_wk"`
	JobDescription       *Upload  `json:"job_description" binding:"omitempty"`
	IsOpen               *bool    `json:"is_open"`

	// Shown as the poster's location when no brand is attached.
	PosterLocation string `json:"poster_location" binding:"omitempty,max=200"`

	// References the server-side form session holding the submit latch.
	FormSessionID string `json:"form_session_id" binding:"omitempty,max=100"`

	// Brand selection sub-contract. None of these carry unconditional
	// binding tags: which ones are validated depends entirely on the
	// discriminator.
	BrandSelection   string  `json:"brand_selection" binding:"required,oneof=none existing new"`
	BrandID          *int64  `json:"brand_id"`
	BrandName        string  `json:"brand_name" binding:"omitempty,max=100"`
	BrandLogo        *Upload `json:"brand_logo"`
	BrandWebsite     string  `json:"brand_website" binding:"omitempty,max=500"`
	BrandLocation    string  `json:"brand_location" binding:"omitempty,max=200"`
	BrandLinkedInURL string  `json:"brand_linkedin_url" binding:"omitempty,max=500"`
	BrandDescription string  `json:"brand_desc" binding:"omitempty,max=5000"`
}

// Validate applies the numeric coercion rules and the per-variant brand
// rules. Each check is independent; errors accumulate.
func (r *JobPostingRequest) Validate() validation.Errors {
	var errs validation.Errors

	errs = r.EstimatedHrsPerWk.CheckRange(errs, "estimated_hrs_per_wk", 1, 40)

	if r.JobDescription.Present() && !r.JobDescription.IsPDF() {
		errs = errs.Add("job_description", "must be a PDF file")
	}

	switch r.BrandSelection {
	case BrandSelectionExisting:
		if r.BrandID == nil {
			errs = errs.Add("brand_id", "an existing brand must be selected")
		}

	case BrandSelectionNew:
		if strings.TrimSpace(r.BrandName) == "" {
			errs = errs.Add("brand_name", "brand_name is required when creating a new brand")
		}
		if !r.BrandLogo.Present() {
			errs = errs.Add("brand_logo", "brand_logo is required when creating a new brand")
		} else if !r.BrandLogo.IsImage() {
			errs = errs.Add("brand_logo", "must be a png or jpeg image")
		}
		if strings.TrimSpace(r.BrandWebsite) == "" {
			errs = errs.Add("brand_website", "brand_website is required when creating a new brand")
		} else if !validation.IsWebsite(r.BrandWebsite) {
			errs = errs.Add("brand_website", "must be a valid URL")
		}
		// Optional new-brand fields are validated only when present.
		if r.BrandLinkedInURL != "" && !validation.IsLinkedIn(r.BrandLinkedInURL) {
			errs = errs.Add("brand_linkedin_url", "must be a LinkedIn profile, company or school URL")
		}
	}

	return errs
}

// Normalize trims free text, guarantees scheme-prefixed URLs and clears any
// field belonging to a brand-selection path that was not chosen, so a "new"
// selection never leaves stale existing-path fields populated and vice
// versa. Call after Validate passed.
func (r *JobPostingRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.PreferredExperience = strings.TrimSpace(r.PreferredExperience)

	switch r.BrandSelection {
	case BrandSelectionNew:
		r.BrandID = nil
		r.BrandName = strings.TrimSpace(r.BrandName)
		r.BrandWebsite = validation.NormalizeURL(r.BrandWebsite)
		r.BrandLocation = strings.TrimSpace(r.BrandLocation)
		if r.BrandLinkedInURL != "" {
			r.BrandLinkedInURL = validation.NormalizeURL(r.BrandLinkedInURL)
		}
		r.BrandDescription = strings.TrimSpace(r.BrandDescription)
		r.PosterLocation = ""

	case BrandSelectionExisting:
		r.clearNewBrandFields()
		r.PosterLocation = ""

	case BrandSelectionNone:
		r.BrandID = nil
		r.clearNewBrandFields()
		r.PosterLocation = strings.TrimSpace(r.PosterLocation)
	}

	if r.IsOpen == nil {
		open := true
		r.IsOpen = &open
	}
}

func (r *JobPostingRequest) clearNewBrandFields() {
	r.BrandName = ""
	r.BrandLogo = nil
	r.BrandWebsite = ""
	r.BrandLocation = ""
	r.BrandLinkedInURL = ""
	r.BrandDescription = ""
}

// JobPostingResponse is the create/update result returned to the client.
type JobPostingResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	JobID   int64  `json:"jobId,omitempty"`
	Slug    string `json:"slug,omitempty"`
	BrandID *int64 `json:"brandId,omitempty"`
	Error   string `json:"error,omitempty"`
}

// JobFilterOptions narrows job listings.
type JobFilterOptions struct {
	OnlyOpen       bool
	OwnerID        string
	BrandID        *int64
	Specialization string
}
