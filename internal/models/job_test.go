package models_test

import (
	"encoding/json"
	"testing"

	"github.com/cpghub/cpghub-api/internal/models"
	"github.com/cpghub/cpghub-api/internal/validation"
	"github.com/stretchr/testify/assert"
)

func validJobRequest(selection string) *models.JobPostingRequest {
	req := &models.JobPostingRequest{
		Title:                "Fractional Sales Lead",
		PreferredExperience:  "5+ years in CPG retail sales",
		LevelOfExperience:    []string{"Senior"},
		AreaOfSpecialization: []string{"Sales"},
		WorkLocation:         "Remote",
		ScopeOfWork:          "Ongoing",
		EstimatedHrsPerWk:    models.NewFlexInt(20),
		BrandSelection:       selection,
	}

	switch selection {
	case models.BrandSelectionExisting:
		id := int64(42)
		req.BrandID = &id
	case models.BrandSelectionNew:
		req.BrandName = "Tasty Snacks Co"
		req.BrandWebsite = "tastysnacks.com"
		req.BrandLogo = &models.Upload{Data: "aGk=", FileName: "logo.png", ContentType: "image/png"}
	}

	return req
}

func fieldsOf(errs validation.Errors) []string {
	fields := make([]string, 0, len(errs))
	for _, fe := range errs {
		fields = append(fields, fe.Field)
	}
	return fields
}

func TestJobPostingRequest_NewBrandEachFieldIndependentlyRequired(t *testing.T) {
	tests := []struct {
		name  string
		strip func(*models.JobPostingRequest)
		field string
	}{
		{"missing name", func(r *models.JobPostingRequest) { r.BrandName = "" }, "brand_name"},
		{"missing logo", func(r *models.JobPostingRequest) { r.BrandLogo = nil }, "brand_logo"},
		{"missing website", func(r *models.JobPostingRequest) { r.BrandWebsite = "" }, "brand_website"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validJobRequest(models.BrandSelectionNew)
			tt.strip(req)

			errs := req.Validate()
			assert.Contains(t, fieldsOf(errs), tt.field,
				"error must land on the missing field regardless of the other two")
		})
	}
}

func TestJobPostingRequest_NewBrandFailuresAreAdditive(t *testing.T) {
	req := validJobRequest(models.BrandSelectionNew)
	req.BrandName = ""
	req.BrandLogo = nil
	req.BrandWebsite = ""
	req.EstimatedHrsPerWk = models.NewFlexInt(50)

	errs := req.Validate()
	fields := fieldsOf(errs)
	assert.Contains(t, fields, "brand_name")
	assert.Contains(t, fields, "brand_logo")
	assert.Contains(t, fields, "brand_website")
	assert.Contains(t, fields, "estimated_hrs_per_wk")
}

func TestJobPostingRequest_NewBrandLogoMIME(t *testing.T) {
	req := validJobRequest(models.BrandSelectionNew)
	req.BrandLogo.ContentType = "application/pdf"

	errs := req.Validate()
	assert.Contains(t, fieldsOf(errs), "brand_logo")
}

func TestJobPostingRequest_NewBrandWebsiteNormalized(t *testing.T) {
	req := validJobRequest(models.BrandSelectionNew)
	req.BrandWebsite = "tastysnacks.com"

	assert.Empty(t, req.Validate())
	req.Normalize()
	assert.Equal(t, "https://tastysnacks.com", req.BrandWebsite)
}

func TestJobPostingRequest_ExistingNeverRequiresNewBrandFields(t *testing.T) {
	req := validJobRequest(models.BrandSelectionExisting)
	req.BrandName = ""
	req.BrandLogo = nil
	req.BrandWebsite = ""

	assert.Empty(t, req.Validate())

	// Present-but-irrelevant new-brand fields are not validated either.
	req = validJobRequest(models.BrandSelectionExisting)
	req.BrandWebsite = "not a url at all"
	assert.Empty(t, req.Validate())
}

func TestJobPostingRequest_ExistingRequiresBrandReference(t *testing.T) {
	req := validJobRequest(models.BrandSelectionExisting)
	req.BrandID = nil

	errs := req.Validate()
	assert.Equal(t, []string{"brand_id"}, fieldsOf(errs))
}

func TestJobPostingRequest_NoneRequiresNothingBrandRelated(t *testing.T) {
	req := validJobRequest(models.BrandSelectionNone)
	assert.Empty(t, req.Validate())
}

func TestJobPostingRequest_NormalizeClearsCrossVariantFields(t *testing.T) {
	// "new" never leaves an existing-path reference populated.
	req := validJobRequest(models.BrandSelectionNew)
	stale := int64(7)
	req.BrandID = &stale
	req.Normalize()
	assert.Nil(t, req.BrandID)
	assert.NotEmpty(t, req.BrandName)

	// "existing" clears the new-brand path.
	req = validJobRequest(models.BrandSelectionExisting)
	req.BrandName = "Leftover"
	req.BrandWebsite = "leftover.com"
	req.Normalize()
	assert.Empty(t, req.BrandName)
	assert.Empty(t, req.BrandWebsite)
	assert.Nil(t, req.BrandLogo)
	assert.NotNil(t, req.BrandID)

	// "none" clears both paths.
	req = validJobRequest(models.BrandSelectionNone)
	req.BrandID = &stale
	req.BrandName = "Leftover"
	req.Normalize()
	assert.Nil(t, req.BrandID)
	assert.Empty(t, req.BrandName)
}

func TestJobPostingRequest_NormalizeDefaultsIsOpen(t *testing.T) {
	req := validJobRequest(models.BrandSelectionNone)
	req.Normalize()
	assert.NotNil(t, req.IsOpen)
	assert.True(t, *req.IsOpen)

	closed := false
	req = validJobRequest(models.BrandSelectionNone)
	req.IsOpen = &closed
	req.Normalize()
	assert.False(t, *req.IsOpen)
}

func TestJobPostingRequest_JobDescriptionMustBePDF(t *testing.T) {
	req := validJobRequest(models.BrandSelectionNone)
	req.JobDescription = &models.Upload{Data: "aGk=", FileName: "jd.docx", ContentType: "application/msword"}

	errs := req.Validate()
	assert.Contains(t, fieldsOf(errs), "job_description")

	req.JobDescription.ContentType = "application/pdf"
	assert.Empty(t, req.Validate())
}

func TestFlexInt_HoursPerWeekBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		valid   bool
	}{
		{"lower bound", `{"estimated_hrs_per_wk": 1}`, true},
		{"upper bound", `{"estimated_hrs_per_wk": 40}`, true},
		{"below lower", `{"estimated_hrs_per_wk": 0}`, false},
		{"above upper", `{"estimated_hrs_per_wk": 41}`, false},
		{"numeric string coerced", `{"estimated_hrs_per_wk": "25"}`, true},
		{"non-numeric string", `{"estimated_hrs_per_wk": "twenty"}`, false},
		{"fractional", `{"estimated_hrs_per_wk": 12.5}`, false},
		{"absent", `{}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validJobRequest(models.BrandSelectionNone)
			var parsed struct {
				Hours models.FlexInt `json:"estimated_hrs_per_wk"`
			}
			assert.NoError(t, json.Unmarshal([]byte(tt.payload), &parsed))
			req.EstimatedHrsPerWk = parsed.Hours

			errs := req.Validate()
			if tt.valid {
				assert.Empty(t, errs)
			} else {
				assert.Equal(t, []string{"estimated_hrs_per_wk"}, fieldsOf(errs))
			}
		})
	}
}

func TestFlexInt_CoercedValuePreserved(t *testing.T) {
	var parsed struct {
		Hours models.FlexInt `json:"h"`
	}
	assert.NoError(t, json.Unmarshal([]byte(`{"h": "25"}`), &parsed))
	assert.True(t, parsed.Hours.Ok())
	assert.Equal(t, 25, parsed.Hours.Int())
}
