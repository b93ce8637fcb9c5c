package models_test

import (
	"testing"

	"github.com/cpghub/cpghub-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func validTalentRequest() *models.TalentRequest {
	return &models.TalentRequest{
		LevelOfExperience:    []string{"Senior"},
		IndustryExperience:   "10 years in CPG retail",
		AreaOfSpecialization: []string{"Sales"},
		Resume:               &models.Upload{Data: "aGk=", FileName: "resume.pdf", ContentType: "application/pdf"},
	}
}

func TestTalentRequest_ValidateCreate_ResumeRequired(t *testing.T) {
	req := validTalentRequest()
	req.Resume = nil

	errs := req.ValidateCreate()
	assert.Contains(t, fieldsOf(errs), "resume")
}

func TestTalentRequest_Validate_ResumeOptionalOnEdit(t *testing.T) {
	req := validTalentRequest()
	req.Resume = nil

	assert.Empty(t, req.Validate())
}

func TestTalentRequest_ResumeMustBeDocument(t *testing.T) {
	req := validTalentRequest()
	req.Resume = &models.Upload{Data: "aGk=", FileName: "resume.png", ContentType: "image/png"}

	errs := req.ValidateCreate()
	fields := fieldsOf(errs)
	assert.Contains(t, fields, "resume")
	assert.Len(t, fields, 1)
}
