package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cpghub/cpghub-api/config"
	"github.com/cpghub/cpghub-api/internal/database/postgres"
	"github.com/cpghub/cpghub-api/internal/models"
	"github.com/cpghub/cpghub-api/internal/repository"
	"github.com/cpghub/cpghub-api/internal/validation"
	apperrors "github.com/cpghub/cpghub-api/pkg/errors"
	"github.com/cpghub/cpghub-api/pkg/httpclient"
	"github.com/cpghub/cpghub-api/pkg/logger"
	"github.com/cpghub/cpghub-api/pkg/metrics"
	"github.com/cpghub/cpghub-api/pkg/slug"
	"github.com/cpghub/cpghub-api/pkg/storage"
	"github.com/cpghub/cpghub-api/pkg/trigger"
)

// JobService handles job posting submission and management. A submission is
// a composite: resolving the brand selection may create a brand as a side
// effect before the posting itself is written.
type JobService struct {
	jobRepo      repository.JobRepositoryInterface
	brandRepo    repository.BrandRepositoryInterface
	identityRepo repository.IdentityRepositoryInterface
	labelRepo    repository.LabelRepositoryInterface
	uploader     Uploader
	config       *config.Config
	httpClient   httpclient.Client
}

// NewJobService creates a new job service instance
func NewJobService(
	jobRepo repository.JobRepositoryInterface,
	brandRepo repository.BrandRepositoryInterface,
	identityRepo repository.IdentityRepositoryInterface,
	labelRepo repository.LabelRepositoryInterface,
	uploader Uploader,
	cfg *config.Config,
	httpClient httpclient.Client,
) *JobService {
	return &JobService{
		jobRepo:      jobRepo,
		brandRepo:    brandRepo,
		identityRepo: identityRepo,
		labelRepo:    labelRepo,
		uploader:     uploader,
		config:       cfg,
		httpClient:   httpClient,
	}
}

// SubmitJobPosting creates a job posting for the signed-in user. The request
// is assumed to have passed validation; brand resolution branches on the
// discriminator.
func (s *JobService) SubmitJobPosting(ctx context.Context, user *models.User, req *models.JobPostingRequest) (*models.JobPostingResponse, error) {
	req.Normalize()

	fail := func(msg string) (*models.JobPostingResponse, error) {
		metrics.JobPostingSubmissions.WithLabelValues(req.BrandSelection, "error").Inc()
		return &models.JobPostingResponse{Success: false, Error: msg}, nil
	}

	descriptionURL := ""
	if req.JobDescription.Present() {
		url, err := s.uploader.Upload(ctx, storage.KindJobDescription,
			req.JobDescription.Data, req.JobDescription.FileName, req.JobDescription.ContentType)
		if err != nil {
			metrics.FileUploads.WithLabelValues(string(storage.KindJobDescription), "error").Inc()
			logger.Error("Failed to upload job description", zap.Error(err))
			return fail("Failed to upload job description")
		}
		metrics.FileUploads.WithLabelValues(string(storage.KindJobDescription), "success").Inc()
		descriptionURL = url
	}

	job := &models.JobPosting{
		OwnerID:              user.ID,
		Title:                req.Title,
		PreferredExperience:  req.PreferredExperience,
		LevelOfExperience:    req.LevelOfExperience,
		AreaOfSpecialization: req.AreaOfSpecialization,
		WorkLocation:         req.WorkLocation,
		ScopeOfWork:          req.ScopeOfWork,
		EstimatedHrsPerWk:    req.EstimatedHrsPerWk.Int(),
		JobDescriptionURL:    descriptionURL,
		IsOpen:               *req.IsOpen,
	}

	switch req.BrandSelection {
	case models.BrandSelectionExisting:
		brand, err := s.brandRepo.GetByID(ctx, *req.BrandID)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrNotFound) {
				return fail("Selected brand does not exist")
			}
			return nil, err
		}
		job.BrandID = &brand.ID

	case models.BrandSelectionNew:
		brand, err := s.createBrandFromPosting(ctx, user, req)
		if err != nil {
			logger.Error("Failed to create brand from job posting", zap.Error(err))
			return fail("Failed to save brand")
		}
		job.BrandID = &brand.ID

	case models.BrandSelectionNone:
		job.PosterName = user.Name
		job.PosterLogoURL = user.ImageURL
		job.PosterLocation = req.PosterLocation
	}

	s.promoteCustomSpecializations(ctx, req.AreaOfSpecialization)

	created, err := s.jobRepo.Create(ctx, job)
	if err != nil {
		logger.Error("Failed to create job posting", zap.Error(err))
		return fail("Failed to save job posting")
	}

	created.Slug = slug.Generate(created.Title, created.ID)
	created, err = s.jobRepo.Update(ctx, created)
	if err != nil {
		logger.Error("Failed to set job posting slug", zap.Error(err))
		return fail("Failed to save job posting")
	}

	trigger.SendEmailAsync(s.config.EmailTriggers.JobPostingCreatedURL, models.EmailPayload{
		From:    user.Email,
		Subject: "New job posting: " + created.Title,
		Message: fmt.Sprintf("Job %q was posted by %s", created.Title, user.Name),
	}, s.httpClient)

	metrics.JobPostingSubmissions.WithLabelValues(req.BrandSelection, "success").Inc()
	logger.Info("Job posting created",
		zap.Int64("job_id", created.ID),
		zap.String("slug", created.Slug),
		zap.String("brand_selection", req.BrandSelection))

	return &models.JobPostingResponse{
		Success: true,
		JobID:   created.ID,
		Slug:    created.Slug,
		BrandID: created.BrandID,
	}, nil
}

// createBrandFromPosting builds a brand out of the new-brand fields of a job
// submission. The posting's owner becomes the brand owner.
func (s *JobService) createBrandFromPosting(ctx context.Context, user *models.User, req *models.JobPostingRequest) (*models.Brand, error) {
	logoURL := ""
	if req.BrandLogo.Present() {
		url, err := s.uploader.Upload(ctx, storage.KindLogo,
			req.BrandLogo.Data, req.BrandLogo.FileName, req.BrandLogo.ContentType)
		if err != nil {
			metrics.FileUploads.WithLabelValues(string(storage.KindLogo), "error").Inc()
			return nil, apperrors.UploadError(string(storage.KindLogo), err)
		}
		metrics.FileUploads.WithLabelValues(string(storage.KindLogo), "success").Inc()
		logoURL = url
	}

	brand := &models.Brand{
		OwnerID:     user.ID,
		Name:        req.BrandName,
		Website:     req.BrandWebsite,
		LinkedInURL: req.BrandLinkedInURL,
		HQ:          req.BrandLocation,
		Description: req.BrandDescription,
		LogoURL:     logoURL,
	}

	created, err := s.brandRepo.Create(ctx, brand)
	if err != nil {
		return nil, err
	}

	created.Slug = slug.Generate(created.Name, created.ID)
	created, err = s.brandRepo.Update(ctx, created)
	if err != nil {
		return nil, err
	}

	if grantErr := s.identityRepo.GrantRole(ctx, user.ID, models.RoleBrand); grantErr != nil {
		logger.Error("Failed to grant brand role",
			zap.Error(grantErr),
			zap.String("user_id", user.ID))
	}

	return created, nil
}

// promoteCustomSpecializations records free-text specializations so they
// appear as options for future submissions. Failures only cost the promotion.
func (s *JobService) promoteCustomSpecializations(ctx context.Context, values []string) {
	builtin := make(map[string]bool, len(models.Specializations))
	for _, v := range models.Specializations {
		builtin[v] = true
	}

	for _, v := range values {
		if builtin[v] {
			continue
		}
		label := validation.TitleCase(v)
		if err := s.labelRepo.Promote(ctx, postgres.LabelKindSpecialization, label); err != nil {
			logger.Warn("Failed to promote custom specialization",
				zap.String("value", label),
				zap.Error(err))
		}
	}
}

// GetJobPosting fetches a job posting by ID.
func (s *JobService) GetJobPosting(ctx context.Context, id int64) (*models.JobPosting, error) {
	return s.jobRepo.GetByID(ctx, id)
}

// GetJobPostingBySlug fetches a job posting by slug.
func (s *JobService) GetJobPostingBySlug(ctx context.Context, slug string) (*models.JobPosting, error) {
	return s.jobRepo.GetBySlug(ctx, slug)
}

// ListJobPostings fetches job postings matching the filter.
func (s *JobService) ListJobPostings(ctx context.Context, filter models.JobFilterOptions) ([]*models.JobPosting, error) {
	return s.jobRepo.GetAll(ctx, filter)
}

// SetJobPostingOpen closes or reopens a posting. Only the owner or an admin
// may flip the flag.
func (s *JobService) SetJobPostingOpen(ctx context.Context, user *models.User, id int64, open bool) error {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !user.CanEdit(job.OwnerID) {
		return apperrors.AccessDeniedError("only the posting owner may change its status")
	}
	return s.jobRepo.SetOpen(ctx, id, open)
}

// DeleteJobPosting removes a posting. Only the owner or an admin may delete.
func (s *JobService) DeleteJobPosting(ctx context.Context, user *models.User, id int64) error {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !user.CanEdit(job.OwnerID) {
		return apperrors.AccessDeniedError("only the posting owner may delete it")
	}

	if err := s.jobRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("Job posting deleted",
		zap.Int64("job_id", id),
		zap.String("deleted_by", user.ID))
	return nil
}

// ListOwnJobPostings returns every posting of the signed-in user, open or
// closed.
func (s *JobService) ListOwnJobPostings(ctx context.Context, user *models.User) ([]*models.JobPosting, error) {
	return s.jobRepo.GetAll(ctx, models.JobFilterOptions{OwnerID: user.ID})
}

// SaveJob bookmarks a posting for the signed-in user. Idempotent.
func (s *JobService) SaveJob(ctx context.Context, user *models.User, jobID int64) error {
	if _, err := s.jobRepo.GetByID(ctx, jobID); err != nil {
		return err
	}
	return s.jobRepo.SaveForUser(ctx, user.ID, jobID)
}

// UnsaveJob removes a bookmark. Idempotent.
func (s *JobService) UnsaveJob(ctx context.Context, user *models.User, jobID int64) error {
	return s.jobRepo.UnsaveForUser(ctx, user.ID, jobID)
}

// ListSavedJobs returns the signed-in user's bookmarked postings.
func (s *JobService) ListSavedJobs(ctx context.Context, user *models.User) ([]*models.JobPosting, error) {
	return s.jobRepo.GetSavedForUser(ctx, user.ID)
}
