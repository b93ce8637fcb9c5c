package services

import (
	"context"

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
	"github.com/cpghub/cpghub-api/pkg/storage"
	"github.com/cpghub/cpghub-api/pkg/trigger"
)

// TalentService handles talent profile submission and management
type TalentService struct {
	talentRepo   repository.TalentRepositoryInterface
	identityRepo repository.IdentityRepositoryInterface
	labelRepo    repository.LabelRepositoryInterface
	uploader     Uploader
	config       *config.Config
	httpClient   httpclient.Client
}

// NewTalentService creates a new talent service instance
func NewTalentService(
	talentRepo repository.TalentRepositoryInterface,
	identityRepo repository.IdentityRepositoryInterface,
	labelRepo repository.LabelRepositoryInterface,
	uploader Uploader,
	cfg *config.Config,
	httpClient httpclient.Client,
) *TalentService {
	return &TalentService{
		talentRepo:   talentRepo,
		identityRepo: identityRepo,
		labelRepo:    labelRepo,
		uploader:     uploader,
		config:       cfg,
		httpClient:   httpClient,
	}
}

// SubmitProfile creates a talent profile for the signed-in user and grants
// the talent role. The request is assumed to have passed validation.
func (s *TalentService) SubmitProfile(ctx context.Context, user *models.User, req *models.TalentRequest) (*models.TalentResponse, error) {
	req.Normalize()

	resumeURL := ""
	if req.Resume.Present() {
		url, err := s.uploader.Upload(ctx, storage.KindResume,
			req.Resume.Data, req.Resume.FileName, req.Resume.ContentType)
		if err != nil {
			metrics.TalentProfileSubmissions.WithLabelValues("upload_failed").Inc()
			metrics.FileUploads.WithLabelValues(string(storage.KindResume), "error").Inc()
			logger.Error("Failed to upload resume", zap.Error(err))
			return &models.TalentResponse{
				Success: false,
				Error:   "Failed to upload resume",
			}, nil
		}
		metrics.FileUploads.WithLabelValues(string(storage.KindResume), "success").Inc()
		resumeURL = url
	}

	s.promoteCustomSpecializations(ctx, req.AreaOfSpecialization)

	talent := &models.Talent{
		OwnerID:              user.ID,
		LevelOfExperience:    req.LevelOfExperience,
		IndustryExperience:   req.IndustryExperience,
		AreaOfSpecialization: req.AreaOfSpecialization,
		LinkedInURL:          req.LinkedInURL,
		PortfolioURL:         req.PortfolioURL,
		ResumeURL:            resumeURL,
	}

	created, err := s.talentRepo.Create(ctx, talent)
	if err != nil {
		metrics.TalentProfileSubmissions.WithLabelValues("error").Inc()
		logger.Error("Failed to create talent profile", zap.Error(err))
		return &models.TalentResponse{
			Success: false,
			Error:   "Failed to save profile",
		}, nil
	}

	if err := s.identityRepo.GrantRole(ctx, user.ID, models.RoleTalent); err != nil {
		logger.Error("Failed to grant talent role",
			zap.Error(err),
			zap.String("user_id", user.ID))
	}

	trigger.SendEmailAsync(s.config.EmailTriggers.ProfileSubmittedURL, models.EmailPayload{
		From:    user.Email,
		Subject: "New talent profile submitted",
		Message: "Talent profile submitted by " + user.Name,
	}, s.httpClient)

	metrics.TalentProfileSubmissions.WithLabelValues("success").Inc()
	logger.Info("Talent profile created",
		zap.Int64("talent_id", created.ID),
		zap.String("owner_id", user.ID))

	return &models.TalentResponse{
		Success:  true,
		TalentID: created.ID,
	}, nil
}

// UpdateProfile updates an existing talent profile. Only the owner or an
// admin may edit.
func (s *TalentService) UpdateProfile(ctx context.Context, user *models.User, id int64, req *models.TalentRequest) (*models.TalentResponse, error) {
	existing, err := s.talentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !user.CanEdit(existing.OwnerID) {
		return nil, apperrors.AccessDeniedError("only the profile owner may edit it")
	}

	req.Normalize()

	if req.Resume.Present() {
		url, uploadErr := s.uploader.Upload(ctx, storage.KindResume,
			req.Resume.Data, req.Resume.FileName, req.Resume.ContentType)
		if uploadErr != nil {
			metrics.FileUploads.WithLabelValues(string(storage.KindResume), "error").Inc()
			logger.Error("Failed to upload resume", zap.Error(uploadErr))
			return &models.TalentResponse{
				Success: false,
				Error:   "Failed to upload resume",
			}, nil
		}
		metrics.FileUploads.WithLabelValues(string(storage.KindResume), "success").Inc()
		existing.ResumeURL = url
	}

	s.promoteCustomSpecializations(ctx, req.AreaOfSpecialization)

	existing.LevelOfExperience = req.LevelOfExperience
	existing.IndustryExperience = req.IndustryExperience
	existing.AreaOfSpecialization = req.AreaOfSpecialization
	existing.LinkedInURL = req.LinkedInURL
	existing.PortfolioURL = req.PortfolioURL

	updated, err := s.talentRepo.Update(ctx, existing)
	if err != nil {
		logger.Error("Failed to update talent profile", zap.Error(err), zap.Int64("talent_id", id))
		return &models.TalentResponse{
			Success: false,
			Error:   "Failed to save profile",
		}, nil
	}

	return &models.TalentResponse{
		Success:  true,
		TalentID: updated.ID,
	}, nil
}

func (s *TalentService) promoteCustomSpecializations(ctx context.Context, values []string) {
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

// DeleteProfile removes a talent profile. Only the owner or an admin may
// delete.
func (s *TalentService) DeleteProfile(ctx context.Context, user *models.User, id int64) error {
	existing, err := s.talentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !user.CanEdit(existing.OwnerID) {
		return apperrors.AccessDeniedError("only the profile owner may delete it")
	}

	if err := s.talentRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("Talent profile deleted",
		zap.Int64("talent_id", id),
		zap.String("deleted_by", user.ID))
	return nil
}

// GetProfile fetches a talent profile by ID.
func (s *TalentService) GetProfile(ctx context.Context, id int64) (*models.Talent, error) {
	return s.talentRepo.GetByID(ctx, id)
}

// GetProfileByOwner fetches the talent profile owned by a user.
func (s *TalentService) GetProfileByOwner(ctx context.Context, ownerID string) (*models.Talent, error) {
	return s.talentRepo.GetByOwner(ctx, ownerID)
}

// ListProfiles fetches all talent profiles.
func (s *TalentService) ListProfiles(ctx context.Context) ([]*models.Talent, error) {
	return s.talentRepo.GetAll(ctx)
}
