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
	"github.com/cpghub/cpghub-api/pkg/slug"
	"github.com/cpghub/cpghub-api/pkg/storage"
	"github.com/cpghub/cpghub-api/pkg/trigger"
)

// ServiceProviderService handles service-provider profile submission and
// management
type ServiceProviderService struct {
	providerRepo repository.ServiceProviderRepositoryInterface
	identityRepo repository.IdentityRepositoryInterface
	labelRepo    repository.LabelRepositoryInterface
	uploader     Uploader
	config       *config.Config
	httpClient   httpclient.Client
}

// NewServiceProviderService creates a new service-provider service instance
func NewServiceProviderService(
	providerRepo repository.ServiceProviderRepositoryInterface,
	identityRepo repository.IdentityRepositoryInterface,
	labelRepo repository.LabelRepositoryInterface,
	uploader Uploader,
	cfg *config.Config,
	httpClient httpclient.Client,
) *ServiceProviderService {
	return &ServiceProviderService{
		providerRepo: providerRepo,
		identityRepo: identityRepo,
		labelRepo:    labelRepo,
		uploader:     uploader,
		config:       cfg,
		httpClient:   httpClient,
	}
}

// SubmitProfile creates a service-provider profile for the signed-in user
// and grants the service role. The request is assumed to have passed
// validation; Normalize clears conditional sub-fields whose trigger category
// is absent.
func (s *ServiceProviderService) SubmitProfile(ctx context.Context, user *models.User, req *models.ServiceProviderRequest) (*models.ServiceProviderResponse, error) {
	req.Normalize()

	logoURL := ""
	if req.Logo.Present() {
		url, err := s.uploader.Upload(ctx, storage.KindLogo,
			req.Logo.Data, req.Logo.FileName, req.Logo.ContentType)
		if err != nil {
			metrics.ServiceProviderSubmissions.WithLabelValues("upload_failed").Inc()
			metrics.FileUploads.WithLabelValues(string(storage.KindLogo), "error").Inc()
			logger.Error("Failed to upload provider logo", zap.Error(err))
			return &models.ServiceProviderResponse{
				Success: false,
				Error:   "Failed to upload logo",
			}, nil
		}
		metrics.FileUploads.WithLabelValues(string(storage.KindLogo), "success").Inc()
		logoURL = url
	}

	s.promoteCustomCategories(ctx, req.CategoryOfService)

	provider := &models.ServiceProvider{
		OwnerID:              user.ID,
		CompanyName:          req.CompanyName,
		CompanyWebsite:       req.CompanyWebsite,
		LogoURL:              logoURL,
		NumEmployees:         req.NumEmployees.Int(),
		AreaOfSpecialization: req.AreaOfSpecialization,
		CategoryOfService:    req.CategoryOfService,
		BrokerServiceTypes:   req.BrokerServiceTypes,
		MarketsCovered:       req.MarketsCovered,
		CustomersCovered:     req.CustomersCovered,
	}

	created, err := s.providerRepo.Create(ctx, provider)
	if err != nil {
		metrics.ServiceProviderSubmissions.WithLabelValues("error").Inc()
		logger.Error("Failed to create service provider", zap.Error(err))
		return &models.ServiceProviderResponse{
			Success: false,
			Error:   "Failed to save profile",
		}, nil
	}

	created.Slug = slug.Generate(created.CompanyName, created.ID)
	created, err = s.providerRepo.Update(ctx, created)
	if err != nil {
		metrics.ServiceProviderSubmissions.WithLabelValues("error").Inc()
		logger.Error("Failed to set service provider slug", zap.Error(err))
		return &models.ServiceProviderResponse{
			Success: false,
			Error:   "Failed to save profile",
		}, nil
	}

	if err := s.identityRepo.GrantRole(ctx, user.ID, models.RoleService); err != nil {
		logger.Error("Failed to grant service role",
			zap.Error(err),
			zap.String("user_id", user.ID))
	}

	trigger.SendEmailAsync(s.config.EmailTriggers.ProfileSubmittedURL, models.EmailPayload{
		From:    user.Email,
		Subject: "New service provider submitted: " + created.CompanyName,
		Message: "Service provider " + created.CompanyName + " was submitted by " + user.Name,
	}, s.httpClient)

	metrics.ServiceProviderSubmissions.WithLabelValues("success").Inc()
	logger.Info("Service provider created",
		zap.Int64("provider_id", created.ID),
		zap.String("slug", created.Slug),
		zap.String("owner_id", user.ID))

	return &models.ServiceProviderResponse{
		Success:    true,
		ProviderID: created.ID,
		Slug:       created.Slug,
	}, nil
}

// UpdateProfile updates an existing provider profile. Only the owner or an
// admin may edit.
func (s *ServiceProviderService) UpdateProfile(ctx context.Context, user *models.User, id int64, req *models.ServiceProviderRequest) (*models.ServiceProviderResponse, error) {
	existing, err := s.providerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !user.CanEdit(existing.OwnerID) {
		return nil, apperrors.AccessDeniedError("only the profile owner may edit it")
	}

	req.Normalize()

	if req.Logo.Present() {
		url, uploadErr := s.uploader.Upload(ctx, storage.KindLogo,
			req.Logo.Data, req.Logo.FileName, req.Logo.ContentType)
		if uploadErr != nil {
			metrics.FileUploads.WithLabelValues(string(storage.KindLogo), "error").Inc()
			logger.Error("Failed to upload provider logo", zap.Error(uploadErr))
			return &models.ServiceProviderResponse{
				Success: false,
				Error:   "Failed to upload logo",
			}, nil
		}
		metrics.FileUploads.WithLabelValues(string(storage.KindLogo), "success").Inc()
		existing.LogoURL = url
	}

	s.promoteCustomCategories(ctx, req.CategoryOfService)

	existing.CompanyName = req.CompanyName
	existing.CompanyWebsite = req.CompanyWebsite
	existing.NumEmployees = req.NumEmployees.Int()
	existing.AreaOfSpecialization = req.AreaOfSpecialization
	existing.CategoryOfService = req.CategoryOfService
	existing.BrokerServiceTypes = req.BrokerServiceTypes
	existing.MarketsCovered = req.MarketsCovered
	existing.CustomersCovered = req.CustomersCovered

	updated, err := s.providerRepo.Update(ctx, existing)
	if err != nil {
		logger.Error("Failed to update service provider", zap.Error(err), zap.Int64("provider_id", id))
		return &models.ServiceProviderResponse{
			Success: false,
			Error:   "Failed to save profile",
		}, nil
	}

	return &models.ServiceProviderResponse{
		Success:    true,
		ProviderID: updated.ID,
		Slug:       updated.Slug,
	}, nil
}

func (s *ServiceProviderService) promoteCustomCategories(ctx context.Context, values []string) {
	builtin := make(map[string]bool, len(models.ServiceCategories))
	for _, v := range models.ServiceCategories {
		builtin[v] = true
	}

	for _, v := range values {
		if builtin[v] {
			continue
		}
		label := validation.TitleCase(v)
		if err := s.labelRepo.Promote(ctx, postgres.LabelKindServiceCategory, label); err != nil {
			logger.Warn("Failed to promote custom service category",
				zap.String("value", label),
				zap.Error(err))
		}
	}
}

// DeleteProfile removes a provider profile. Only the owner or an admin may
// delete.
func (s *ServiceProviderService) DeleteProfile(ctx context.Context, user *models.User, id int64) error {
	existing, err := s.providerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !user.CanEdit(existing.OwnerID) {
		return apperrors.AccessDeniedError("only the profile owner may delete it")
	}

	if err := s.providerRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("Service provider profile deleted",
		zap.Int64("provider_id", id),
		zap.String("deleted_by", user.ID))
	return nil
}

// GetProfile fetches a provider profile by ID.
func (s *ServiceProviderService) GetProfile(ctx context.Context, id int64) (*models.ServiceProvider, error) {
	return s.providerRepo.GetByID(ctx, id)
}

// GetProfileBySlug fetches a provider profile by slug.
func (s *ServiceProviderService) GetProfileBySlug(ctx context.Context, slug string) (*models.ServiceProvider, error) {
	return s.providerRepo.GetBySlug(ctx, slug)
}

// ListProfiles fetches all provider profiles.
func (s *ServiceProviderService) ListProfiles(ctx context.Context) ([]*models.ServiceProvider, error) {
	return s.providerRepo.GetAll(ctx)
}
