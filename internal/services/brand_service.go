package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/cpghub/cpghub-api/config"
	"github.com/cpghub/cpghub-api/internal/models"
	"github.com/cpghub/cpghub-api/internal/repository"
	apperrors "github.com/cpghub/cpghub-api/pkg/errors"
	"github.com/cpghub/cpghub-api/pkg/httpclient"
	"github.com/cpghub/cpghub-api/pkg/logger"
	"github.com/cpghub/cpghub-api/pkg/metrics"
	"github.com/cpghub/cpghub-api/pkg/slug"
	"github.com/cpghub/cpghub-api/pkg/storage"
	"github.com/cpghub/cpghub-api/pkg/trigger"
)

// BrandService handles brand registration and profile management
type BrandService struct {
	brandRepo    repository.BrandRepositoryInterface
	identityRepo repository.IdentityRepositoryInterface
	uploader     Uploader
	config       *config.Config
	httpClient   httpclient.Client
}

// NewBrandService creates a new brand service instance
func NewBrandService(
	brandRepo repository.BrandRepositoryInterface,
	identityRepo repository.IdentityRepositoryInterface,
	uploader Uploader,
	cfg *config.Config,
	httpClient httpclient.Client,
) *BrandService {
	return &BrandService{
		brandRepo:    brandRepo,
		identityRepo: identityRepo,
		uploader:     uploader,
		config:       cfg,
		httpClient:   httpClient,
	}
}

// RegisterBrand creates a brand profile for the signed-in user and grants
// the brand role. The request is assumed to have passed validation.
func (s *BrandService) RegisterBrand(ctx context.Context, user *models.User, req *models.BrandRequest) (*models.BrandResponse, error) {
	req.Normalize()

	logoURL := ""
	if req.Logo.Present() {
		url, err := s.uploader.Upload(ctx, storage.KindLogo, req.Logo.Data, req.Logo.FileName, req.Logo.ContentType)
		if err != nil {
			metrics.BrandRegistrations.WithLabelValues("upload_failed").Inc()
			metrics.FileUploads.WithLabelValues(string(storage.KindLogo), "error").Inc()
			logger.Error("Failed to upload brand logo", zap.Error(err))
			return &models.BrandResponse{
				Success: false,
				Error:   "Failed to upload logo",
			}, nil
		}
		metrics.FileUploads.WithLabelValues(string(storage.KindLogo), "success").Inc()
		logoURL = url
	}

	brand := &models.Brand{
		OwnerID:     user.ID,
		Name:        req.Name,
		Website:     req.Website,
		LinkedInURL: req.LinkedInURL,
		HQ:          req.HQ,
		Description: req.Description,
		LogoURL:     logoURL,
	}

	created, err := s.brandRepo.Create(ctx, brand)
	if err != nil {
		metrics.BrandRegistrations.WithLabelValues("error").Inc()
		logger.Error("Failed to create brand", zap.Error(err))
		return &models.BrandResponse{
			Success: false,
			Error:   "Failed to save brand",
		}, nil
	}

	created.Slug = slug.Generate(created.Name, created.ID)
	created, err = s.brandRepo.Update(ctx, created)
	if err != nil {
		metrics.BrandRegistrations.WithLabelValues("error").Inc()
		logger.Error("Failed to set brand slug", zap.Error(err))
		return &models.BrandResponse{
			Success: false,
			Error:   "Failed to save brand",
		}, nil
	}

	if err := s.identityRepo.GrantRole(ctx, user.ID, models.RoleBrand); err != nil {
		// The brand exists; the role flag catches up on the next grant.
		logger.Error("Failed to grant brand role",
			zap.Error(err),
			zap.String("user_id", user.ID))
	}

	trigger.SendEmailAsync(s.config.EmailTriggers.BrandRegisteredURL, models.EmailPayload{
		From:    user.Email,
		Subject: "New brand registered: " + created.Name,
		Message: "Brand " + created.Name + " was registered by " + user.Name,
		To:      nil,
	}, s.httpClient)

	metrics.BrandRegistrations.WithLabelValues("success").Inc()
	logger.Info("Brand registered",
		zap.Int64("brand_id", created.ID),
		zap.String("slug", created.Slug),
		zap.String("owner_id", user.ID))

	return &models.BrandResponse{
		Success: true,
		BrandID: created.ID,
		Slug:    created.Slug,
	}, nil
}

// UpdateBrand updates an existing brand profile. Only the owner or an admin
// may edit.
func (s *BrandService) UpdateBrand(ctx context.Context, user *models.User, id int64, req *models.BrandRequest) (*models.BrandResponse, error) {
	existing, err := s.brandRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !user.CanEdit(existing.OwnerID) {
		return &models.BrandResponse{
			Success: false,
			Error:   "You do not have permission to edit this brand",
		}, nil
	}

	req.Normalize()

	if req.Logo.Present() {
		url, uploadErr := s.uploader.Upload(ctx, storage.KindLogo, req.Logo.Data, req.Logo.FileName, req.Logo.ContentType)
		if uploadErr != nil {
			metrics.FileUploads.WithLabelValues(string(storage.KindLogo), "error").Inc()
			logger.Error("Failed to upload brand logo", zap.Error(uploadErr))
			return &models.BrandResponse{
				Success: false,
				Error:   "Failed to upload logo",
			}, nil
		}
		metrics.FileUploads.WithLabelValues(string(storage.KindLogo), "success").Inc()
		existing.LogoURL = url
	}

	existing.Name = req.Name
	existing.Website = req.Website
	existing.LinkedInURL = req.LinkedInURL
	existing.HQ = req.HQ
	existing.Description = req.Description

	updated, err := s.brandRepo.Update(ctx, existing)
	if err != nil {
		logger.Error("Failed to update brand", zap.Error(err), zap.Int64("brand_id", id))
		return &models.BrandResponse{
			Success: false,
			Error:   "Failed to save brand",
		}, nil
	}

	return &models.BrandResponse{
		Success: true,
		BrandID: updated.ID,
		Slug:    updated.Slug,
	}, nil
}

// DeleteBrand removes a brand. Only the owner or an admin may delete.
func (s *BrandService) DeleteBrand(ctx context.Context, user *models.User, id int64) error {
	existing, err := s.brandRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !user.CanEdit(existing.OwnerID) {
		return apperrors.AccessDeniedError("only the brand owner may delete it")
	}

	if err := s.brandRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("Brand deleted",
		zap.Int64("brand_id", id),
		zap.String("deleted_by", user.ID))
	return nil
}

// GetBrand fetches a brand by ID.
func (s *BrandService) GetBrand(ctx context.Context, id int64) (*models.Brand, error) {
	return s.brandRepo.GetByID(ctx, id)
}

// GetBrandBySlug fetches a brand by slug.
func (s *BrandService) GetBrandBySlug(ctx context.Context, slug string) (*models.Brand, error) {
	return s.brandRepo.GetBySlug(ctx, slug)
}

// ListBrands fetches all brands.
func (s *BrandService) ListBrands(ctx context.Context) ([]*models.Brand, error) {
	return s.brandRepo.GetAll(ctx)
}
