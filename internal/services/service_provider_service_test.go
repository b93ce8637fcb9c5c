package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/cpghub/cpghub-api/config"
	"github.com/cpghub/cpghub-api/internal/database/postgres"
	"github.com/cpghub/cpghub-api/internal/models"
	"github.com/cpghub/cpghub-api/internal/services"
)

func TestServiceProviderService_SubmitProfile(t *testing.T) {
	mockProviderRepo := new(MockServiceProviderRepository)
	mockIdentityRepo := new(MockIdentityRepository)
	mockLabelRepo := new(MockLabelRepository)
	mockUploader := new(MockUploader)

	service := services.NewServiceProviderService(mockProviderRepo, mockIdentityRepo,
		mockLabelRepo, mockUploader, &config.Config{}, nil)
	ctx := context.Background()

	user := &models.User{ID: "user-1", Name: "Jordan", Email: "jordan@example.com"}
	req := &models.ServiceProviderRequest{
		CompanyName:          "Shelf Velocity Partners",
		AreaOfSpecialization: "Retail execution",
		CategoryOfService:    []string{"Broker"},
		BrokerServiceTypes:   []string{"Retail Broker"},
		MarketsCovered:       []string{"Northeast"},
	}

	created := &models.ServiceProvider{ID: 11, OwnerID: "user-1", CompanyName: "Shelf Velocity Partners"}
	withSlug := &models.ServiceProvider{ID: 11, OwnerID: "user-1", CompanyName: "Shelf Velocity Partners", Slug: "shelf-velocity-partners-11"}

	mockProviderRepo.On("Create", ctx, mock.MatchedBy(func(p *models.ServiceProvider) bool {
		return p.OwnerID == "user-1" && len(p.BrokerServiceTypes) == 1
	})).Return(created, nil).Once()
	mockProviderRepo.On("Update", ctx, mock.MatchedBy(func(p *models.ServiceProvider) bool {
		return p.ID == 11 && p.Slug == "shelf-velocity-partners-11"
	})).Return(withSlug, nil).Once()
	mockIdentityRepo.On("GrantRole", ctx, "user-1", models.RoleService).Return(nil).Once()

	resp, err := service.SubmitProfile(ctx, user, req)
	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, int64(11), resp.ProviderID)
	assert.Equal(t, "shelf-velocity-partners-11", resp.Slug)

	mockProviderRepo.AssertExpectations(t)
	mockIdentityRepo.AssertExpectations(t)
	mockLabelRepo.AssertNotCalled(t, "Promote")
}

func TestServiceProviderService_SubmitProfile_PromotesCustomCategory(t *testing.T) {
	mockProviderRepo := new(MockServiceProviderRepository)
	mockIdentityRepo := new(MockIdentityRepository)
	mockLabelRepo := new(MockLabelRepository)
	mockUploader := new(MockUploader)

	service := services.NewServiceProviderService(mockProviderRepo, mockIdentityRepo,
		mockLabelRepo, mockUploader, &config.Config{}, nil)
	ctx := context.Background()

	user := &models.User{ID: "user-1", Name: "Jordan"}
	req := &models.ServiceProviderRequest{
		CompanyName:          "Label Lab",
		AreaOfSpecialization: "Packaging",
		CategoryOfService:    []string{"Design", "regulatory compliance"},
	}

	created := &models.ServiceProvider{ID: 12, OwnerID: "user-1", CompanyName: "Label Lab"}
	withSlug := &models.ServiceProvider{ID: 12, OwnerID: "user-1", CompanyName: "Label Lab", Slug: "label-lab-12"}

	mockLabelRepo.On("Promote", ctx, postgres.LabelKindServiceCategory, "Regulatory Compliance").Return(nil).Once()
	mockProviderRepo.On("Create", ctx, mock.AnythingOfType("*models.ServiceProvider")).Return(created, nil).Once()
	mockProviderRepo.On("Update", ctx, mock.AnythingOfType("*models.ServiceProvider")).Return(withSlug, nil).Once()
	mockIdentityRepo.On("GrantRole", ctx, "user-1", models.RoleService).Return(nil).Once()

	resp, err := service.SubmitProfile(ctx, user, req)
	assert.NoError(t, err)
	assert.True(t, resp.Success)

	mockLabelRepo.AssertExpectations(t)
}

func TestServiceProviderService_SubmitProfile_DropsStaleConditionalFields(t *testing.T) {
	mockProviderRepo := new(MockServiceProviderRepository)
	mockIdentityRepo := new(MockIdentityRepository)
	mockLabelRepo := new(MockLabelRepository)
	mockUploader := new(MockUploader)

	service := services.NewServiceProviderService(mockProviderRepo, mockIdentityRepo,
		mockLabelRepo, mockUploader, &config.Config{}, nil)
	ctx := context.Background()

	user := &models.User{ID: "user-1", Name: "Jordan"}

	// Broker types linger in the payload from before the category was
	// deselected; Normalize must clear them before the row is written.
	req := &models.ServiceProviderRequest{
		CompanyName:          "Label Lab",
		AreaOfSpecialization: "Packaging",
		CategoryOfService:    []string{"Design"},
		BrokerServiceTypes:   []string{"Retail Broker"},
		MarketsCovered:       []string{"Northeast"},
	}

	created := &models.ServiceProvider{ID: 12, OwnerID: "user-1", CompanyName: "Label Lab"}
	withSlug := &models.ServiceProvider{ID: 12, OwnerID: "user-1", CompanyName: "Label Lab", Slug: "label-lab-12"}

	mockProviderRepo.On("Create", ctx, mock.MatchedBy(func(p *models.ServiceProvider) bool {
		return p.BrokerServiceTypes == nil && p.MarketsCovered == nil
	})).Return(created, nil).Once()
	mockProviderRepo.On("Update", ctx, mock.AnythingOfType("*models.ServiceProvider")).Return(withSlug, nil).Once()
	mockIdentityRepo.On("GrantRole", ctx, "user-1", models.RoleService).Return(nil).Once()

	resp, err := service.SubmitProfile(ctx, user, req)
	assert.NoError(t, err)
	assert.True(t, resp.Success)

	mockProviderRepo.AssertExpectations(t)
}
