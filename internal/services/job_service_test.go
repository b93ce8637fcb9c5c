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
	apperrors "github.com/cpghub/cpghub-api/pkg/errors"
)

func newJobService(jobRepo *MockJobRepository, brandRepo *MockBrandRepository,
	identityRepo *MockIdentityRepository, labelRepo *MockLabelRepository,
	uploader *MockUploader) *services.JobService {
	return services.NewJobService(jobRepo, brandRepo, identityRepo, labelRepo,
		uploader, &config.Config{}, nil)
}

func baseJobRequest() *models.JobPostingRequest {
	return &models.JobPostingRequest{
		Title:                "Fractional Sales Lead",
		PreferredExperience:  "Regional grocery experience",
		LevelOfExperience:    []string{"Senior"},
		AreaOfSpecialization: []string{"Sales"},
		WorkLocation:         "Remote",
		ScopeOfWork:          "Ongoing",
		BrandSelection:       models.BrandSelectionNone,
	}
}

func TestJobService_SubmitJobPosting_NoBrand(t *testing.T) {
	mockJobRepo := new(MockJobRepository)
	mockBrandRepo := new(MockBrandRepository)
	mockIdentityRepo := new(MockIdentityRepository)
	mockLabelRepo := new(MockLabelRepository)
	mockUploader := new(MockUploader)

	service := newJobService(mockJobRepo, mockBrandRepo, mockIdentityRepo, mockLabelRepo, mockUploader)
	ctx := context.Background()

	user := &models.User{ID: "user-1", Name: "Jordan", Email: "jordan@example.com", ImageURL: "https://img.example.com/jordan.png"}
	req := baseJobRequest()
	req.PosterLocation = "  Austin, TX "

	created := &models.JobPosting{ID: 7, OwnerID: "user-1", Title: "Fractional Sales Lead", PosterName: "Jordan"}
	withSlug := &models.JobPosting{ID: 7, OwnerID: "user-1", Title: "Fractional Sales Lead", Slug: "fractional-sales-lead-7", PosterName: "Jordan"}

	mockJobRepo.On("Create", ctx, mock.MatchedBy(func(j *models.JobPosting) bool {
		return j.PosterName == "Jordan" && j.PosterLogoURL == "https://img.example.com/jordan.png" &&
			j.PosterLocation == "Austin, TX" && j.BrandID == nil && j.IsOpen
	})).Return(created, nil).Once()
	mockJobRepo.On("Update", ctx, mock.MatchedBy(func(j *models.JobPosting) bool {
		return j.ID == 7 && j.Slug == "fractional-sales-lead-7"
	})).Return(withSlug, nil).Once()

	resp, err := service.SubmitJobPosting(ctx, user, req)
	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, int64(7), resp.JobID)
	assert.Equal(t, "fractional-sales-lead-7", resp.Slug)
	assert.Nil(t, resp.BrandID)

	mockJobRepo.AssertExpectations(t)
	mockBrandRepo.AssertNotCalled(t, "GetByID")
	mockBrandRepo.AssertNotCalled(t, "Create")
}

func TestJobService_SubmitJobPosting_ExistingBrandMissing(t *testing.T) {
	mockJobRepo := new(MockJobRepository)
	mockBrandRepo := new(MockBrandRepository)
	mockIdentityRepo := new(MockIdentityRepository)
	mockLabelRepo := new(MockLabelRepository)
	mockUploader := new(MockUploader)

	service := newJobService(mockJobRepo, mockBrandRepo, mockIdentityRepo, mockLabelRepo, mockUploader)
	ctx := context.Background()

	user := &models.User{ID: "user-1", Name: "Jordan"}
	brandID := int64(99)
	req := baseJobRequest()
	req.BrandSelection = models.BrandSelectionExisting
	req.BrandID = &brandID

	mockBrandRepo.On("GetByID", ctx, int64(99)).Return(nil, apperrors.NotFoundError("brand")).Once()

	resp, err := service.SubmitJobPosting(ctx, user, req)
	assert.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Selected brand does not exist", resp.Error)

	mockJobRepo.AssertNotCalled(t, "Create")
}

func TestJobService_SubmitJobPosting_NewBrand(t *testing.T) {
	mockJobRepo := new(MockJobRepository)
	mockBrandRepo := new(MockBrandRepository)
	mockIdentityRepo := new(MockIdentityRepository)
	mockLabelRepo := new(MockLabelRepository)
	mockUploader := new(MockUploader)

	service := newJobService(mockJobRepo, mockBrandRepo, mockIdentityRepo, mockLabelRepo, mockUploader)
	ctx := context.Background()

	user := &models.User{ID: "user-1", Name: "Jordan", Email: "jordan@example.com"}
	req := baseJobRequest()
	req.BrandSelection = models.BrandSelectionNew
	req.BrandName = "Crunch Works"
	req.BrandWebsite = "crunchworks.example.com"
	req.BrandLogo = &models.Upload{Data: "aGVsbG8=", FileName: "logo.png", ContentType: "image/png"}

	createdBrand := &models.Brand{ID: 5, OwnerID: "user-1", Name: "Crunch Works"}
	brandWithSlug := &models.Brand{ID: 5, OwnerID: "user-1", Name: "Crunch Works", Slug: "crunch-works-5"}
	createdJob := &models.JobPosting{ID: 8, OwnerID: "user-1", Title: "Fractional Sales Lead"}
	jobWithSlug := &models.JobPosting{ID: 8, OwnerID: "user-1", Title: "Fractional Sales Lead", Slug: "fractional-sales-lead-8"}

	mockUploader.On("Upload", ctx, mock.Anything, "aGVsbG8=", "logo.png", "image/png").
		Return("https://storage.example.com/logo/abc.png", nil).Once()
	mockBrandRepo.On("Create", ctx, mock.MatchedBy(func(b *models.Brand) bool {
		return b.Name == "Crunch Works" && b.OwnerID == "user-1" && b.LogoURL != ""
	})).Return(createdBrand, nil).Once()
	mockBrandRepo.On("Update", ctx, mock.AnythingOfType("*models.Brand")).Return(brandWithSlug, nil).Once()
	mockIdentityRepo.On("GrantRole", ctx, "user-1", models.RoleBrand).Return(nil).Once()
	mockJobRepo.On("Create", ctx, mock.MatchedBy(func(j *models.JobPosting) bool {
		return j.BrandID != nil && *j.BrandID == 5
	})).Return(createdJob, nil).Once()
	mockJobRepo.On("Update", ctx, mock.AnythingOfType("*models.JobPosting")).Return(jobWithSlug, nil).Once()

	resp, err := service.SubmitJobPosting(ctx, user, req)
	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, int64(8), resp.JobID)

	mockBrandRepo.AssertExpectations(t)
	mockJobRepo.AssertExpectations(t)
	mockIdentityRepo.AssertExpectations(t)
	mockUploader.AssertExpectations(t)
}

func TestJobService_SubmitJobPosting_PromotesCustomSpecialization(t *testing.T) {
	mockJobRepo := new(MockJobRepository)
	mockBrandRepo := new(MockBrandRepository)
	mockIdentityRepo := new(MockIdentityRepository)
	mockLabelRepo := new(MockLabelRepository)
	mockUploader := new(MockUploader)

	service := newJobService(mockJobRepo, mockBrandRepo, mockIdentityRepo, mockLabelRepo, mockUploader)
	ctx := context.Background()

	user := &models.User{ID: "user-1", Name: "Jordan"}
	req := baseJobRequest()
	req.AreaOfSpecialization = []string{"Sales", "cold chain logistics"}

	created := &models.JobPosting{ID: 9, OwnerID: "user-1", Title: "Fractional Sales Lead"}
	withSlug := &models.JobPosting{ID: 9, OwnerID: "user-1", Title: "Fractional Sales Lead", Slug: "fractional-sales-lead-9"}

	mockLabelRepo.On("Promote", ctx, postgres.LabelKindSpecialization, "Cold Chain Logistics").Return(nil).Once()
	mockJobRepo.On("Create", ctx, mock.AnythingOfType("*models.JobPosting")).Return(created, nil).Once()
	mockJobRepo.On("Update", ctx, mock.AnythingOfType("*models.JobPosting")).Return(withSlug, nil).Once()

	resp, err := service.SubmitJobPosting(ctx, user, req)
	assert.NoError(t, err)
	assert.True(t, resp.Success)

	mockLabelRepo.AssertExpectations(t)
	mockLabelRepo.AssertNotCalled(t, "Promote", ctx, postgres.LabelKindSpecialization, "Sales")
}

func TestJobService_SetJobPostingOpen_NotOwner(t *testing.T) {
	mockJobRepo := new(MockJobRepository)
	mockBrandRepo := new(MockBrandRepository)
	mockIdentityRepo := new(MockIdentityRepository)
	mockLabelRepo := new(MockLabelRepository)
	mockUploader := new(MockUploader)

	service := newJobService(mockJobRepo, mockBrandRepo, mockIdentityRepo, mockLabelRepo, mockUploader)
	ctx := context.Background()

	user := &models.User{ID: "user-2"}
	job := &models.JobPosting{ID: 7, OwnerID: "user-1", IsOpen: true}

	mockJobRepo.On("GetByID", ctx, int64(7)).Return(job, nil).Once()

	err := service.SetJobPostingOpen(ctx, user, 7, false)
	assert.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrAccessDenied))

	mockJobRepo.AssertNotCalled(t, "SetOpen")
}

func TestJobService_SetJobPostingOpen_Owner(t *testing.T) {
	mockJobRepo := new(MockJobRepository)
	mockBrandRepo := new(MockBrandRepository)
	mockIdentityRepo := new(MockIdentityRepository)
	mockLabelRepo := new(MockLabelRepository)
	mockUploader := new(MockUploader)

	service := newJobService(mockJobRepo, mockBrandRepo, mockIdentityRepo, mockLabelRepo, mockUploader)
	ctx := context.Background()

	user := &models.User{ID: "user-1"}
	job := &models.JobPosting{ID: 7, OwnerID: "user-1", IsOpen: true}

	mockJobRepo.On("GetByID", ctx, int64(7)).Return(job, nil).Once()
	mockJobRepo.On("SetOpen", ctx, int64(7), false).Return(nil).Once()

	err := service.SetJobPostingOpen(ctx, user, 7, false)
	assert.NoError(t, err)

	mockJobRepo.AssertExpectations(t)
}

func TestJobService_DeleteJobPosting_NotOwner(t *testing.T) {
	mockJobRepo := new(MockJobRepository)
	mockBrandRepo := new(MockBrandRepository)
	mockIdentityRepo := new(MockIdentityRepository)
	mockLabelRepo := new(MockLabelRepository)
	mockUploader := new(MockUploader)

	service := newJobService(mockJobRepo, mockBrandRepo, mockIdentityRepo, mockLabelRepo, mockUploader)
	ctx := context.Background()

	user := &models.User{ID: "user-2"}
	job := &models.JobPosting{ID: 7, OwnerID: "user-1"}

	mockJobRepo.On("GetByID", ctx, int64(7)).Return(job, nil).Once()

	err := service.DeleteJobPosting(ctx, user, 7)
	assert.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrAccessDenied))

	mockJobRepo.AssertNotCalled(t, "Delete")
}

func TestJobService_DeleteJobPosting_AdminOverride(t *testing.T) {
	mockJobRepo := new(MockJobRepository)
	mockBrandRepo := new(MockBrandRepository)
	mockIdentityRepo := new(MockIdentityRepository)
	mockLabelRepo := new(MockLabelRepository)
	mockUploader := new(MockUploader)

	service := newJobService(mockJobRepo, mockBrandRepo, mockIdentityRepo, mockLabelRepo, mockUploader)
	ctx := context.Background()

	admin := &models.User{ID: "admin-1", IsAdmin: true}
	job := &models.JobPosting{ID: 7, OwnerID: "user-1"}

	mockJobRepo.On("GetByID", ctx, int64(7)).Return(job, nil).Once()
	mockJobRepo.On("Delete", ctx, int64(7)).Return(nil).Once()

	err := service.DeleteJobPosting(ctx, admin, 7)
	assert.NoError(t, err)

	mockJobRepo.AssertExpectations(t)
}

func TestJobService_SaveJob_MissingPosting(t *testing.T) {
	mockJobRepo := new(MockJobRepository)
	mockBrandRepo := new(MockBrandRepository)
	mockIdentityRepo := new(MockIdentityRepository)
	mockLabelRepo := new(MockLabelRepository)
	mockUploader := new(MockUploader)

	service := newJobService(mockJobRepo, mockBrandRepo, mockIdentityRepo, mockLabelRepo, mockUploader)
	ctx := context.Background()

	user := &models.User{ID: "user-1"}

	mockJobRepo.On("GetByID", ctx, int64(99)).Return(nil, apperrors.NotFoundError("job posting")).Once()

	err := service.SaveJob(ctx, user, 99)
	assert.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))

	mockJobRepo.AssertNotCalled(t, "SaveForUser")
}

func TestJobService_SaveAndListSavedJobs(t *testing.T) {
	mockJobRepo := new(MockJobRepository)
	mockBrandRepo := new(MockBrandRepository)
	mockIdentityRepo := new(MockIdentityRepository)
	mockLabelRepo := new(MockLabelRepository)
	mockUploader := new(MockUploader)

	service := newJobService(mockJobRepo, mockBrandRepo, mockIdentityRepo, mockLabelRepo, mockUploader)
	ctx := context.Background()

	user := &models.User{ID: "user-1"}
	job := &models.JobPosting{ID: 7, OwnerID: "user-9", Title: "Fractional Sales Lead"}

	mockJobRepo.On("GetByID", ctx, int64(7)).Return(job, nil).Once()
	mockJobRepo.On("SaveForUser", ctx, "user-1", int64(7)).Return(nil).Once()
	mockJobRepo.On("GetSavedForUser", ctx, "user-1").Return([]*models.JobPosting{job}, nil).Once()

	assert.NoError(t, service.SaveJob(ctx, user, 7))

	saved, err := service.ListSavedJobs(ctx, user)
	assert.NoError(t, err)
	assert.Len(t, saved, 1)
	assert.Equal(t, int64(7), saved[0].ID)

	mockJobRepo.AssertExpectations(t)
}
