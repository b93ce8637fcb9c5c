package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/cpghub/cpghub-api/internal/models"
	"github.com/cpghub/cpghub-api/pkg/storage"
)

// MockBrandRepository is a mock implementation of BrandRepositoryInterface
type MockBrandRepository struct {
	mock.Mock
}

func (m *MockBrandRepository) Create(ctx context.Context, brand *models.Brand) (*models.Brand, error) {
	args := m.Called(ctx, brand)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Brand), args.Error(1)
}

func (m *MockBrandRepository) GetByID(ctx context.Context, id int64) (*models.Brand, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Brand), args.Error(1)
}

func (m *MockBrandRepository) GetBySlug(ctx context.Context, slug string) (*models.Brand, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Brand), args.Error(1)
}

func (m *MockBrandRepository) GetByOwner(ctx context.Context, ownerID string) (*models.Brand, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Brand), args.Error(1)
}

func (m *MockBrandRepository) GetAll(ctx context.Context) ([]*models.Brand, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Brand), args.Error(1)
}

func (m *MockBrandRepository) Update(ctx context.Context, brand *models.Brand) (*models.Brand, error) {
	args := m.Called(ctx, brand)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Brand), args.Error(1)
}

func (m *MockBrandRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockJobRepository is a mock implementation of JobRepositoryInterface
type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) Create(ctx context.Context, job *models.JobPosting) (*models.JobPosting, error) {
	args := m.Called(ctx, job)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JobPosting), args.Error(1)
}

func (m *MockJobRepository) GetByID(ctx context.Context, id int64) (*models.JobPosting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JobPosting), args.Error(1)
}

func (m *MockJobRepository) GetBySlug(ctx context.Context, slug string) (*models.JobPosting, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JobPosting), args.Error(1)
}

func (m *MockJobRepository) GetAll(ctx context.Context, filter models.JobFilterOptions) ([]*models.JobPosting, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.JobPosting), args.Error(1)
}

func (m *MockJobRepository) Update(ctx context.Context, job *models.JobPosting) (*models.JobPosting, error) {
	args := m.Called(ctx, job)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JobPosting), args.Error(1)
}

func (m *MockJobRepository) SetOpen(ctx context.Context, id int64, open bool) error {
	args := m.Called(ctx, id, open)
	return args.Error(0)
}

func (m *MockJobRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockJobRepository) SaveForUser(ctx context.Context, userID string, jobID int64) error {
	args := m.Called(ctx, userID, jobID)
	return args.Error(0)
}

func (m *MockJobRepository) UnsaveForUser(ctx context.Context, userID string, jobID int64) error {
	args := m.Called(ctx, userID, jobID)
	return args.Error(0)
}

func (m *MockJobRepository) GetSavedForUser(ctx context.Context, userID string) ([]*models.JobPosting, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.JobPosting), args.Error(1)
}

// MockTalentRepository is a mock implementation of TalentRepositoryInterface
type MockTalentRepository struct {
	mock.Mock
}

func (m *MockTalentRepository) Create(ctx context.Context, talent *models.Talent) (*models.Talent, error) {
	args := m.Called(ctx, talent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Talent), args.Error(1)
}

func (m *MockTalentRepository) GetByID(ctx context.Context, id int64) (*models.Talent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Talent), args.Error(1)
}

func (m *MockTalentRepository) GetByOwner(ctx context.Context, ownerID string) (*models.Talent, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Talent), args.Error(1)
}

func (m *MockTalentRepository) GetAll(ctx context.Context) ([]*models.Talent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Talent), args.Error(1)
}

func (m *MockTalentRepository) Update(ctx context.Context, talent *models.Talent) (*models.Talent, error) {
	args := m.Called(ctx, talent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Talent), args.Error(1)
}

func (m *MockTalentRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockServiceProviderRepository is a mock implementation of
// ServiceProviderRepositoryInterface
type MockServiceProviderRepository struct {
	mock.Mock
}

func (m *MockServiceProviderRepository) Create(ctx context.Context, provider *models.ServiceProvider) (*models.ServiceProvider, error) {
	args := m.Called(ctx, provider)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceProvider), args.Error(1)
}

func (m *MockServiceProviderRepository) GetByID(ctx context.Context, id int64) (*models.ServiceProvider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceProvider), args.Error(1)
}

func (m *MockServiceProviderRepository) GetBySlug(ctx context.Context, slug string) (*models.ServiceProvider, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceProvider), args.Error(1)
}

func (m *MockServiceProviderRepository) GetByOwner(ctx context.Context, ownerID string) (*models.ServiceProvider, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceProvider), args.Error(1)
}

func (m *MockServiceProviderRepository) GetAll(ctx context.Context) ([]*models.ServiceProvider, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ServiceProvider), args.Error(1)
}

func (m *MockServiceProviderRepository) Update(ctx context.Context, provider *models.ServiceProvider) (*models.ServiceProvider, error) {
	args := m.Called(ctx, provider)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceProvider), args.Error(1)
}

func (m *MockServiceProviderRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockIdentityRepository is a mock implementation of IdentityRepositoryInterface
type MockIdentityRepository struct {
	mock.Mock
}

func (m *MockIdentityRepository) Upsert(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockIdentityRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockIdentityRepository) GetRoles(ctx context.Context, userID string) (models.RoleSet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.RoleSet), args.Error(1)
}

func (m *MockIdentityRepository) GrantRole(ctx context.Context, userID string, role models.Role) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

// MockLabelRepository is a mock implementation of LabelRepositoryInterface
type MockLabelRepository struct {
	mock.Mock
}

func (m *MockLabelRepository) GetOptions(ctx context.Context, kind string) ([]string, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockLabelRepository) Promote(ctx context.Context, kind, value string) error {
	args := m.Called(ctx, kind, value)
	return args.Error(0)
}

// MockUploader is a mock implementation of the Uploader interface
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, kind storage.Kind, data, fileName, contentType string) (string, error) {
	args := m.Called(ctx, kind, data, fileName, contentType)
	return args.String(0), args.Error(1)
}
