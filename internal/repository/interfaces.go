package repository

import (
	"context"

	"github.com/cpghub/cpghub-api/internal/models"
)

// BrandStore defines the database operations backing the brand repository.
// Implemented by the postgres client.
type BrandStore interface {
	CreateBrand(ctx context.Context, brand *models.Brand) (*models.Brand, error)
	GetBrandByID(ctx context.Context, id int64) (*models.Brand, error)
	GetBrandBySlug(ctx context.Context, slug string) (*models.Brand, error)
	GetBrandByOwner(ctx context.Context, ownerID string) (*models.Brand, error)
	ListBrands(ctx context.Context) ([]*models.Brand, error)
	UpdateBrand(ctx context.Context, brand *models.Brand) (*models.Brand, error)
	DeleteBrand(ctx context.Context, id int64) error
}

// JobStore defines the database operations backing the job repository.
type JobStore interface {
	CreateJobPosting(ctx context.Context, job *models.JobPosting) (*models.JobPosting, error)
	GetJobPostingByID(ctx context.Context, id int64) (*models.JobPosting, error)
	GetJobPostingBySlug(ctx context.Context, slug string) (*models.JobPosting, error)
	ListJobPostings(ctx context.Context, filter models.JobFilterOptions) ([]*models.JobPosting, error)
	UpdateJobPosting(ctx context.Context, job *models.JobPosting) (*models.JobPosting, error)
	SetJobPostingOpen(ctx context.Context, id int64, open bool) error
	DeleteJobPosting(ctx context.Context, id int64) error
	SaveJobPosting(ctx context.Context, userID string, jobID int64) error
	UnsaveJobPosting(ctx context.Context, userID string, jobID int64) error
	ListSavedJobPostings(ctx context.Context, userID string) ([]*models.JobPosting, error)
}

// TalentStore defines the database operations backing the talent repository.
type TalentStore interface {
	CreateTalent(ctx context.Context, talent *models.Talent) (*models.Talent, error)
	GetTalentByID(ctx context.Context, id int64) (*models.Talent, error)
	GetTalentByOwner(ctx context.Context, ownerID string) (*models.Talent, error)
	ListTalents(ctx context.Context) ([]*models.Talent, error)
	UpdateTalent(ctx context.Context, talent *models.Talent) (*models.Talent, error)
	DeleteTalent(ctx context.Context, id int64) error
}

// ServiceProviderStore defines the database operations backing the
// service-provider repository.
type ServiceProviderStore interface {
	CreateServiceProvider(ctx context.Context, provider *models.ServiceProvider) (*models.ServiceProvider, error)
	GetServiceProviderByID(ctx context.Context, id int64) (*models.ServiceProvider, error)
	GetServiceProviderBySlug(ctx context.Context, slug string) (*models.ServiceProvider, error)
	GetServiceProviderByOwner(ctx context.Context, ownerID string) (*models.ServiceProvider, error)
	ListServiceProviders(ctx context.Context) ([]*models.ServiceProvider, error)
	UpdateServiceProvider(ctx context.Context, provider *models.ServiceProvider) (*models.ServiceProvider, error)
	DeleteServiceProvider(ctx context.Context, id int64) error
}

// UserStore defines the database operations backing the identity repository.
type UserStore interface {
	UpsertUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserRoles(ctx context.Context, userID string) (models.RoleSet, error)
	AddUserRole(ctx context.Context, userID string, role models.Role) error
}

// LabelStore defines the database operations backing the label repository.
type LabelStore interface {
	ListLabels(ctx context.Context, kind string) ([]string, error)
	AddLabel(ctx context.Context, kind, value string) error
}
