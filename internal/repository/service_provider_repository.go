package repository

import (
	"context"

	"github.com/cpghub/cpghub-api/internal/models"
)

// ServiceProviderRepositoryInterface defines the interface for
// service-provider data access.
type ServiceProviderRepositoryInterface interface {
	Create(ctx context.Context, provider *models.ServiceProvider) (*models.ServiceProvider, error)
	GetByID(ctx context.Context, id int64) (*models.ServiceProvider, error)
	GetBySlug(ctx context.Context, slug string) (*models.ServiceProvider, error)
	GetByOwner(ctx context.Context, ownerID string) (*models.ServiceProvider, error)
	GetAll(ctx context.Context) ([]*models.ServiceProvider, error)
	Update(ctx context.Context, provider *models.ServiceProvider) (*models.ServiceProvider, error)
	Delete(ctx context.Context, id int64) error
}

// ServiceProviderRepository handles service-provider data access
type ServiceProviderRepository struct {
	store ServiceProviderStore
}

// NewServiceProviderRepository creates a new service-provider repository
func NewServiceProviderRepository(store ServiceProviderStore) ServiceProviderRepositoryInterface {
	return &ServiceProviderRepository{store: store}
}

func (r *ServiceProviderRepository) Create(ctx context.Context, provider *models.ServiceProvider) (*models.ServiceProvider, error) {
	return r.store.CreateServiceProvider(ctx, provider)
}

func (r *ServiceProviderRepository) GetByID(ctx context.Context, id int64) (*models.ServiceProvider, error) {
	return r.store.GetServiceProviderByID(ctx, id)
}

func (r *ServiceProviderRepository) GetBySlug(ctx context.Context, slug string) (*models.ServiceProvider, error) {
	return r.store.GetServiceProviderBySlug(ctx, slug)
}

func (r *ServiceProviderRepository) GetByOwner(ctx context.Context, ownerID string) (*models.ServiceProvider, error) {
	return r.store.GetServiceProviderByOwner(ctx, ownerID)
}

func (r *ServiceProviderRepository) GetAll(ctx context.Context) ([]*models.ServiceProvider, error) {
	return r.store.ListServiceProviders(ctx)
}

func (r *ServiceProviderRepository) Update(ctx context.Context, provider *models.ServiceProvider) (*models.ServiceProvider, error) {
	return r.store.UpdateServiceProvider(ctx, provider)
}

func (r *ServiceProviderRepository) Delete(ctx context.Context, id int64) error {
	return r.store.DeleteServiceProvider(ctx, id)
}
