package repository

import (
	"context"

	"github.com/cpghub/cpghub-api/internal/models"
)

// BrandRepositoryInterface defines the interface for brand data access.
type BrandRepositoryInterface interface {
	Create(ctx context.Context, brand *models.Brand) (*models.Brand, error)
	GetByID(ctx context.Context, id int64) (*models.Brand, error)
	GetBySlug(ctx context.Context, slug string) (*models.Brand, error)
	GetByOwner(ctx context.Context, ownerID string) (*models.Brand, error)
	GetAll(ctx context.Context) ([]*models.Brand, error)
	Update(ctx context.Context, brand *models.Brand) (*models.Brand, error)
	Delete(ctx context.Context, id int64) error
}

// BrandRepository handles brand data access
type BrandRepository struct {
	store BrandStore
}

// NewBrandRepository creates a new brand repository
func NewBrandRepository(store BrandStore) BrandRepositoryInterface {
	return &BrandRepository{store: store}
}

func (r *BrandRepository) Create(ctx context.Context, brand *models.Brand) (*models.Brand, error) {
	return r.store.CreateBrand(ctx, brand)
}

func (r *BrandRepository) GetByID(ctx context.Context, id int64) (*models.Brand, error) {
	return r.store.GetBrandByID(ctx, id)
}

func (r *BrandRepository) GetBySlug(ctx context.Context, slug string) (*models.Brand, error) {
	return r.store.GetBrandBySlug(ctx, slug)
}

func (r *BrandRepository) GetByOwner(ctx context.Context, ownerID string) (*models.Brand, error) {
	return r.store.GetBrandByOwner(ctx, ownerID)
}

func (r *BrandRepository) GetAll(ctx context.Context) ([]*models.Brand, error) {
	return r.store.ListBrands(ctx)
}

func (r *BrandRepository) Update(ctx context.Context, brand *models.Brand) (*models.Brand, error) {
	return r.store.UpdateBrand(ctx, brand)
}

func (r *BrandRepository) Delete(ctx context.Context, id int64) error {
	return r.store.DeleteBrand(ctx, id)
}
