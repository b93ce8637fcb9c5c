package repository

import (
	"context"

	"github.com/cpghub/cpghub-api/internal/models"
)

// TalentRepositoryInterface defines the interface for talent data access.
type TalentRepositoryInterface interface {
	Create(ctx context.Context, talent *models.Talent) (*models.Talent, error)
	GetByID(ctx context.Context, id int64) (*models.Talent, error)
	GetByOwner(ctx context.Context, ownerID string) (*models.Talent, error)
	GetAll(ctx context.Context) ([]*models.Talent, error)
	Update(ctx context.Context, talent *models.Talent) (*models.Talent, error)
	Delete(ctx context.Context, id int64) error
}

// TalentRepository handles talent data access
type TalentRepository struct {
	store TalentStore
}

// NewTalentRepository creates a new talent repository
func NewTalentRepository(store TalentStore) TalentRepositoryInterface {
	return &TalentRepository{store: store}
}

func (r *TalentRepository) Create(ctx context.Context, talent *models.Talent) (*models.Talent, error) {
	return r.store.CreateTalent(ctx, talent)
}

func (r *TalentRepository) GetByID(ctx context.Context, id int64) (*models.Talent, error) {
	return r.store.GetTalentByID(ctx, id)
}

func (r *TalentRepository) GetByOwner(ctx context.Context, ownerID string) (*models.Talent, error) {
	return r.store.GetTalentByOwner(ctx, ownerID)
}

func (r *TalentRepository) GetAll(ctx context.Context) ([]*models.Talent, error) {
	return r.store.ListTalents(ctx)
}

func (r *TalentRepository) Update(ctx context.Context, talent *models.Talent) (*models.Talent, error) {
	return r.store.UpdateTalent(ctx, talent)
}

func (r *TalentRepository) Delete(ctx context.Context, id int64) error {
	return r.store.DeleteTalent(ctx, id)
}
