package repository

import (
	"context"

	"github.com/cpghub/cpghub-api/internal/models"
)

// IdentityRepositoryInterface defines the interface for user identity and
// role-flag persistence. Role additions are add-only; nothing here removes
// a role once granted.
type IdentityRepositoryInterface interface {
	Upsert(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetRoles(ctx context.Context, userID string) (models.RoleSet, error)
	GrantRole(ctx context.Context, userID string, role models.Role) error
}

// IdentityRepository handles user identity data access
type IdentityRepository struct {
	store UserStore
}

// NewIdentityRepository creates a new identity repository
func NewIdentityRepository(store UserStore) IdentityRepositoryInterface {
	return &IdentityRepository{store: store}
}

func (r *IdentityRepository) Upsert(ctx context.Context, user *models.User) (*models.User, error) {
	return r.store.UpsertUser(ctx, user)
}

func (r *IdentityRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.store.GetUserByID(ctx, id)
}

func (r *IdentityRepository) GetRoles(ctx context.Context, userID string) (models.RoleSet, error) {
	return r.store.GetUserRoles(ctx, userID)
}

func (r *IdentityRepository) GrantRole(ctx context.Context, userID string, role models.Role) error {
	return r.store.AddUserRole(ctx, userID, role)
}
