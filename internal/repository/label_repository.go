package repository

import (
	"context"

	"github.com/cpghub/cpghub-api/internal/cache"
)

// LabelRepositoryInterface defines the interface for label option access.
// Reads come from the in-memory cache; promoting a custom option writes
// through and invalidates the cached list.
type LabelRepositoryInterface interface {
	GetOptions(ctx context.Context, kind string) ([]string, error)
	Promote(ctx context.Context, kind, value string) error
}

// LabelRepository handles label option access
type LabelRepository struct {
	store LabelStore
	cache cache.LabelsCacheInterface
}

// NewLabelRepository creates a new label repository
func NewLabelRepository(store LabelStore, labelsCache cache.LabelsCacheInterface) LabelRepositoryInterface {
	return &LabelRepository{store: store, cache: labelsCache}
}

func (r *LabelRepository) GetOptions(ctx context.Context, kind string) ([]string, error) {
	return r.cache.Get(ctx, kind)
}

func (r *LabelRepository) Promote(ctx context.Context, kind, value string) error {
	if err := r.store.AddLabel(ctx, kind, value); err != nil {
		return err
	}
	r.cache.Invalidate(kind)
	return nil
}
