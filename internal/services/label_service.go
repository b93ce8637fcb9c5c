package services

import (
	"context"

	"github.com/cpghub/cpghub-api/internal/cache"
	"github.com/cpghub/cpghub-api/internal/database/postgres"
	apperrors "github.com/cpghub/cpghub-api/pkg/errors"
)

// LabelService serves selector option lists from the labels cache.
type LabelService struct {
	labels cache.LabelsCacheInterface
}

// NewLabelService creates a new label service instance
func NewLabelService(labels cache.LabelsCacheInterface) *LabelService {
	return &LabelService{labels: labels}
}

// GetOptions returns the option values of one label kind, seeded options
// first, then promoted custom entries.
func (s *LabelService) GetOptions(ctx context.Context, kind string) ([]string, error) {
	switch kind {
	case postgres.LabelKindSpecialization, postgres.LabelKindServiceCategory:
		return s.labels.Get(ctx, kind)
	}
	return nil, apperrors.InvalidInputError("kind", "unknown label kind")
}
