package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/cpghub/cpghub-api/internal/models"
	"github.com/cpghub/cpghub-api/internal/repository"
	"github.com/cpghub/cpghub-api/pkg/jwt"
	"github.com/cpghub/cpghub-api/pkg/logger"
)

// IdentityService syncs signed-in identities from the auth provider and
// issues session tokens carrying the user's role flags.
type IdentityService struct {
	identityRepo repository.IdentityRepositoryInterface
	tokens       *jwt.TokenManager
}

// NewIdentityService creates a new identity service instance
func NewIdentityService(identityRepo repository.IdentityRepositoryInterface, tokens *jwt.TokenManager) *IdentityService {
	return &IdentityService{
		identityRepo: identityRepo,
		tokens:       tokens,
	}
}

// SyncUser upserts the identity-provider profile and returns the stored user
// with role flags attached. Called on every sign-in so profile fields follow
// the provider.
func (s *IdentityService) SyncUser(ctx context.Context, user *models.User) (*models.User, error) {
	synced, err := s.identityRepo.Upsert(ctx, user)
	if err != nil {
		logger.Error("Failed to sync user", zap.Error(err), zap.String("user_id", user.ID))
		return nil, err
	}
	return synced, nil
}

// IssueSession generates a session token for a synced user. The token embeds
// the role flags at issue time; a role granted mid-session shows up on the
// next sign-in.
func (s *IdentityService) IssueSession(user *models.User) (string, time.Time, error) {
	roles := make([]string, 0, len(user.Roles))
	for _, r := range user.Roles.Slice() {
		roles = append(roles, string(r))
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email, user.Name, roles, user.IsAdmin)
	if err != nil {
		logger.Error("Failed to issue session token", zap.Error(err), zap.String("user_id", user.ID))
		return "", time.Time{}, err
	}

	return token, time.Now().Add(s.tokens.GetExpirationTime()), nil
}

// GetUser fetches a stored user with role flags.
func (s *IdentityService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.identityRepo.GetByID(ctx, id)
}

// GrantRole adds a role flag to a user. Granting an already-held role is a
// no-op.
func (s *IdentityService) GrantRole(ctx context.Context, userID string, role models.Role) error {
	return s.identityRepo.GrantRole(ctx, userID, role)
}
