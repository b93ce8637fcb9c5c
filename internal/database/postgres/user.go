package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/cpghub/cpghub-api/internal/models"
	apperrors "github.com/cpghub/cpghub-api/pkg/errors"
	"github.com/cpghub/cpghub-api/pkg/logger"
	"github.com/cpghub/cpghub-api/pkg/metrics"
)

// UpsertUser syncs the identity-provider view of a user on sign-in. Role
// flags live in user_roles and are not touched here.
func (c *Client) UpsertUser(ctx context.Context, user *models.User) (*models.User, error) {
	start := time.Now()
	operation := "upsertUser"

	query := `
		INSERT INTO users (id, name, email, image_url, is_admin)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, email = EXCLUDED.email,
		    image_url = EXCLUDED.image_url, updated_at = NOW()
		RETURNING id, name, email, image_url, is_admin, created_at, updated_at
	`

	var u models.User
	err := c.pool.QueryRow(ctx, query,
		user.ID, user.Name, user.Email, user.ImageURL, user.IsAdmin,
	).Scan(&u.ID, &u.Name, &u.Email, &u.ImageURL, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	roles, err := c.GetUserRoles(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.Roles = roles

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.String("user_id", u.ID))
	return &u, nil
}

// GetUserByID fetches a user with their role flags
func (c *Client) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	start := time.Now()
	operation := "getUserByID"

	query := `
		SELECT id, name, email, image_url, is_admin, created_at, updated_at
		FROM users WHERE id = $1
	`

	var u models.User
	err := c.pool.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Name, &u.Email, &u.ImageURL, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt,
	)

	duration := metrics.MeasureDuration(start)

	if errors.Is(err, pgx.ErrNoRows) {
		recordMetrics(operation, "not_found", duration)
		return nil, apperrors.NotFoundError("user")
	}
	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	roles, err := c.GetUserRoles(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.Roles = roles

	recordMetrics(operation, "success", duration)
	return &u, nil
}

// GetUserRoles fetches the role flags for a user
func (c *Client) GetUserRoles(ctx context.Context, userID string) (models.RoleSet, error) {
	start := time.Now()
	operation := "getUserRoles"

	rows, err := c.pool.Query(ctx,
		`SELECT role FROM user_roles WHERE user_id = $1`, userID)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query user roles: %w", err)
	}
	defer rows.Close()

	roles := models.RoleSet{}
	for rows.Next() {
		var role string
		if scanErr := rows.Scan(&role); scanErr != nil {
			duration := metrics.MeasureDuration(start)
			recordMetrics(operation, "error", duration)
			return nil, fmt.Errorf("failed to scan user role: %w", scanErr)
		}
		roles.Add(models.Role(role))
	}
	if err := rows.Err(); err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		return nil, fmt.Errorf("error iterating user roles: %w", err)
	}

	recordMetrics(operation, "success", metrics.MeasureDuration(start))
	return roles, nil
}

// AddUserRole records a role flag for a user. Adding an existing role is a
// no-op, never an error.
func (c *Client) AddUserRole(ctx context.Context, userID string, role models.Role) error {
	start := time.Now()
	operation := "addUserRole"

	if !models.ValidRole(role) {
		return apperrors.InvalidInputError("role", fmt.Sprintf("unknown role %q", role))
	}

	_, err := c.pool.Exec(ctx,
		`INSERT INTO user_roles (user_id, role) VALUES ($1, $2)
		 ON CONFLICT (user_id, role) DO NOTHING`,
		userID, string(role),
	)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to add user role: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration,
		zap.String("user_id", userID),
		zap.String("role", string(role)))
	return nil
}
