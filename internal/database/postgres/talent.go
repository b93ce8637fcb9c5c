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

const talentColumns = `
	t.id, t.owner_id, t.level_of_experience, t.industry_experience,
	t.area_of_specialization, t.linkedin_url, t.portfolio_url, t.resume_url,
	t.created_at, t.updated_at`

func scanTalent(row pgx.Row) (*models.Talent, error) {
	var t models.Talent
	err := row.Scan(
		&t.ID, &t.OwnerID, &t.LevelOfExperience, &t.IndustryExperience,
		&t.AreaOfSpecialization, &t.LinkedInURL, &t.PortfolioURL, &t.ResumeURL,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTalent inserts a talent profile and returns the new record
func (c *Client) CreateTalent(ctx context.Context, talent *models.Talent) (*models.Talent, error) {
	start := time.Now()
	operation := "createTalent"

	query := `
		INSERT INTO talents AS t (
			owner_id, level_of_experience, industry_experience,
			area_of_specialization, linkedin_url, portfolio_url, resume_url
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + talentColumns

	created, err := scanTalent(c.pool.QueryRow(ctx, query,
		talent.OwnerID, talent.LevelOfExperience, talent.IndustryExperience,
		talent.AreaOfSpecialization, talent.LinkedInURL, talent.PortfolioURL, talent.ResumeURL,
	))

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to create talent: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int64("talent_id", created.ID))
	return created, nil
}

// getTalentByField fetches a single talent profile by a field condition
func (c *Client) getTalentByField(ctx context.Context, operation, whereClause string, arg interface{}) (*models.Talent, error) {
	start := time.Now()

	query := fmt.Sprintf(`SELECT %s FROM talents t WHERE %s`, talentColumns, whereClause)

	talent, err := scanTalent(c.pool.QueryRow(ctx, query, arg))

	duration := metrics.MeasureDuration(start)

	if errors.Is(err, pgx.ErrNoRows) {
		recordMetrics(operation, "not_found", duration)
		return nil, apperrors.NotFoundError("talent")
	}
	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query talent: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return talent, nil
}

// GetTalentByID fetches a single talent profile by ID
func (c *Client) GetTalentByID(ctx context.Context, id int64) (*models.Talent, error) {
	return c.getTalentByField(ctx, "getTalentByID", "t.id = $1", id)
}

// GetTalentByOwner fetches the talent profile owned by a user
func (c *Client) GetTalentByOwner(ctx context.Context, ownerID string) (*models.Talent, error) {
	return c.getTalentByField(ctx, "getTalentByOwner", "t.owner_id = $1", ownerID)
}

// ListTalents fetches all talent profiles, newest first
func (c *Client) ListTalents(ctx context.Context) ([]*models.Talent, error) {
	start := time.Now()
	operation := "listTalents"

	query := fmt.Sprintf(`SELECT %s FROM talents t ORDER BY t.created_at DESC`, talentColumns)

	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query talents: %w", err)
	}
	defer rows.Close()

	talents := make([]*models.Talent, 0)
	for rows.Next() {
		talent, scanErr := scanTalent(rows)
		if scanErr != nil {
			duration := metrics.MeasureDuration(start)
			recordMetrics(operation, "error", duration)
			logger.LogAPICall("postgres", operation, "error", duration, zap.Error(scanErr))
			return nil, fmt.Errorf("failed to scan talent row: %w", scanErr)
		}
		talents = append(talents, talent)
	}

	if err := rows.Err(); err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("error iterating talent rows: %w", err)
	}

	duration := metrics.MeasureDuration(start)
	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int("count", len(talents)))

	return talents, nil
}

// UpdateTalent updates a talent profile
func (c *Client) UpdateTalent(ctx context.Context, talent *models.Talent) (*models.Talent, error) {
	start := time.Now()
	operation := "updateTalent"

	query := `
		UPDATE talents AS t
		SET level_of_experience = $2, industry_experience = $3,
		    area_of_specialization = $4, linkedin_url = $5, portfolio_url = $6,
		    resume_url = $7, updated_at = NOW()
		WHERE t.id = $1
		RETURNING ` + talentColumns

	updated, err := scanTalent(c.pool.QueryRow(ctx, query,
		talent.ID, talent.LevelOfExperience, talent.IndustryExperience,
		talent.AreaOfSpecialization, talent.LinkedInURL, talent.PortfolioURL, talent.ResumeURL,
	))

	duration := metrics.MeasureDuration(start)

	if errors.Is(err, pgx.ErrNoRows) {
		recordMetrics(operation, "not_found", duration)
		return nil, apperrors.NotFoundError("talent")
	}
	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to update talent: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int64("talent_id", updated.ID))
	return updated, nil
}

// DeleteTalent removes a talent profile
func (c *Client) DeleteTalent(ctx context.Context, id int64) error {
	start := time.Now()
	operation := "deleteTalent"

	result, err := c.pool.Exec(ctx, `DELETE FROM talents WHERE id = $1`, id)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to delete talent: %w", err)
	}
	if result.RowsAffected() == 0 {
		recordMetrics(operation, "not_found", duration)
		return apperrors.NotFoundError("talent")
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int64("talent_id", id))
	return nil
}
