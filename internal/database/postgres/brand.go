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

const brandColumns = `
	b.id, b.owner_id, b.slug, b.name, b.website, b.linkedin_url,
	b.hq, b.description, b.logo_url, b.created_at, b.updated_at`

func scanBrand(row pgx.Row) (*models.Brand, error) {
	var b models.Brand
	err := row.Scan(
		&b.ID, &b.OwnerID, &b.Slug, &b.Name, &b.Website, &b.LinkedInURL,
		&b.HQ, &b.Description, &b.LogoURL, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateBrand inserts a brand and returns the new record
func (c *Client) CreateBrand(ctx context.Context, brand *models.Brand) (*models.Brand, error) {
	start := time.Now()
	operation := "createBrand"

	query := `
		INSERT INTO brands AS b (owner_id, slug, name, website, linkedin_url, hq, description, logo_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + brandColumns

	created, err := scanBrand(c.pool.QueryRow(ctx, query,
		brand.OwnerID, brand.Slug, brand.Name, brand.Website, brand.LinkedInURL,
		brand.HQ, brand.Description, brand.LogoURL,
	))

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to create brand: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int64("brand_id", created.ID))
	return created, nil
}

// getBrandByField fetches a single brand by a field condition
func (c *Client) getBrandByField(ctx context.Context, operation, whereClause string, arg interface{}) (*models.Brand, error) {
	start := time.Now()

	query := fmt.Sprintf(`SELECT %s FROM brands b WHERE %s`, brandColumns, whereClause)

	brand, err := scanBrand(c.pool.QueryRow(ctx, query, arg))

	duration := metrics.MeasureDuration(start)

	if errors.Is(err, pgx.ErrNoRows) {
		recordMetrics(operation, "not_found", duration)
		return nil, apperrors.NotFoundError("brand")
	}
	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query brand: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return brand, nil
}

// GetBrandByID fetches a single brand by ID
func (c *Client) GetBrandByID(ctx context.Context, id int64) (*models.Brand, error) {
	return c.getBrandByField(ctx, "getBrandByID", "b.id = $1", id)
}

// GetBrandBySlug fetches a single brand by slug
func (c *Client) GetBrandBySlug(ctx context.Context, slug string) (*models.Brand, error) {
	return c.getBrandByField(ctx, "getBrandBySlug", "b.slug = $1", slug)
}

// GetBrandByOwner fetches the brand owned by a user
func (c *Client) GetBrandByOwner(ctx context.Context, ownerID string) (*models.Brand, error) {
	return c.getBrandByField(ctx, "getBrandByOwner", "b.owner_id = $1", ownerID)
}

// ListBrands fetches all brands ordered by name
func (c *Client) ListBrands(ctx context.Context) ([]*models.Brand, error) {
	start := time.Now()
	operation := "listBrands"

	query := fmt.Sprintf(`SELECT %s FROM brands b ORDER BY b.name ASC`, brandColumns)

	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query brands: %w", err)
	}
	defer rows.Close()

	brands := make([]*models.Brand, 0)
	for rows.Next() {
		brand, scanErr := scanBrand(rows)
		if scanErr != nil {
			duration := metrics.MeasureDuration(start)
			recordMetrics(operation, "error", duration)
			logger.LogAPICall("postgres", operation, "error", duration, zap.Error(scanErr))
			return nil, fmt.Errorf("failed to scan brand row: %w", scanErr)
		}
		brands = append(brands, brand)
	}

	if err := rows.Err(); err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("error iterating brand rows: %w", err)
	}

	duration := metrics.MeasureDuration(start)
	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int("count", len(brands)))

	return brands, nil
}

// UpdateBrand updates a brand's profile fields
func (c *Client) UpdateBrand(ctx context.Context, brand *models.Brand) (*models.Brand, error) {
	start := time.Now()
	operation := "updateBrand"

	query := `
		UPDATE brands AS b
		SET slug = $2, name = $3, website = $4, linkedin_url = $5, hq = $6,
		    description = $7, logo_url = $8, updated_at = NOW()
		WHERE b.id = $1
		RETURNING ` + brandColumns

	updated, err := scanBrand(c.pool.QueryRow(ctx, query,
		brand.ID, brand.Slug, brand.Name, brand.Website, brand.LinkedInURL,
		brand.HQ, brand.Description, brand.LogoURL,
	))

	duration := metrics.MeasureDuration(start)

	if errors.Is(err, pgx.ErrNoRows) {
		recordMetrics(operation, "not_found", duration)
		return nil, apperrors.NotFoundError("brand")
	}
	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to update brand: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int64("brand_id", updated.ID))
	return updated, nil
}

// DeleteBrand removes a brand. Job postings attached to it keep their
// poster fields and lose the brand reference.
func (c *Client) DeleteBrand(ctx context.Context, id int64) error {
	start := time.Now()
	operation := "deleteBrand"

	result, err := c.pool.Exec(ctx, `DELETE FROM brands WHERE id = $1`, id)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to delete brand: %w", err)
	}
	if result.RowsAffected() == 0 {
		recordMetrics(operation, "not_found", duration)
		return apperrors.NotFoundError("brand")
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int64("brand_id", id))
	return nil
}
