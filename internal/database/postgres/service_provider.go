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

const providerColumns = `
	p.id, p.owner_id, p.slug, p.company_name, p.company_website, p.logo_url,
	p.num_employees, p.area_of_specialization, p.category_of_service,
	p.broker_service_types, p.markets_covered, p.customers_covered,
	p.created_at, p.updated_at`

func scanServiceProvider(row pgx.Row) (*models.ServiceProvider, error) {
	var p models.ServiceProvider
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.Slug, &p.CompanyName, &p.CompanyWebsite, &p.LogoURL,
		&p.NumEmployees, &p.AreaOfSpecialization, &p.CategoryOfService,
		&p.BrokerServiceTypes, &p.MarketsCovered, &p.CustomersCovered,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateServiceProvider inserts a service-provider profile and returns the new record
func (c *Client) CreateServiceProvider(ctx context.Context, provider *models.ServiceProvider) (*models.ServiceProvider, error) {
	start := time.Now()
	operation := "createServiceProvider"

	query := `
		INSERT INTO service_providers AS p (
			owner_id, slug, company_name, company_website, logo_url,
			num_employees, area_of_specialization, category_of_service,
			broker_service_types, markets_covered, customers_covered
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + providerColumns

	created, err := scanServiceProvider(c.pool.QueryRow(ctx, query,
		provider.OwnerID, provider.Slug, provider.CompanyName, provider.CompanyWebsite, provider.LogoURL,
		provider.NumEmployees, provider.AreaOfSpecialization, provider.CategoryOfService,
		provider.BrokerServiceTypes, provider.MarketsCovered, provider.CustomersCovered,
	))

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to create service provider: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int64("provider_id", created.ID))
	return created, nil
}

// getServiceProviderByField fetches a single provider by a field condition
func (c *Client) getServiceProviderByField(ctx context.Context, operation, whereClause string, arg interface{}) (*models.ServiceProvider, error) {
	start := time.Now()

	query := fmt.Sprintf(`SELECT %s FROM service_providers p WHERE %s`, providerColumns, whereClause)

	provider, err := scanServiceProvider(c.pool.QueryRow(ctx, query, arg))

	duration := metrics.MeasureDuration(start)

	if errors.Is(err, pgx.ErrNoRows) {
		recordMetrics(operation, "not_found", duration)
		return nil, apperrors.NotFoundError("service provider")
	}
	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query service provider: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return provider, nil
}

// GetServiceProviderByID fetches a single provider by ID
func (c *Client) GetServiceProviderByID(ctx context.Context, id int64) (*models.ServiceProvider, error) {
	return c.getServiceProviderByField(ctx, "getServiceProviderByID", "p.id = $1", id)
}

// GetServiceProviderBySlug fetches a single provider by slug
func (c *Client) GetServiceProviderBySlug(ctx context.Context, slug string) (*models.ServiceProvider, error) {
	return c.getServiceProviderByField(ctx, "getServiceProviderBySlug", "p.slug = $1", slug)
}

// GetServiceProviderByOwner fetches the provider profile owned by a user
func (c *Client) GetServiceProviderByOwner(ctx context.Context, ownerID string) (*models.ServiceProvider, error) {
	return c.getServiceProviderByField(ctx, "getServiceProviderByOwner", "p.owner_id = $1", ownerID)
}

// ListServiceProviders fetches all provider profiles ordered by company name
func (c *Client) ListServiceProviders(ctx context.Context) ([]*models.ServiceProvider, error) {
	start := time.Now()
	operation := "listServiceProviders"

	query := fmt.Sprintf(`SELECT %s FROM service_providers p ORDER BY p.company_name ASC`, providerColumns)

	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query service providers: %w", err)
	}
	defer rows.Close()

	providers := make([]*models.ServiceProvider, 0)
	for rows.Next() {
		provider, scanErr := scanServiceProvider(rows)
		if scanErr != nil {
			duration := metrics.MeasureDuration(start)
			recordMetrics(operation, "error", duration)
			logger.LogAPICall("postgres", operation, "error", duration, zap.Error(scanErr))
			return nil, fmt.Errorf("failed to scan service provider row: %w", scanErr)
		}
		providers = append(providers, provider)
	}

	if err := rows.Err(); err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("error iterating service provider rows: %w", err)
	}

	duration := metrics.MeasureDuration(start)
	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int("count", len(providers)))

	return providers, nil
}

// UpdateServiceProvider updates a provider profile
func (c *Client) UpdateServiceProvider(ctx context.Context, provider *models.ServiceProvider) (*models.ServiceProvider, error) {
	start := time.Now()
	operation := "updateServiceProvider"

	query := `
		UPDATE service_providers AS p
		SET slug = $2, company_name = $3, company_website = $4, logo_url = $5,
		    num_employees = $6, area_of_specialization = $7,
		    category_of_service = $8, broker_service_types = $9,
		    markets_covered = $10, customers_covered = $11, updated_at = NOW()
		WHERE p.id = $1
		RETURNING ` + providerColumns

	updated, err := scanServiceProvider(c.pool.QueryRow(ctx, query,
		provider.ID, provider.Slug, provider.CompanyName, provider.CompanyWebsite, provider.LogoURL,
		provider.NumEmployees, provider.AreaOfSpecialization,
		provider.CategoryOfService, provider.BrokerServiceTypes,
		provider.MarketsCovered, provider.CustomersCovered,
	))

	duration := metrics.MeasureDuration(start)

	if errors.Is(err, pgx.ErrNoRows) {
		recordMetrics(operation, "not_found", duration)
		return nil, apperrors.NotFoundError("service provider")
	}
	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to update service provider: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int64("provider_id", updated.ID))
	return updated, nil
}

// DeleteServiceProvider removes a service-provider profile
func (c *Client) DeleteServiceProvider(ctx context.Context, id int64) error {
	start := time.Now()
	operation := "deleteServiceProvider"

	result, err := c.pool.Exec(ctx, `DELETE FROM service_providers WHERE id = $1`, id)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to delete service provider: %w", err)
	}
	if result.RowsAffected() == 0 {
		recordMetrics(operation, "not_found", duration)
		return apperrors.NotFoundError("service provider")
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int64("provider_id", id))
	return nil
}
