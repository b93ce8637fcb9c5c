package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/cpghub/cpghub-api/internal/models"
	apperrors "github.com/cpghub/cpghub-api/pkg/errors"
	"github.com/cpghub/cpghub-api/pkg/logger"
	"github.com/cpghub/cpghub-api/pkg/metrics"
)

const jobColumns = `
	j.id, j.owner_id, j.slug, j.title, j.preferred_experience,
	j.level_of_experience, j.area_of_specialization, j.work_location,
	j.scope_of_work, j.estimated_hrs_per_wk, j.job_description_url, j.is_open,
	j.brand_id, j.poster_name, j.poster_location, j.poster_logo_url,
	j.created_at, j.updated_at`

func scanJobPosting(row pgx.Row) (*models.JobPosting, error) {
	var j models.JobPosting
	err := row.Scan(
		&j.ID, &j.OwnerID, &j.Slug, &j.Title, &j.PreferredExperience,
		&j.LevelOfExperience, &j.AreaOfSpecialization, &j.WorkLocation,
		&j.ScopeOfWork, &j.EstimatedHrsPerWk, &j.JobDescriptionURL, &j.IsOpen,
		&j.BrandID, &j.PosterName, &j.PosterLocation, &j.PosterLogoURL,
		&j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// CreateJobPosting inserts a job posting and returns the new record
func (c *Client) CreateJobPosting(ctx context.Context, job *models.JobPosting) (*models.JobPosting, error) {
	start := time.Now()
	operation := "createJobPosting"

	query := `
		INSERT INTO job_postings AS j (
			owner_id, slug, title, preferred_experience, level_of_experience,
			area_of_specialization, work_location, scope_of_work,
			estimated_hrs_per_wk, job_description_url, is_open,
			brand_id, poster_name, poster_location, poster_logo_url
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + jobColumns

	created, err := scanJobPosting(c.pool.QueryRow(ctx, query,
		job.OwnerID, job.Slug, job.Title, job.PreferredExperience, job.LevelOfExperience,
		job.AreaOfSpecialization, job.WorkLocation, job.ScopeOfWork,
		job.EstimatedHrsPerWk, job.JobDescriptionURL, job.IsOpen,
		job.BrandID, job.PosterName, job.PosterLocation, job.PosterLogoURL,
	))

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to create job posting: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int64("job_id", created.ID))
	return created, nil
}

// getJobPostingByField fetches a single job posting by a field condition
func (c *Client) getJobPostingByField(ctx context.Context, operation, whereClause string, arg interface{}) (*models.JobPosting, error) {
	start := time.Now()

	query := fmt.Sprintf(`SELECT %s FROM job_postings j WHERE %s`, jobColumns, whereClause)

	job, err := scanJobPosting(c.pool.QueryRow(ctx, query, arg))

	duration := metrics.MeasureDuration(start)

	if errors.Is(err, pgx.ErrNoRows) {
		recordMetrics(operation, "not_found", duration)
		return nil, apperrors.NotFoundError("job posting")
	}
	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query job posting: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return job, nil
}

// GetJobPostingByID fetches a single job posting by ID
func (c *Client) GetJobPostingByID(ctx context.Context, id int64) (*models.JobPosting, error) {
	return c.getJobPostingByField(ctx, "getJobPostingByID", "j.id = $1", id)
}

// GetJobPostingBySlug fetches a single job posting by slug
func (c *Client) GetJobPostingBySlug(ctx context.Context, slug string) (*models.JobPosting, error) {
	return c.getJobPostingByField(ctx, "getJobPostingBySlug", "j.slug = $1", slug)
}

// ListJobPostings fetches job postings matching the filter, newest first
func (c *Client) ListJobPostings(ctx context.Context, filter models.JobFilterOptions) ([]*models.JobPosting, error) {
	start := time.Now()
	operation := "listJobPostings"

	conditions := make([]string, 0, 4)
	args := make([]interface{}, 0, 4)
	argIndex := 1

	if filter.OnlyOpen {
		conditions = append(conditions, "j.is_open = TRUE")
	}
	if filter.OwnerID != "" {
		conditions = append(conditions, fmt.Sprintf("j.owner_id = $%d", argIndex))
		args = append(args, filter.OwnerID)
		argIndex++
	}
	if filter.BrandID != nil {
		conditions = append(conditions, fmt.Sprintf("j.brand_id = $%d", argIndex))
		args = append(args, *filter.BrandID)
		argIndex++
	}
	if filter.Specialization != "" {
		conditions = append(conditions, fmt.Sprintf("$%d = ANY(j.area_of_specialization)", argIndex))
		args = append(args, filter.Specialization)
	}

	query := fmt.Sprintf(`SELECT %s FROM job_postings j`, jobColumns)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY j.created_at DESC"

	rows, err := c.pool.Query(ctx, query, args...)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query job postings: %w", err)
	}
	defer rows.Close()

	jobs := make([]*models.JobPosting, 0)
	for rows.Next() {
		job, scanErr := scanJobPosting(rows)
		if scanErr != nil {
			duration := metrics.MeasureDuration(start)
			recordMetrics(operation, "error", duration)
			logger.LogAPICall("postgres", operation, "error", duration, zap.Error(scanErr))
			return nil, fmt.Errorf("failed to scan job posting row: %w", scanErr)
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("error iterating job posting rows: %w", err)
	}

	duration := metrics.MeasureDuration(start)
	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int("count", len(jobs)))

	return jobs, nil
}

// UpdateJobPosting updates a job posting's fields
func (c *Client) UpdateJobPosting(ctx context.Context, job *models.JobPosting) (*models.JobPosting, error) {
	start := time.Now()
	operation := "updateJobPosting"

	query := `
		UPDATE job_postings AS j
		SET slug = $2, title = $3, preferred_experience = $4, level_of_experience = $5,
		    area_of_specialization = $6, work_location = $7, scope_of_work = $8,
		    estimated_hrs_per_wk = $9, job_description_url = $10, is_open = $11,
		    brand_id = $12, poster_name = $13, poster_location = $14,
		    poster_logo_url = $15, updated_at = NOW()
		WHERE j.id = $1
		RETURNING ` + jobColumns

	updated, err := scanJobPosting(c.pool.QueryRow(ctx, query,
		job.ID, job.Slug, job.Title, job.PreferredExperience, job.LevelOfExperience,
		job.AreaOfSpecialization, job.WorkLocation, job.ScopeOfWork,
		job.EstimatedHrsPerWk, job.JobDescriptionURL, job.IsOpen,
		job.BrandID, job.PosterName, job.PosterLocation, job.PosterLogoURL,
	))

	duration := metrics.MeasureDuration(start)

	if errors.Is(err, pgx.ErrNoRows) {
		recordMetrics(operation, "not_found", duration)
		return nil, apperrors.NotFoundError("job posting")
	}
	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to update job posting: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int64("job_id", updated.ID))
	return updated, nil
}

// SetJobPostingOpen flips the open flag on a job posting
func (c *Client) SetJobPostingOpen(ctx context.Context, id int64, open bool) error {
	start := time.Now()
	operation := "setJobPostingOpen"

	result, err := c.pool.Exec(ctx,
		`UPDATE job_postings SET is_open = $2, updated_at = NOW() WHERE id = $1`,
		id, open,
	)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to update job posting status: %w", err)
	}
	if result.RowsAffected() == 0 {
		recordMetrics(operation, "not_found", duration)
		return apperrors.NotFoundError("job posting")
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration,
		zap.Int64("job_id", id),
		zap.Bool("is_open", open))
	return nil
}

// DeleteJobPosting removes a job posting and its saved-job rows
func (c *Client) DeleteJobPosting(ctx context.Context, id int64) error {
	start := time.Now()
	operation := "deleteJobPosting"

	result, err := c.pool.Exec(ctx, `DELETE FROM job_postings WHERE id = $1`, id)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to delete job posting: %w", err)
	}
	if result.RowsAffected() == 0 {
		recordMetrics(operation, "not_found", duration)
		return apperrors.NotFoundError("job posting")
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int64("job_id", id))
	return nil
}

// SaveJobPosting bookmarks a job for a user. Saving twice is a no-op.
func (c *Client) SaveJobPosting(ctx context.Context, userID string, jobID int64) error {
	start := time.Now()
	operation := "saveJobPosting"

	_, err := c.pool.Exec(ctx,
		`INSERT INTO saved_jobs (user_id, job_id) VALUES ($1, $2)
		 ON CONFLICT (user_id, job_id) DO NOTHING`,
		userID, jobID,
	)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to save job posting: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration,
		zap.String("user_id", userID),
		zap.Int64("job_id", jobID))
	return nil
}

// UnsaveJobPosting removes a bookmark. Removing an absent bookmark is a
// no-op, matching the idempotent save.
func (c *Client) UnsaveJobPosting(ctx context.Context, userID string, jobID int64) error {
	start := time.Now()
	operation := "unsaveJobPosting"

	_, err := c.pool.Exec(ctx,
		`DELETE FROM saved_jobs WHERE user_id = $1 AND job_id = $2`,
		userID, jobID,
	)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to unsave job posting: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration,
		zap.String("user_id", userID),
		zap.Int64("job_id", jobID))
	return nil
}

// ListSavedJobPostings fetches a user's bookmarked jobs, most recently
// saved first.
func (c *Client) ListSavedJobPostings(ctx context.Context, userID string) ([]*models.JobPosting, error) {
	start := time.Now()
	operation := "listSavedJobPostings"

	query := fmt.Sprintf(`
		SELECT %s FROM job_postings j
		JOIN saved_jobs s ON s.job_id = j.id
		WHERE s.user_id = $1
		ORDER BY s.created_at DESC`, jobColumns)

	rows, err := c.pool.Query(ctx, query, userID)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query saved jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]*models.JobPosting, 0)
	for rows.Next() {
		job, scanErr := scanJobPosting(rows)
		if scanErr != nil {
			duration := metrics.MeasureDuration(start)
			recordMetrics(operation, "error", duration)
			return nil, fmt.Errorf("failed to scan saved job: %w", scanErr)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		return nil, fmt.Errorf("error iterating saved jobs: %w", err)
	}

	duration := metrics.MeasureDuration(start)
	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration,
		zap.String("user_id", userID),
		zap.Int("count", len(jobs)))

	return jobs, nil
}
