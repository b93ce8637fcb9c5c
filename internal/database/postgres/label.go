package postgres

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/cpghub/cpghub-api/pkg/errors"
	"github.com/cpghub/cpghub-api/pkg/logger"
	"github.com/cpghub/cpghub-api/pkg/metrics"

	"github.com/cpghub/cpghub-api/internal/validation"
)

// Label kinds stored in the labels table. Custom "Other" entries promoted
// from form submissions land here next to the seeded options.
const (
	LabelKindSpecialization  = "specialization"
	LabelKindServiceCategory = "service_category"
)

// ListLabels fetches the option values of one label kind, seeded options
// first, then promoted custom entries alphabetically.
func (c *Client) ListLabels(ctx context.Context, kind string) ([]string, error) {
	start := time.Now()
	operation := "listLabels"

	rows, err := c.pool.Query(ctx,
		`SELECT value FROM labels WHERE kind = $1 ORDER BY sort_order ASC, value ASC`,
		kind,
	)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query labels: %w", err)
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var value string
		if scanErr := rows.Scan(&value); scanErr != nil {
			duration := metrics.MeasureDuration(start)
			recordMetrics(operation, "error", duration)
			return nil, fmt.Errorf("failed to scan label: %w", scanErr)
		}
		values = append(values, value)
	}
	if err := rows.Err(); err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		return nil, fmt.Errorf("error iterating labels: %w", err)
	}

	duration := metrics.MeasureDuration(start)
	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration,
		zap.String("kind", kind),
		zap.Int("count", len(values)))

	return values, nil
}

// AddLabel promotes a custom option into the labels table. The value must
// already be title-cased; the unique index on (kind, lower(value)) makes a
// case-insensitive duplicate a silent no-op.
func (c *Client) AddLabel(ctx context.Context, kind, value string) error {
	start := time.Now()
	operation := "addLabel"

	if !validation.IsCategoryText(value) {
		return apperrors.InvalidInputError("label", validation.CategoryTextError(value))
	}

	_, err := c.pool.Exec(ctx,
		`INSERT INTO labels (kind, value, sort_order) VALUES ($1, $2, 1000)
		 ON CONFLICT (kind, lower(value)) DO NOTHING`,
		kind, value,
	)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to add label: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration,
		zap.String("kind", kind),
		zap.String("value", value))
	return nil
}
