package repository

import (
	"context"

	"github.com/cpghub/cpghub-api/internal/models"
)

// JobRepositoryInterface defines the interface for job posting data access.
type JobRepositoryInterface interface {
	Create(ctx context.Context, job *models.JobPosting) (*models.JobPosting, error)
	GetByID(ctx context.Context, id int64) (*models.JobPosting, error)
	GetBySlug(ctx context.Context, slug string) (*models.JobPosting, error)
	GetAll(ctx context.Context, filter models.JobFilterOptions) ([]*models.JobPosting, error)
	Update(ctx context.Context, job *models.JobPosting) (*models.JobPosting, error)
	SetOpen(ctx context.Context, id int64, open bool) error
	Delete(ctx context.Context, id int64) error
	SaveForUser(ctx context.Context, userID string, jobID int64) error
	UnsaveForUser(ctx context.Context, userID string, jobID int64) error
	GetSavedForUser(ctx context.Context, userID string) ([]*models.JobPosting, error)
}

// JobRepository handles job posting data access
type JobRepository struct {
	store JobStore
}

// NewJobRepository creates a new job repository
func NewJobRepository(store JobStore) JobRepositoryInterface {
	return &JobRepository{store: store}
}

func (r *JobRepository) Create(ctx context.Context, job *models.JobPosting) (*models.JobPosting, error) {
	return r.store.CreateJobPosting(ctx, job)
}

func (r *JobRepository) GetByID(ctx context.Context, id int64) (*models.JobPosting, error) {
	return r.store.GetJobPostingByID(ctx, id)
}

func (r *JobRepository) GetBySlug(ctx context.Context, slug string) (*models.JobPosting, error) {
	return r.store.GetJobPostingBySlug(ctx, slug)
}

func (r *JobRepository) GetAll(ctx context.Context, filter models.JobFilterOptions) ([]*models.JobPosting, error) {
	return r.store.ListJobPostings(ctx, filter)
}

func (r *JobRepository) Update(ctx context.Context, job *models.JobPosting) (*models.JobPosting, error) {
	return r.store.UpdateJobPosting(ctx, job)
}

func (r *JobRepository) SetOpen(ctx context.Context, id int64, open bool) error {
	return r.store.SetJobPostingOpen(ctx, id, open)
}

func (r *JobRepository) Delete(ctx context.Context, id int64) error {
	return r.store.DeleteJobPosting(ctx, id)
}

func (r *JobRepository) SaveForUser(ctx context.Context, userID string, jobID int64) error {
	return r.store.SaveJobPosting(ctx, userID, jobID)
}

func (r *JobRepository) UnsaveForUser(ctx context.Context, userID string, jobID int64) error {
	return r.store.UnsaveJobPosting(ctx, userID, jobID)
}

func (r *JobRepository) GetSavedForUser(ctx context.Context, userID string) ([]*models.JobPosting, error) {
	return r.store.ListSavedJobPostings(ctx, userID)
}
