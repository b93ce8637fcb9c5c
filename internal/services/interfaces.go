package services

import (
	"context"
	"time"

	"github.com/cpghub/cpghub-api/internal/analytics"
	"github.com/cpghub/cpghub-api/internal/models"
	"github.com/cpghub/cpghub-api/pkg/storage"
)

// Uploader abstracts the object-storage client so services can be tested
// without a bucket.
type Uploader interface {
	Upload(ctx context.Context, kind storage.Kind, data, fileName, contentType string) (string, error)
}

// BrandServiceInterface defines the interface for brand operations
type BrandServiceInterface interface {
	RegisterBrand(ctx context.Context, user *models.User, req *models.BrandRequest) (*models.BrandResponse, error)
	UpdateBrand(ctx context.Context, user *models.User, id int64, req *models.BrandRequest) (*models.BrandResponse, error)
	DeleteBrand(ctx context.Context, user *models.User, id int64) error
	GetBrand(ctx context.Context, id int64) (*models.Brand, error)
	GetBrandBySlug(ctx context.Context, slug string) (*models.Brand, error)
	ListBrands(ctx context.Context) ([]*models.Brand, error)
}

// JobServiceInterface defines the interface for job posting operations
type JobServiceInterface interface {
	SubmitJobPosting(ctx context.Context, user *models.User, req *models.JobPostingRequest) (*models.JobPostingResponse, error)
	GetJobPosting(ctx context.Context, id int64) (*models.JobPosting, error)
	GetJobPostingBySlug(ctx context.Context, slug string) (*models.JobPosting, error)
	ListJobPostings(ctx context.Context, filter models.JobFilterOptions) ([]*models.JobPosting, error)
	SetJobPostingOpen(ctx context.Context, user *models.User, id int64, open bool) error
	DeleteJobPosting(ctx context.Context, user *models.User, id int64) error
	ListOwnJobPostings(ctx context.Context, user *models.User) ([]*models.JobPosting, error)
	SaveJob(ctx context.Context, user *models.User, jobID int64) error
	UnsaveJob(ctx context.Context, user *models.User, jobID int64) error
	ListSavedJobs(ctx context.Context, user *models.User) ([]*models.JobPosting, error)
}

// TalentServiceInterface defines the interface for talent profile operations
type TalentServiceInterface interface {
	SubmitProfile(ctx context.Context, user *models.User, req *models.TalentRequest) (*models.TalentResponse, error)
	UpdateProfile(ctx context.Context, user *models.User, id int64, req *models.TalentRequest) (*models.TalentResponse, error)
	DeleteProfile(ctx context.Context, user *models.User, id int64) error
	GetProfile(ctx context.Context, id int64) (*models.Talent, error)
	GetProfileByOwner(ctx context.Context, ownerID string) (*models.Talent, error)
	ListProfiles(ctx context.Context) ([]*models.Talent, error)
}

// ServiceProviderServiceInterface defines the interface for provider profile
// operations
type ServiceProviderServiceInterface interface {
	SubmitProfile(ctx context.Context, user *models.User, req *models.ServiceProviderRequest) (*models.ServiceProviderResponse, error)
	UpdateProfile(ctx context.Context, user *models.User, id int64, req *models.ServiceProviderRequest) (*models.ServiceProviderResponse, error)
	DeleteProfile(ctx context.Context, user *models.User, id int64) error
	GetProfile(ctx context.Context, id int64) (*models.ServiceProvider, error)
	GetProfileBySlug(ctx context.Context, slug string) (*models.ServiceProvider, error)
	ListProfiles(ctx context.Context) ([]*models.ServiceProvider, error)
}

// IdentityServiceInterface defines the interface for identity operations
type IdentityServiceInterface interface {
	SyncUser(ctx context.Context, user *models.User) (*models.User, error)
	IssueSession(user *models.User) (string, time.Time, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	GrantRole(ctx context.Context, userID string, role models.Role) error
}

// FeedbackServiceInterface defines the interface for feedback operations
type FeedbackServiceInterface interface {
	SubmitFeedback(ctx context.Context, req *models.FeedbackRequest) (*models.FeedbackResponse, error)
	SubmitConnectRequest(ctx context.Context, user *models.User, req *models.ConnectRequest) (*models.FeedbackResponse, error)
	SubscribeNewsletter(ctx context.Context, req *models.NewsletterRequest) (*models.FeedbackResponse, error)
}

// AnalyticsServiceInterface defines the interface for analytics reads
type AnalyticsServiceInterface interface {
	Enabled() bool
	QueryEvents(ctx context.Context, q analytics.Query) (*analytics.Page, error)
}

// LabelServiceInterface defines the interface for selector option lists
type LabelServiceInterface interface {
	GetOptions(ctx context.Context, kind string) ([]string, error)
}

// FormSessionServiceInterface defines the interface for server-side form
// sessions
type FormSessionServiceInterface interface {
	StartSession(kind string) (*FormSessionState, error)
	Toggle(sessionID, label string) (*FormSessionState, error)
	AddCustom(sessionID, text string) (*FormSessionState, error)
	Remove(sessionID, label string) (*FormSessionState, error)
	SetGroupValues(sessionID, field string, values []string) (*FormSessionState, error)
	State(sessionID string) (*FormSessionState, error)
	BeginSubmit(sessionID string) (bool, error)
	FailSubmit(sessionID string) error
	CompleteSubmit(sessionID string) error
	Discard(sessionID string) error
}

// Compile-time interface checks
var (
	_ Uploader = (*storage.Client)(nil)

	_ BrandServiceInterface           = (*BrandService)(nil)
	_ JobServiceInterface             = (*JobService)(nil)
	_ TalentServiceInterface          = (*TalentService)(nil)
	_ ServiceProviderServiceInterface = (*ServiceProviderService)(nil)
	_ IdentityServiceInterface        = (*IdentityService)(nil)
	_ FeedbackServiceInterface        = (*FeedbackService)(nil)
	_ AnalyticsServiceInterface       = (*AnalyticsService)(nil)
	_ LabelServiceInterface           = (*LabelService)(nil)
	_ FormSessionServiceInterface     = (*FormSessionService)(nil)
)
