package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cpghub/cpghub-api/internal/middleware"
	"github.com/cpghub/cpghub-api/internal/models"
	"github.com/cpghub/cpghub-api/internal/services"
	"github.com/cpghub/cpghub-api/internal/validation"
	"github.com/cpghub/cpghub-api/pkg/logger"
)

func init() {
	_ = logger.Initialize(logger.Config{Level: "error", Environment: "development"})
	if err := validation.RegisterGinValidators(); err != nil {
		panic(err)
	}
}

// mockJobService is a mock implementation of JobServiceInterface
type mockJobService struct {
	mock.Mock
}

func (m *mockJobService) SubmitJobPosting(ctx context.Context, user *models.User, req *models.JobPostingRequest) (*models.JobPostingResponse, error) {
	args := m.Called(ctx, user, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JobPostingResponse), args.Error(1)
}

func (m *mockJobService) GetJobPosting(ctx context.Context, id int64) (*models.JobPosting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JobPosting), args.Error(1)
}

func (m *mockJobService) GetJobPostingBySlug(ctx context.Context, slug string) (*models.JobPosting, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JobPosting), args.Error(1)
}

func (m *mockJobService) ListJobPostings(ctx context.Context, filter models.JobFilterOptions) ([]*models.JobPosting, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.JobPosting), args.Error(1)
}

func (m *mockJobService) SetJobPostingOpen(ctx context.Context, user *models.User, id int64, open bool) error {
	args := m.Called(ctx, user, id, open)
	return args.Error(0)
}

func (m *mockJobService) DeleteJobPosting(ctx context.Context, user *models.User, id int64) error {
	args := m.Called(ctx, user, id)
	return args.Error(0)
}

func (m *mockJobService) ListOwnJobPostings(ctx context.Context, user *models.User) ([]*models.JobPosting, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.JobPosting), args.Error(1)
}

func (m *mockJobService) SaveJob(ctx context.Context, user *models.User, jobID int64) error {
	args := m.Called(ctx, user, jobID)
	return args.Error(0)
}

func (m *mockJobService) UnsaveJob(ctx context.Context, user *models.User, jobID int64) error {
	args := m.Called(ctx, user, jobID)
	return args.Error(0)
}

func (m *mockJobService) ListSavedJobs(ctx context.Context, user *models.User) ([]*models.JobPosting, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.JobPosting), args.Error(1)
}

func newJobRouter(handler *JobHandler) *gin.Engine {
	router := gin.New()
	router.POST("/jobs", func(c *gin.Context) {
		c.Set(middleware.SessionUserContextKey, &models.User{ID: "user-1", Name: "Jordan", Email: "jordan@example.com"})
	}, handler.SubmitJobPosting)
	return router
}

func postJob(t *testing.T, router *gin.Engine, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/jobs", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)
	return w
}

func validJobBody() map[string]any {
	return map[string]any{
		"job_title":              "Fractional Sales Lead",
		"preferred_experience":   "Regional grocery experience",
		"level_of_experience":    []string{"Senior"},
		"area_of_specialization": []string{"Sales"},
		"work_location":          "Remote",
		"scope_of_work":          "Ongoing",
		"estimated_hrs_per_wk":   20,
		"brand_selection":        "none",
	}
}

func detailFields(t *testing.T, body []byte) []string {
	t.Helper()

	var resp struct {
		Details []ValidationError `json:"details"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))

	fields := make([]string, 0, len(resp.Details))
	for _, d := range resp.Details {
		fields = append(fields, d.Field)
	}
	return fields
}

func TestJobHandler_SubmitJobPosting_ErrorsUseSubmittedFieldPaths(t *testing.T) {
	service := new(mockJobService)
	handler := NewJobHandler(service, nil)
	router := newJobRouter(handler)

	body := validJobBody()
	delete(body, "job_title")
	body["area_of_specialization"] = []string{}

	w := postJob(t, router, body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	fields := detailFields(t, w.Body.Bytes())
	assert.Contains(t, fields, "job_title")
	assert.Contains(t, fields, "area_of_specialization")
	assert.NotContains(t, fields, "Title")
	assert.NotContains(t, fields, "AreaOfSpecialization")

	service.AssertNotCalled(t, "SubmitJobPosting")
}

func TestJobHandler_SubmitJobPosting_BindingAndCrossFieldErrorsMerged(t *testing.T) {
	service := new(mockJobService)
	handler := NewJobHandler(service, nil)
	router := newJobRouter(handler)

	body := validJobBody()
	delete(body, "job_title")
	body["brand_selection"] = "new"
	body["brand_name"] = ""

	w := postJob(t, router, body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	fields := detailFields(t, w.Body.Bytes())
	assert.Contains(t, fields, "job_title")
	assert.Contains(t, fields, "brand_name")
}

func TestJobHandler_SubmitJobPosting_SecondInFlightSubmissionRejected(t *testing.T) {
	service := new(mockJobService)
	sessions := services.NewFormSessionService()
	handler := NewJobHandler(service, sessions)
	router := newJobRouter(handler)

	state, err := sessions.StartSession(services.FormKindJobPosting)
	require.NoError(t, err)

	taken, err := sessions.BeginSubmit(state.SessionID)
	require.NoError(t, err)
	require.True(t, taken)

	body := validJobBody()
	body["form_session_id"] = state.SessionID

	w := postJob(t, router, body)

	assert.Equal(t, http.StatusConflict, w.Code)
	service.AssertNotCalled(t, "SubmitJobPosting")
}

func TestJobHandler_SubmitJobPosting_SuccessDropsFormSession(t *testing.T) {
	service := new(mockJobService)
	sessions := services.NewFormSessionService()
	handler := NewJobHandler(service, sessions)
	router := newJobRouter(handler)

	state, err := sessions.StartSession(services.FormKindJobPosting)
	require.NoError(t, err)

	service.On("SubmitJobPosting", mock.Anything, mock.Anything, mock.Anything).
		Return(&models.JobPostingResponse{Success: true, JobID: 7, Slug: "fractional-sales-lead-7"}, nil).Once()

	body := validJobBody()
	body["form_session_id"] = state.SessionID

	w := postJob(t, router, body)

	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)

	_, err = sessions.State(state.SessionID)
	assert.Error(t, err)
}

func TestJobHandler_SubmitJobPosting_FailureReleasesLatch(t *testing.T) {
	service := new(mockJobService)
	sessions := services.NewFormSessionService()
	handler := NewJobHandler(service, sessions)
	router := newJobRouter(handler)

	state, err := sessions.StartSession(services.FormKindJobPosting)
	require.NoError(t, err)

	service.On("SubmitJobPosting", mock.Anything, mock.Anything, mock.Anything).
		Return(&models.JobPostingResponse{Success: false, Error: "Failed to save job posting"}, nil).Once()

	body := validJobBody()
	body["form_session_id"] = state.SessionID

	w := postJob(t, router, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	taken, err := sessions.BeginSubmit(state.SessionID)
	require.NoError(t, err)
	assert.True(t, taken, "a failed submission must leave the latch free for a retry")
}

func TestJobHandler_SubmitJobPosting_UnknownFormSession(t *testing.T) {
	service := new(mockJobService)
	handler := NewJobHandler(service, services.NewFormSessionService())
	router := newJobRouter(handler)

	body := validJobBody()
	body["form_session_id"] = "gone"

	w := postJob(t, router, body)

	assert.Equal(t, http.StatusNotFound, w.Code)
	service.AssertNotCalled(t, "SubmitJobPosting")
}
