package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/cpghub/cpghub-api/config"
	"github.com/cpghub/cpghub-api/internal/analytics"
	"github.com/cpghub/cpghub-api/internal/cache"
	"github.com/cpghub/cpghub-api/internal/database/postgres"
	"github.com/cpghub/cpghub-api/internal/handlers"
	"github.com/cpghub/cpghub-api/internal/middleware"
	"github.com/cpghub/cpghub-api/internal/repository"
	"github.com/cpghub/cpghub-api/internal/services"
	"github.com/cpghub/cpghub-api/internal/validation"
	"github.com/cpghub/cpghub-api/pkg/db"
	"github.com/cpghub/cpghub-api/pkg/httpclient"
	"github.com/cpghub/cpghub-api/pkg/jwt"
	"github.com/cpghub/cpghub-api/pkg/logger"
	"github.com/cpghub/cpghub-api/pkg/metrics"
	"github.com/cpghub/cpghub-api/pkg/profiling"
	"github.com/cpghub/cpghub-api/pkg/recaptcha"
	"github.com/cpghub/cpghub-api/pkg/storage"
	"github.com/cpghub/cpghub-api/pkg/tracing"
)

// registerPublicRoutes registers the read-only catalog routes and the public
// submission endpoints for a given router group
func registerPublicRoutes(
	group *gin.RouterGroup,
	generalRateLimiter, formRateLimiter *middleware.RateLimiter,
	brandHandler *handlers.BrandHandler,
	jobHandler *handlers.JobHandler,
	talentHandler *handlers.TalentHandler,
	providerHandler *handlers.ServiceProviderHandler,
	labelHandler *handlers.LabelHandler,
	feedbackHandler *handlers.FeedbackHandler,
	formSessionHandler *handlers.FormSessionHandler,
) {
	group.GET("/brands", generalRateLimiter.Middleware(), brandHandler.GetBrands)
	group.GET("/brands/:id", generalRateLimiter.Middleware(), brandHandler.GetBrand)
	group.GET("/jobs", generalRateLimiter.Middleware(), jobHandler.GetJobPostings)
	group.GET("/jobs/:id", generalRateLimiter.Middleware(), jobHandler.GetJobPosting)
	group.GET("/talents", generalRateLimiter.Middleware(), talentHandler.GetProfiles)
	group.GET("/talents/:id", generalRateLimiter.Middleware(), talentHandler.GetProfile)
	group.GET("/providers", generalRateLimiter.Middleware(), providerHandler.GetProviders)
	group.GET("/providers/:id", generalRateLimiter.Middleware(), providerHandler.GetProvider)
	group.GET("/labels/:kind/options", generalRateLimiter.Middleware(), labelHandler.GetOptions)

	group.POST("/feedback", formRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), feedbackHandler.SubmitFeedback)
	group.POST("/newsletter", formRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(10*1024), feedbackHandler.SubscribeNewsletter)

	// Server-side form sessions (selector state, dependent groups, submit guard)
	sessions := group.Group("/form-sessions")
	sessions.Use(generalRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024))
	sessions.POST("", formSessionHandler.StartSession)
	sessions.GET("/:id", formSessionHandler.GetState)
	sessions.POST("/:id/toggle", formSessionHandler.Toggle)
	sessions.POST("/:id/custom", formSessionHandler.AddCustom)
	sessions.POST("/:id/remove", formSessionHandler.Remove)
	sessions.POST("/:id/groups", formSessionHandler.SetGroupValues)
	sessions.POST("/:id/submit", formSessionHandler.BeginSubmit)
	sessions.POST("/:id/submit/fail", formSessionHandler.FailSubmit)
	sessions.POST("/:id/submit/complete", formSessionHandler.CompleteSubmit)
	sessions.POST("/:id/discard", formSessionHandler.Discard)
}

// registerSessionRoutes registers authentication and the session-protected
// write routes. Skipped entirely when JWT is not configured.
func registerSessionRoutes(
	router *gin.Engine,
	cfg *config.Config,
	authRateLimiter, submitRateLimiter *middleware.RateLimiter,
	authHandler *handlers.AuthHandler,
	brandHandler *handlers.BrandHandler,
	jobHandler *handlers.JobHandler,
	talentHandler *handlers.TalentHandler,
	providerHandler *handlers.ServiceProviderHandler,
	feedbackHandler *handlers.FeedbackHandler,
	tokenManager *jwt.TokenManager,
) {
	if tokenManager == nil {
		logger.Warn("Session routes disabled: SESSION_JWT_SECRET not configured")
		return
	}

	sessionMiddleware := middleware.UserSessionMiddleware(tokenManager, cfg.Session.CookieDomain, cfg.Session.CookieSecure)

	// Sign-in is called by the frontend server after it has verified the
	// OAuth identity, hence the internal token instead of a user credential.
	auth := router.Group("/api/v1/auth")
	auth.POST("/signin", authRateLimiter.Middleware(), middleware.InternalAPIAuthMiddleware(cfg.Auth.InternalAPIToken), authHandler.SignIn)
	auth.GET("/session", sessionMiddleware, authHandler.GetSession)
	auth.POST("/logout", authHandler.Logout)

	me := router.Group("/api/v1")
	me.Use(sessionMiddleware)

	me.POST("/brands", submitRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(10*1024*1024), brandHandler.RegisterBrand)
	me.POST("/brands/:id", submitRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(10*1024*1024), brandHandler.UpdateBrand)
	me.DELETE("/brands/:id", submitRateLimiter.Middleware(), brandHandler.DeleteBrand)

	me.POST("/jobs", submitRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(10*1024*1024), jobHandler.SubmitJobPosting)
	me.POST("/jobs/:id/status", submitRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), jobHandler.SetJobPostingStatus)
	me.DELETE("/jobs/:id", submitRateLimiter.Middleware(), jobHandler.DeleteJobPosting)

	me.GET("/me/jobs", jobHandler.GetOwnJobPostings)
	me.GET("/me/saved-jobs", jobHandler.GetSavedJobs)
	me.POST("/me/saved-jobs/:id", jobHandler.SaveJob)
	me.DELETE("/me/saved-jobs/:id", jobHandler.UnsaveJob)

	me.GET("/me/talent", talentHandler.GetOwnProfile)
	me.POST("/talents", submitRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(10*1024*1024), talentHandler.SubmitProfile)
	me.POST("/talents/:id", submitRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(10*1024*1024), talentHandler.UpdateProfile)
	me.DELETE("/talents/:id", submitRateLimiter.Middleware(), talentHandler.DeleteProfile)

	me.POST("/providers", submitRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(10*1024*1024), providerHandler.SubmitProfile)
	me.POST("/providers/:id", submitRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(10*1024*1024), providerHandler.UpdateProfile)
	me.DELETE("/providers/:id", submitRateLimiter.Middleware(), providerHandler.DeleteProfile)

	me.POST("/connect", submitRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), feedbackHandler.SubmitConnectRequest)
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting CPG Hub API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
		cfg.Observability.CollectorEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Start infrastructure metrics collection
	metrics.RecordInfrastructureMetrics()

	// Continuous profiling (optional)
	stopProfiler, err := profiling.InitProfiler(
		cfg.Profiling,
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
	)
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer stopProfiler()

	// Initialize PostgreSQL connection pool
	pool, err := db.NewPool(context.Background(), db.PoolConfig{
		URL:      cfg.Database.URL,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		logger.Fatal("Failed to initialize database connection pool", zap.Error(err))
	}
	defer pool.Close()

	// NOTE: Database migrations are run separately via the migrate command

	dbClient := postgres.NewClient(pool)

	// Initialize S3 storage client for logos and resumes
	var storageClient *storage.Client
	if cfg.Storage.AccessKeyID != "" && cfg.Storage.SecretAccessKey != "" {
		storageClient, err = storage.NewClient(
			cfg.Storage.AccessKeyID,
			cfg.Storage.SecretAccessKey,
			cfg.Storage.BucketName,
			cfg.Storage.Endpoint,
			cfg.Storage.Region,
		)
		if err != nil {
			logger.Fatal("Failed to initialize storage client", zap.Error(err))
		}
	}

	// Warm the label option lists synchronously so the selector endpoints
	// are ready before the container is marked healthy
	labelsCache := cache.NewLabelsCache(dbClient, cfg.Cache.LabelTTLSeconds)
	if err := labelsCache.Initialize(context.Background(),
		postgres.LabelKindSpecialization,
		postgres.LabelKindServiceCategory,
	); err != nil {
		logger.Fatal("Failed to initialize labels cache", zap.Error(err))
	}

	// Initialize HTTP client for external API calls
	httpClient := httpclient.NewStandardClient()

	// Initialize repositories
	brandRepo := repository.NewBrandRepository(dbClient)
	jobRepo := repository.NewJobRepository(dbClient)
	talentRepo := repository.NewTalentRepository(dbClient)
	providerRepo := repository.NewServiceProviderRepository(dbClient)
	identityRepo := repository.NewIdentityRepository(dbClient)
	labelRepo := repository.NewLabelRepository(dbClient, labelsCache)

	var tokenManager *jwt.TokenManager
	if cfg.Session.JWTSecret != "" {
		tokenManager = jwt.NewTokenManager(cfg.Session.JWTSecret, cfg.Session.JWTIssuer, cfg.Session.SessionTTLHours)
	}

	captchaVerifier := recaptcha.NewVerifier(cfg.ReCAPTCHA.SecretKey, httpClient)
	analyticsClient := analytics.NewClient(cfg.Analytics.BaseURL, cfg.Analytics.APIToken, httpClient)

	// Initialize services
	brandService := services.NewBrandService(brandRepo, identityRepo, storageClient, cfg, httpClient)
	jobService := services.NewJobService(jobRepo, brandRepo, identityRepo, labelRepo, storageClient, cfg, httpClient)
	talentService := services.NewTalentService(talentRepo, identityRepo, labelRepo, storageClient, cfg, httpClient)
	providerService := services.NewServiceProviderService(providerRepo, identityRepo, labelRepo, storageClient, cfg, httpClient)
	identityService := services.NewIdentityService(identityRepo, tokenManager)
	feedbackService := services.NewFeedbackService(captchaVerifier, cfg, httpClient)
	analyticsService := services.NewAnalyticsService(analyticsClient)
	labelService := services.NewLabelService(labelsCache)
	formSessionService := services.NewFormSessionService()

	// Initialize handlers
	brandHandler := handlers.NewBrandHandler(brandService, formSessionService)
	jobHandler := handlers.NewJobHandler(jobService, formSessionService)
	talentHandler := handlers.NewTalentHandler(talentService, formSessionService)
	providerHandler := handlers.NewServiceProviderHandler(providerService, formSessionService)
	authHandler := handlers.NewAuthHandler(identityService, cfg)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	labelHandler := handlers.NewLabelHandler(labelService)
	formSessionHandler := handlers.NewFormSessionHandler(formSessionService)
	healthHandler := handlers.NewHealthHandler(pool, labelsCache.IsReady)

	// Register custom validation tags before any request binding happens
	if err := validation.RegisterGinValidators(); err != nil {
		logger.Fatal("Failed to register validators", zap.Error(err))
	}

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// CORS configuration - only allow specific origins
	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "x-internal-cpghub-auth-token", "x-cpghub-admin-auth-token", "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true, // required for the session cookie
		MaxAge:           12 * time.Hour,
	}))

	// Rate limiters, tiered by endpoint sensitivity
	generalRateLimiter := middleware.NewRateLimiter(100, 200) // 100 req/sec, burst of 200
	formRateLimiter := middleware.NewRateLimiter(5, 10)       // 5 req/sec, burst of 10 (prevent spam)
	submitRateLimiter := middleware.NewRateLimiter(10, 20)    // 10 req/sec, burst of 20
	authRateLimiter := middleware.NewRateLimiter(1, 5)        // 1 req/sec, burst of 5 (sign-in abuse prevention)

	// Utility endpoints (not versioned - operational endpoints)
	api := router.Group("/api")
	api.GET("/healthcheck", generalRateLimiter.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	registerPublicRoutes(v1, generalRateLimiter, formRateLimiter,
		brandHandler, jobHandler, talentHandler, providerHandler,
		labelHandler, feedbackHandler, formSessionHandler)

	registerSessionRoutes(router, cfg, authRateLimiter, submitRateLimiter,
		authHandler, brandHandler, jobHandler, talentHandler, providerHandler,
		feedbackHandler, tokenManager)

	// Admin analytics (token protected)
	admin := router.Group("/api/v1/admin")
	admin.Use(generalRateLimiter.Middleware(), middleware.AdminAPIAuthMiddleware(cfg.Auth.AdminAPIToken))
	admin.GET("/analytics/events", analyticsHandler.QueryEvents)

	// Create HTTP server
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
