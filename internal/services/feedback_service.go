package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/cpghub/cpghub-api/config"
	"github.com/cpghub/cpghub-api/internal/models"
	"github.com/cpghub/cpghub-api/pkg/httpclient"
	"github.com/cpghub/cpghub-api/pkg/logger"
	"github.com/cpghub/cpghub-api/pkg/metrics"
	"github.com/cpghub/cpghub-api/pkg/recaptcha"
	"github.com/cpghub/cpghub-api/pkg/trigger"
)

// FeedbackService handles the public feedback form and signed-in connect
// requests. Both end in an email trigger; neither writes to the database.
type FeedbackService struct {
	verifier   *recaptcha.Verifier
	config     *config.Config
	httpClient httpclient.Client
}

// NewFeedbackService creates a new feedback service instance
func NewFeedbackService(verifier *recaptcha.Verifier, cfg *config.Config, httpClient httpclient.Client) *FeedbackService {
	return &FeedbackService{
		verifier:   verifier,
		config:     cfg,
		httpClient: httpClient,
	}
}

// SubmitFeedback verifies the captcha and forwards the feedback via the
// email trigger. The form is public, so the captcha is the only gate.
func (s *FeedbackService) SubmitFeedback(ctx context.Context, req *models.FeedbackRequest) (*models.FeedbackResponse, error) {
	if err := s.verifier.Verify(req.RecaptchaToken); err != nil {
		metrics.FeedbackSubmissions.WithLabelValues("captcha_failed").Inc()
		logger.Warn("Feedback captcha verification failed", zap.Error(err))
		return &models.FeedbackResponse{
			Success: false,
			Error:   "Captcha verification failed",
		}, nil
	}

	trigger.SendEmailAsync(s.config.EmailTriggers.FeedbackCreatedURL, models.EmailPayload{
		From:    req.Email,
		Subject: "Feedback from " + strings.TrimSpace(req.Name),
		Message: req.Message,
	}, s.httpClient)

	metrics.FeedbackSubmissions.WithLabelValues("success").Inc()
	logger.Info("Feedback submitted", zap.String("email", req.Email))

	return &models.FeedbackResponse{
		Success: true,
		Message: "Thanks for the feedback",
	}, nil
}

// SubmitConnectRequest forwards an introduction request from the signed-in
// user to a profile owner. No captcha; the session is the gate.
func (s *FeedbackService) SubmitConnectRequest(ctx context.Context, user *models.User, req *models.ConnectRequest) (*models.FeedbackResponse, error) {
	trigger.SendEmailAsync(s.config.EmailTriggers.ConnectRequestURL, models.EmailPayload{
		From:    user.Email,
		To:      []string{req.RecipientEmail},
		Subject: req.Subject,
		Message: req.Message + "\n\nSent by " + user.Name + " via CPG Hub",
	}, s.httpClient)

	logger.Info("Connect request submitted",
		zap.String("from", user.Email),
		zap.String("to", req.RecipientEmail))

	return &models.FeedbackResponse{
		Success: true,
		Message: "Your request has been sent",
	}, nil
}

// SubscribeNewsletter forwards a newsletter signup to the blast function.
func (s *FeedbackService) SubscribeNewsletter(ctx context.Context, req *models.NewsletterRequest) (*models.FeedbackResponse, error) {
	trigger.SendEmailAsync(s.config.EmailTriggers.NewsletterSignupURL, models.EmailPayload{
		From:    req.Email,
		Subject: "Newsletter signup",
		Message: req.Email + " subscribed to the newsletter",
	}, s.httpClient)

	logger.Info("Newsletter signup", zap.String("email", req.Email))

	return &models.FeedbackResponse{
		Success: true,
		Message: "You are subscribed",
	}, nil
}
