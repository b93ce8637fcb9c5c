package trigger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cpghub/cpghub-api/internal/models"
	"github.com/cpghub/cpghub-api/pkg/httpclient"
	"github.com/cpghub/cpghub-api/pkg/logger"
	"github.com/cpghub/cpghub-api/pkg/retry"
)

// SendEmailAsync posts an email payload to a mail function URL without
// blocking the caller. Delivery failures are logged, never surfaced.
func SendEmailAsync(functionURL string, payload models.EmailPayload, httpClient httpclient.Client) {
	if functionURL == "" {
		// No function URL configured, skip silently
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		body, err := json.Marshal(payload)
		if err != nil {
			logger.Error("Failed to marshal email payload",
				zap.Error(err),
				zap.String("subject", payload.Subject))
			return
		}

		err = retry.Do(ctx, retry.EmailConfig(), "send_email", func() error {
			resp, postErr := httpClient.Post(functionURL, "application/json", bytes.NewReader(body))
			if postErr != nil {
				return postErr
			}
			defer resp.Body.Close()

			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				return fmt.Errorf("email function returned status %d", resp.StatusCode)
			}
			return nil
		})

		if err != nil {
			logger.Error("Failed to deliver email",
				zap.Error(err),
				zap.String("url", functionURL),
				zap.String("subject", payload.Subject))
			return
		}

		logger.Info("Email delivered",
			zap.String("url", functionURL),
			zap.String("subject", payload.Subject),
			zap.Strings("to", payload.To))
	}()
}
