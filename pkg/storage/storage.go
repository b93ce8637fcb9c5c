package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cpghub/cpghub-api/pkg/logger"
	"github.com/cpghub/cpghub-api/pkg/metrics"
)

// Kind selects the MIME allow-list and key prefix for an upload.
type Kind string

const (
	KindLogo           Kind = "logo"            // png/jpg/jpeg
	KindResume         Kind = "resume"          // pdf/doc/docx
	KindJobDescription Kind = "job-description" // pdf only
)

const maxUploadSize = 10 * 1024 * 1024 // 10MB

var allowedTypes = map[Kind]map[string]bool{
	KindLogo: {
		"image/png":  true,
		"image/jpg":  true,
		"image/jpeg": true,
	},
	KindResume: {
		"application/pdf":    true,
		"application/msword": true,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	},
	KindJobDescription: {
		"application/pdf": true,
	},
}

// Client is an S3-compatible object storage client for form uploads.
type Client struct {
	s3Client *s3.Client
	bucket   string
	endpoint string
}

// NewClient creates an object storage client against an S3-compatible
// endpoint.
func NewClient(accessKeyID, secretAccessKey, bucket, endpoint, region string) (*Client, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("storage endpoint is required")
	}
	if region == "" {
		region = "us-east-1"
	}

	s3Client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(endpoint),
		Credentials: credentials.NewStaticCredentialsProvider(
			accessKeyID,
			secretAccessKey,
			"",
		),
	})

	logger.Info("Object storage client initialized",
		zap.String("bucket", bucket),
		zap.String("endpoint", endpoint),
		zap.String("region", region),
	)

	return &Client{
		s3Client: s3Client,
		bucket:   bucket,
		endpoint: endpoint,
	}, nil
}

// ValidateContentType checks the declared MIME type against the allow-list
// for the upload kind.
func (c *Client) ValidateContentType(kind Kind, contentType string) error {
	allowed, ok := allowedTypes[kind]
	if !ok {
		return fmt.Errorf("unknown upload kind: %s", kind)
	}
	if !allowed[strings.ToLower(contentType)] {
		return fmt.Errorf("invalid file type %s for %s upload", contentType, kind)
	}
	return nil
}

// ValidateSize decodes the payload to enforce the size cap before upload.
func (c *Client) ValidateSize(data string) error {
	decoded, err := decodePayload(data)
	if err != nil {
		return err
	}
	if len(decoded) > maxUploadSize {
		return fmt.Errorf("file too large: %d bytes (max %d bytes)", len(decoded), maxUploadSize)
	}
	return nil
}

// ObjectKey builds a collision-free key preserving the original extension.
func (c *Client) ObjectKey(kind Kind, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return fmt.Sprintf("%s/%s%s", kind, uuid.NewString(), ext)
}

// Upload validates and stores a base64 payload (optionally a data: URI) and
// returns the publicly addressable URL.
func (c *Client) Upload(ctx context.Context, kind Kind, data, fileName, contentType string) (string, error) {
	start := time.Now()
	operation := "upload"

	if err := c.ValidateContentType(kind, contentType); err != nil {
		return "", err
	}

	decoded, err := decodePayload(data)
	if err != nil {
		metrics.StorageRequestDuration.WithLabelValues(operation, "error").Observe(metrics.MeasureDuration(start))
		metrics.StorageRequestTotal.WithLabelValues(operation, "error").Inc()
		return "", fmt.Errorf("failed to decode upload payload: %w", err)
	}
	if len(decoded) > maxUploadSize {
		return "", fmt.Errorf("file too large: %d bytes (max %d bytes)", len(decoded), maxUploadSize)
	}

	key := c.ObjectKey(kind, fileName)

	_, err = c.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(decoded),
		ContentType: aws.String(contentType),
	})

	duration := metrics.MeasureDuration(start)

	if err != nil {
		metrics.StorageRequestDuration.WithLabelValues(operation, "error").Observe(duration)
		metrics.StorageRequestTotal.WithLabelValues(operation, "error").Inc()
		logger.LogAPICall("object_storage", operation, "error", duration,
			zap.Error(err),
			zap.String("key", key),
		)
		return "", fmt.Errorf("failed to upload %s: %w", kind, err)
	}

	metrics.StorageRequestDuration.WithLabelValues(operation, "success").Observe(duration)
	metrics.StorageRequestTotal.WithLabelValues(operation, "success").Inc()
	logger.LogAPICall("object_storage", operation, "success", duration,
		zap.String("key", key),
		zap.Int("size_bytes", len(decoded)),
	)

	return fmt.Sprintf("%s/%s/%s", c.endpoint, c.bucket, key), nil
}

// decodePayload handles both raw base64 and data URI format
// (data:image/png;base64,...).
func decodePayload(data string) ([]byte, error) {
	if strings.HasPrefix(data, "data:") {
		parts := strings.SplitN(data, ",", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid data URI format")
		}
		data = parts[1]
	}
	return base64.StdEncoding.DecodeString(data)
}
