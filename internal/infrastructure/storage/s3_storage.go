// Package storage provides object storage implementations for file operations.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
	infraconfig "github.com/storefront/backend/internal/infrastructure/config"
)

// Ensure S3ObjectStorage implements ObjectStorage
var _ catalogapp.ObjectStorage = (*S3ObjectStorage)(nil)

// S3ObjectStorage stores product thumbnails in an S3-compatible bucket
// (AWS S3, MinIO, RustFS, etc.)
type S3ObjectStorage struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
	logger        *zap.Logger
}

// S3ObjectStorageOption is a functional option for configuring S3ObjectStorage
type S3ObjectStorageOption func(*S3ObjectStorage)

// WithLogger sets a custom logger for S3ObjectStorage
func WithLogger(logger *zap.Logger) S3ObjectStorageOption {
	return func(s *S3ObjectStorage) {
		s.logger = logger
	}
}

// NewS3ObjectStorage creates a new S3ObjectStorage from configuration.
func NewS3ObjectStorage(cfg *infraconfig.StorageConfig, opts ...S3ObjectStorageOption) (*S3ObjectStorage, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.AccessKeyID == "" {
		return nil, errors.New("storage access key is required")
	}
	if cfg.SecretAccessKey == "" {
		return nil, errors.New("storage secret key is required")
	}

	endpoint := cfg.Endpoint
	if endpoint != "" {
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "https://" + endpoint
		}
		if _, err := url.Parse(endpoint); err != nil {
			return nil, fmt.Errorf("invalid storage endpoint: %w", err)
		}
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			// Custom endpoints (MinIO etc.) need path-style addressing
			o.UsePathStyle = true
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	storage := &S3ObjectStorage{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
		logger:        zap.NewNop(),
	}

	for _, opt := range opts {
		opt(storage)
	}

	return storage, nil
}

// EnsureBucket creates the bucket if it doesn't exist.
// Call this during application startup so uploads don't fail later.
func (s *S3ObjectStorage) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	s.logger.Info("Creating storage bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	return nil
}

// Upload stores the object and returns its public URL.
func (s *S3ObjectStorage) Upload(ctx context.Context, storageKey string, data []byte, contentType string) (string, error) {
	if storageKey == "" {
		return "", errors.New("storage key is required")
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(storageKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return s.objectURL(storageKey), nil
}

// Delete removes an object from storage.
func (s *S3ObjectStorage) Delete(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storageKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	return nil
}

// ObjectExists checks if an object exists in storage.
func (s *S3ObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}

	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storageKey),
	})
	if err != nil {
		var notFound *types.NotFound
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &notFound) || errors.As(err, &noSuchKey) {
			return false, nil
		}
		// Some S3-compatible services report not-found differently
		if strings.Contains(err.Error(), "NotFound") || strings.Contains(err.Error(), "NoSuchKey") {
			return false, nil
		}
		return false, fmt.Errorf("failed to check object existence: %w", err)
	}

	return true, nil
}

func (s *S3ObjectStorage) objectURL(storageKey string) string {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + storageKey
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, storageKey)
}

// GetBucket returns the bucket name
func (s *S3ObjectStorage) GetBucket() string {
	return s.bucket
}
