// Package blob issues short-lived signed URLs against an S3-compatible
// object store. The bucket is private; every read or write happens through
// a presigned URL scoped to one object and one action.
package blob

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/we-edu/enrollment-api/internal/config"
)

const uploadCacheControl = "public, max-age=31536000, immutable"

// S3Signer produces presigned upload and download URLs for a single bucket.
type S3Signer struct {
	presign     *s3.PresignClient
	bucket      string
	uploadTTL   time.Duration
	downloadTTL time.Duration
}

// New constructs an S3Signer from the storage configuration. Credentials
// come from the default AWS chain; Endpoint and PathStyle support
// S3-compatible stores such as MinIO.
func New(ctx context.Context, cfg config.StorageConfig) (*S3Signer, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load storage credentials: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return &S3Signer{
		presign:     s3.NewPresignClient(client),
		bucket:      cfg.Bucket,
		uploadTTL:   cfg.UploadURLTTL,
		downloadTTL: cfg.DownloadURLTTL,
	}, nil
}

// SignUpload returns a write-scoped presigned URL for key. The grant pins
// the content type, sets long-lived immutable caching, and records the
// document side as object metadata.
func (s *S3Signer) SignUpload(ctx context.Context, key, contentType, side string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:       &s.bucket,
		Key:          &key,
		ContentType:  &contentType,
		CacheControl: aws.String(uploadCacheControl),
		Metadata:     map[string]string{"side": side},
	}
	out, err := s.presign.PresignPutObject(ctx, input, func(po *s3.PresignOptions) {
		po.Expires = s.uploadTTL
	})
	if err != nil {
		return "", fmt.Errorf("presign upload for %s: %w", key, err)
	}
	return out.URL, nil
}

// SignDownload returns a read-scoped presigned URL for a previously issued
// key.
func (s *S3Signer) SignDownload(ctx context.Context, key string) (string, error) {
	input := &s3.GetObjectInput{Bucket: &s.bucket, Key: &key}
	out, err := s.presign.PresignGetObject(ctx, input, func(po *s3.PresignOptions) {
		po.Expires = s.downloadTTL
	})
	if err != nil {
		return "", fmt.Errorf("presign download for %s: %w", key, err)
	}
	return out.URL, nil
}
