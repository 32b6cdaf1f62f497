package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Dias221467/Wallpaper_Hub/internal/config"
	"github.com/Dias221467/Wallpaper_Hub/pkg/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const bucketCheckTimeout = 5 * time.Second

// S3Store uploads images to an S3-compatible bucket.
type S3Store struct {
	client    *s3.Client
	uploader  *manager.Uploader
	bucket    string
	publicURL string
}

// NewS3Store connects to the bucket described by cfg and checks it exists.
func NewS3Store(ctx context.Context, cfg config.StorageConfig) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.S3UsePathStyle
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		}
	})

	checkCtx, cancel := context.WithTimeout(ctx, bucketCheckTimeout)
	defer cancel()
	if _, err := client.HeadBucket(checkCtx, &s3.HeadBucketInput{Bucket: aws.String(cfg.S3Bucket)}); err != nil {
		return nil, fmt.Errorf("bucket %q is not reachable: %w", cfg.S3Bucket, err)
	}

	logger.Log.WithField("bucket", cfg.S3Bucket).Info("Connected to S3 bucket")
	return &S3Store{
		client:    client,
		uploader:  manager.NewUploader(client),
		bucket:    cfg.S3Bucket,
		publicURL: s3PublicURL(cfg),
	}, nil
}

// s3PublicURL is the prefix that object keys are appended to.
func s3PublicURL(cfg config.StorageConfig) string {
	if cfg.S3PublicURL != "" {
		return strings.TrimRight(cfg.S3PublicURL, "/")
	}
	if cfg.S3Endpoint != "" {
		return strings.TrimRight(cfg.S3Endpoint, "/") + "/" + cfg.S3Bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
}

func (s *S3Store) Store(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to bucket %s: %w", key, s.bucket, err)
	}
	return s.publicURL + "/" + key, nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s from bucket %s: %w", key, s.bucket, err)
	}
	return nil
}
