package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"eligibility/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Uploader copies the written output file to an S3 bucket.
type S3Uploader struct {
	cfg config.S3Config
}

// NewS3Uploader creates an uploader for cfg.
func NewS3Uploader(cfg config.S3Config) *S3Uploader {
	return &S3Uploader{cfg: cfg}
}

// Key returns the object key used for the file at path.
func (u *S3Uploader) Key(path string) string {
	return u.cfg.Prefix + filepath.Base(path)
}

// Upload sends the file at path and returns the object location.
func (u *S3Uploader) Upload(ctx context.Context, path string) (string, error) {
	opts := []func(*awsConfig.LoadOptions) error{
		awsConfig.WithRegion(u.cfg.Region),
	}

	if u.cfg.AccessKey != "" {
		opts = append(opts, awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(u.cfg.AccessKey, u.cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if u.cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(u.cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	uploader := manager.NewUploader(client)

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open output for upload: %w", err)
	}
	defer file.Close()

	res, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(u.cfg.Bucket),
		Key:    aws.String(u.Key(path)),
		Body:   file,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", path, err)
	}

	return res.Location, nil
}
