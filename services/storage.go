package services

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rs/zerolog/log"
)

// ImageUploader stores an image and returns the public URL it is served from
type ImageUploader interface {
	Upload(ctx context.Context, filename string, body io.Reader) (string, error)
}

// PutObjectAPI is the slice of the S3 client the uploader needs
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3UploaderConfig struct {
	Bucket        string
	Region        string
	KeyPrefix     string
	PublicBaseURL string
}

type S3Uploader struct {
	client PutObjectAPI
	cfg    S3UploaderConfig
}

func NewS3Uploader(client PutObjectAPI, cfg S3UploaderConfig) *S3Uploader {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "portfolio"
	}
	return &S3Uploader{client: client, cfg: cfg}
}

// NewS3Client loads the default AWS credential chain for region
func NewS3Client(ctx context.Context, region string) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}
	return s3.NewFromConfig(awsCfg), nil
}

func (u *S3Uploader) Upload(ctx context.Context, filename string, body io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	key := path.Join(u.cfg.KeyPrefix, uuid.NewString()+ext)

	input := &s3.PutObjectInput{
		Bucket: aws.String(u.cfg.Bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType := mime.TypeByExtension(ext); contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := u.client.PutObject(ctx, input); err != nil {
		return "", errs.NewUploadError(err)
	}

	url := u.publicURL(key)
	log.Info().Str("bucket", u.cfg.Bucket).Str("key", key).Msg("uploaded image")
	return url, nil
}

func (u *S3Uploader) publicURL(key string) string {
	if base := strings.TrimRight(u.cfg.PublicBaseURL, "/"); base != "" {
		return base + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.cfg.Bucket, u.cfg.Region, key)
}
