package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/BruksfildServices01/barber-booking/internal/config"
)

// ObjectPutter is the part of *s3.Client the uploader needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

func NewS3Client(cfg *config.Config) *s3.Client {
	opts := s3.Options{
		Region: cfg.S3Region,
	}
	if cfg.AWSKeyID != "" {
		opts.Credentials = aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.AWSKeyID, cfg.AWSSecret, ""),
		)
	}
	if cfg.S3Endpoint != "" {
		// MinIO and other S3-compatible servers
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts)
}

type Uploader struct {
	client ObjectPutter
	bucket string
	prefix string
	now    func() time.Time
}

func NewUploader(client ObjectPutter, bucket, prefix string) *Uploader {
	return &Uploader{client: client, bucket: bucket, prefix: prefix, now: time.Now}
}

// UploadExport writes the current export as JSON and returns the object key.
func (s *Service) UploadExport(ctx context.Context, up *Uploader) (string, error) {
	if up == nil {
		return "", fmt.Errorf("s3 export is not configured")
	}

	db, err := s.Export(ctx)
	if err != nil {
		return "", err
	}

	body, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode export: %w", err)
	}

	key := up.prefix + "barber-db-" + up.now().UTC().Format("20060102T150405Z") + ".json"
	if _, err := up.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(up.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	}); err != nil {
		return "", fmt.Errorf("upload export: %w", err)
	}
	return key, nil
}
