package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/rafsal3/VideoGen-MVP-backend/pkg/config"
)

// MinIOPublisher uploads finished pipeline artifacts (resolved images,
// rendered videos) to object storage under per-run prefixes
type MinIOPublisher struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinIOPublisher creates a new MinIO publisher
func NewMinIOPublisher(cfg *config.StorageConfig) (*MinIOPublisher, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	p := &MinIOPublisher{
		client:    minioClient,
		bucket:    cfg.BucketName,
		publicURL: cfg.PublicURL,
	}

	ctx := context.Background()
	if err := p.ensureBucketWithPolicy(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return p, nil
}

// ensureBucketWithPolicy ensures bucket exists and has public read policy
// so rendered artifacts are directly downloadable
func (p *MinIOPublisher) ensureBucketWithPolicy(ctx context.Context) error {
	exists, err := p.client.BucketExists(ctx, p.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = p.client.MakeBucket(ctx, p.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	policy := fmt.Sprintf(`{
		"Version": "2012-10-17",
		"Statement": [
			{
				"Effect": "Allow",
				"Principal": {"AWS": ["*"]},
				"Action": ["s3:GetObject"],
				"Resource": ["arn:aws:s3:::%s/*"]
			}
		]
	}`, p.bucket)

	if err := p.client.SetBucketPolicy(ctx, p.bucket, policy); err != nil {
		return fmt.Errorf("failed to set bucket policy: %w", err)
	}

	return nil
}

// PublishFile uploads a local artifact and returns an accessible URL.
// Object names carry the run id prefix so runs never collide.
func (p *MinIOPublisher) PublishFile(ctx context.Context, localPath, objectName, contentType string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open artifact: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat artifact: %w", err)
	}

	_, err = p.client.PutObject(ctx, p.bucket, objectName, f, info.Size(), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload artifact: %w", err)
	}

	return p.objectURL(ctx, objectName)
}

// PublishVideo uploads a rendered video under the run prefix
func (p *MinIOPublisher) PublishVideo(ctx context.Context, runID, localPath string) (string, error) {
	objectName := fmt.Sprintf("runs/%s/video/%s", runID, filepath.Base(localPath))
	return p.PublishFile(ctx, localPath, objectName, "video/mp4")
}

// PublishAsset uploads a resolved image asset under the run prefix
func (p *MinIOPublisher) PublishAsset(ctx context.Context, runID, localPath string) (string, error) {
	objectName := fmt.Sprintf("runs/%s/assets/%s", runID, filepath.Base(localPath))
	return p.PublishFile(ctx, localPath, objectName, "image/jpeg")
}

// objectURL builds an accessible URL for an uploaded object
func (p *MinIOPublisher) objectURL(ctx context.Context, objectName string) (string, error) {
	if p.publicURL != "" {
		return fmt.Sprintf("%s/%s/%s", p.publicURL, p.bucket, objectName), nil
	}

	url, err := p.client.PresignedGetObject(ctx, p.bucket, objectName, 7*24*time.Hour, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return url.String(), nil
}
