package publish

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/matzehuels/depgraphs/pkg/errors"
	"github.com/matzehuels/depgraphs/pkg/observability"
)

var contentTypes = map[string]string{
	".png": "image/png",
	".svg": "image/svg+xml",
}

// bucketAPI is the part of *minio.Client used to prepare the bucket.
type bucketAPI interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error
}

// S3Publisher uploads files to an S3-compatible bucket using minio-go.
// The bucket is created on first use if it does not exist.
type S3Publisher struct {
	client     *minio.Client
	buckets    bucketAPI
	bucket     string
	region     string
	retryDelay time.Duration

	mu    sync.Mutex
	ready bool // bucket known to exist
}

// NewS3Publisher creates a publisher from cfg.
// Endpoint, access key, secret key and bucket are required.
func NewS3Publisher(cfg S3Config) (*S3Publisher, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "s3 endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "s3 access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "s3 bucket is required")
	}
	region := firstNonEmpty(strings.TrimSpace(cfg.Region), DefaultRegion)

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.Secure(),
		Region: region,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "init s3 client")
	}

	return &S3Publisher{
		client:     client,
		buckets:    client,
		bucket:     bucket,
		region:     region,
		retryDelay: uploadRetryDelay,
	}, nil
}

// ensureBucket creates the bucket if needed. Success is remembered; a
// failure is not, so the next upload tries again.
func (p *S3Publisher) ensureBucket(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ready {
		return nil
	}

	err := retry(ctx, uploadAttempts, p.retryDelay, isTransient, func() error {
		exists, err := p.buckets.BucketExists(ctx, p.bucket)
		if err != nil || exists {
			return err
		}
		return p.buckets.MakeBucket(ctx, p.bucket, minio.MakeBucketOptions{Region: p.region})
	})
	if err != nil {
		return err
	}
	p.ready = true
	return nil
}

// Publish uploads the file at path to <runID>/<base name of path>.
// Transient failures are retried with exponential backoff.
func (p *S3Publisher) Publish(ctx context.Context, runID, path string) error {
	runID = strings.TrimSpace(runID)
	if runID == "" {
		return errors.New(errors.ErrCodePublishFailed, "run id is required")
	}
	if err := p.ensureBucket(ctx); err != nil {
		return errors.Wrap(errors.ErrCodePublishFailed, err, "ensure bucket %s", p.bucket)
	}

	key := ObjectKey(runID, path)
	start := time.Now()
	var info minio.UploadInfo
	err := retry(ctx, uploadAttempts, p.retryDelay, isTransient, func() error {
		var err error
		info, err = p.client.FPutObject(ctx, p.bucket, key, path, minio.PutObjectOptions{
			ContentType: ContentType(path),
		})
		return err
	})
	observability.Publish().OnPublish(ctx, key, info.Size, time.Since(start), err)
	if err != nil {
		return errors.Wrap(errors.ErrCodePublishFailed, err, "upload %s", key)
	}
	return nil
}

// ObjectKey returns the bucket key for a file published in a run.
func ObjectKey(runID, path string) string {
	return strings.TrimSpace(runID) + "/" + filepath.Base(path)
}

// ContentType returns the MIME type for a rendered file, by extension.
func ContentType(path string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Ensure S3Publisher implements Publisher.
var _ Publisher = (*S3Publisher)(nil)
