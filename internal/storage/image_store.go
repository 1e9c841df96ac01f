// Package storage uploads post images to an S3-compatible object store.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/segmentio/ksuid"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/config"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
)

const defaultRegion = "us-east-1"

// ImageStore writes images into a single bucket and returns their public URLs.
type ImageStore struct {
	client        *minio.Client
	bucket        string
	region        string
	publicBaseURL string
}

// NewImageStore creates a store for the configured bucket. The endpoint may
// be a bare host:port or a URL whose scheme decides TLS.
func NewImageStore(cfg *config.StorageSettings) (*ImageStore, error) {
	endpoint := cfg.Endpoint
	useSSL := cfg.UseSSL

	if strings.HasPrefix(endpoint, "http") {
		u, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("parse endpoint: %w", err)
		}
		endpoint = u.Host
		useSSL = u.Scheme == "https"
	}

	region := cfg.Region
	if region == "" {
		region = defaultRegion
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}

	bucket := cfg.Bucket
	if bucket == "" {
		bucket = constants.DefaultImageBucket
	}

	publicBaseURL := strings.TrimSuffix(cfg.PublicBaseURL, "/")
	if publicBaseURL == "" {
		scheme := "http"
		if useSSL {
			scheme = "https"
		}
		publicBaseURL = fmt.Sprintf("%s://%s/%s", scheme, endpoint, bucket)
	}

	return &ImageStore{
		client:        client,
		bucket:        bucket,
		region:        region,
		publicBaseURL: publicBaseURL,
	}, nil
}

// EnsureBucket creates the bucket when it does not exist yet.
func (s *ImageStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("bucket exists %s: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return fmt.Errorf("create bucket %s: %w", s.bucket, err)
		}
	}
	return nil
}

// Upload stores the image under a fresh key and returns its public URL.
// ext is the file extension without the dot.
func (s *ImageStore) Upload(ctx context.Context, r io.Reader, size int64, contentType, ext string) (string, error) {
	objectKey := NewObjectKey(ext)

	ctx, cancel := context.WithTimeout(ctx, constants.ImageUploadTimeout)
	defer cancel()

	_, err := s.client.PutObject(ctx, s.bucket, objectKey, r, size, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: fmt.Sprintf("max-age=%d", constants.ImageCacheControlAge),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	return s.PublicURL(objectKey), nil
}

// PublicURL returns the URL at which objectKey is served.
func (s *ImageStore) PublicURL(objectKey string) string {
	return s.publicBaseURL + "/" + objectKey
}

// NewObjectKey returns posts/<ksuid>.<ext>. KSUIDs sort by creation time.
func NewObjectKey(ext string) string {
	return path.Join(constants.DefaultImagePrefix, ksuid.New().String()+"."+ext)
}
