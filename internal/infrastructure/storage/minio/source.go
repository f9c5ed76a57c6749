// Package minio reads dataset objects for ingestion. Dataset paths in
// configuration may be local files or object URIs of the form
// s3://bucket/key; this package serves the latter.
package minio

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/turtacn/NyayVandan/internal/config"
	"github.com/turtacn/NyayVandan/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NyayVandan/pkg/errors"
)

// objectGetter abstracts the SDK call so tests can serve canned objects.
type objectGetter func(ctx context.Context, bucket, key string) (io.ReadCloser, error)

// ObjectSource opens dataset objects by URI.
type ObjectSource struct {
	get    objectGetter
	logger logging.Logger
}

// NewObjectSource connects to the configured endpoint.
func NewObjectSource(cfg config.MinIOConfig, logger logging.Logger) (*ObjectSource, error) {
	if cfg.Endpoint == "" {
		return nil, errors.Validation("minio endpoint is required")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeObjectStoreError, "failed to create minio client")
	}

	get := func(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
		obj, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
		if err != nil {
			return nil, err
		}
		// GetObject is lazy; Stat surfaces missing objects now instead
		// of on first read.
		if _, err := obj.Stat(); err != nil {
			_ = obj.Close()
			return nil, err
		}
		return obj, nil
	}
	return &ObjectSource{get: get, logger: logger.Named("object_source")}, nil
}

// IsObjectURI reports whether path refers to object storage.
func IsObjectURI(path string) bool {
	return strings.HasPrefix(path, "s3://") || strings.HasPrefix(path, "minio://")
}

// ParseObjectURI splits s3://bucket/key into its parts.
func ParseObjectURI(uri string) (bucket, key string, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", errors.Wrap(err, errors.ErrCodeSourceUnreadable, "invalid object uri")
	}
	if u.Scheme != "s3" && u.Scheme != "minio" {
		return "", "", errors.New(errors.ErrCodeSourceUnreadable, "unsupported object uri scheme").
			WithDetail(uri)
	}
	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", "", errors.New(errors.ErrCodeSourceUnreadable, "object uri requires bucket and key").
			WithDetail(uri)
	}
	return bucket, key, nil
}

// Open returns a reader for the object named by uri. The caller closes
// it.
func (s *ObjectSource) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	bucket, key, err := ParseObjectURI(uri)
	if err != nil {
		return nil, err
	}
	rc, err := s.get(ctx, bucket, key)
	if err != nil {
		s.logger.Error("object fetch failed",
			logging.String("bucket", bucket),
			logging.String("key", key),
			logging.Err(err))
		return nil, errors.Wrap(err, errors.ErrCodeObjectStoreError, "failed to fetch object").
			WithDetail(uri)
	}
	return rc, nil
}
