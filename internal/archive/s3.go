package archive

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/billingfox/ozonator/internal/config"
	"github.com/chartmuseum/storage"
)

// S3Store archives report files to an S3-compatible bucket.
type S3Store struct {
	backend storage.Backend
	prefix  string
}

// NewStore builds an archive store from config. An empty endpoint
// disables archiving.
func NewStore(cfg config.ArchiveConfig) (Store, error) {
	if cfg.Endpoint == "" {
		return NewNoopStore(), nil
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("archive credentials must be provided")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("archive bucket must be provided")
	}

	endpoint := cfg.Endpoint
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		scheme := "https"
		if !cfg.UseSSL {
			scheme = "http"
		}
		endpoint = fmt.Sprintf("%s://%s", scheme, strings.TrimPrefix(cfg.Endpoint, "//"))
	}

	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	os.Setenv("AWS_ACCESS_KEY_ID", cfg.AccessKey)
	os.Setenv("AWS_SECRET_ACCESS_KEY", cfg.SecretKey)
	os.Setenv("AWS_REGION", region)
	os.Setenv("AWS_DEFAULT_REGION", region)

	backend := storage.NewAmazonS3BackendWithOptions(
		cfg.Bucket,
		"", // no backend-level prefix, keys carry it
		region,
		endpoint,
		"",
		&storage.AmazonS3Options{
			S3ForcePathStyle: awsBool(true),
		},
	)

	return &S3Store{backend: backend, prefix: cfg.Prefix}, nil
}

// SaveReport uploads the raw report body and returns the object key.
func (s *S3Store) SaveReport(ctx context.Context, downloadedAt time.Time, body []byte) (string, error) {
	key := reportKey(s.prefix, downloadedAt)
	if err := s.backend.PutObject(key, body); err != nil {
		return "", fmt.Errorf("archive upload failed: %w", err)
	}
	return key, nil
}

var _ Store = (*S3Store)(nil)

func awsBool(v bool) *bool {
	return &v
}
