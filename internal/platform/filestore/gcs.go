package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	apperr "github.com/yungbote/deliverysla-backend/internal/pkg/errors"
	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

type gcsStore struct {
	log    *logger.Logger
	client *storage.Client
	bucket string
	prefix string
	max    int64
}

func NewGCS(ctx context.Context, cfg Config, log *logger.Logger) (Store, error) {
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("gcs file store bucket required")
	}
	client, err := newStorageClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &gcsStore{
		log:    log.With("store", "GCSFileStore", "bucket", bucket),
		client: client,
		bucket: bucket,
		prefix: strings.Trim(strings.TrimSpace(cfg.Prefix), "/"),
		max:    maxBytes(cfg.MaxBytes),
	}, nil
}

func newStorageClient(ctx context.Context, cfg Config) (*storage.Client, error) {
	if endpoint := strings.TrimRight(strings.TrimSpace(cfg.EmulatorHost), "/"); endpoint != "" {
		_ = os.Setenv("STORAGE_EMULATOR_HOST", endpoint)
		return storage.NewClient(ctx, option.WithoutAuthentication())
	}
	opts := []option.ClientOption{option.WithScopes(storage.ScopeReadOnly)}
	if creds := strings.TrimSpace(cfg.Credentials); creds != "" {
		if strings.HasPrefix(creds, "{") {
			opts = append(opts, option.WithCredentialsJSON([]byte(creds)))
		} else {
			opts = append(opts, option.WithCredentialsFile(creds))
		}
	}
	return storage.NewClient(ctx, opts...)
}

func (s *gcsStore) objectKey(p string) (string, error) {
	key, err := cleanKey(p)
	if err != nil {
		return "", err
	}
	if s.prefix != "" {
		key = path.Join(s.prefix, key)
	}
	return key, nil
}

func (s *gcsStore) Open(ctx context.Context, p string) (*File, error) {
	key, err := s.objectKey(p)
	if err != nil {
		return nil, err
	}
	ctx2, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	r, err := s.client.Bucket(s.bucket).Object(key).NewReader(ctx2)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("%w: object %q", apperr.ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to open GCS reader: %w", err)
	}
	defer r.Close()

	if r.Attrs.Size > s.max {
		return nil, fmt.Errorf("object %q exceeds %d bytes", key, s.max)
	}
	data, err := io.ReadAll(io.LimitReader(r, s.max+1))
	if err != nil {
		return nil, fmt.Errorf("read object %q: %w", key, err)
	}
	f := newFile(key, data)
	if ct := strings.TrimSpace(r.Attrs.ContentType); ct != "" && ct != "application/octet-stream" {
		f.ContentType = ct
	}
	return f, nil
}

func (s *gcsStore) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}
