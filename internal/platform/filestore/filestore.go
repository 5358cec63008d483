package filestore

import (
	"context"
	"fmt"
	"mime"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

const (
	KindLocal = "local"
	KindGCS   = "gcs"
)

type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Store reads attachment and image files by their stored path.
type Store interface {
	Open(ctx context.Context, p string) (*File, error)
	Close() error
}

type Config struct {
	Kind      string
	LocalRoot string

	Bucket string
	Prefix string
	// Credentials is either a JSON key or a path to one. Empty uses ADC.
	Credentials  string
	EmulatorHost string
	// MaxBytes caps the size of a single file; 0 means 25 MiB.
	MaxBytes int64
}

func New(ctx context.Context, cfg Config, log *logger.Logger) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Kind)) {
	case "", KindLocal:
		return NewLocal(cfg.LocalRoot, cfg.MaxBytes, log)
	case KindGCS:
		return NewGCS(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unsupported file store %q", cfg.Kind)
	}
}

const defaultMaxBytes int64 = 25 << 20

func maxBytes(n int64) int64 {
	if n <= 0 {
		return defaultMaxBytes
	}
	return n
}

// cleanKey normalizes a stored path to a relative slash path that cannot
// climb out of the store root.
func cleanKey(p string) (string, error) {
	p = strings.ReplaceAll(strings.TrimSpace(p), "\\", "/")
	if p == "" {
		return "", fmt.Errorf("empty file path")
	}
	key := strings.TrimPrefix(path.Clean("/"+p), "/")
	if key == "" || key == "." {
		return "", fmt.Errorf("invalid file path %q", p)
	}
	return key, nil
}

func newFile(key string, data []byte) *File {
	ct := mimetype.Detect(data).String()
	if base, _, _ := strings.Cut(ct, ";"); base == "application/octet-stream" || base == "text/plain" {
		if byExt := mime.TypeByExtension(path.Ext(key)); byExt != "" {
			ct = byExt
		}
	}
	return &File{Name: path.Base(key), ContentType: ct, Data: data}
}
