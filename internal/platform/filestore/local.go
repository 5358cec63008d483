package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	apperr "github.com/yungbote/deliverysla-backend/internal/pkg/errors"
	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

type localStore struct {
	log  *logger.Logger
	root string
	max  int64
}

func NewLocal(root string, limit int64, log *logger.Logger) (Store, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("local file store root required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	return &localStore{log: log.With("store", "LocalFileStore", "root", abs), root: abs, max: maxBytes(limit)}, nil
}

func (s *localStore) Open(ctx context.Context, p string) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key, err := cleanKey(p)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(s.root, filepath.FromSlash(key)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: file %q", apperr.ErrNotFound, key)
		}
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.max+1))
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", key, err)
	}
	if int64(len(data)) > s.max {
		return nil, fmt.Errorf("file %q exceeds %d bytes", key, s.max)
	}
	return newFile(key, data), nil
}

func (s *localStore) Close() error { return nil }
