package banners

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// urlPrefix is where the HTTP server mounts banner assets.
const urlPrefix = "/uploads/"

// LocalStore writes banners to a directory served as static assets.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &LocalStore{dir: dir}, nil
}

// Dir returns the directory the HTTP server should serve under /uploads.
func (s *LocalStore) Dir() string {
	return s.dir
}

func (s *LocalStore) Save(ctx context.Context, fileName, contentType string, data io.Reader) (string, error) {

	name := fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(fileName))

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("error creating banner file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, data); err != nil {
		return "", fmt.Errorf("error writing banner file: %w", err)
	}

	return urlPrefix + name, nil
}
