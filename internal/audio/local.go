package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore writes replies under a directory the HTTP server exposes at
// /media.
type LocalStore struct {
	dir       string
	publicURL string
}

func NewLocalStore(dir, publicURL string) *LocalStore {
	return &LocalStore{dir: dir, publicURL: publicURL}
}

func (s *LocalStore) Put(
	ctx context.Context,
	key string,
	data []byte,
	contentType string,
) (string, error) {

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create audio dir: %w", err)
	}

	path := filepath.Join(s.dir, key)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write audio file: %w", err)
	}

	base := s.publicURL
	if base == "" {
		base = "/media"
	}
	return fmt.Sprintf("%s/%s", base, key), nil
}

var _ Store = (*LocalStore)(nil)
