package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/labstack/gommon/log"
)

// LocalStore keeps files in a single directory on disk.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &LocalStore{dir: dir}, nil
}

func (l *LocalStore) Save(_ context.Context, name string, r io.Reader, _ string) error {
	path, err := l.path(name)
	if err != nil {
		return err
	}

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}

	if _, err := io.Copy(dst, r); err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return dst.Close()
}

func (l *LocalStore) Open(_ context.Context, name string) (io.ReadCloser, error) {
	path, err := l.path(name)
	if err != nil {
		return nil, ErrNotFound
	}

	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warnf("stored file %s is missing from %s", name, l.dir)
		return nil, ErrNotFound
	}
	return file, err
}

// path rejects anything that is not a bare file name, so a crafted
// reference cannot escape the upload directory.
func (l *LocalStore) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	return filepath.Join(l.dir, name), nil
}
