package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const DefaultMaxBytes = 16 << 20

var (
	ErrTooLarge    = errors.New("upload exceeds size limit")
	ErrInvalidName = errors.New("invalid file name")
)

// FileStore keeps uploaded assets in a single directory under generated
// names.
type FileStore struct {
	dir      string
	maxBytes int64
}

func NewFileStore(dir string, maxBytes int64) (*FileStore, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &FileStore{dir: dir, maxBytes: maxBytes}, nil
}

func (s *FileStore) Dir() string {
	return s.dir
}

// Save writes r to a new file named <uuid>.<ext> and returns the name. A
// body over the size cap is removed and ErrTooLarge returned.
func (s *FileStore) Save(ext string, r io.Reader) (string, error) {
	name := uuid.New().String() + "." + strings.TrimPrefix(strings.ToLower(ext), ".")
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	n, copyErr := io.Copy(f, io.LimitReader(r, s.maxBytes+1))
	closeErr := f.Close()

	switch {
	case copyErr != nil:
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", copyErr)
	case closeErr != nil:
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to close file: %w", closeErr)
	case n > s.maxBytes:
		_ = os.Remove(path)
		return "", ErrTooLarge
	}

	return name, nil
}

// Delete removes the named file. A missing file is not an error.
func (s *FileStore) Delete(name string) error {
	path, err := s.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *FileStore) Exists(name string) bool {
	path, err := s.resolve(name)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (s *FileStore) Path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

func (s *FileStore) resolve(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", ErrInvalidName
	}
	return filepath.Join(s.dir, name), nil
}
