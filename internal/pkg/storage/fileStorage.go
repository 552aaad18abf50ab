package storage

import (
	"io"
	"os"
	"path/filepath"
)

// FileStorage keeps downloaded images under a base directory.
type FileStorage interface {
	Save(path string, data io.Reader) error
	Exists(path string) bool
	Path(path string) string
}

type fileStorage struct {
	basePath string
}

func NewFileStorage(basePath string) FileStorage {
	return &fileStorage{basePath: basePath}
}

func (s *fileStorage) Save(path string, data io.Reader) error {
	fullPath := s.Path(path)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(file, data)
	return err
}

func (s *fileStorage) Exists(path string) bool {
	_, err := os.Stat(s.Path(path))
	return !os.IsNotExist(err)
}

// Path resolves path against the storage root.
func (s *fileStorage) Path(path string) string {
	return filepath.Join(s.basePath, path)
}
