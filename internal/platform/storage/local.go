package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ImageStore persists uploaded article images and returns the public
// reference stored on the record.
type ImageStore interface {
	Save(filename string, r io.Reader) (string, error)
}

// LocalImageStore writes files under a directory served as static content.
type LocalImageStore struct {
	dir    string
	prefix string
}

func NewLocalImageStore(dir, prefix string) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalImageStore{dir: dir, prefix: strings.TrimSuffix(prefix, "/")}, nil
}

// Save stores the content under a generated name, keeping only the
// original extension, and returns the public path.
func (s *LocalImageStore) Save(filename string, r io.Reader) (string, error) {
	name := uuid.NewString() + strings.ToLower(filepath.Ext(filename))

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return s.prefix + "/" + name, nil
}

// Dir is the directory backing the store, used for static file serving.
func (s *LocalImageStore) Dir() string {
	return s.dir
}
