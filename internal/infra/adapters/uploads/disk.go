package uploads

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
)

// PublicPrefix is the URL path the router serves stored files from.
const PublicPrefix = "/uploads"

// DiskStorage writes uploaded files to a local directory. Filenames are a
// fresh UUID plus the original extension, so concurrent uploads of files
// with the same name can never overwrite each other.
type DiskStorage struct {
	dir string
}

// NewDiskStorage creates the directory if needed and returns the storage.
func NewDiskStorage(dir string) (*DiskStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("uploads: create dir %s: %w", dir, err)
	}
	return &DiskStorage{dir: dir}, nil
}

// Dir returns the directory files are written to.
func (d *DiskStorage) Dir() string { return d.dir }

// Save stores the stream under a unique name and returns the public path.
func (d *DiskStorage) Save(_ context.Context, originalName string, r io.Reader) (string, error) {
	name := uuid.NewString() + filepath.Ext(originalName)

	f, err := os.Create(filepath.Join(d.dir, name))
	if err != nil {
		return "", fmt.Errorf("uploads: create %s: %w", name, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("uploads: write %s: %w", name, err)
	}
	return path.Join(PublicPrefix, name), nil
}
