package ports

import (
	"context"
	"io"
)

// FileStorage persists one uploaded file under a unique name and returns the
// public path it will be served from.
type FileStorage interface {
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)
}
