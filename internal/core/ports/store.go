package ports

import (
	"context"
	"errors"
)

// Document is a single schemaless record. Reads return the store-generated
// identifier under the "id" key.
type Document = map[string]any

// ErrNotFound is reported by Get, Set and Delete when no document has the
// given id.
var ErrNotFound = errors.New("document not found")

// Collection is one named set of documents in the store.
type Collection interface {
	Add(ctx context.Context, doc Document) (string, error)
	All(ctx context.Context) ([]Document, error)
	AllByDescending(ctx context.Context, field string) ([]Document, error)
	Get(ctx context.Context, id string) (Document, error)
	Set(ctx context.Context, id string, fields Document) error
	Delete(ctx context.Context, id string) error
}

// Store hands out collections and owns the underlying client lifecycle.
type Store interface {
	Collection(name string) Collection
	Close(ctx context.Context) error
}
