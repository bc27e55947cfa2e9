// Package memstore is an in-memory ports.Store. It backs the tests with the
// same semantics the services see from the real document store: generated
// ids, copy-on-read documents, and descending scans by field.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lojavirtual/api/internal/core/ports"
)

type Store struct {
	mu          sync.Mutex
	collections map[string]*collection
}

func New() *Store {
	return &Store{collections: make(map[string]*collection)}
}

func (s *Store) Collection(name string) ports.Collection {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.collections[name]
	if !ok {
		col = &collection{docs: make(map[string]ports.Document)}
		s.collections[name] = col
	}
	return col
}

func (s *Store) Close(context.Context) error { return nil }

type collection struct {
	mu   sync.RWMutex
	docs map[string]ports.Document
	ids  []string // insertion order, for store-native scans
}

func (c *collection) Add(_ context.Context, doc ports.Document) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := uuid.NewString()
	c.docs[id] = cloneDoc(doc)
	c.ids = append(c.ids, id)
	return id, nil
}

func (c *collection) All(_ context.Context) ([]ports.Document, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]ports.Document, 0, len(c.docs))
	for _, id := range c.ids {
		doc, ok := c.docs[id]
		if !ok {
			continue // deleted
		}
		out = append(out, withID(id, doc))
	}
	return out, nil
}

func (c *collection) AllByDescending(ctx context.Context, field string) ([]ports.Document, error) {
	docs, err := c.All(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return less(docs[j][field], docs[i][field])
	})
	return docs, nil
}

func (c *collection) Get(_ context.Context, id string) (ports.Document, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	doc, ok := c.docs[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return withID(id, doc), nil
}

func (c *collection) Set(_ context.Context, id string, fields ports.Document) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc, ok := c.docs[id]
	if !ok {
		return ports.ErrNotFound
	}
	for k, v := range fields {
		doc[k] = v
	}
	return nil
}

func (c *collection) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.docs[id]; !ok {
		return ports.ErrNotFound
	}
	delete(c.docs, id)
	return nil
}

func cloneDoc(doc ports.Document) ports.Document {
	out := make(ports.Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

func withID(id string, doc ports.Document) ports.Document {
	out := cloneDoc(doc)
	out["id"] = id
	return out
}

// less orders two field values ascending. Values of unsupported or mixed
// types compare as equal, which keeps the scan stable in insertion order.
func less(a, b any) bool {
	switch av := a.(type) {
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Before(bv)
		}
	case float64:
		if bv, ok := b.(float64); ok {
			return av < bv
		}
	case int:
		if bv, ok := b.(int); ok {
			return av < bv
		}
	case string:
		if bv, ok := b.(string); ok {
			return av < bv
		}
	}
	return false
}
