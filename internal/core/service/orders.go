package service

import (
	"context"
	"fmt"
	"time"

	"github.com/lojavirtual/api/internal/core/domain/entity"
	"github.com/lojavirtual/api/internal/core/ports"
)

const (
	fieldOrderDate = "orderDate"
	fieldStatus    = "status"
)

// OrderService persists order records. Orders are schemaless apart from two
// server-owned fields: every order starts in entity.StatusPending and carries
// an order timestamp set once at creation.
type OrderService struct {
	orders ports.Collection
}

func NewOrderService(store ports.Store) *OrderService {
	return &OrderService{orders: store.Collection("orders")}
}

// Create stores the order. A status supplied by the client is discarded: new
// orders always start pending.
func (s *OrderService) Create(ctx context.Context, fields ports.Document) (string, error) {
	doc := make(ports.Document, len(fields)+2)
	for k, v := range fields {
		doc[k] = v
	}
	doc[fieldStatus] = entity.StatusPending
	doc[fieldOrderDate] = time.Now().UTC()

	id, err := s.orders.Add(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("create order: %w", err)
	}
	return id, nil
}

// List returns every order, newest first.
func (s *OrderService) List(ctx context.Context) ([]ports.Document, error) {
	return s.orders.AllByDescending(ctx, fieldOrderDate)
}

// UpdateStatus overwrites only the status field. The status set is open: any
// non-empty string is accepted.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) error {
	if status == "" {
		return &ValidationError{Field: "status", Reason: "must not be empty"}
	}
	if err := s.orders.Set(ctx, id, ports.Document{fieldStatus: status}); err != nil {
		return fmt.Errorf("update order %s status: %w", id, err)
	}
	return nil
}
