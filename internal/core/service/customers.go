package service

import (
	"context"
	"fmt"
	"time"

	"github.com/lojavirtual/api/internal/core/ports"
)

const fieldRegistrationDate = "registrationDate"

// CustomerService persists customer records. Customers are schemaless: every
// client-supplied field is stored as-is, plus a registration timestamp set
// once, server-side, at creation.
type CustomerService struct {
	customers ports.Collection
}

func NewCustomerService(store ports.Store) *CustomerService {
	return &CustomerService{customers: store.Collection("customers")}
}

// Create stores the customer and returns the generated id.
func (s *CustomerService) Create(ctx context.Context, fields ports.Document) (string, error) {
	doc := make(ports.Document, len(fields)+1)
	for k, v := range fields {
		doc[k] = v
	}
	doc[fieldRegistrationDate] = time.Now().UTC()

	id, err := s.customers.Add(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("create customer: %w", err)
	}
	return id, nil
}

// List returns every customer, newest first.
func (s *CustomerService) List(ctx context.Context) ([]ports.Document, error) {
	return s.customers.AllByDescending(ctx, fieldRegistrationDate)
}
