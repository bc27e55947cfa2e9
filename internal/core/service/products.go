package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/lojavirtual/api/internal/core/ports"
)

// ProductInput carries the raw textual form values of a product. Price and
// stock arrive as text and are coerced here; malformed numbers are rejected
// instead of being stored as garbage.
type ProductInput struct {
	Name        string
	Description string
	Price       string
	Stock       string
}

// ProductImage is an optional image attached when the product is created.
type ProductImage struct {
	Filename string
	Data     io.Reader
}

// ProductService persists product records and their images.
type ProductService struct {
	products ports.Collection
	files    ports.FileStorage
}

func NewProductService(store ports.Store, files ports.FileStorage) *ProductService {
	return &ProductService{products: store.Collection("products"), files: files}
}

// Create coerces the numeric fields, stores the optional image, and persists
// the product. imageUrl is null when no image was attached.
func (s *ProductService) Create(ctx context.Context, in ProductInput, image *ProductImage) (string, error) {
	price, stock, err := parseNumericFields(in)
	if err != nil {
		return "", err
	}

	var imageURL any
	if image != nil {
		path, err := s.files.Save(ctx, image.Filename, image.Data)
		if err != nil {
			return "", fmt.Errorf("store product image: %w", err)
		}
		imageURL = path
	}

	id, err := s.products.Add(ctx, ports.Document{
		"name":         in.Name,
		"description":  in.Description,
		"price":        price,
		"stock":        stock,
		"imageUrl":     imageURL,
		"creationDate": time.Now().UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("create product: %w", err)
	}
	return id, nil
}

// List returns all products in store-native order.
func (s *ProductService) List(ctx context.Context) ([]ports.Document, error) {
	return s.products.All(ctx)
}

// Update overwrites the four mutable fields. imageUrl and creationDate are
// never touched.
func (s *ProductService) Update(ctx context.Context, id string, in ProductInput) error {
	price, stock, err := parseNumericFields(in)
	if err != nil {
		return err
	}

	err = s.products.Set(ctx, id, ports.Document{
		"name":        in.Name,
		"description": in.Description,
		"price":       price,
		"stock":       stock,
	})
	if err != nil {
		return fmt.Errorf("update product %s: %w", id, err)
	}
	return nil
}

// Delete removes the product. Deleting an id that no longer exists is treated
// as success so the operation stays idempotent.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	err := s.products.Delete(ctx, id)
	if errors.Is(err, ports.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	return nil
}

func parseNumericFields(in ProductInput) (price float64, stock int, err error) {
	price, err = strconv.ParseFloat(in.Price, 64)
	if err != nil {
		return 0, 0, &ValidationError{Field: "price", Reason: "must be a number"}
	}
	stock, err = strconv.Atoi(in.Stock)
	if err != nil {
		return 0, 0, &ValidationError{Field: "stock", Reason: "must be an integer"}
	}
	return price, stock, nil
}
