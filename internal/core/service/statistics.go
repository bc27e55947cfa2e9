package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lojavirtual/api/internal/core/domain/entity"
	"github.com/lojavirtual/api/internal/core/ports"
)

// StatisticsService derives the dashboard report from full scans of the
// orders, products and customers collections.
type StatisticsService struct {
	orders    ports.Collection
	products  ports.Collection
	customers ports.Collection
}

func NewStatisticsService(store ports.Store) *StatisticsService {
	return &StatisticsService{
		orders:    store.Collection("orders"),
		products:  store.Collection("products"),
		customers: store.Collection("customers"),
	}
}

// Compute reads the three collections and aggregates counts plus the summed
// order total. The reads are independent: there is no snapshot across
// collections, so a result may mix slightly different instants. Any read
// failure aborts the whole computation; no partial report is returned.
func (s *StatisticsService) Compute(ctx context.Context) (entity.Statistics, error) {
	orders, err := s.orders.All(ctx)
	if err != nil {
		return entity.Statistics{}, fmt.Errorf("read orders: %w", err)
	}
	products, err := s.products.All(ctx)
	if err != nil {
		return entity.Statistics{}, fmt.Errorf("read products: %w", err)
	}
	customers, err := s.customers.All(ctx)
	if err != nil {
		return entity.Statistics{}, fmt.Errorf("read customers: %w", err)
	}

	sales := decimal.Zero
	pending := 0
	for _, order := range orders {
		sales = sales.Add(orderTotal(order))
		if order[fieldStatus] == entity.StatusPending {
			pending++
		}
	}

	return entity.Statistics{
		TotalOrders:    len(orders),
		TotalSales:     sales.StringFixed(2),
		TotalProducts:  len(products),
		TotalCustomers: len(customers),
		PendingOrders:  pending,
	}, nil
}

// orderTotal reads the order's total field. A missing or non-numeric total
// contributes zero to the sum.
func orderTotal(order ports.Document) decimal.Decimal {
	switch v := order["total"].(type) {
	case float64:
		return decimal.NewFromFloat(v)
	case float32:
		return decimal.NewFromFloat32(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case json.Number:
		if d, err := decimal.NewFromString(v.String()); err == nil {
			return d
		}
	}
	return decimal.Zero
}
