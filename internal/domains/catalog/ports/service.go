package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// CreateProductInput carries the attributes required to add a catalog entry.
type CreateProductInput struct {
	Name          string
	Category      string
	Description   string
	Price         decimal.Decimal
	QuantityStock int
}

// UpdateProductInput carries a partial catalog mutation; nil fields are untouched.
type UpdateProductInput struct {
	Name          *string
	Category      *string
	Description   *string
	Price         *decimal.Decimal
	QuantityStock *int
}

// Service exposes catalog use cases to adapters.
type Service interface {
	Create(ctx context.Context, input CreateProductInput) (*ProductProjection, error)
	GetByID(ctx context.Context, id string) (*ProductProjection, error)
	List(ctx context.Context) ([]*ProductProjection, error)
	Update(ctx context.Context, id string, input UpdateProductInput) (*ProductProjection, error)
	Delete(ctx context.Context, id string) error
}
