package ports

import (
	"context"

	"github.com/renanmachad/test-backend-thera-consulting/internal/domains/orders/domain"
)

// OrderItemInput is one requested product-quantity pair.
type OrderItemInput struct {
	ProductID string
	Quantity  int
}

// CreateOrderInput carries the requested line items plus an optional
// client-supplied idempotency key.
type CreateOrderInput struct {
	Items          []OrderItemInput
	IdempotencyKey string
}

// UpdateOrderInput carries an optional status change; nil means no change.
type UpdateOrderInput struct {
	Status *domain.Status
}

// Service exposes the order lifecycle use cases to adapters.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*OrderProjection, error)
	GetByID(ctx context.Context, id string) (*OrderProjection, error)
	List(ctx context.Context) ([]*OrderProjection, error)
	Update(ctx context.Context, id string, input UpdateOrderInput) (*OrderProjection, error)
	Remove(ctx context.Context, id string) error
}
