package ports

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/renanmachad/test-backend-thera-consulting/internal/domains/orders/domain"
	"github.com/renanmachad/test-backend-thera-consulting/internal/shared/projection"
)

var ErrNotFound = errors.New("order not found")

// OrderProjection is an order plus its persistence timestamps.
type OrderProjection = projection.Projection[*domain.Order]

// Repository persists orders and their line items.
type Repository interface {
	// Create persists the order and all line items in one atomic unit.
	Create(ctx context.Context, status domain.Status, lineItems []domain.LineItem) (*OrderProjection, error)
	GetByID(ctx context.Context, id string) (*OrderProjection, error)
	// List returns all orders with line items, most recently created first.
	List(ctx context.Context) ([]*OrderProjection, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) (*OrderProjection, error)
	// ComputeTotal sums price_at_purchase times quantity over the order's line
	// items. Returns zero when the order is unknown or has no line items.
	ComputeTotal(ctx context.Context, id string) (decimal.Decimal, error)
}
