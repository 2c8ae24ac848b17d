package ports

import (
	"context"
	"errors"

	"github.com/renanmachad/test-backend-thera-consulting/internal/domains/catalog/domain"
	"github.com/renanmachad/test-backend-thera-consulting/internal/shared/projection"
)

var ErrNotFound = errors.New("product not found")

// ProductProjection is a product plus its persistence timestamps.
type ProductProjection = projection.Projection[*domain.Product]

// Repository persists the product catalog.
type Repository interface {
	Save(ctx context.Context, product *domain.Product) (*ProductProjection, error)
	GetByID(ctx context.Context, id string) (*ProductProjection, error)
	// FindByIDs returns only the products whose ids matched; unknown ids are
	// silently omitted and callers must detect omissions themselves.
	FindByIDs(ctx context.Context, ids []string) ([]*ProductProjection, error)
	// UpdateStock replaces the stored quantity. Fails with ErrNotFound when the
	// id is unknown and with domain.ErrNegativeStock when quantity is negative.
	UpdateStock(ctx context.Context, id string, quantity int) (*ProductProjection, error)
	List(ctx context.Context) ([]*ProductProjection, error)
	Delete(ctx context.Context, id string) error
}
