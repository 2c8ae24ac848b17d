package application

import (
	"context"

	"github.com/renanmachad/test-backend-thera-consulting/internal/domains/catalog/domain"
	"github.com/renanmachad/test-backend-thera-consulting/internal/domains/catalog/ports"
)

// Service orchestrates the catalog bounded context use cases.
type Service struct {
	repo ports.Repository
}

// NewService wires the catalog service with its dependencies.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// Create persists a new product aggregate.
func (s *Service) Create(ctx context.Context, input ports.CreateProductInput) (*ports.ProductProjection, error) {
	product, err := domain.NewProduct("", input.Name, input.Category, input.Description, input.Price, input.QuantityStock)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// GetByID loads a single product.
func (s *Service) GetByID(ctx context.Context, id string) (*ports.ProductProjection, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns the catalog, most recently created first.
func (s *Service) List(ctx context.Context) ([]*ports.ProductProjection, error) {
	return s.repo.List(ctx)
}

// Update applies a partial mutation to an existing product.
func (s *Service) Update(ctx context.Context, id string, input ports.UpdateProductInput) (*ports.ProductProjection, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	product := current.Entity
	if input.Name != nil {
		if err := product.Rename(*input.Name); err != nil {
			return nil, mapError(err)
		}
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		if err := product.ChangePrice(*input.Price); err != nil {
			return nil, mapError(err)
		}
	}
	if input.QuantityStock != nil {
		if err := product.SetStock(*input.QuantityStock); err != nil {
			return nil, mapError(err)
		}
	}
	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Delete removes a product from the catalog. Order line items referencing it
// keep their snapshotted price, so historical orders stay valid.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

var _ ports.Service = (*Service)(nil)
