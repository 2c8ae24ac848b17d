package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/renanmachad/test-backend-thera-consulting/internal/domains/catalog/domain"
	"github.com/renanmachad/test-backend-thera-consulting/internal/domains/catalog/ports"
	"github.com/renanmachad/test-backend-thera-consulting/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

type record struct {
	product   domain.Product
	createdAt time.Time
	updatedAt time.Time
}

// Repository is an in-memory product persistence adapter.
type Repository struct {
	mu       sync.RWMutex
	products map[string]*record
}

func NewRepository() *Repository {
	return &Repository{products: map[string]*record{}}
}

func (r *Repository) Save(_ context.Context, product *domain.Product) (*ports.ProductProjection, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := *product
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	rec, ok := r.products[clone.ID]
	if !ok {
		rec = &record{createdAt: now}
		r.products[clone.ID] = rec
	}
	rec.product = clone
	rec.updatedAt = now
	product.ID = clone.ID
	return rec.toProjection(), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*ports.ProductProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return rec.toProjection(), nil
}

func (r *Repository) FindByIDs(_ context.Context, ids []string) ([]*ports.ProductProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := map[string]bool{}
	list := make([]*ports.ProductProjection, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if rec, ok := r.products[id]; ok {
			list = append(list, rec.toProjection())
		}
	}
	return list, nil
}

func (r *Repository) UpdateStock(_ context.Context, id string, quantity int) (*ports.ProductProjection, error) {
	if quantity < 0 {
		return nil, domain.ErrNegativeStock
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	rec.product.QuantityStock = quantity
	rec.updatedAt = time.Now().UTC()
	return rec.toProjection(), nil
}

func (r *Repository) List(_ context.Context) ([]*ports.ProductProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*ports.ProductProjection, 0, len(r.products))
	for _, rec := range r.products {
		list = append(list, rec.toProjection())
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Metadata.CreatedAt.After(list[j].Metadata.CreatedAt)
	})
	return list, nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (rec *record) toProjection() *ports.ProductProjection {
	clone := rec.product
	return projection.New(&clone, rec.createdAt, rec.updatedAt)
}
