package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/renanmachad/test-backend-thera-consulting/internal/domains/orders/domain"
	"github.com/renanmachad/test-backend-thera-consulting/internal/domains/orders/ports"
	"github.com/renanmachad/test-backend-thera-consulting/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

type record struct {
	order     domain.Order
	createdAt time.Time
	updatedAt time.Time
}

// Repository is an in-memory order persistence adapter.
type Repository struct {
	mu     sync.RWMutex
	orders map[string]*record
}

func NewRepository() *Repository {
	return &Repository{orders: map[string]*record{}}
}

func (r *Repository) Create(_ context.Context, status domain.Status, lineItems []domain.LineItem) (*ports.OrderProjection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	order := domain.Order{ID: uuid.NewString(), Status: status}
	for _, item := range lineItems {
		item.ID = uuid.NewString()
		item.OrderID = order.ID
		order.LineItems = append(order.LineItems, item)
	}
	rec := &record{order: order, createdAt: now, updatedAt: now}
	r.orders[order.ID] = rec
	return rec.toProjection(), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*ports.OrderProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return rec.toProjection(), nil
}

func (r *Repository) List(_ context.Context) ([]*ports.OrderProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*ports.OrderProjection, 0, len(r.orders))
	for _, rec := range r.orders {
		list = append(list, rec.toProjection())
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Metadata.CreatedAt.After(list[j].Metadata.CreatedAt)
	})
	return list, nil
}

func (r *Repository) UpdateStatus(_ context.Context, id string, status domain.Status) (*ports.OrderProjection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	rec.order.Status = status
	rec.updatedAt = time.Now().UTC()
	return rec.toProjection(), nil
}

func (r *Repository) ComputeTotal(_ context.Context, id string) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.orders[id]
	if !ok {
		return decimal.Zero, nil
	}
	return rec.order.Total(), nil
}

func (rec *record) toProjection() *ports.OrderProjection {
	clone := rec.order
	clone.LineItems = append([]domain.LineItem(nil), rec.order.LineItems...)
	return projection.New(&clone, rec.createdAt, rec.updatedAt)
}
