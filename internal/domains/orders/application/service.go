package application

import (
	"context"
	"errors"

	catalogports "github.com/renanmachad/test-backend-thera-consulting/internal/domains/catalog/ports"
	"github.com/renanmachad/test-backend-thera-consulting/internal/domains/orders/domain"
	"github.com/renanmachad/test-backend-thera-consulting/internal/domains/orders/ports"
)

// Service is the order lifecycle engine. It orchestrates order creation with
// price snapshotting and reconciles product stock on status transitions.
// All state lives in the stores; the engine holds nothing between calls.
type Service struct {
	orders      ports.Repository
	products    catalogports.Repository
	idempotency ports.IdempotencyStore
}

type Option func(*Service)

// WithIdempotencyStore enables replay of order creation retries that carry an
// idempotency key.
func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) {
		s.idempotency = store
	}
}

// NewService wires the engine with its two stores.
func NewService(orders ports.Repository, products catalogports.Repository, opts ...Option) *Service {
	s := &Service{orders: orders, products: products}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Create validates stock, snapshots each line item's purchase price, and
// persists the order as PENDENTE. Creation reserves nothing: stock is only
// deducted when the order is completed.
func (s *Service) Create(ctx context.Context, input ports.CreateOrderInput) (*ports.OrderProjection, error) {
	if len(input.Items) == 0 {
		return nil, mapError(domain.ErrEmptyOrder)
	}

	var requestHash string
	if s.idempotency != nil && input.IdempotencyKey != "" {
		hash, err := FingerprintCreateOrder(input)
		if err != nil {
			return nil, err
		}
		requestHash = hash
		stored, err := s.idempotency.Get(ctx, input.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if stored != nil {
			if stored.RequestHash != requestHash {
				return nil, ports.ErrIdempotencyConflict
			}
			return s.GetByID(ctx, stored.OrderID)
		}
	}

	distinct := make([]string, 0, len(input.Items))
	seen := map[string]bool{}
	for _, item := range input.Items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			distinct = append(distinct, item.ProductID)
		}
	}
	found, err := s.products.FindByIDs(ctx, distinct)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*catalogports.ProductProjection, len(found))
	for _, p := range found {
		byID[p.Entity.ID] = p
	}

	lineItems := make([]domain.LineItem, 0, len(input.Items))
	for _, item := range input.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, &ProductNotFoundError{ProductID: item.ProductID}
		}
		if !product.Entity.HasStockFor(item.Quantity) {
			return nil, &InsufficientStockError{
				ProductID:   product.Entity.ID,
				ProductName: product.Entity.Name,
				Available:   product.Entity.QuantityStock,
				Requested:   item.Quantity,
			}
		}
		lineItem, err := domain.NewLineItem(item.ProductID, item.Quantity, product.Entity.Price)
		if err != nil {
			return nil, mapError(err)
		}
		lineItems = append(lineItems, lineItem)
	}

	created, err := s.orders.Create(ctx, domain.StatusPending, lineItems)
	if err != nil {
		return nil, err
	}
	if err := s.attachTotal(ctx, created); err != nil {
		return nil, err
	}

	if s.idempotency != nil && input.IdempotencyKey != "" {
		if _, err := s.idempotency.Save(ctx, ports.IdempotencyRecord{
			Key:         input.IdempotencyKey,
			RequestHash: requestHash,
			OrderID:     created.Entity.ID,
		}); err != nil {
			return nil, err
		}
	}
	return created, nil
}

// GetByID loads an order with line items and a freshly derived total.
func (s *Service) GetByID(ctx context.Context, id string) (*ports.OrderProjection, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.attachTotal(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// List returns all orders, most recently created first, each with a derived total.
func (s *Service) List(ctx context.Context) ([]*ports.OrderProjection, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, order := range orders {
		if err := s.attachTotal(ctx, order); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// Update applies a status transition and its stock effect. Requests without a
// status, or carrying the current status, are idempotent no-ops that perform
// no store write. Transitions outside the table are rejected.
func (s *Service) Update(ctx context.Context, id string, input ports.UpdateOrderInput) (*ports.OrderProjection, error) {
	current, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Status == nil {
		if err := s.attachTotal(ctx, current); err != nil {
			return nil, err
		}
		return current, nil
	}
	next := *input.Status
	if !next.IsValid() {
		return nil, mapError(domain.ErrInvalidStatus)
	}
	if next == current.Entity.Status {
		if err := s.attachTotal(ctx, current); err != nil {
			return nil, err
		}
		return current, nil
	}
	effect, ok := current.Entity.Status.TransitionEffect(next)
	if !ok {
		return nil, &InvalidTransitionError{From: current.Entity.Status, To: next}
	}

	switch effect {
	case domain.StockDeduct:
		if err := s.deductStock(ctx, current.Entity.LineItems); err != nil {
			return nil, err
		}
	case domain.StockRestore:
		if err := s.restoreStock(ctx, current.Entity.LineItems); err != nil {
			return nil, err
		}
	}

	if _, err := s.orders.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Remove always fails: orders are append-only. The existence check runs first
// so an unknown id still surfaces as not found.
func (s *Service) Remove(ctx context.Context, id string) error {
	if _, err := s.orders.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrDeletionNotAllowed
}

// deductStock verifies every line item against current stock before writing
// anything, then persists the decremented quantities.
func (s *Service) deductStock(ctx context.Context, items []domain.LineItem) error {
	type stockWrite struct {
		productID string
		quantity  int
	}
	writes := make([]stockWrite, 0, len(items))
	for _, item := range items {
		product, err := s.lookupProduct(ctx, item.ProductID)
		if err != nil {
			return err
		}
		newStock := product.Entity.QuantityStock - item.Quantity
		if newStock < 0 {
			return &InsufficientStockError{
				ProductID:   product.Entity.ID,
				ProductName: product.Entity.Name,
				Available:   product.Entity.QuantityStock,
				Requested:   item.Quantity,
			}
		}
		writes = append(writes, stockWrite{productID: item.ProductID, quantity: newStock})
	}
	for _, write := range writes {
		if _, err := s.products.UpdateStock(ctx, write.productID, write.quantity); err != nil {
			return err
		}
	}
	return nil
}

// restoreStock returns each line item quantity to its product. Restoring can
// never go negative, so no validation pass is needed.
func (s *Service) restoreStock(ctx context.Context, items []domain.LineItem) error {
	for _, item := range items {
		product, err := s.lookupProduct(ctx, item.ProductID)
		if err != nil {
			return err
		}
		newStock := product.Entity.QuantityStock + item.Quantity
		if _, err := s.products.UpdateStock(ctx, item.ProductID, newStock); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) lookupProduct(ctx context.Context, id string) (*catalogports.ProductProjection, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogports.ErrNotFound) {
			return nil, &ProductNotFoundError{ProductID: id}
		}
		return nil, err
	}
	return product, nil
}

func (s *Service) attachTotal(ctx context.Context, order *ports.OrderProjection) error {
	total, err := s.orders.ComputeTotal(ctx, order.Entity.ID)
	if err != nil {
		return err
	}
	order.Entity.TotalOrder = total
	return nil
}

var _ ports.Service = (*Service)(nil)
