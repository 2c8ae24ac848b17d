package application

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/renanmachad/test-backend-thera-consulting/internal/domains/catalog/domain"
	catalogports "github.com/renanmachad/test-backend-thera-consulting/internal/domains/catalog/ports"
	ordersmemory "github.com/renanmachad/test-backend-thera-consulting/internal/domains/orders/adapters/memory"
	"github.com/renanmachad/test-backend-thera-consulting/internal/domains/orders/domain"
	"github.com/renanmachad/test-backend-thera-consulting/internal/domains/orders/ports"
	"github.com/renanmachad/test-backend-thera-consulting/internal/shared/projection"
)

type fakeProductRepo struct {
	products    map[string]*catalogdomain.Product
	stockWrites int
}

func newFakeProductRepo(products ...*catalogdomain.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: map[string]*catalogdomain.Product{}}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (f *fakeProductRepo) projectionFor(p *catalogdomain.Product) *catalogports.ProductProjection {
	clone := *p
	return projection.New(&clone, time.Now(), time.Now())
}

func (f *fakeProductRepo) Save(_ context.Context, product *catalogdomain.Product) (*catalogports.ProductProjection, error) {
	clone := *product
	f.products[product.ID] = &clone
	return f.projectionFor(&clone), nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*catalogports.ProductProjection, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, catalogports.ErrNotFound
	}
	return f.projectionFor(p), nil
}

func (f *fakeProductRepo) FindByIDs(_ context.Context, ids []string) ([]*catalogports.ProductProjection, error) {
	var list []*catalogports.ProductProjection
	seen := map[string]bool{}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if p, ok := f.products[id]; ok {
			list = append(list, f.projectionFor(p))
		}
	}
	return list, nil
}

func (f *fakeProductRepo) UpdateStock(_ context.Context, id string, quantity int) (*catalogports.ProductProjection, error) {
	if quantity < 0 {
		return nil, catalogdomain.ErrNegativeStock
	}
	p, ok := f.products[id]
	if !ok {
		return nil, catalogports.ErrNotFound
	}
	p.QuantityStock = quantity
	f.stockWrites++
	return f.projectionFor(p), nil
}

func (f *fakeProductRepo) List(_ context.Context) ([]*catalogports.ProductProjection, error) {
	var list []*catalogports.ProductProjection
	for _, p := range f.products {
		list = append(list, f.projectionFor(p))
	}
	return list, nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.products[id]; !ok {
		return catalogports.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

type fakeOrderRepo struct {
	orders       map[string]*domain.Order
	created      map[string]time.Time
	statusWrites int
	seq          int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*domain.Order{}, created: map[string]time.Time{}}
}

func (f *fakeOrderRepo) projectionFor(o *domain.Order) *ports.OrderProjection {
	clone := *o
	clone.LineItems = append([]domain.LineItem(nil), o.LineItems...)
	return projection.New(&clone, f.created[o.ID], time.Now())
}

func (f *fakeOrderRepo) Create(_ context.Context, status domain.Status, lineItems []domain.LineItem) (*ports.OrderProjection, error) {
	f.seq++
	order := &domain.Order{ID: fmt.Sprintf("order-%d", f.seq), Status: status}
	for i, item := range lineItems {
		item.ID = fmt.Sprintf("item-%d-%d", f.seq, i)
		item.OrderID = order.ID
		order.LineItems = append(order.LineItems, item)
	}
	f.orders[order.ID] = order
	f.created[order.ID] = time.Now()
	return f.projectionFor(order), nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id string) (*ports.OrderProjection, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return f.projectionFor(order), nil
}

func (f *fakeOrderRepo) List(_ context.Context) ([]*ports.OrderProjection, error) {
	var list []*ports.OrderProjection
	for _, order := range f.orders {
		list = append(list, f.projectionFor(order))
	}
	return list, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id string, status domain.Status) (*ports.OrderProjection, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	order.Status = status
	f.statusWrites++
	return f.projectionFor(order), nil
}

func (f *fakeOrderRepo) ComputeTotal(_ context.Context, id string) (decimal.Decimal, error) {
	order, ok := f.orders[id]
	if !ok {
		return decimal.Zero, nil
	}
	return order.Total(), nil
}

func mustProduct(t *testing.T, id, name, price string, stock int) *catalogdomain.Product {
	t.Helper()
	product, err := catalogdomain.NewProduct(id, name, "misc", "", decimal.RequireFromString(price), stock)
	require.NoError(t, err)
	return product
}

func statusPtr(s domain.Status) *domain.Status { return &s }

func TestCreate_SnapshotsPriceAndDerivesTotal(t *testing.T) {
	products := newFakeProductRepo(mustProduct(t, "p1", "Widget", "99.99", 50))
	orders := newFakeOrderRepo()
	svc := NewService(orders, products)

	created, err := svc.Create(context.Background(), ports.CreateOrderInput{
		Items: []ports.OrderItemInput{{ProductID: "p1", Quantity: 2}},
	})
	require.NoError(t, err)

	require.Equal(t, domain.StatusPending, created.Entity.Status)
	require.True(t, created.Entity.TotalOrder.Equal(decimal.RequireFromString("199.98")),
		"expected total 199.98, got %s", created.Entity.TotalOrder)
	require.Len(t, created.Entity.LineItems, 1)
	require.True(t, created.Entity.LineItems[0].PriceAtPurchase.Equal(decimal.RequireFromString("99.99")))

	// creation reserves nothing
	require.Equal(t, 50, products.products["p1"].QuantityStock)
	require.Zero(t, products.stockWrites)
}

func TestCreate_UnknownProductFailsWithoutPersisting(t *testing.T) {
	products := newFakeProductRepo(mustProduct(t, "p1", "Widget", "10.00", 5))
	orders := newFakeOrderRepo()
	svc := NewService(orders, products)

	_, err := svc.Create(context.Background(), ports.CreateOrderInput{
		Items: []ports.OrderItemInput{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "missing", Quantity: 1},
		},
	})
	require.ErrorIs(t, err, ErrProductNotFound)
	var notFound *ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "missing", notFound.ProductID)
	require.Empty(t, orders.orders)
}

func TestCreate_InsufficientStockFailsWithoutPersisting(t *testing.T) {
	products := newFakeProductRepo(mustProduct(t, "q1", "Gadget", "5.00", 1))
	orders := newFakeOrderRepo()
	svc := NewService(orders, products)

	_, err := svc.Create(context.Background(), ports.CreateOrderInput{
		Items: []ports.OrderItemInput{{ProductID: "q1", Quantity: 2}},
	})
	require.ErrorIs(t, err, ErrInsufficientStock)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	require.Equal(t, "Gadget", stockErr.ProductName)
	require.Equal(t, 1, stockErr.Available)
	require.Equal(t, 2, stockErr.Requested)
	require.Empty(t, orders.orders)
	require.Equal(t, 1, products.products["q1"].QuantityStock)
}

func TestCreate_EmptyItemsRejected(t *testing.T) {
	svc := NewService(newFakeOrderRepo(), newFakeProductRepo())

	_, err := svc.Create(context.Background(), ports.CreateOrderInput{})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_TotalSurvivesCatalogPriceChange(t *testing.T) {
	products := newFakeProductRepo(mustProduct(t, "p1", "Widget", "99.99", 50))
	orders := newFakeOrderRepo()
	svc := NewService(orders, products)

	created, err := svc.Create(context.Background(), ports.CreateOrderInput{
		Items: []ports.OrderItemInput{{ProductID: "p1", Quantity: 2}},
	})
	require.NoError(t, err)

	require.NoError(t, products.products["p1"].ChangePrice(decimal.RequireFromString("150.00")))

	fetched, err := svc.GetByID(context.Background(), created.Entity.ID)
	require.NoError(t, err)
	require.True(t, fetched.Entity.TotalOrder.Equal(decimal.RequireFromString("199.98")))
}

func TestUpdate_CompleteDeductsStock(t *testing.T) {
	products := newFakeProductRepo(mustProduct(t, "p1", "Widget", "99.99", 50))
	orders := newFakeOrderRepo()
	svc := NewService(orders, products)

	created, err := svc.Create(context.Background(), ports.CreateOrderInput{
		Items: []ports.OrderItemInput{{ProductID: "p1", Quantity: 2}},
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.Entity.ID, ports.UpdateOrderInput{
		Status: statusPtr(domain.StatusCompleted),
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusCompleted, updated.Entity.Status)
	require.Equal(t, 48, products.products["p1"].QuantityStock)
}

func TestUpdate_CancelCompletedRestoresStock(t *testing.T) {
	products := newFakeProductRepo(mustProduct(t, "p1", "Widget", "99.99", 50))
	orders := newFakeOrderRepo()
	svc := NewService(orders, products)

	created, err := svc.Create(context.Background(), ports.CreateOrderInput{
		Items: []ports.OrderItemInput{{ProductID: "p1", Quantity: 2}},
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.Entity.ID, ports.UpdateOrderInput{
		Status: statusPtr(domain.StatusCompleted),
	})
	require.NoError(t, err)
	require.Equal(t, 48, products.products["p1"].QuantityStock)

	updated, err := svc.Update(context.Background(), created.Entity.ID, ports.UpdateOrderInput{
		Status: statusPtr(domain.StatusCancelled),
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusCancelled, updated.Entity.Status)
	require.Equal(t, 50, products.products["p1"].QuantityStock)
}

func TestUpdate_CancelPendingLeavesStockUntouched(t *testing.T) {
	products := newFakeProductRepo(mustProduct(t, "p1", "Widget", "99.99", 50))
	orders := newFakeOrderRepo()
	svc := NewService(orders, products)

	created, err := svc.Create(context.Background(), ports.CreateOrderInput{
		Items: []ports.OrderItemInput{{ProductID: "p1", Quantity: 2}},
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.Entity.ID, ports.UpdateOrderInput{
		Status: statusPtr(domain.StatusCancelled),
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusCancelled, updated.Entity.Status)
	require.Equal(t, 50, products.products["p1"].QuantityStock)
	require.Zero(t, products.stockWrites)
}

func TestUpdate_NoStatusIsReadOnly(t *testing.T) {
	products := newFakeProductRepo(mustProduct(t, "p1", "Widget", "99.99", 50))
	orders := newFakeOrderRepo()
	svc := NewService(orders, products)

	created, err := svc.Create(context.Background(), ports.CreateOrderInput{
		Items: []ports.OrderItemInput{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)

	fetched, err := svc.Update(context.Background(), created.Entity.ID, ports.UpdateOrderInput{})
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, fetched.Entity.Status)
	require.True(t, fetched.Entity.TotalOrder.Equal(created.Entity.TotalOrder))
	require.Zero(t, orders.statusWrites)
	require.Zero(t, products.stockWrites)
}

func TestUpdate_SameStatusIsNoOp(t *testing.T) {
	products := newFakeProductRepo(mustProduct(t, "p1", "Widget", "99.99", 50))
	orders := newFakeOrderRepo()
	svc := NewService(orders, products)

	created, err := svc.Create(context.Background(), ports.CreateOrderInput{
		Items: []ports.OrderItemInput{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)

	fetched, err := svc.Update(context.Background(), created.Entity.ID, ports.UpdateOrderInput{
		Status: statusPtr(domain.StatusPending),
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, fetched.Entity.Status)
	require.Zero(t, orders.statusWrites)
	require.Zero(t, products.stockWrites)
}

func TestUpdate_RejectsTransitionsOutsideTable(t *testing.T) {
	cases := []struct {
		name string
		from domain.Status
		to   domain.Status
	}{
		{name: "cancelled to completed", from: domain.StatusCancelled, to: domain.StatusCompleted},
		{name: "cancelled to pending", from: domain.StatusCancelled, to: domain.StatusPending},
		{name: "completed to pending", from: domain.StatusCompleted, to: domain.StatusPending},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			products := newFakeProductRepo(mustProduct(t, "p1", "Widget", "10.00", 10))
			orders := newFakeOrderRepo()
			svc := NewService(orders, products)

			created, err := orders.Create(context.Background(), tc.from, []domain.LineItem{
				{ProductID: "p1", Quantity: 1, PriceAtPurchase: decimal.RequireFromString("10.00")},
			})
			require.NoError(t, err)

			_, err = svc.Update(context.Background(), created.Entity.ID, ports.UpdateOrderInput{
				Status: statusPtr(tc.to),
			})
			require.ErrorIs(t, err, ErrInvalidTransition)
			require.Zero(t, products.stockWrites)
		})
	}
}

func TestUpdate_CompleteAbortsBeforeAnyStockWrite(t *testing.T) {
	products := newFakeProductRepo(
		mustProduct(t, "p1", "Widget", "10.00", 10),
		mustProduct(t, "p2", "Gadget", "20.00", 1),
	)
	orders := newFakeOrderRepo()
	svc := NewService(orders, products)

	created, err := svc.Create(context.Background(), ports.CreateOrderInput{
		Items: []ports.OrderItemInput{
			{ProductID: "p1", Quantity: 5},
			{ProductID: "p2", Quantity: 1},
		},
	})
	require.NoError(t, err)

	// drain p2 behind the order's back so completion must fail
	products.products["p2"].QuantityStock = 0

	_, err = svc.Update(context.Background(), created.Entity.ID, ports.UpdateOrderInput{
		Status: statusPtr(domain.StatusCompleted),
	})
	require.ErrorIs(t, err, ErrInsufficientStock)
	require.Zero(t, products.stockWrites)
	require.Equal(t, 10, products.products["p1"].QuantityStock)

	fetched, err := svc.GetByID(context.Background(), created.Entity.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, fetched.Entity.Status)
}

func TestUpdate_CompleteMultipleItemsTouchesOnlyOrderedProducts(t *testing.T) {
	products := newFakeProductRepo(
		mustProduct(t, "p1", "Widget", "10.00", 10),
		mustProduct(t, "p2", "Gadget", "20.00", 8),
		mustProduct(t, "p3", "Gizmo", "30.00", 3),
	)
	orders := newFakeOrderRepo()
	svc := NewService(orders, products)

	created, err := svc.Create(context.Background(), ports.CreateOrderInput{
		Items: []ports.OrderItemInput{
			{ProductID: "p1", Quantity: 4},
			{ProductID: "p2", Quantity: 2},
		},
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.Entity.ID, ports.UpdateOrderInput{
		Status: statusPtr(domain.StatusCompleted),
	})
	require.NoError(t, err)
	require.Equal(t, 6, products.products["p1"].QuantityStock)
	require.Equal(t, 6, products.products["p2"].QuantityStock)
	require.Equal(t, 3, products.products["p3"].QuantityStock)
}

func TestUpdate_UnknownOrder(t *testing.T) {
	svc := NewService(newFakeOrderRepo(), newFakeProductRepo())

	_, err := svc.Update(context.Background(), "nope", ports.UpdateOrderInput{
		Status: statusPtr(domain.StatusCompleted),
	})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestUpdate_UnknownStatusValueRejected(t *testing.T) {
	products := newFakeProductRepo(mustProduct(t, "p1", "Widget", "10.00", 10))
	orders := newFakeOrderRepo()
	svc := NewService(orders, products)

	created, err := svc.Create(context.Background(), ports.CreateOrderInput{
		Items: []ports.OrderItemInput{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)

	bogus := domain.Status("SHIPPED")
	_, err = svc.Update(context.Background(), created.Entity.ID, ports.UpdateOrderInput{Status: &bogus})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRemove_ExistingOrderAlwaysBlocked(t *testing.T) {
	products := newFakeProductRepo(mustProduct(t, "p1", "Widget", "10.00", 10))
	orders := newFakeOrderRepo()
	svc := NewService(orders, products)

	created, err := svc.Create(context.Background(), ports.CreateOrderInput{
		Items: []ports.OrderItemInput{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)

	err = svc.Remove(context.Background(), created.Entity.ID)
	require.ErrorIs(t, err, ErrDeletionNotAllowed)

	_, err = svc.GetByID(context.Background(), created.Entity.ID)
	require.NoError(t, err)
}

func TestRemove_UnknownOrderIsNotFound(t *testing.T) {
	svc := NewService(newFakeOrderRepo(), newFakeProductRepo())

	err := svc.Remove(context.Background(), "nope")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestGetByID_UnknownOrder(t *testing.T) {
	svc := NewService(newFakeOrderRepo(), newFakeProductRepo())

	_, err := svc.GetByID(context.Background(), "nope")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestCreate_IdempotentReplayReturnsSameOrder(t *testing.T) {
	products := newFakeProductRepo(mustProduct(t, "p1", "Widget", "10.00", 10))
	orders := newFakeOrderRepo()
	svc := NewService(orders, products, WithIdempotencyStore(ordersmemory.NewIdempotencyStore()))

	input := ports.CreateOrderInput{
		Items:          []ports.OrderItemInput{{ProductID: "p1", Quantity: 2}},
		IdempotencyKey: "key-1",
	}
	first, err := svc.Create(context.Background(), input)
	require.NoError(t, err)

	second, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, first.Entity.ID, second.Entity.ID)
	require.Len(t, orders.orders, 1)
}

func TestCreate_IdempotencyKeyReuseWithDifferentPayloadConflicts(t *testing.T) {
	products := newFakeProductRepo(mustProduct(t, "p1", "Widget", "10.00", 10))
	orders := newFakeOrderRepo()
	svc := NewService(orders, products, WithIdempotencyStore(ordersmemory.NewIdempotencyStore()))

	_, err := svc.Create(context.Background(), ports.CreateOrderInput{
		Items:          []ports.OrderItemInput{{ProductID: "p1", Quantity: 2}},
		IdempotencyKey: "key-1",
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), ports.CreateOrderInput{
		Items:          []ports.OrderItemInput{{ProductID: "p1", Quantity: 3}},
		IdempotencyKey: "key-1",
	})
	require.ErrorIs(t, err, ports.ErrIdempotencyConflict)
	require.Len(t, orders.orders, 1)
}
