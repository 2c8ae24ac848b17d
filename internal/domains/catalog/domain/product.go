package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName     = errors.New("product name is required")
	ErrNegativePrice = errors.New("product price must be greater or equal to zero")
	ErrNegativeStock = errors.New("product stock must be greater or equal to zero")
)

// Product represents the aggregate managed by the catalog bounded context.
// Price is a decimal currency amount; QuantityStock is the sellable quantity
// and is mutated only through the orders lifecycle or a direct catalog update.
type Product struct {
	ID            string
	Name          string
	Category      string
	Description   string
	Price         decimal.Decimal
	QuantityStock int
}

// NewProduct validates the invariants and builds a new Product aggregate.
func NewProduct(id, name, category, description string, price decimal.Decimal, quantityStock int) (*Product, error) {
	p := &Product{ID: id, Category: category, Description: description}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	if err := p.ChangePrice(price); err != nil {
		return nil, err
	}
	if err := p.SetStock(quantityStock); err != nil {
		return nil, err
	}
	return p, nil
}

// Rename mutates the product name ensuring the invariant.
func (p *Product) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

// ChangePrice updates the catalog price. Prices already snapshotted on order
// line items are unaffected.
func (p *Product) ChangePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return ErrNegativePrice
	}
	p.Price = price
	return nil
}

// SetStock replaces the available quantity.
func (p *Product) SetStock(quantity int) error {
	if quantity < 0 {
		return ErrNegativeStock
	}
	p.QuantityStock = quantity
	return nil
}

// HasStockFor reports whether the requested quantity can be served.
func (p *Product) HasStockFor(quantity int) bool {
	return p.QuantityStock >= quantity
}
