package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Status enumerates order progression. The wire values are the stored values.
type Status string

const (
	StatusPending   Status = "PENDENTE"
	StatusCompleted Status = "CONCLUIDO"
	StatusCancelled Status = "CANCELADO"
)

var (
	ErrInvalidStatus   = errors.New("order status is invalid")
	ErrInvalidQuantity = errors.New("line item quantity must be greater than zero")
	ErrEmptyOrder      = errors.New("order must contain at least one line item")
)

// StockEffect describes how a status transition adjusts product stock.
type StockEffect int

const (
	// StockNone leaves product stock untouched.
	StockNone StockEffect = iota
	// StockDeduct subtracts each line item quantity from its product.
	StockDeduct
	// StockRestore adds each line item quantity back to its product.
	StockRestore
)

// IsValid reports whether the status is one of the three known states.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// TransitionEffect returns the stock effect of moving from s to next, or
// ok=false when the transition is not in the table. A same-status transition
// is not in the table; callers treat it as an idempotent no-op.
func (s Status) TransitionEffect(next Status) (StockEffect, bool) {
	switch {
	case s == StatusPending && next == StatusCompleted:
		return StockDeduct, true
	case s == StatusCompleted && next == StatusCancelled:
		return StockRestore, true
	case s == StatusPending && next == StatusCancelled:
		return StockNone, true
	default:
		return StockNone, false
	}
}

// LineItem is one product-quantity-price record attached to an order.
// PriceAtPurchase is fixed at order creation and never recalculated, even if
// the catalog price later changes.
type LineItem struct {
	ID              string
	OrderID         string
	ProductID       string
	Quantity        int
	PriceAtPurchase decimal.Decimal
}

// Subtotal returns price_at_purchase multiplied by quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.PriceAtPurchase.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Order models the purchase aggregate. TotalOrder is always derived from the
// line items and never trusted from a stored value.
type Order struct {
	ID         string
	Status     Status
	LineItems  []LineItem
	TotalOrder decimal.Decimal
}

// NewLineItem validates and constructs a line item draft.
func NewLineItem(productID string, quantity int, priceAtPurchase decimal.Decimal) (LineItem, error) {
	if quantity < 1 {
		return LineItem{}, ErrInvalidQuantity
	}
	return LineItem{ProductID: productID, Quantity: quantity, PriceAtPurchase: priceAtPurchase}, nil
}

// Total sums subtotal over the line items.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.LineItems {
		total = total.Add(item.Subtotal())
	}
	return total
}
