package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestStatusIsValid(t *testing.T) {
	require.True(t, StatusPending.IsValid())
	require.True(t, StatusCompleted.IsValid())
	require.True(t, StatusCancelled.IsValid())
	require.False(t, Status("").IsValid())
	require.False(t, Status("SHIPPED").IsValid())
	require.False(t, Status("pendente").IsValid())
}

func TestTransitionEffect(t *testing.T) {
	cases := []struct {
		name   string
		from   Status
		to     Status
		effect StockEffect
		ok     bool
	}{
		{name: "pending to completed deducts", from: StatusPending, to: StatusCompleted, effect: StockDeduct, ok: true},
		{name: "completed to cancelled restores", from: StatusCompleted, to: StatusCancelled, effect: StockRestore, ok: true},
		{name: "pending to cancelled leaves stock", from: StatusPending, to: StatusCancelled, effect: StockNone, ok: true},
		{name: "cancelled to pending rejected", from: StatusCancelled, to: StatusPending, ok: false},
		{name: "cancelled to completed rejected", from: StatusCancelled, to: StatusCompleted, ok: false},
		{name: "completed to pending rejected", from: StatusCompleted, to: StatusPending, ok: false},
		{name: "same status not in table", from: StatusPending, to: StatusPending, ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			effect, ok := tc.from.TransitionEffect(tc.to)
			require.Equal(t, tc.ok, ok)
			if tc.ok {
				require.Equal(t, tc.effect, effect)
			}
		})
	}
}

func TestNewLineItemRejectsNonPositiveQuantity(t *testing.T) {
	_, err := NewLineItem("p1", 0, decimal.RequireFromString("10.00"))
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = NewLineItem("p1", -3, decimal.RequireFromString("10.00"))
	require.ErrorIs(t, err, ErrInvalidQuantity)

	item, err := NewLineItem("p1", 1, decimal.RequireFromString("10.00"))
	require.NoError(t, err)
	require.Equal(t, 1, item.Quantity)
}

func TestLineItemSubtotal(t *testing.T) {
	item := LineItem{Quantity: 3, PriceAtPurchase: decimal.RequireFromString("19.99")}
	require.True(t, item.Subtotal().Equal(decimal.RequireFromString("59.97")))
}

func TestOrderTotal(t *testing.T) {
	order := &Order{LineItems: []LineItem{
		{Quantity: 2, PriceAtPurchase: decimal.RequireFromString("99.99")},
		{Quantity: 1, PriceAtPurchase: decimal.RequireFromString("0.02")},
	}}
	require.True(t, order.Total().Equal(decimal.RequireFromString("200.00")))
}

func TestOrderTotalEmpty(t *testing.T) {
	order := &Order{}
	require.True(t, order.Total().Equal(decimal.Zero))
}
