package mapper

import (
	"time"

	"github.com/renanmachad/test-backend-thera-consulting/internal/domains/orders/ports"
	"github.com/renanmachad/test-backend-thera-consulting/internal/shared/money"
)

// OrderProduct is the transport shape of one line item.
type OrderProduct struct {
	ID              string  `json:"id"`
	OrderID         string  `json:"orderId"`
	ProductID       string  `json:"productId"`
	Quantity        int     `json:"quantity"`
	PriceAtPurchase float64 `json:"price_at_purchase"`
}

// Order is the transport shape of an order. Currency amounts cross the wire
// as plain numbers through the shared money boundary.
type Order struct {
	ID            string         `json:"id"`
	Status        string         `json:"status"`
	TotalOrder    float64        `json:"total_order"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	OrderProducts []OrderProduct `json:"orderProducts"`
}

// FromProjection converts a stored order into the transport representation.
func FromProjection(p *ports.OrderProjection) Order {
	if p == nil || p.Entity == nil {
		return Order{}
	}
	items := make([]OrderProduct, 0, len(p.Entity.LineItems))
	for _, item := range p.Entity.LineItems {
		items = append(items, OrderProduct{
			ID:              item.ID,
			OrderID:         item.OrderID,
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			PriceAtPurchase: money.ToNumber(item.PriceAtPurchase),
		})
	}
	return Order{
		ID:            p.Entity.ID,
		Status:        string(p.Entity.Status),
		TotalOrder:    money.ToNumber(p.Entity.TotalOrder),
		CreatedAt:     p.Metadata.CreatedAt,
		UpdatedAt:     p.Metadata.UpdatedAt,
		OrderProducts: items,
	}
}

// FromProjectionList converts a list of stored orders.
func FromProjectionList(list []*ports.OrderProjection) []Order {
	out := make([]Order, 0, len(list))
	for _, p := range list {
		out = append(out, FromProjection(p))
	}
	return out
}
