package mapper

import (
	"time"

	"github.com/renanmachad/test-backend-thera-consulting/internal/domains/catalog/ports"
	"github.com/renanmachad/test-backend-thera-consulting/internal/shared/money"
)

// Product is the transport-layer shape. Price crosses the wire as a plain
// number through the shared money boundary.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	QuantityStock int       `json:"quantity_stock"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// FromProjection converts a stored product into the transport representation.
func FromProjection(p *ports.ProductProjection) Product {
	if p == nil || p.Entity == nil {
		return Product{}
	}
	return Product{
		ID:            p.Entity.ID,
		Name:          p.Entity.Name,
		Category:      p.Entity.Category,
		Description:   p.Entity.Description,
		Price:         money.ToNumber(p.Entity.Price),
		QuantityStock: p.Entity.QuantityStock,
		CreatedAt:     p.Metadata.CreatedAt,
		UpdatedAt:     p.Metadata.UpdatedAt,
	}
}

// FromProjectionList converts a list of stored products.
func FromProjectionList(list []*ports.ProductProjection) []Product {
	out := make([]Product, 0, len(list))
	for _, p := range list {
		out = append(out, FromProjection(p))
	}
	return out
}
