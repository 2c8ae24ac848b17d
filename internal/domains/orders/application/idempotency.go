package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	"github.com/renanmachad/test-backend-thera-consulting/internal/domains/orders/ports"
)

type normalizedItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// FingerprintCreateOrder builds a deterministic hash of the create-order
// payload (excluding the idempotency key) so retries can be matched.
func FingerprintCreateOrder(input ports.CreateOrderInput) (string, error) {
	normalized := make([]normalizedItem, 0, len(input.Items))
	for _, item := range input.Items {
		normalized = append(normalized, normalizedItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	sort.Slice(normalized, func(i, j int) bool {
		if normalized[i].ProductID != normalized[j].ProductID {
			return normalized[i].ProductID < normalized[j].ProductID
		}
		return normalized[i].Quantity < normalized[j].Quantity
	})
	payload, err := json.Marshal(normalized)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
