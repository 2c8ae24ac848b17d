package application

import (
	"errors"
	"fmt"

	"github.com/renanmachad/test-backend-thera-consulting/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrProductNotFound signals an order line references an unknown product.
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock signals a requested or deducted quantity exceeds
	// the available stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInvalidTransition signals a status change outside the transition table.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrDeletionNotAllowed blocks every delete attempt on an existing order.
	ErrDeletionNotAllowed = errors.New("order deletion is not allowed, use cancel status instead")
)

// ProductNotFoundError names the product an order line failed to resolve.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product with ID %s not found", e.ProductID)
}

func (e *ProductNotFoundError) Unwrap() error { return ErrProductNotFound }

// InsufficientStockError reports the offending product with available versus
// requested quantities so callers can correlate the failure to a line item.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s. Available: %d, Requested: %d",
		e.ProductName, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// InvalidTransitionError names the rejected status change.
type InvalidTransitionError struct {
	From domain.Status
	To   domain.Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("status transition from %s to %s is not allowed", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, domain.ErrEmptyOrder) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
