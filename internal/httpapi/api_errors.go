package httpapi

import (
	"errors"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/renanmachad/test-backend-thera-consulting/internal/domains/catalog/application"
	catalogports "github.com/renanmachad/test-backend-thera-consulting/internal/domains/catalog/ports"
	ordersapp "github.com/renanmachad/test-backend-thera-consulting/internal/domains/orders/application"
	ordersports "github.com/renanmachad/test-backend-thera-consulting/internal/domains/orders/ports"
	apierrors "github.com/renanmachad/test-backend-thera-consulting/internal/shared/errors"
)

// responder routes every service failure through the shared RFC 7807 chain.
var responder = apierrors.NewChainedResponder("",
	mapOrderErrors,
	mapCatalogErrors,
)

func respondServiceError(c *gin.Context, err error) {
	responder.RespondError(c, err)
}

func respondBadRequest(c *gin.Context, err error) {
	apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
}

func mapOrderErrors(err error) (apierrors.ProblemDetail, bool) {
	var stockErr *ordersapp.InsufficientStockError
	if errors.As(err, &stockErr) {
		return apierrors.NewInsufficientStockProblem(stockErr.ProductName, stockErr.Available, stockErr.Requested), true
	}
	var productErr *ordersapp.ProductNotFoundError
	if errors.As(err, &productErr) {
		return apierrors.NewNotFoundProblem("Product", productErr.ProductID), true
	}
	switch {
	case errors.Is(err, ordersports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, ordersapp.ErrDeletionNotAllowed):
		return apierrors.ErrOperationNotAllowed.WithDetail(err.Error()), true
	case errors.Is(err, ordersapp.ErrInvalidTransition):
		return apierrors.ErrBadRequest.WithDetail(err.Error()), true
	case errors.Is(err, ordersapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, ordersports.ErrIdempotencyConflict):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapCatalogErrors(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, catalogports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, catalogapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
