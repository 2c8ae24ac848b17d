package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ordermapper "github.com/renanmachad/test-backend-thera-consulting/internal/domains/orders/adapters/http/mapper"
	"github.com/renanmachad/test-backend-thera-consulting/internal/domains/orders/domain"
	ordersports "github.com/renanmachad/test-backend-thera-consulting/internal/domains/orders/ports"
)

// HeaderIdempotencyKey lets clients retry order creation safely.
const HeaderIdempotencyKey = "Idempotency-Key"

// OrderAPI wires HTTP transport with the order lifecycle engine.
type OrderAPI struct {
	service ordersports.Service
}

// NewOrderAPI creates an OrderAPI backed by the provided service.
func NewOrderAPI(service ordersports.Service) OrderAPI {
	return OrderAPI{service: service}
}

type orderItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type createOrderRequest struct {
	Products []orderItemRequest `json:"products" binding:"required,min=1,dive"`
}

type updateOrderRequest struct {
	Status *string `json:"status"`
}

// Post /order
// Create an order; stock is validated but not reserved
func (api *OrderAPI) Create(c *gin.Context) {
	var payload createOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	input := ordersports.CreateOrderInput{
		IdempotencyKey: c.GetHeader(HeaderIdempotencyKey),
	}
	for _, item := range payload.Products {
		input.Items = append(input.Items, ordersports.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	created, err := api.service.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ordermapper.FromProjection(created))
}

// Get /order
// List orders, most recent first
func (api *OrderAPI) List(c *gin.Context) {
	result, err := api.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromProjectionList(result))
}

// Get /order/:id
// Find order by ID
func (api *OrderAPI) GetByID(c *gin.Context) {
	order, err := api.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromProjection(order))
}

// Patch /order/:id
// Update order status; transitions reconcile product stock
func (api *OrderAPI) Update(c *gin.Context) {
	var payload updateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	input := ordersports.UpdateOrderInput{}
	if payload.Status != nil {
		status := domain.Status(*payload.Status)
		input.Status = &status
	}
	updated, err := api.service.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromProjection(updated))
}

// Delete /order/:id
// Always rejected once existence is confirmed; orders are append-only
func (api *OrderAPI) Delete(c *gin.Context) {
	err := api.service.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
