package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	productmapper "github.com/renanmachad/test-backend-thera-consulting/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/renanmachad/test-backend-thera-consulting/internal/domains/catalog/ports"
	"github.com/renanmachad/test-backend-thera-consulting/internal/shared/money"
)

// ProductAPI wires HTTP transport with the catalog service.
type ProductAPI struct {
	service catalogports.Service
}

// NewProductAPI creates a ProductAPI backed by the provided service.
func NewProductAPI(service catalogports.Service) ProductAPI {
	return ProductAPI{service: service}
}

type createProductRequest struct {
	Name          string  `json:"name" binding:"required"`
	Category      string  `json:"category"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" binding:"min=0"`
	QuantityStock int     `json:"quantity_stock" binding:"min=0"`
}

type updateProductRequest struct {
	Name          *string  `json:"name"`
	Category      *string  `json:"category"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price"`
	QuantityStock *int     `json:"quantity_stock"`
}

// Post /product
// Add a product to the catalog
func (api *ProductAPI) Create(c *gin.Context) {
	var payload createProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	input := catalogports.CreateProductInput{
		Name:          payload.Name,
		Category:      payload.Category,
		Description:   payload.Description,
		Price:         money.FromNumber(payload.Price),
		QuantityStock: payload.QuantityStock,
	}
	created, err := api.service.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, productmapper.FromProjection(created))
}

// Get /product
// List the catalog
func (api *ProductAPI) List(c *gin.Context) {
	result, err := api.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, productmapper.FromProjectionList(result))
}

// Get /product/:id
// Find product by ID
func (api *ProductAPI) GetByID(c *gin.Context) {
	product, err := api.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, productmapper.FromProjection(product))
}

// Patch /product/:id
// Partially update a product
func (api *ProductAPI) Update(c *gin.Context) {
	var payload updateProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	input := catalogports.UpdateProductInput{
		Name:          payload.Name,
		Category:      payload.Category,
		Description:   payload.Description,
		QuantityStock: payload.QuantityStock,
	}
	if payload.Price != nil {
		price := money.FromNumber(*payload.Price)
		input.Price = &price
	}
	updated, err := api.service.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, productmapper.FromProjection(updated))
}

// Delete /product/:id
// Remove a product from the catalog
func (api *ProductAPI) Delete(c *gin.Context) {
	if err := api.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
