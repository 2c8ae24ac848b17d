// Package httpapi wires the gin transport for the catalog and orders
// bounded contexts.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	catalogports "github.com/renanmachad/test-backend-thera-consulting/internal/domains/catalog/ports"
	ordersports "github.com/renanmachad/test-backend-thera-consulting/internal/domains/orders/ports"
)

// Options carries the transport-level dependencies injected at startup.
type Options struct {
	APIKey string
	Logger *slog.Logger
}

// NewRouter builds the gin engine with middleware and all routes registered.
// The health route stays public; everything else sits behind the API-key guard.
func NewRouter(products catalogports.Service, orders ordersports.Service, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(opts.Logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	guarded := router.Group("/", APIKeyGuard(opts.APIKey))

	productAPI := NewProductAPI(products)
	guarded.POST("/product", productAPI.Create)
	guarded.GET("/product", productAPI.List)
	guarded.GET("/product/:id", productAPI.GetByID)
	guarded.PATCH("/product/:id", productAPI.Update)
	guarded.DELETE("/product/:id", productAPI.Delete)

	orderAPI := NewOrderAPI(orders)
	guarded.POST("/order", orderAPI.Create)
	guarded.GET("/order", orderAPI.List)
	guarded.GET("/order/:id", orderAPI.GetByID)
	guarded.PATCH("/order/:id", orderAPI.Update)
	guarded.DELETE("/order/:id", orderAPI.Delete)

	return router
}
