// Package api exposes the catalog over a versioned JSON resource API.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/okayama-mayu/rails-engine/internal/middleware"
	"github.com/okayama-mayu/rails-engine/internal/service"
)

// Options configures optional router features.
type Options struct {
	// Metrics records request metrics when set.
	Metrics *middleware.Metrics
	// MetricsHandler is served at /metrics when set.
	MetricsHandler http.Handler
}

// Handler serves the /api/v1 routes.
type Handler struct {
	svc      *service.CatalogService
	validate *validatorv10.Validate
}

// NewHandler creates a Handler backed by svc.
func NewHandler(svc *service.CatalogService) *Handler {
	return &Handler{svc: svc, validate: newValidator()}
}

// NewRouter builds the gin engine with middleware and every route registered.
func NewRouter(svc *service.CatalogService, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logging(), middleware.CORS())
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Handler())
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(opts.MetricsHandler))
	}

	NewHandler(svc).Register(r.Group("/api/v1"))
	return r
}

// Register mounts the merchant and item routes on g.
func (h *Handler) Register(g *gin.RouterGroup) {
	merchants := g.Group("/merchants")
	merchants.GET("", h.listMerchants)
	merchants.GET("/find", h.findMerchant)
	merchants.GET("/find_all", h.findAllMerchants)
	merchants.GET("/:id", h.getMerchant)
	merchants.GET("/:id/items", h.merchantItems)

	items := g.Group("/items")
	items.GET("", h.listItems)
	items.GET("/find_all", h.listItems)
	items.GET("/find", h.findItem)
	items.GET("/:id", h.getItem)
	items.GET("/:id/merchant", h.itemMerchant)
	items.POST("", h.createItem)
	items.PATCH("/:id", h.updateItem)
	items.PUT("/:id", h.updateItem)
	items.DELETE("/:id", h.deleteItem)
}
