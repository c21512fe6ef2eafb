package devstore

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/salesdash/backend/internal/infrastructure/logger"
)

// NewHandler returns an engine serving GET /products and GET /carts.
// Both accept an optional limit query parameter.
func NewHandler(ds Dataset, log *zap.Logger) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}
	engine := gin.New()
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	engine.GET("/products", func(c *gin.Context) {
		c.JSON(http.StatusOK, limit(c, ds.Products))
	})
	engine.GET("/carts", func(c *gin.Context) {
		c.JSON(http.StatusOK, limit(c, ds.Carts))
	})
	return engine
}

func limit[T any](c *gin.Context, items []T) []T {
	raw := c.Query("limit")
	if raw == "" {
		return items
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n >= len(items) {
		return items
	}
	return items[:n]
}
