// Package http exposes the catalog over REST using gin. Every /v1 route
// requires a bearer token; the resolved user travels on the request
// context and drives the access policy downstream.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mdelrosario/textbook-catalog-backend/internal/config"
)

// RouterOptions carries the optional pieces of the router.
type RouterOptions struct {
	// Limiter enables per-IP rate limiting when set.
	Limiter *RateLimiter
	// MaxPerMinute is the per-IP request budget; ignored without a Limiter.
	MaxPerMinute int
}

// NewRouter wires middleware and routes into a gin engine.
func NewRouter(
	logger *slog.Logger,
	svc catalogService,
	tokens tokenValidator,
	users userLoader,
	cors config.CORSConfig,
	opts ...RouterOptions,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(loggingMiddleware(logger))
	r.Use(corsMiddleware(cors))
	for _, opt := range opts {
		if opt.Limiter != nil {
			r.Use(opt.Limiter.Limit(opt.MaxPerMinute))
		}
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h := NewHandler(logger, svc)

	v1 := r.Group("/v1")
	v1.Use(authMiddleware(logger, tokens, users))
	{
		v1.GET("/books", h.listBooks)
		v1.POST("/books", h.createBook)
		v1.GET("/books/:code", h.getBook)
		v1.PUT("/books/:code", h.updateBook)
		v1.DELETE("/books/:code", h.deleteBook)

		v1.POST("/books/:code/remarks", h.addRemark)
		v1.PUT("/books/:code/remarks/:remarkId", h.updateRemark)
		v1.DELETE("/books/:code/remarks/:remarkId", h.deleteRemark)
	}

	return r
}
