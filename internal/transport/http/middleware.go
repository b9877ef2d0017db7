package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mdelrosario/textbook-catalog-backend/internal/config"
	"github.com/mdelrosario/textbook-catalog-backend/internal/domain"
	"github.com/mdelrosario/textbook-catalog-backend/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateAccessToken(tokenString string) (string, error)
}

type userLoader interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// requestIDMiddleware assigns every request an ID, honoring one supplied
// by the ingress proxy.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)
		c.Request = c.Request.WithContext(ctxutil.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// authMiddleware validates the bearer token and resolves the subject
// username to a full user record with access rules. The resolved user
// rides the request context; everything downstream reads it from there.
func authMiddleware(log *slog.Logger, tokens tokenValidator, users userLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
			return
		}

		username, err := tokens.ValidateAccessToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "invalid token"})
			return
		}

		user, err := users.GetByUsername(c.Request.Context(), username)
		if err != nil {
			// An unknown subject is an auth failure, not a missing resource.
			log.WarnContext(c.Request.Context(), "token subject not resolvable",
				"username", username, "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "unknown user"})
			return
		}

		c.Request = c.Request.WithContext(ctxutil.WithUser(c.Request.Context(), user))
		c.Next()
	}
}

// loggingMiddleware logs each request with method, path, status, duration
// and context identifiers (request_id, username).
func loggingMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		ctx := c.Request.Context()
		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
		}
		if user, ok := ctxutil.UserFromCtx(ctx); ok {
			attrs = append(attrs, slog.String("username", user.Username))
		}

		level := slog.LevelInfo
		if c.Writer.Status() >= 500 {
			level = slog.LevelError
		}
		logger.LogAttrs(ctx, level, "http.request", attrs...)
	}
}

// corsMiddleware applies the configured CORS policy.
func corsMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", cfg.AllowedOrigins)
		c.Header("Access-Control-Allow-Methods", cfg.AllowedMethods)
		c.Header("Access-Control-Allow-Headers", cfg.AllowedHeaders)
		c.Header("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		if cfg.AllowCredentials {
			c.Header("Access-Control-Allow-Credentials", "true")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
