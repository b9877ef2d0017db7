// Package app wires configuration, storage, policy, services and the HTTP
// transport into a running server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mdelrosario/textbook-catalog-backend/internal/adapter/postgres"
	bookrepo "github.com/mdelrosario/textbook-catalog-backend/internal/adapter/postgres/book"
	remarkrepo "github.com/mdelrosario/textbook-catalog-backend/internal/adapter/postgres/remark"
	userrepo "github.com/mdelrosario/textbook-catalog-backend/internal/adapter/postgres/user"
	"github.com/mdelrosario/textbook-catalog-backend/internal/auth"
	"github.com/mdelrosario/textbook-catalog-backend/internal/cache"
	"github.com/mdelrosario/textbook-catalog-backend/internal/config"
	"github.com/mdelrosario/textbook-catalog-backend/internal/policy"
	"github.com/mdelrosario/textbook-catalog-backend/internal/service/catalog"
	transport "github.com/mdelrosario/textbook-catalog-backend/internal/transport/http"
)

// Run is the application entry point. It blocks until ctx is cancelled,
// then shuts the HTTP server down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	facts, err := policy.LoadFacts(cfg.Policy.Path)
	if err != nil {
		return fmt.Errorf("load policy facts: %w", err)
	}
	evaluator := policy.NewEvaluator(facts)

	books := bookrepo.New(pool)
	remarks := remarkrepo.New(pool)
	users := userrepo.New(pool)
	tx := postgres.NewTxManager(pool)

	results := cache.New(cfg.Cache.Size, cfg.Cache.TTL)

	svc := catalog.NewService(logger, books, remarks, evaluator, tx, results, cfg.Catalog)

	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)

	var opts []transport.RouterOptions
	if cfg.Server.RateLimitPerMinute > 0 {
		limiter := transport.NewRateLimiter(time.Minute)
		defer limiter.Stop()
		opts = append(opts, transport.RouterOptions{
			Limiter:      limiter,
			MaxPerMinute: cfg.Server.RateLimitPerMinute,
		})
	}

	router := transport.NewRouter(logger, svc, tokens, users, cfg.CORS, opts...)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
