package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"catalog-admin/internal/catalog"
	"catalog-admin/internal/config"
	"catalog-admin/internal/db"
	"catalog-admin/internal/logger"
	"catalog-admin/internal/middleware"
	"catalog-admin/internal/product"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

var (
	initDBFunc       = db.NewDatabase
	startServerFunc  = func(srv *http.Server) error { return srv.ListenAndServe() }
	waitShutdownFunc = func(ops map[string]gfshutdown.Operation) int {
		return <-gfshutdown.GracefulShutdown(context.Background(), shutdownTimeout, ops)
	}
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.AppEnv, cfg.LogLevel); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	database, err := initDBFunc(cfg)
	if err != nil {
		return err
	}

	limiter := middleware.NewRateLimiter()
	stopLimiter := make(chan struct{})
	go limiter.Run(time.Minute, stopLimiter)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           newServer(cfg, database, limiter),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.L().Info("admin api listening", zap.String("addr", srv.Addr))
		serverErr <- startServerFunc(srv)
	}()

	done := make(chan int, 1)
	go func() {
		done <- waitShutdownFunc(map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				return srv.Shutdown(ctx)
			},
			"rate-limiter": func(ctx context.Context) error {
				close(stopLimiter)
				return nil
			},
			"database": func(ctx context.Context) error {
				return database.Close()
			},
		})
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
	case code := <-done:
		return exitError(code)
	}

	return exitError(<-done)
}

func exitError(code int) error {
	if code != 0 {
		return fmt.Errorf("shutdown finished with exit code %d", code)
	}
	logger.L().Info("shutdown complete")
	return nil
}

func newServer(cfg *config.Config, database *sql.DB, limiter *middleware.RateLimiter) http.Handler {
	catalogSvc := catalog.NewService(catalog.NewRepository(database), cfg.CatalogCacheTTL)
	productSvc := product.NewService(product.NewRepository(database), catalogSvc)

	products := http.NewServeMux()
	product.NewHandler(productSvc).Register(products)

	return setupRouter(database, middleware.Chain(products,
		middleware.Auth([]byte(cfg.JWTSecret)),
		limiter.Middleware,
	), cfg.CORSOrigin)
}

func setupRouter(database *sql.DB, products http.Handler, corsOrigin string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := database.PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	mux.Handle("/products/", products)

	return middleware.Chain(mux,
		logger.RequestIDMiddleware,
		logger.LoggingMiddleware,
		middleware.CORS(corsOrigin),
	)
}
