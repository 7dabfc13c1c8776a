// Package main starts the FotoShop storefront API server: configuration,
// logging, PostgreSQL, repositories, services, handlers, metrics and
// optional TLS.
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/atinyakov/FotoShop/internal/config"
	"github.com/atinyakov/FotoShop/internal/db"
	"github.com/atinyakov/FotoShop/internal/logger"
	"github.com/atinyakov/FotoShop/internal/middleware"
	"github.com/atinyakov/FotoShop/internal/repository"
	"github.com/atinyakov/FotoShop/internal/server/handler/http"
	"github.com/atinyakov/FotoShop/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

const shutdownTimeout = 10 * time.Second

// orNA returns s, or "N/A" when s is empty.
func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func main() {
	options := config.Parse()

	fmt.Printf("Build version: %s\n", orNA(version))
	fmt.Printf("Build date: %s\n", orNA(buildDate))

	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}
	defer postgresDB.Close()

	db.StartSessionCleaner(ctx, postgresDB, options.CleanInterval, zapLogger)

	authRepo := repository.NewPostgresAuthRepository(postgresDB)
	catalogRepo := repository.NewPostgresCatalogRepository(postgresDB)
	orderRepo := repository.NewPostgresOrderRepository(postgresDB)

	authService := service.NewAuthService(authRepo, options.TokenTTL)
	catalogService := service.NewCatalogService(catalogRepo)
	orderService := service.NewOrderService(orderRepo)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(postgresDB, "fotoshop"),
	)

	router := http.NewRouter(
		http.Handlers{
			Auth:    &http.AuthHandler{AuthService: authService},
			Catalog: &http.CatalogHandler{CatalogService: catalogService},
			Orders:  &http.OrderHandler{OrderService: orderService},
		},
		authService,
		middleware.NewMetrics(registry),
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		zapLogger,
	)

	server := &nethttp.Server{
		Addr:              options.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if options.TLSEnabled() {
			server.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
			zapLogger.Info("starting HTTPS server", zap.String("addr", options.Port))
			errCh <- server.ListenAndServeTLS(options.TLSCert, options.TLSKey)
			return
		}
		zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, nethttp.ErrServerClosed) {
			zapLogger.Fatal("server stopped", zap.Error(err))
		}
	case <-ctx.Done():
		zapLogger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("graceful shutdown failed", zap.Error(err))
		}
	}
}
