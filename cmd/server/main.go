// Package main starts the development API server: an in-memory stand-in
// for the production commerce API, used for local runs of the client and
// for integration tests.
package main

import (
	"cmp"
	"fmt"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/cortexcart/storefront/internal/config"
	"github.com/cortexcart/storefront/internal/logger"
	"github.com/cortexcart/storefront/internal/server/handler/http"
	"github.com/cortexcart/storefront/internal/server/store"
	"github.com/cortexcart/storefront/internal/server/token"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Initialize the in-memory store with demo data.
	mem := store.NewMemory()
	if err := store.Seed(mem); err != nil {
		zapLogger.Fatal("cannot seed store", zap.Error(err))
	}

	// Token manager for issuing and verifying bearer tokens.
	tokens := token.NewManager(options.JWTSecret, token.DefaultTTL)

	// Build the router with middleware and routes.
	router := http.NewRouter(mem, tokens, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
