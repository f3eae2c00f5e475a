package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DrWallflower/minibank/internal/application/services"
	"github.com/DrWallflower/minibank/internal/config"
	"github.com/DrWallflower/minibank/internal/infrastructure/textlog"
	rest "github.com/DrWallflower/minibank/internal/interface/api/rest/chi"
	"github.com/DrWallflower/minibank/pkg/logger"
)

// Version indicates the current version of the application.
var Version = "1.0.0"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Server run context.
	serverCtx, serverStopCtx := context.WithCancel(context.Background())
	defer serverStopCtx()

	// Load application configurations.
	cfg := config.MustLoad()

	// Create root logger tagged with server version.
	logger := logger.New(cfg).With(serverCtx, "version", Version)
	defer func() {
		_ = logger.Sync()
	}()

	// Init the two append-only log stores.
	accountStore, err := textlog.NewAccountStore(cfg.Storage.AccountsFile, logger)
	if err != nil {
		return fmt.Errorf("failed to init account store: %w", err)
	}

	transactionStore, err := textlog.NewTransactionStore(cfg.Storage.TransactionsFile, logger)
	if err != nil {
		return fmt.Errorf("failed to init transaction store: %w", err)
	}

	// Init the ledger; this replays both logs.
	bankService, err := services.NewBankService(serverCtx, accountStore, transactionStore, nil, logger)
	if err != nil {
		return fmt.Errorf("failed to init bank service: %w", err)
	}

	// Create root router.
	router := rest.InitChi(logger)

	// Register the ledger routes.
	rest.NewBankController(bankService, rest.ChiServerOptions{
		BaseURL:    "/api",
		BaseRouter: router,
	})

	// Build HTTP server.
	hs := &http.Server{
		Addr:              cfg.HTTPServer.Address,
		ReadHeaderTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:       cfg.HTTPServer.IdleTimeout,
		Handler:           router,
	}

	// Graceful shutdown.
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT,
			syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)

		signal := <-sig

		logger.With(serverCtx, "signal", signal.String()).
			Infof("Shutting down server with %s timeout",
				cfg.HTTPServer.ShutdownTimeout)

		if err = hs.Shutdown(serverCtx); err != nil {
			logger.Errorf("graceful shutdown failed: %s", err)
		}
		serverStopCtx()
	}()

	// Start the HTTP server with graceful shutdown.
	logger.Infof("Server %v is running at %v", Version, cfg.HTTPServer.Address)
	if err = hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("run server failed: %w", err)
	}

	// Wait for server context to be stopped or force exit if timeout exceeded.
	select {
	case <-serverCtx.Done():
	case <-time.After(cfg.HTTPServer.ShutdownTimeout):
		return errors.New("graceful shutdown timed out.. forcing exit")
	}

	return nil
}
