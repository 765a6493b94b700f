package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deepikaoppangi/lbg-financial-overview/internal/app"
	"github.com/deepikaoppangi/lbg-financial-overview/internal/config"
	"github.com/deepikaoppangi/lbg-financial-overview/internal/handler"
	"github.com/deepikaoppangi/lbg-financial-overview/internal/middleware"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional
	_ = godotenv.Load()

	// Initialize logger
	logger := app.NewLogger(os.Getenv("LOG_LEVEL"), os.Stdout)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize layers
	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize application: %v", err)
	}
	defer a.Close()
	h := handler.NewHandler(a.Service, logger)

	// Setup router
	r := mux.NewRouter()
	h.Routes(r)

	root := middleware.Chain(r,
		middleware.Recover(logger),
		middleware.RequestID,
		middleware.Logging(logger),
		middleware.CORS(cfg.CORSOrigin),
	)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      root,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		logger.WithField("signal", sig.String()).Info("Shutting down server")
	case err := <-errCh:
		if err != nil {
			logger.WithError(err).Error("Server failed")
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Graceful shutdown failed")
	}
	logger.Info("Server stopped")
}
