package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"virginia-ai/backend/internal/gateway"
)

func main() {
	cfg, err := gateway.LoadConfig()
	if err != nil {
		slog.Error("Failed to load gateway configuration", "error", err)
		os.Exit(1)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           gateway.NewRouter(cfg.APIKey),
		ReadHeaderTimeout: 20 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	slog.Info("Starting model gateway", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Gateway server failed", "error", err)
		os.Exit(1)
	}
}
