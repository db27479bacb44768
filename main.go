package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreybb/voxvite/api"
	"github.com/coreybb/voxvite/config"
	"github.com/coreybb/voxvite/datastore"
	rh "github.com/coreybb/voxvite/route-handlers"
	"github.com/coreybb/voxvite/storage"
)

const shutdownTimeout = 15 * time.Second

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	cfg := config.Load()

	accounts := datastore.NewAccountRegistry()
	sessions := datastore.NewSessionRegistry()
	invites := datastore.NewInviteRegistry()

	audioStore := storage.NewLocalAudioStore(cfg.UploadDir, cfg.MaxUploadBytes)

	authHandler := rh.NewAuthHandler(accounts, sessions)
	uploadHandler := rh.NewUploadHandler(audioStore, cfg.MaxUploadBytes)
	inviteHandler := rh.NewInviteHandler(invites)

	router := api.SetupRoutes(cfg, sessions, authHandler, uploadHandler, inviteHandler)

	startServer(cfg.Port, router)
}

func startServer(port string, router http.Handler) {
	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	shutdownSignal := make(chan os.Signal, 1)
	signal.Notify(shutdownSignal, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	<-shutdownSignal // Block until signal received
	slog.Info("Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}

	slog.Info("Server gracefully stopped")
}
