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

	"github.com/lojavirtual/api/internal/core/service"
	"github.com/lojavirtual/api/internal/infra/adapters/mongodb"
	"github.com/lojavirtual/api/internal/infra/adapters/uploads"
	"github.com/lojavirtual/api/internal/infra/httpx"
	"github.com/lojavirtual/api/internal/pkg/config"
	"github.com/lojavirtual/api/internal/pkg/telemetry"
)

func main() {
	telemetry.InitLogger()
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.SetupTracer(ctx, "loja-api")
	if err != nil {
		slog.Error("tracer setup failed", "error", err)
		os.Exit(1)
	}

	connectCtx, cancelConnect := context.WithTimeout(ctx, 10*time.Second)
	store, err := mongodb.Connect(connectCtx, cfg.MongoURI, cfg.MongoDB)
	cancelConnect()
	if err != nil {
		slog.Error("mongodb connection failed", "error", err)
		os.Exit(1)
	}

	files, err := uploads.NewDiskStorage(cfg.UploadsDir)
	if err != nil {
		slog.Error("uploads dir setup failed", "error", err)
		os.Exit(1)
	}

	handler := httpx.NewHandler(
		service.NewCustomerService(store),
		service.NewProductService(store, files),
		service.NewOrderService(store),
		service.NewStatisticsService(store),
	)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: httpx.NewRouter(handler, files.Dir()),
	}

	go func() {
		slog.Info("server listening", "addr", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(stopCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
	if err := store.Close(stopCtx); err != nil {
		slog.Error("store disconnect failed", "error", err)
	}
	if err := shutdownTracer(stopCtx); err != nil {
		slog.Error("tracer shutdown failed", "error", err)
	}
}
