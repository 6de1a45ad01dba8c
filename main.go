package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mrops-br/inventory-api/internal/app/service"
	"github.com/mrops-br/inventory-api/internal/infrastructure/config"
	"github.com/mrops-br/inventory-api/internal/infrastructure/http"
	"github.com/mrops-br/inventory-api/internal/infrastructure/http/handler"
	"github.com/mrops-br/inventory-api/internal/infrastructure/repository/flatfile"
	"github.com/mrops-br/inventory-api/internal/infrastructure/storage/recordstore"
	"github.com/mrops-br/inventory-api/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/trace"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Inventory API failed: %v", err)
	}
}

// run owns every deferred cleanup so an early error still flushes telemetry
func run() error {
	// Load configuration
	cfg := config.LoadConfig()

	telem, err := newTelemetry(cfg)
	if err != nil {
		return fmt.Errorf("initialize telemetry: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Ensure telemetry is shutdown on exit
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()
		if err := telem.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	tracer := telem.TracerProvider.Tracer("inventory-api")
	meter := telem.MeterProvider.Meter("inventory-api")
	logger := telem.Logger

	logger.Info("Starting Inventory API",
		slog.String("data_dir", cfg.Storage.DataDir),
	)

	repos, err := openRepositories(&cfg.Storage, tracer, logger)
	if err != nil {
		logger.Error("Failed to load inventory data", slog.String("error", err.Error()))
		return fmt.Errorf("load inventory data: %w", err)
	}

	inventoryService := service.NewInventoryService(repos, cfg.Inventory.LowStockThreshold, tracer, meter, logger)
	inventoryHandler := handler.NewInventoryHandler(inventoryService, logger)
	server := http.NewServer(&cfg.Server, inventoryHandler, telem.MeterProvider, telem.MetricsHandler(), logger)

	go func() {
		if err := server.Start(); err != nil {
			logger.Error("Server error", "error", err.Error())
		}
		cancel()
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("Shutting down server...")
	case <-ctx.Done():
		logger.Info("Context cancelled, shutting down...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", slog.String("error", err.Error()))
	}

	logger.Info("Server stopped")
	return nil
}

func newTelemetry(cfg *config.Config) (*telemetry.Telemetry, error) {
	level := telemetry.ParseLevel(cfg.Log.Level)
	if !cfg.OTLP.Enabled {
		return telemetry.NewNoOpTelemetry(&cfg.OTLP, level)
	}
	return telemetry.NewTelemetry(&cfg.OTLP, level)
}

// openRepositories loads the four flat files into memory
func openRepositories(cfg *config.StorageConfig, tracer trace.Tracer, logger *slog.Logger) (service.Repositories, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return service.Repositories{}, fmt.Errorf("create data directory: %w", err)
	}

	products, err := flatfile.NewProductRepository(recordstore.NewFile(cfg.Path(cfg.ProductsFile)), tracer, logger)
	if err != nil {
		return service.Repositories{}, err
	}
	suppliers, err := flatfile.NewSupplierRepository(recordstore.NewFile(cfg.Path(cfg.SuppliersFile)), tracer, logger)
	if err != nil {
		return service.Repositories{}, err
	}
	orders, err := flatfile.NewOrderRepository(recordstore.NewFile(cfg.Path(cfg.OrdersFile)), tracer, logger)
	if err != nil {
		return service.Repositories{}, err
	}
	sales, err := flatfile.NewSaleRepository(recordstore.NewFile(cfg.Path(cfg.SalesFile)), tracer, logger)
	if err != nil {
		return service.Repositories{}, err
	}

	return service.Repositories{
		Products:  products,
		Suppliers: suppliers,
		Orders:    orders,
		Sales:     sales,
	}, nil
}
