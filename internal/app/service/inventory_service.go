package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mrops-br/inventory-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Repositories groups the four entity repositories the service works on
type Repositories struct {
	Products  domain.ProductRepository
	Suppliers domain.SupplierRepository
	Orders    domain.OrderRepository
	Sales     domain.SaleRepository
}

// InventoryService handles the inventory use cases. Every mutating
// operation validates first, then writes; writes are serialised.
type InventoryService struct {
	mu sync.Mutex

	products  domain.ProductRepository
	suppliers domain.SupplierRepository
	orders    domain.OrderRepository
	sales     domain.SaleRepository

	lowStockThreshold int
	nowFunc           func() time.Time
	newID             func() string

	tracer                trace.Tracer
	logger                *slog.Logger
	productCreatedCounter metric.Int64Counter
	operations            metric.Int64Counter
	stockMovements        metric.Int64Counter
}

// NewInventoryService creates a new inventory service. A threshold below 1
// falls back to domain.DefaultLowStockThreshold.
func NewInventoryService(
	repos Repositories,
	lowStockThreshold int,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *InventoryService {
	if lowStockThreshold < 1 {
		lowStockThreshold = domain.DefaultLowStockThreshold
	}

	// Initialize metrics
	productCreatedCounter, _ := meter.Int64Counter(
		"products.created.total",
		metric.WithDescription("Total number of products created"),
	)

	operations, _ := meter.Int64Counter(
		"inventory.operations",
		metric.WithDescription("Total number of inventory operations"),
	)

	stockMovements, _ := meter.Int64Counter(
		"inventory.stock.movements",
		metric.WithDescription("Units moved into or out of stock"),
		metric.WithUnit("{unit}"),
	)

	return &InventoryService{
		products:              repos.Products,
		suppliers:             repos.Suppliers,
		orders:                repos.Orders,
		sales:                 repos.Sales,
		lowStockThreshold:     lowStockThreshold,
		nowFunc:               time.Now,
		newID:                 uuid.NewString,
		tracer:                tracer,
		logger:                logger,
		productCreatedCounter: productCreatedCounter,
		operations:            operations,
		stockMovements:        stockMovements,
	}
}

// fail records err on the span, logs it at a level matching its kind and
// counts the operation. It returns err unchanged.
func (s *InventoryService) fail(ctx context.Context, span trace.Span, operation string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	result := "failure"
	switch {
	case domain.IsValidation(err):
		result = "rejected"
		s.logger.WarnContext(ctx, "Operation rejected",
			slog.String("operation", operation),
			slog.String("reason", err.Error()),
		)
	case domain.IsNotFound(err):
		result = "not_found"
		s.logger.WarnContext(ctx, "Referenced entity not found",
			slog.String("operation", operation),
			slog.String("reason", err.Error()),
		)
	default:
		s.logger.ErrorContext(ctx, "Operation failed",
			slog.String("operation", operation),
			slog.String("error", err.Error()),
		)
	}

	s.countOperation(ctx, operation, result)
	return err
}

func (s *InventoryService) succeed(ctx context.Context, span trace.Span, operation, message string) {
	s.countOperation(ctx, operation, "success")
	s.logger.InfoContext(ctx, message, slog.String("operation", operation))
	span.SetStatus(codes.Ok, message)
}

func (s *InventoryService) countOperation(ctx context.Context, operation, result string) {
	s.operations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("result", result),
		),
	)
}

func (s *InventoryService) countMovement(ctx context.Context, direction string, units int) {
	s.stockMovements.Add(ctx, int64(units),
		metric.WithAttributes(attribute.String("direction", direction)),
	)
}

// resolveProduct looks a product up by ID when one is given, by display name otherwise
func (s *InventoryService) resolveProduct(ctx context.Context, id, name string) (*domain.Product, error) {
	if id != "" {
		return s.products.FindByID(ctx, id)
	}
	return s.products.FindByName(ctx, name)
}

func (s *InventoryService) resolveSupplier(ctx context.Context, id, name string) (*domain.Supplier, error) {
	if id != "" {
		return s.suppliers.FindByID(ctx, id)
	}
	return s.suppliers.FindByName(ctx, name)
}

// restoreProduct writes back a product whose stock change was persisted
// before a dependent write failed.
func (s *InventoryService) restoreProduct(ctx context.Context, previous *domain.Product) {
	if err := s.products.Update(ctx, previous); err != nil {
		s.logger.ErrorContext(ctx, "Failed to restore product after partial write",
			slog.String("product_id", previous.ID),
			slog.Int("stock", previous.Stock),
			slog.String("error", err.Error()),
		)
		return
	}
	s.logger.WarnContext(ctx, "Product restored after partial write",
		slog.String("product_id", previous.ID),
		slog.Int("stock", previous.Stock),
	)
}
