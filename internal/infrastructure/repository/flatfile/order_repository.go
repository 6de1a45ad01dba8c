package flatfile

import (
	"context"
	"log/slog"

	"github.com/mrops-br/inventory-api/internal/domain"
	"github.com/mrops-br/inventory-api/internal/infrastructure/storage/recordstore"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// OrderRepository is a file-backed implementation of domain.OrderRepository
type OrderRepository struct {
	table  *table[domain.Order]
	tracer trace.Tracer
	logger *slog.Logger
}

// NewOrderRepository loads every order from file
func NewOrderRepository(file *recordstore.File, tracer trace.Tracer, logger *slog.Logger) (*OrderRepository, error) {
	t, err := openTable(file, orderCodec)
	if err != nil {
		return nil, err
	}

	logger.Info("Orders loaded",
		slog.String("file", file.Path()),
		slog.Int("count", t.count()),
	)

	return &OrderRepository{table: t, tracer: tracer, logger: logger}, nil
}

// Create appends an order and rewrites the orders file
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	ctx, span := r.tracer.Start(ctx, "OrderRepository.Create")
	defer span.End()

	span.SetAttributes(
		attribute.String("order.id", order.ID),
		attribute.String("product.id", order.ProductID),
		attribute.String("supplier.id", order.SupplierID),
		attribute.Int("order.quantity", order.Quantity),
	)

	if err := r.table.insert(*order); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to persist orders")
		r.logger.ErrorContext(ctx, "Failed to persist orders",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
		return err
	}

	r.logger.InfoContext(ctx, "Order created in repository",
		slog.String("order_id", order.ID),
		slog.String("product_id", order.ProductID),
	)

	span.SetStatus(codes.Ok, "Order created successfully")
	return nil
}

// FindAll retrieves all orders in file order
func (r *OrderRepository) FindAll(ctx context.Context) ([]*domain.Order, error) {
	_, span := r.tracer.Start(ctx, "OrderRepository.FindAll")
	defer span.End()

	rows := r.table.all()
	orders := make([]*domain.Order, len(rows))
	for i := range rows {
		orders[i] = &rows[i]
	}

	span.SetAttributes(attribute.Int("order.count", len(orders)))
	return orders, nil
}

// NextID returns the next unused sequential order ID
func (r *OrderRepository) NextID(ctx context.Context) (string, error) {
	return r.table.nextID(domain.OrderIDPrefix), nil
}
