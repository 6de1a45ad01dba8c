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

// SaleRepository is a file-backed implementation of domain.SaleRepository
type SaleRepository struct {
	table  *table[domain.Sale]
	tracer trace.Tracer
	logger *slog.Logger
}

// NewSaleRepository loads every sale from file
func NewSaleRepository(file *recordstore.File, tracer trace.Tracer, logger *slog.Logger) (*SaleRepository, error) {
	t, err := openTable(file, saleCodec)
	if err != nil {
		return nil, err
	}

	logger.Info("Sales loaded",
		slog.String("file", file.Path()),
		slog.Int("count", t.count()),
	)

	return &SaleRepository{table: t, tracer: tracer, logger: logger}, nil
}

// Create appends a sale and rewrites the sales file
func (r *SaleRepository) Create(ctx context.Context, sale *domain.Sale) error {
	ctx, span := r.tracer.Start(ctx, "SaleRepository.Create")
	defer span.End()

	span.SetAttributes(
		attribute.String("sale.id", sale.ID),
		attribute.String("product.id", sale.ProductID),
		attribute.Int("sale.quantity", sale.QuantitySold),
	)

	if err := r.table.insert(*sale); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to persist sales")
		r.logger.ErrorContext(ctx, "Failed to persist sales",
			slog.String("sale_id", sale.ID),
			slog.String("error", err.Error()),
		)
		return err
	}

	r.logger.InfoContext(ctx, "Sale created in repository",
		slog.String("sale_id", sale.ID),
		slog.String("product_id", sale.ProductID),
	)

	span.SetStatus(codes.Ok, "Sale created successfully")
	return nil
}

// FindAll retrieves all sales in file order
func (r *SaleRepository) FindAll(ctx context.Context) ([]*domain.Sale, error) {
	_, span := r.tracer.Start(ctx, "SaleRepository.FindAll")
	defer span.End()

	rows := r.table.all()
	sales := make([]*domain.Sale, len(rows))
	for i := range rows {
		sales[i] = &rows[i]
	}

	span.SetAttributes(attribute.Int("sale.count", len(sales)))
	return sales, nil
}

// NextID returns the next unused sequential sale ID
func (r *SaleRepository) NextID(ctx context.Context) (string, error) {
	return r.table.nextID(domain.SaleIDPrefix), nil
}
