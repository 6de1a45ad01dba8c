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

// SupplierRepository is a file-backed implementation of domain.SupplierRepository
type SupplierRepository struct {
	table  *table[domain.Supplier]
	tracer trace.Tracer
	logger *slog.Logger
}

// NewSupplierRepository loads every supplier from file
func NewSupplierRepository(file *recordstore.File, tracer trace.Tracer, logger *slog.Logger) (*SupplierRepository, error) {
	t, err := openTable(file, supplierCodec)
	if err != nil {
		return nil, err
	}

	logger.Info("Suppliers loaded",
		slog.String("file", file.Path()),
		slog.Int("count", t.count()),
	)

	return &SupplierRepository{table: t, tracer: tracer, logger: logger}, nil
}

// Create appends a supplier and rewrites the suppliers file
func (r *SupplierRepository) Create(ctx context.Context, supplier *domain.Supplier) error {
	ctx, span := r.tracer.Start(ctx, "SupplierRepository.Create")
	defer span.End()

	span.SetAttributes(
		attribute.String("supplier.id", supplier.ID),
		attribute.String("supplier.name", supplier.Name),
	)

	if err := r.table.insert(*supplier); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to persist suppliers")
		r.logger.ErrorContext(ctx, "Failed to persist suppliers",
			slog.String("supplier_id", supplier.ID),
			slog.String("error", err.Error()),
		)
		return err
	}

	r.logger.InfoContext(ctx, "Supplier created in repository",
		slog.String("supplier_id", supplier.ID),
		slog.String("supplier_name", supplier.Name),
	)

	span.SetStatus(codes.Ok, "Supplier created successfully")
	return nil
}

// FindByID retrieves a supplier by ID
func (r *SupplierRepository) FindByID(ctx context.Context, id string) (*domain.Supplier, error) {
	ctx, span := r.tracer.Start(ctx, "SupplierRepository.FindByID")
	defer span.End()

	span.SetAttributes(attribute.String("supplier.id", id))

	supplier, exists := r.table.findByID(id)
	if !exists {
		span.RecordError(domain.ErrSupplierNotFound)
		span.SetStatus(codes.Error, "Supplier not found")
		r.logger.WarnContext(ctx, "Supplier not found",
			slog.String("supplier_id", id),
		)
		return nil, domain.ErrSupplierNotFound
	}

	span.SetStatus(codes.Ok, "Supplier found")
	return &supplier, nil
}

// FindByName retrieves the first supplier, in file order, with the given display name
func (r *SupplierRepository) FindByName(ctx context.Context, name string) (*domain.Supplier, error) {
	ctx, span := r.tracer.Start(ctx, "SupplierRepository.FindByName")
	defer span.End()

	span.SetAttributes(attribute.String("supplier.name", name))

	supplier, exists := r.table.findFirst(func(s domain.Supplier) bool { return s.Name == name })
	if !exists {
		span.RecordError(domain.ErrSupplierNotFound)
		span.SetStatus(codes.Error, "Supplier not found")
		r.logger.WarnContext(ctx, "Supplier not found",
			slog.String("supplier_name", name),
		)
		return nil, domain.ErrSupplierNotFound
	}

	span.SetStatus(codes.Ok, "Supplier found")
	return &supplier, nil
}

// FindAll retrieves all suppliers in file order
func (r *SupplierRepository) FindAll(ctx context.Context) ([]*domain.Supplier, error) {
	_, span := r.tracer.Start(ctx, "SupplierRepository.FindAll")
	defer span.End()

	rows := r.table.all()
	suppliers := make([]*domain.Supplier, len(rows))
	for i := range rows {
		suppliers[i] = &rows[i]
	}

	span.SetAttributes(attribute.Int("supplier.count", len(suppliers)))
	return suppliers, nil
}

// IsUniqueID reports whether no stored supplier uses id
func (r *SupplierRepository) IsUniqueID(ctx context.Context, id string) (bool, error) {
	return r.table.isUnique(id), nil
}

// Count returns the number of stored suppliers
func (r *SupplierRepository) Count(ctx context.Context) (int, error) {
	return r.table.count(), nil
}
