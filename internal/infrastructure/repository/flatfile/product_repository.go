// Package flatfile implements the domain repositories as in-memory lists
// backed by one flat record file each.
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

// ProductRepository is a file-backed implementation of domain.ProductRepository
type ProductRepository struct {
	table  *table[domain.Product]
	tracer trace.Tracer
	logger *slog.Logger
}

// NewProductRepository loads every product from file
func NewProductRepository(file *recordstore.File, tracer trace.Tracer, logger *slog.Logger) (*ProductRepository, error) {
	t, err := openTable(file, productCodec)
	if err != nil {
		return nil, err
	}

	logger.Info("Products loaded",
		slog.String("file", file.Path()),
		slog.Int("count", t.count()),
	)

	return &ProductRepository{table: t, tracer: tracer, logger: logger}, nil
}

// Create appends a product and rewrites the products file
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Create")
	defer span.End()

	span.SetAttributes(
		attribute.String("product.id", product.ID),
		attribute.String("product.name", product.Name),
	)

	if err := r.table.insert(*product); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to persist products")
		r.logger.ErrorContext(ctx, "Failed to persist products",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
		return err
	}

	r.logger.InfoContext(ctx, "Product created in repository",
		slog.String("product_id", product.ID),
		slog.String("product_name", product.Name),
	)

	span.SetStatus(codes.Ok, "Product created successfully")
	return nil
}

// Update replaces the stored product with the same ID and rewrites the products file
func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Update")
	defer span.End()

	span.SetAttributes(
		attribute.String("product.id", product.ID),
		attribute.Int("product.stock", product.Stock),
	)

	found, err := r.table.replace(*product)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to persist products")
		r.logger.ErrorContext(ctx, "Failed to persist products",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
		return err
	}
	if !found {
		span.RecordError(domain.ErrProductNotFound)
		span.SetStatus(codes.Error, "Product not found")
		r.logger.WarnContext(ctx, "Product not found",
			slog.String("product_id", product.ID),
		)
		return domain.ErrProductNotFound
	}

	r.logger.InfoContext(ctx, "Product updated in repository",
		slog.String("product_id", product.ID),
		slog.Int("stock", product.Stock),
	)

	span.SetStatus(codes.Ok, "Product updated successfully")
	return nil
}

// FindByID retrieves a product by ID
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindByID")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	product, exists := r.table.findByID(id)
	if !exists {
		span.RecordError(domain.ErrProductNotFound)
		span.SetStatus(codes.Error, "Product not found")
		r.logger.WarnContext(ctx, "Product not found",
			slog.String("product_id", id),
		)
		return nil, domain.ErrProductNotFound
	}

	r.logger.DebugContext(ctx, "Product found in repository",
		slog.String("product_id", id),
		slog.String("product_name", product.Name),
	)

	span.SetStatus(codes.Ok, "Product found")
	return &product, nil
}

// FindByName retrieves the first product, in file order, with the given display name
func (r *ProductRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindByName")
	defer span.End()

	span.SetAttributes(attribute.String("product.name", name))

	product, exists := r.table.findFirst(func(p domain.Product) bool { return p.Name == name })
	if !exists {
		span.RecordError(domain.ErrProductNotFound)
		span.SetStatus(codes.Error, "Product not found")
		r.logger.WarnContext(ctx, "Product not found",
			slog.String("product_name", name),
		)
		return nil, domain.ErrProductNotFound
	}

	span.SetStatus(codes.Ok, "Product found")
	return &product, nil
}

// FindAll retrieves all products in file order
func (r *ProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindAll")
	defer span.End()

	rows := r.table.all()
	products := make([]*domain.Product, len(rows))
	for i := range rows {
		products[i] = &rows[i]
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))

	r.logger.DebugContext(ctx, "Products retrieved from repository",
		slog.Int("count", len(products)),
	)

	span.SetStatus(codes.Ok, "Products retrieved successfully")
	return products, nil
}

// IsUniqueID reports whether no stored product uses id
func (r *ProductRepository) IsUniqueID(ctx context.Context, id string) (bool, error) {
	_, span := r.tracer.Start(ctx, "ProductRepository.IsUniqueID")
	defer span.End()

	unique := r.table.isUnique(id)
	span.SetAttributes(
		attribute.String("product.id", id),
		attribute.Bool("product.id.unique", unique),
	)
	return unique, nil
}

// Count returns the number of stored products
func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	return r.table.count(), nil
}
