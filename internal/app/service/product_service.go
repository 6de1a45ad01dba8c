package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mrops-br/inventory-api/internal/app/dto"
	"github.com/mrops-br/inventory-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// AddProduct validates the Add Product form and stores a new product.
// Checks run in order: unique id, price, stock.
func (s *InventoryService) AddProduct(ctx context.Context, req *dto.AddProductRequest) (*dto.ProductResponse, error) {
	const op = "add_product"

	ctx, span := s.tracer.Start(ctx, "InventoryService.AddProduct")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = s.newID()
	}

	span.SetAttributes(
		attribute.String("product.id", id),
		attribute.String("product.name", req.Name),
	)

	s.logger.InfoContext(ctx, "Adding product",
		slog.String("product_id", id),
		slog.String("name", req.Name),
	)

	unique, err := s.products.IsUniqueID(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, span, op, err)
	}
	if !unique {
		return nil, s.fail(ctx, span, op, fmt.Errorf("%w: product %s, please use a unique ID", domain.ErrDuplicateID, id))
	}

	product, err := domain.NewProduct(id, req.Name, req.Description, req.Price, req.Stock)
	if err != nil {
		return nil, s.fail(ctx, span, op, err)
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, s.fail(ctx, span, op, err)
	}

	s.productCreatedCounter.Add(ctx, 1)
	s.succeed(ctx, span, op, "Product added successfully")

	resp := dto.ToProductResponse(product)
	resp.Message = "Product added successfully!"
	return resp, nil
}

// UpdateProduct replaces the given fields of an existing product. Price and
// stock go through the same checks as AddProduct.
func (s *InventoryService) UpdateProduct(ctx context.Context, id string, req *dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	const op = "update_product"

	ctx, span := s.tracer.Start(ctx, "InventoryService.UpdateProduct")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	s.mu.Lock()
	defer s.mu.Unlock()

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, span, op, err)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		price, err := domain.ParsePrice(*req.Price)
		if err != nil {
			return nil, s.fail(ctx, span, op, err)
		}
		product.Price = price
	}
	if req.Stock != nil {
		stock, err := domain.ParseStock(*req.Stock)
		if err != nil {
			return nil, s.fail(ctx, span, op, err)
		}
		product.Stock = stock
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, s.fail(ctx, span, op, err)
	}

	s.succeed(ctx, span, op, "Product updated successfully")

	resp := dto.ToProductResponse(product)
	resp.Message = fmt.Sprintf("Product %s updated successfully!", product.ID)
	return resp, nil
}

// GetProductByID retrieves a product by ID
func (s *InventoryService) GetProductByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.GetProductByID")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, span, "get_product", err)
	}

	s.countOperation(ctx, "get_product", "success")
	span.SetStatus(codes.Ok, "Product retrieved successfully")
	return dto.ToProductResponse(product), nil
}

// ListProducts returns the whole inventory in file order
func (s *InventoryService) ListProducts(ctx context.Context) ([]*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.ListProducts")
	defer span.End()

	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, s.fail(ctx, span, "list_products", err)
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	s.countOperation(ctx, "list_products", "success")
	span.SetStatus(codes.Ok, "Products listed successfully")
	return dto.ToProductResponseList(products), nil
}
