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

// AddSupplier stores a new supplier under a unique id
func (s *InventoryService) AddSupplier(ctx context.Context, req *dto.AddSupplierRequest) (*dto.SupplierResponse, error) {
	const op = "add_supplier"

	ctx, span := s.tracer.Start(ctx, "InventoryService.AddSupplier")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = s.newID()
	}

	span.SetAttributes(
		attribute.String("supplier.id", id),
		attribute.String("supplier.name", req.Name),
	)

	s.logger.InfoContext(ctx, "Adding supplier",
		slog.String("supplier_id", id),
		slog.String("name", req.Name),
	)

	unique, err := s.suppliers.IsUniqueID(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, span, op, err)
	}
	if !unique {
		return nil, s.fail(ctx, span, op, fmt.Errorf("%w: supplier %s, please choose a unique ID", domain.ErrDuplicateID, id))
	}

	supplier := &domain.Supplier{ID: id, Name: req.Name, Contact: req.Contact}
	if err := s.suppliers.Create(ctx, supplier); err != nil {
		return nil, s.fail(ctx, span, op, err)
	}

	s.succeed(ctx, span, op, "Supplier added successfully")

	resp := dto.ToSupplierResponse(supplier)
	resp.Message = "Supplier added successfully!"
	return resp, nil
}

// ListSuppliers returns every supplier in file order
func (s *InventoryService) ListSuppliers(ctx context.Context) ([]*dto.SupplierResponse, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.ListSuppliers")
	defer span.End()

	suppliers, err := s.suppliers.FindAll(ctx)
	if err != nil {
		return nil, s.fail(ctx, span, "list_suppliers", err)
	}

	span.SetAttributes(attribute.Int("supplier.count", len(suppliers)))
	s.countOperation(ctx, "list_suppliers", "success")
	span.SetStatus(codes.Ok, "Suppliers listed successfully")
	return dto.ToSupplierResponseList(suppliers), nil
}
