package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mrops-br/inventory-api/internal/app/dto"
	"github.com/mrops-br/inventory-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
)

// RecordSale takes sold units out of stock and appends a sale record with a
// snapshot of the product name. A sale larger than the current stock is
// rejected before anything is written.
func (s *InventoryService) RecordSale(ctx context.Context, req *dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	const op = "record_sale"

	ctx, span := s.tracer.Start(ctx, "InventoryService.RecordSale")
	defer span.End()

	span.SetAttributes(
		attribute.String("product.id", req.ProductID),
		attribute.String("product.name", req.ProductName),
		attribute.Int("sale.quantity", req.QuantitySold),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.products.Count(ctx)
	if err != nil {
		return nil, s.fail(ctx, span, op, err)
	}
	if products == 0 {
		return nil, s.fail(ctx, span, op, domain.ErrNoProducts)
	}

	if err := domain.ValidateQuantity(req.QuantitySold); err != nil {
		return nil, s.fail(ctx, span, op, err)
	}

	start, err := domain.ParseDate(req.StartDate)
	if err != nil {
		return nil, s.fail(ctx, span, op, err)
	}
	end, err := domain.ParseDate(req.EndDate)
	if err != nil {
		return nil, s.fail(ctx, span, op, err)
	}
	if err := domain.ValidatePeriod(start, end); err != nil {
		return nil, s.fail(ctx, span, op, err)
	}

	product, err := s.resolveProduct(ctx, req.ProductID, req.ProductName)
	if err != nil {
		return nil, s.fail(ctx, span, op, err)
	}

	previous := *product
	if err := product.Sell(req.QuantitySold); err != nil {
		return nil, s.fail(ctx, span, op, err)
	}

	saleID, err := s.sales.NextID(ctx)
	if err != nil {
		return nil, s.fail(ctx, span, op, err)
	}
	sale, err := domain.NewSale(saleID, &previous, req.QuantitySold, start, end)
	if err != nil {
		return nil, s.fail(ctx, span, op, err)
	}

	span.SetAttributes(attribute.String("sale.id", sale.ID))

	if err := s.products.Update(ctx, product); err != nil {
		return nil, s.fail(ctx, span, op, err)
	}
	if err := s.sales.Create(ctx, sale); err != nil {
		s.restoreProduct(ctx, &previous)
		return nil, s.fail(ctx, span, op, err)
	}

	s.countMovement(ctx, "out", req.QuantitySold)
	s.logger.InfoContext(ctx, "Stock sold",
		slog.String("sale_id", sale.ID),
		slog.String("product_id", product.ID),
		slog.Int("stock", product.Stock),
	)
	s.succeed(ctx, span, op, "Sale recorded successfully")

	resp := dto.ToSaleResponse(sale, product)
	resp.Message = fmt.Sprintf("Sales recorded for %s! Quantity Sold: %d. Remaining Stock: %d.",
		product.Name, sale.QuantitySold, product.Stock)
	return resp, nil
}
