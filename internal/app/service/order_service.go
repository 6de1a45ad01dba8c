package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mrops-br/inventory-api/internal/app/dto"
	"github.com/mrops-br/inventory-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
)

// PlaceOrder receives stock from a supplier: the product's stock grows by
// the ordered quantity and an order record is appended.
func (s *InventoryService) PlaceOrder(ctx context.Context, req *dto.PlaceOrderRequest) (*dto.OrderResponse, error) {
	const op = "place_order"

	ctx, span := s.tracer.Start(ctx, "InventoryService.PlaceOrder")
	defer span.End()

	span.SetAttributes(
		attribute.String("product.name", req.ProductName),
		attribute.String("supplier.name", req.SupplierName),
		attribute.Int("order.quantity", req.Quantity),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	suppliers, err := s.suppliers.Count(ctx)
	if err != nil {
		return nil, s.fail(ctx, span, op, err)
	}
	if suppliers == 0 {
		return nil, s.fail(ctx, span, op, domain.ErrNoSuppliers)
	}

	products, err := s.products.Count(ctx)
	if err != nil {
		return nil, s.fail(ctx, span, op, err)
	}
	if products == 0 {
		return nil, s.fail(ctx, span, op, domain.ErrNoProducts)
	}

	if err := domain.ValidateQuantity(req.Quantity); err != nil {
		return nil, s.fail(ctx, span, op, err)
	}

	product, err := s.resolveProduct(ctx, req.ProductID, req.ProductName)
	if err != nil {
		return nil, s.fail(ctx, span, op, err)
	}
	supplier, err := s.resolveSupplier(ctx, req.SupplierID, req.SupplierName)
	if err != nil {
		return nil, s.fail(ctx, span, op, err)
	}

	orderID, err := s.orders.NextID(ctx)
	if err != nil {
		return nil, s.fail(ctx, span, op, err)
	}

	order, err := domain.NewOrder(orderID, product.ID, supplier.ID, req.Quantity, s.nowFunc())
	if err != nil {
		return nil, s.fail(ctx, span, op, err)
	}

	previous := *product
	if err := product.Restock(req.Quantity); err != nil {
		return nil, s.fail(ctx, span, op, err)
	}

	span.SetAttributes(
		attribute.String("order.id", order.ID),
		attribute.String("product.id", product.ID),
		attribute.String("supplier.id", supplier.ID),
	)

	if err := s.products.Update(ctx, product); err != nil {
		return nil, s.fail(ctx, span, op, err)
	}
	if err := s.orders.Create(ctx, order); err != nil {
		s.restoreProduct(ctx, &previous)
		return nil, s.fail(ctx, span, op, err)
	}

	s.countMovement(ctx, "in", req.Quantity)
	s.logger.InfoContext(ctx, "Stock received",
		slog.String("order_id", order.ID),
		slog.String("product_id", product.ID),
		slog.Int("stock", product.Stock),
	)
	s.succeed(ctx, span, op, "Order placed successfully")

	resp := dto.ToOrderResponse(order, product)
	resp.Message = fmt.Sprintf("Order placed successfully! %d units of %s ordered from %s.",
		req.Quantity, product.Name, supplier.Name)
	return resp, nil
}
