package service

import (
	"context"
	"fmt"

	"github.com/mrops-br/inventory-api/internal/app/dto"
	"github.com/mrops-br/inventory-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// GenerateReport builds one of the read-only report tables. threshold only
// applies to the Low Stock report; nil selects the configured default.
func (s *InventoryService) GenerateReport(ctx context.Context, reportType string, threshold *int) (*dto.ReportResponse, error) {
	const op = "generate_report"

	ctx, span := s.tracer.Start(ctx, "InventoryService.GenerateReport")
	defer span.End()

	kind, err := domain.ParseReportType(reportType)
	if err != nil {
		return nil, s.fail(ctx, span, op, err)
	}
	span.SetAttributes(attribute.String("report.type", string(kind)))

	resp := &dto.ReportResponse{Type: kind, Title: kind.Title()}

	switch kind {
	case domain.ReportLowStock:
		limit := s.lowStockThreshold
		if threshold != nil {
			limit = *threshold
		}
		if err := domain.ValidateThreshold(limit); err != nil {
			return nil, s.fail(ctx, span, op, err)
		}

		products, err := s.products.FindAll(ctx)
		if err != nil {
			return nil, s.fail(ctx, span, op, err)
		}

		resp.Threshold = limit
		resp.Title = fmt.Sprintf("Products with stock below %d", limit)
		resp.Columns = dto.ProductColumns
		resp.Rows = dto.ToRows(domain.LowStock(products, limit))
		if len(resp.Rows) == 0 {
			resp.Message = "No products with low stock."
		}

	case domain.ReportProductSales:
		sales, err := s.sales.FindAll(ctx)
		if err != nil {
			return nil, s.fail(ctx, span, op, err)
		}
		resp.Columns = dto.SaleColumns
		resp.Rows = dto.ToRows(sales)
		if len(resp.Rows) == 0 {
			resp.Message = "No sales recorded yet."
		}

	case domain.ReportSupplierOrders:
		orders, err := s.orders.FindAll(ctx)
		if err != nil {
			return nil, s.fail(ctx, span, op, err)
		}
		resp.Columns = dto.OrderColumns
		resp.Rows = dto.ToRows(orders)
		if len(resp.Rows) == 0 {
			resp.Message = "No orders available."
		}
	}

	span.SetAttributes(attribute.Int("report.rows", len(resp.Rows)))
	s.countOperation(ctx, op, "success")
	span.SetStatus(codes.Ok, "Report generated")
	return resp, nil
}
