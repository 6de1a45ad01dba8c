package domain

import (
	"fmt"
	"strings"
)

// ReportType selects one of the tabular inventory reports
type ReportType string

const (
	ReportLowStock       ReportType = "low-stock"
	ReportProductSales   ReportType = "product-sales"
	ReportSupplierOrders ReportType = "supplier-orders"
)

// DefaultLowStockThreshold is used when the operator does not pick one.
const DefaultLowStockThreshold = 5

// ParseReportType accepts the slug or the menu title ("Low Stock")
func ParseReportType(text string) (ReportType, error) {
	normalized := strings.ToLower(strings.TrimSpace(text))
	normalized = strings.ReplaceAll(normalized, " ", "-")

	switch ReportType(normalized) {
	case ReportLowStock, ReportProductSales, ReportSupplierOrders:
		return ReportType(normalized), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidReportType, text)
}

// Title returns the heading shown above the report table
func (t ReportType) Title() string {
	switch t {
	case ReportLowStock:
		return "Low Stock"
	case ReportProductSales:
		return "Product Sales"
	case ReportSupplierOrders:
		return "Supplier Orders"
	}
	return string(t)
}

// ValidateThreshold checks a Low Stock threshold
func ValidateThreshold(threshold int) error {
	if threshold < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidThreshold, threshold)
	}
	return nil
}

// LowStock returns, in their original order, the products whose stock is
// strictly below threshold.
func LowStock(products []*Product, threshold int) []*Product {
	low := make([]*Product, 0)
	for _, p := range products {
		if p.Stock < threshold {
			low = append(low, p)
		}
	}
	return low
}
