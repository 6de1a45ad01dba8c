package dto

import "github.com/mrops-br/inventory-api/internal/domain"

// ReportResponse is a table ready for display. Rows hold the persisted
// text of each record, in file order.
type ReportResponse struct {
	Type      domain.ReportType `json:"type"`
	Title     string            `json:"title"`
	Threshold int               `json:"threshold,omitempty"`
	Columns   []string          `json:"columns"`
	Rows      [][]string        `json:"rows"`
	Message   string            `json:"message,omitempty"`
}

var (
	ProductColumns = []string{"ID", "Name", "Description", "Price", "Stock"}
	SaleColumns    = []string{"Sales ID", "Product ID", "Product Name", "Quantity Sold", "Start Date", "End Date"}
	OrderColumns   = []string{"Order ID", "Product ID", "Quantity", "Date", "Supplier ID"}
)

// fielder is implemented by every persisted entity
type fielder interface {
	Fields() []string
}

// ToRows renders entities as table rows
func ToRows[T fielder](items []T) [][]string {
	rows := make([][]string, len(items))
	for i, item := range items {
		rows[i] = item.Fields()
	}
	return rows
}
