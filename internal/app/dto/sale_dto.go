package dto

import "github.com/mrops-br/inventory-api/internal/domain"

// RecordSaleRequest carries the Record Sales form. Dates use YYYY-MM-DD.
type RecordSaleRequest struct {
	ProductID    string `json:"product_id,omitempty"`
	ProductName  string `json:"product_name,omitempty"`
	QuantitySold int    `json:"quantity_sold"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
}

// SaleResponse represents a recorded sale along with the remaining stock
type SaleResponse struct {
	ID             string `json:"id"`
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	QuantitySold   int    `json:"quantity_sold"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	RemainingStock int    `json:"remaining_stock"`
	Message        string `json:"message,omitempty"`
}

func ToSaleResponse(s *domain.Sale, p *domain.Product) *SaleResponse {
	return &SaleResponse{
		ID:             s.ID,
		ProductID:      s.ProductID,
		ProductName:    s.ProductName,
		QuantitySold:   s.QuantitySold,
		StartDate:      s.StartDate.Format(domain.DateLayout),
		EndDate:        s.EndDate.Format(domain.DateLayout),
		RemainingStock: p.Stock,
	}
}
