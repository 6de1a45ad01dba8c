package dto

import (
	"time"

	"github.com/mrops-br/inventory-api/internal/domain"
)

// PlaceOrderRequest carries the Place Supplier Order form. Product and
// supplier are chosen by display name; an ID, when given, takes precedence.
type PlaceOrderRequest struct {
	ProductID    string `json:"product_id,omitempty"`
	ProductName  string `json:"product_name,omitempty"`
	SupplierID   string `json:"supplier_id,omitempty"`
	SupplierName string `json:"supplier_name,omitempty"`
	Quantity     int    `json:"quantity"`
}

// OrderResponse represents a placed order
type OrderResponse struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	SupplierID string    `json:"supplier_id"`
	Quantity   int       `json:"quantity"`
	Timestamp  time.Time `json:"timestamp"`
	Stock      int       `json:"stock"`
	Message    string    `json:"message,omitempty"`
}

// ToOrderResponse converts an order and the restocked product to OrderResponse
func ToOrderResponse(o *domain.Order, p *domain.Product) *OrderResponse {
	return &OrderResponse{
		ID:         o.ID,
		ProductID:  o.ProductID,
		SupplierID: o.SupplierID,
		Quantity:   o.Quantity,
		Timestamp:  o.Timestamp,
		Stock:      p.Stock,
	}
}
