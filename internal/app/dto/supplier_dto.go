package dto

import "github.com/mrops-br/inventory-api/internal/domain"

// AddSupplierRequest carries the Add Supplier form
type AddSupplierRequest struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// SupplierResponse represents the supplier response
type SupplierResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Message string `json:"message,omitempty"`
}

func ToSupplierResponse(s *domain.Supplier) *SupplierResponse {
	return &SupplierResponse{ID: s.ID, Name: s.Name, Contact: s.Contact}
}

func ToSupplierResponseList(suppliers []*domain.Supplier) []*SupplierResponse {
	responses := make([]*SupplierResponse, len(suppliers))
	for i, s := range suppliers {
		responses[i] = ToSupplierResponse(s)
	}
	return responses
}
