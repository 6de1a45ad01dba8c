package handler

import (
	"net/http"

	"github.com/mrops-br/inventory-api/internal/app/dto"
	"github.com/mrops-br/inventory-api/internal/infrastructure/http/response"
)

// CreateSupplier handles POST /suppliers
func (h *InventoryHandler) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	var req dto.AddSupplierRequest
	if !h.decode(w, r, &req) {
		return
	}

	supplier, err := h.service.AddSupplier(r.Context(), &req)
	if err != nil {
		response.ServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, supplier)
}

// ListSuppliers handles GET /suppliers
func (h *InventoryHandler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.service.ListSuppliers(r.Context())
	if err != nil {
		response.ServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, suppliers)
}
