package handler

import (
	"net/http"

	"github.com/mrops-br/inventory-api/internal/app/dto"
	"github.com/mrops-br/inventory-api/internal/infrastructure/http/response"
)

// PlaceOrder handles POST /orders
func (h *InventoryHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.PlaceOrderRequest
	if !h.decode(w, r, &req) {
		return
	}

	order, err := h.service.PlaceOrder(r.Context(), &req)
	if err != nil {
		response.ServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, order)
}

// RecordSale handles POST /sales
func (h *InventoryHandler) RecordSale(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordSaleRequest
	if !h.decode(w, r, &req) {
		return
	}

	sale, err := h.service.RecordSale(r.Context(), &req)
	if err != nil {
		response.ServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, sale)
}
