package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mrops-br/inventory-api/internal/app/service"
	"github.com/mrops-br/inventory-api/internal/infrastructure/http/response"
)

// InventoryHandler handles HTTP requests for the inventory menu actions
type InventoryHandler struct {
	service *service.InventoryService
	logger  *slog.Logger
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(service *service.InventoryService, logger *slog.Logger) *InventoryHandler {
	return &InventoryHandler{
		service: service,
		logger:  logger,
	}
}

// decode reads a JSON body into dst, answering 400 on failure
func (h *InventoryHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to decode request body",
			slog.String("error", err.Error()),
		)
		response.Error(w, http.StatusBadRequest, err)
		return false
	}
	return true
}
