package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mrops-br/inventory-api/internal/infrastructure/http/response"
)

// GenerateReport handles GET /reports/{type}?threshold=N
func (h *InventoryHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	var threshold *int
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, fmt.Errorf("threshold %q is not an integer", raw))
			return
		}
		threshold = &n
	}

	report, err := h.service.GenerateReport(r.Context(), chi.URLParam(r, "type"), threshold)
	if err != nil {
		response.ServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, report)
}
