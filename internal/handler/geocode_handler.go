package handler

import (
	"net/http"

	"waveo-api/internal/service"
)

type GeocodeHandler struct {
	service *service.GeocodeService
}

func NewGeocodeHandler(service *service.GeocodeService) *GeocodeHandler {
	return &GeocodeHandler{service: service}
}

func (h *GeocodeHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Lookup(r.Context(), r.URL.Query().Get("place"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result)
}
