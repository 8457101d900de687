package handler

import (
	"net/http"

	"waveo-api/internal/service"
)

type UserHandler struct {
	service *service.AuthService
}

func NewUserHandler(service *service.AuthService) *UserHandler {
	return &UserHandler{service: service}
}

// Latest returns the most recently created account, shown on the public
// welcome screen.
func (h *UserHandler) Latest(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.GetLatestAccount(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, view)
}
