package handler

import (
	"encoding/json"
	"net/http"

	"waveo-api/internal/middleware"
	"waveo-api/internal/model"
	"waveo-api/internal/service"
	"waveo-api/pkg/apierror"
)

type ProfileHandler struct {
	service *service.FavoriteService
}

func NewProfileHandler(service *service.FavoriteService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Get returns the authenticated account's profile with its favorites. The
// identity always comes from the verified claims, never from a parameter.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apierror.New("UNAUTHORIZED", "authentication required", "", http.StatusUnauthorized))
		return
	}

	profile, err := h.service.Profile(r.Context(), claims.AccountID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apierror.New("UNAUTHORIZED", "authentication required", "", http.StatusUnauthorized))
		return
	}

	var payload model.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), claims.AccountID, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, profile)
}
