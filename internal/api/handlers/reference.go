package handlers

import (
	"condo-package-service/internal/api/dto"
	"condo-package-service/internal/ports"
	"net/http"

	"go.uber.org/zap"
)

// ReferenceHandler exposes the building/apartment reference reads that
// registration clients pick apartment ids from.
type ReferenceHandler struct {
	Reference ports.ReferenceRepository
	Logger    *zap.Logger
}

// Buildings lists every building.
func (h *ReferenceHandler) Buildings(w http.ResponseWriter, r *http.Request) {
	buildings, err := h.Reference.ListBuildings(r.Context())
	if err != nil {
		h.Logger.Error("list buildings failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromBuildings(buildings))
}

// Apartments lists every apartment joined with its building.
func (h *ReferenceHandler) Apartments(w http.ResponseWriter, r *http.Request) {
	apartments, err := h.Reference.ListApartments(r.Context())
	if err != nil {
		h.Logger.Error("list apartments failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromApartments(apartments))
}
