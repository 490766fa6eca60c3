package handlers

import (
	"condo-package-service/internal/api/dto"
	"condo-package-service/internal/domain"
	"condo-package-service/internal/services"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// DeliveryHandler exposes the delivery-confirmation workflow and the
// recent-deliveries feed.
type DeliveryHandler struct {
	Delivery *services.DeliveryService
	Feed     *services.FeedService
	Logger   *zap.Logger

	// Deployment policy: reject confirmations without a captured
	// signature before any remote call happens.
	RequireSignature bool
}

func (h *DeliveryHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	packageID := mux.Vars(r)["id"]

	var req dto.ConfirmDeliveryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if h.RequireSignature && strings.TrimSpace(req.Signature) == "" {
		writeError(w, r, http.StatusBadRequest, "signature is required")
		return
	}

	pkg, err := h.Delivery.Confirm(r.Context(), services.ConfirmDeliveryRequest{
		PackageID: packageID,
		Notes:     req.Notes,
		Signature: req.Signature,
	})
	if errors.Is(err, domain.ErrPackageNotFound) {
		writeError(w, r, http.StatusNotFound, "package not found")
		return
	}
	if errors.Is(err, domain.ErrAlreadyDelivered) {
		writeError(w, r, http.StatusConflict, "package already delivered")
		return
	}
	if err != nil {
		h.Logger.Error("confirm delivery failed", zap.String("package_id", packageID), zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromPackage(pkg))
}

func (h *DeliveryHandler) Recent(w http.ResponseWriter, r *http.Request) {
	pkgs, err := h.Feed.Recent(r.Context())
	if err != nil {
		h.Logger.Error("recent deliveries failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromPackages(pkgs))
}
