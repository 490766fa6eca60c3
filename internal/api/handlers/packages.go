package handlers

import (
	"condo-package-service/internal/api/dto"
	"condo-package-service/internal/domain"
	"condo-package-service/internal/ports"
	"condo-package-service/internal/services"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// PackageHandler exposes package listing, lookup-by-code, and intake
// registration.
type PackageHandler struct {
	Repo         ports.PackageRepository
	Lookup       *services.LookupService
	Registration *services.RegistrationService
	Logger       *zap.Logger
}

const listLimit = 50

// List returns packages filtered by lifecycle status. The pending
// listing is what bulk-verification screens load their expected set
// from.
func (h *PackageHandler) List(w http.ResponseWriter, r *http.Request) {
	status := domain.PackageStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = domain.StatusPending
	}
	if status != domain.StatusPending && status != domain.StatusDelivered {
		writeError(w, r, http.StatusBadRequest, "status must be pending or delivered")
		return
	}

	pkgs, err := h.Repo.ListByStatus(r.Context(), status, listLimit)
	if err != nil {
		h.Logger.Error("list packages failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromPackages(pkgs))
}

// ByCode resolves a decoded QR code to its package.
// "Not found" is a neutral outcome for the scan screen, not a fault.
func (h *PackageHandler) ByCode(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	pkg, err := h.Lookup.ByCode(r.Context(), code)
	if errors.Is(err, services.ErrEmptyCode) {
		writeError(w, r, http.StatusBadRequest, "code is required")
		return
	}
	if errors.Is(err, domain.ErrPackageNotFound) {
		writeError(w, r, http.StatusNotFound, "package not found")
		return
	}
	if err != nil {
		h.Logger.Error("lookup failed", zap.String("code", code), zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromPackage(pkg))
}

// Register records parcel intake at the front desk.
func (h *PackageHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterPackageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	pkg, err := h.Registration.Register(r.Context(), services.RegisterPackageRequest{
		Code:            req.Code,
		ApartmentID:     req.ApartmentID,
		DeliveryCompany: req.DeliveryCompany,
		StoreName:       req.StoreName,
		DoormanName:     req.DoormanName,
		ResidentID:      req.ResidentID,
		StorageLocation: req.StorageLocation,
	})
	if errors.Is(err, services.ErrInvalidRegistration) {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.Logger.Error("register package failed", zap.String("code", req.Code), zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.FromPackage(pkg))
}
