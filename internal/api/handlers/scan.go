package handlers

import (
	"condo-package-service/internal/api/dto"
	"condo-package-service/internal/domain"
	"condo-package-service/internal/scanner"
	"condo-package-service/internal/services"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// ScanHandler manages scan sessions and routes client decode events
// through lookup and, when armed, pending-set verification.
type ScanHandler struct {
	Manager *scanner.Manager
	Lookup  *services.LookupService
	Logger  *zap.Logger
}

func (h *ScanHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req dto.StartScanRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := h.Manager.Start(req.RegionID)
	if errors.Is(err, domain.ErrScannerInit) {
		writeError(w, r, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		h.Logger.Error("start scan failed", zap.String("region", req.RegionID), zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, h.sessionResponse(session))
}

// Stop is idempotent; stopping an unknown session still returns 204.
func (h *ScanHandler) Stop(w http.ResponseWriter, r *http.Request) {
	h.Manager.Stop(mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
}

// Toggle mirrors the scan screen's Ctrl+Q shortcut: stop the region's
// live session, or start a fresh one.
func (h *ScanHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req dto.StartScanRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := h.Manager.Toggle(req.RegionID)
	if errors.Is(err, domain.ErrScannerInit) {
		writeError(w, r, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		h.Logger.Error("toggle scan failed", zap.String("region", req.RegionID), zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if session == nil {
		writeJSON(w, r, http.StatusOK, dto.ScanSessionResponse{Scanning: false})
		return
	}

	writeJSON(w, r, http.StatusOK, h.sessionResponse(session))
}

// PushDecode ingests one decoder event.
// Empty-frame noise and debounced repeats return 204; an accepted
// decode resolves the code and, when verification is armed, checks it
// against the pending set.
func (h *ScanHandler) PushDecode(w http.ResponseWriter, r *http.Request) {
	session, ok := h.Manager.Get(mux.Vars(r)["id"])
	if !ok {
		writeError(w, r, http.StatusNotFound, "scan session not found")
		return
	}

	var req dto.DecodeEventRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := session.Push(scanner.DecodeEvent{Text: req.Text, ErrKind: req.ErrKind}, time.Now())
	if errors.Is(err, domain.ErrSessionNotScanning) {
		writeError(w, r, http.StatusConflict, "scan session is not active")
		return
	}
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if !result.Accepted {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	pkg, err := h.Lookup.ByCode(r.Context(), result.Code)
	if errors.Is(err, domain.ErrPackageNotFound) {
		writeError(w, r, http.StatusNotFound, "package not found")
		return
	}
	if err != nil {
		h.Logger.Error("decode lookup failed", zap.String("code", result.Code), zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.DecodeOutcomeResponse{Accepted: true}
	pkgRes := dto.FromPackage(pkg)
	res.Package = &pkgRes

	if run := session.Verification(); run != nil {
		if err := run.Verify(pkg.ID); err != nil {
			if errors.Is(err, domain.ErrNotInPendingSet) {
				writeError(w, r, http.StatusConflict, "scanned package not part of the list")
				return
			}
			h.Logger.Error("verification failed", zap.String("package_id", pkg.ID), zap.Error(err))
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		verified := true
		res.Verified = &verified
	}

	writeJSON(w, r, http.StatusOK, res)
}

// ArmVerification switches the session into restricted-scan mode.
func (h *ScanHandler) ArmVerification(w http.ResponseWriter, r *http.Request) {
	session, ok := h.Manager.Get(mux.Vars(r)["id"])
	if !ok {
		writeError(w, r, http.StatusNotFound, "scan session not found")
		return
	}

	var req dto.ArmVerificationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session.ArmVerification(req.PendingIDs)
	w.WriteHeader(http.StatusNoContent)
}

func (h *ScanHandler) VerificationState(w http.ResponseWriter, r *http.Request) {
	session, ok := h.Manager.Get(mux.Vars(r)["id"])
	if !ok {
		writeError(w, r, http.StatusNotFound, "scan session not found")
		return
	}

	run := session.Verification()
	if run == nil {
		writeError(w, r, http.StatusNotFound, "verification is not armed")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.VerificationStateResponse{
		VerifiedIDs: run.Verified(),
		Remaining:   run.Remaining(),
	})
}

func (h *ScanHandler) sessionResponse(s *scanner.Session) dto.ScanSessionResponse {
	cfg := h.Manager.Config()
	return dto.ScanSessionResponse{
		SessionID:       s.ID,
		RegionID:        s.RegionID,
		Scanning:        s.Scanning(),
		FramesPerSecond: cfg.FramesPerSecond,
		DetectionBoxPx:  cfg.DetectionBoxPx,
	}
}
