package api

import (
	"condo-package-service/internal/api/handlers"
	"condo-package-service/internal/ports"
	"condo-package-service/internal/scanner"
	"condo-package-service/internal/services"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Dependencies of the HTTP surface. Handlers stay unaware of concrete
// adapters; everything arrives behind a port or a service.
type RouterDeps struct {
	Packages     ports.PackageRepository
	Reference    ports.ReferenceRepository
	Lookup       *services.LookupService
	Registration *services.RegistrationService
	Delivery     *services.DeliveryService
	Feed         *services.FeedService
	Scanner      *scanner.Manager
	Logger       *zap.Logger

	RequireSignature bool
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root.
func NewRouter(deps RouterDeps) http.Handler {
	r := mux.NewRouter()

	pkgHandler := &handlers.PackageHandler{
		Repo:         deps.Packages,
		Lookup:       deps.Lookup,
		Registration: deps.Registration,
		Logger:       deps.Logger,
	}
	deliveryHandler := &handlers.DeliveryHandler{
		Delivery:         deps.Delivery,
		Feed:             deps.Feed,
		Logger:           deps.Logger,
		RequireSignature: deps.RequireSignature,
	}
	referenceHandler := &handlers.ReferenceHandler{
		Reference: deps.Reference,
		Logger:    deps.Logger,
	}
	scanHandler := &handlers.ScanHandler{
		Manager: deps.Scanner,
		Lookup:  deps.Lookup,
		Logger:  deps.Logger,
	}

	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)

	r.HandleFunc("/packages", pkgHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/packages", pkgHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/packages/code/{code}", pkgHandler.ByCode).Methods(http.MethodGet)

	r.HandleFunc("/buildings", referenceHandler.Buildings).Methods(http.MethodGet)
	r.HandleFunc("/apartments", referenceHandler.Apartments).Methods(http.MethodGet)

	r.HandleFunc("/packages/{id}/delivery", deliveryHandler.Confirm).Methods(http.MethodPost)
	r.HandleFunc("/deliveries/recent", deliveryHandler.Recent).Methods(http.MethodGet)

	r.HandleFunc("/scan/sessions", scanHandler.Start).Methods(http.MethodPost)
	r.HandleFunc("/scan/sessions/toggle", scanHandler.Toggle).Methods(http.MethodPost)
	r.HandleFunc("/scan/sessions/{id}", scanHandler.Stop).Methods(http.MethodDelete)
	r.HandleFunc("/scan/sessions/{id}/decodes", scanHandler.PushDecode).Methods(http.MethodPost)
	r.HandleFunc("/scan/sessions/{id}/verification", scanHandler.ArmVerification).Methods(http.MethodPost)
	r.HandleFunc("/scan/sessions/{id}/verification", scanHandler.VerificationState).Methods(http.MethodGet)

	var handler http.Handler = r
	handler = loggingMiddleware(deps.Logger)(handler)
	handler = requestIDMiddleware(handler)

	return handler
}
