package api

import (
	"condo-package-service/internal/domain"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixedReferenceRepo struct{}

func (fixedReferenceRepo) ListBuildings(context.Context) ([]*domain.Building, error) {
	return []*domain.Building{{ID: "b1", Name: "Tower A", Address: "1 Main St"}}, nil
}

func (fixedReferenceRepo) ListApartments(context.Context) ([]*domain.Apartment, error) {
	return []*domain.Apartment{{ID: "a101", Number: "101", Floor: 1, BuildingID: "b1"}}, nil
}

func TestRouterServesReferenceReads(t *testing.T) {
	router := NewRouter(RouterDeps{
		Reference: fixedReferenceRepo{},
		Logger:    zap.NewNop(),
	})

	for _, path := range []string{"/buildings", "/apartments"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equalf(t, http.StatusOK, rec.Code, "GET %s", path)
		require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	}
}
