package ports

import (
	"condo-package-service/internal/domain"
	"context"
)

// Port: read access to the building/apartment reference data that
// packages attach to. The administration screens own the writes; this
// service only reads, so the port carries no mutators.
type ReferenceRepository interface {
	// List every building, ordered by name.
	ListBuildings(ctx context.Context) ([]*domain.Building, error)

	// List every apartment joined with its building, ordered by
	// building name then apartment number.
	ListApartments(ctx context.Context) ([]*domain.Apartment, error)
}
