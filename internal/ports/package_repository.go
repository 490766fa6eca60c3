package ports

import (
	"condo-package-service/internal/domain"
	"context"
)

// Port: a boundary for reading and mutating Package entities.
// Reads return packages joined with their apartment and building
// reference data.
type PackageRepository interface {
	// Resolve a scanned code to its package.
	// Returns domain.ErrPackageNotFound when no package carries the code.
	GetByCode(ctx context.Context, code string) (*domain.Package, error)

	// Retrieve one package by id.
	GetByID(ctx context.Context, id string) (*domain.Package, error)

	// List packages in a given lifecycle status, most recent first.
	ListByStatus(ctx context.Context, status domain.PackageStatus, limit int) ([]*domain.Package, error)

	// List delivered packages ordered by delivered_at descending.
	ListRecentDeliveries(ctx context.Context, limit int) ([]*domain.Package, error)

	// Persist a newly registered package.
	Create(ctx context.Context, p *domain.Package) error

	// Persist the pending -> delivered transition of p.
	MarkDelivered(ctx context.Context, p *domain.Package) error
}

// Port: persistence for proof-of-receipt signatures.
type SignatureRepository interface {
	Create(ctx context.Context, s *domain.Signature) error
}
