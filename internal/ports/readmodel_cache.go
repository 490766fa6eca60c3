package ports

import (
	"condo-package-service/internal/domain"
	"context"
)

// Port: read-model cache for code -> package lookups.
// Codes are immutable once assigned, so entries stay valid until the
// package itself changes state.
type LookupCache interface {
	// Returns the cached package and whether the code was present.
	GetPackage(ctx context.Context, code string) (*domain.Package, bool, error)

	PutPackage(ctx context.Context, code string, p *domain.Package) error

	Invalidate(ctx context.Context, code string) error
}

// Port: read-model cache for the recent-deliveries feed.
type FeedCache interface {
	GetRecent(ctx context.Context) ([]*domain.Package, bool, error)

	PutRecent(ctx context.Context, pkgs []*domain.Package) error

	Invalidate(ctx context.Context) error
}
