package services

import (
	"condo-package-service/internal/domain"
	"condo-package-service/internal/platform/obs"
	"condo-package-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// LookupService resolves decoded codes to package records with their
// apartment and building joined in. Results are served from a
// read-model cache when possible; codes never change once assigned, so
// cached entries stay valid until the package itself does.
type LookupService struct {
	Repo   ports.PackageRepository
	Cache  ports.LookupCache
	Logger *zap.Logger
}

var ErrEmptyCode = errors.New("code is empty")

// ByCode resolves one scanned code.
// Returns domain.ErrPackageNotFound when no package carries the code;
// any other failure is a transport error.
func (s *LookupService) ByCode(ctx context.Context, code string) (_ *domain.Package, err error) {
	defer obs.Time(ctx, s.Logger, "lookup.ByCode")(&err)

	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrEmptyCode
	}

	if s.Cache != nil {
		pkg, hit, err := s.Cache.GetPackage(ctx, code)
		if err != nil {
			// A broken cache degrades to a repository read.
			s.Logger.Warn("lookup cache read failed", zap.String("code", code), zap.Error(err))
		} else if hit {
			return pkg, nil
		}
	}

	pkg, err := s.Repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrPackageNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("lookup code %q: %w", code, err)
	}

	if s.Cache != nil {
		if err := s.Cache.PutPackage(ctx, code, pkg); err != nil {
			s.Logger.Warn("lookup cache write failed", zap.String("code", code), zap.Error(err))
		}
	}

	return pkg, nil
}
