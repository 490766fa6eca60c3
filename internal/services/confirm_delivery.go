package services

import (
	"condo-package-service/internal/domain"
	"condo-package-service/internal/platform/obs"
	"condo-package-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventDispatcher hands a webhook event off for unawaited delivery.
// The call returns immediately; delivery failures land in the
// dispatcher's own log, never here.
type EventDispatcher interface {
	Dispatch(event ports.WebhookEvent)
}

type ConfirmDeliveryRequest struct {
	PackageID string
	Notes     *string
	// Signature image as a data URI; empty means no signature captured.
	Signature string
}

// DeliveryService runs the delivery-confirmation workflow:
// persist the signature, flip the package to delivered, notify the
// webhook, and drop the read models that just went stale.
//
// The steps are sequential but not atomic across remote boundaries. A
// signature persisted before a failed package update stays orphaned;
// unreferenced signatures are harmless.
type DeliveryService struct {
	Packages   ports.PackageRepository
	Signatures ports.SignatureRepository
	Lookup     ports.LookupCache
	Feed       ports.FeedCache
	Dispatcher EventDispatcher
	Logger     *zap.Logger

	// Now is split out for tests; defaults to time.Now.
	Now func() time.Time
}

func (s *DeliveryService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Confirm transitions one pending package to delivered.
// Confirming an already-delivered package fails with
// domain.ErrAlreadyDelivered and changes nothing.
func (s *DeliveryService) Confirm(ctx context.Context, req ConfirmDeliveryRequest) (_ *domain.Package, err error) {
	defer obs.Time(ctx, s.Logger, "delivery.Confirm")(&err)

	pkg, err := s.Packages.GetByID(ctx, req.PackageID)
	if err != nil {
		return nil, fmt.Errorf("confirm delivery: load package %s: %w", req.PackageID, err)
	}

	if pkg.Status == domain.StatusDelivered {
		return nil, fmt.Errorf("confirm delivery: package %s: %w", pkg.ID, domain.ErrAlreadyDelivered)
	}

	var signatureID *string
	if strings.TrimSpace(req.Signature) != "" {
		sig := &domain.Signature{
			ID:        uuid.NewString(),
			ImageData: req.Signature,
			CreatedAt: s.now(),
		}
		// A failed signature write aborts the workflow before any
		// package mutation happens.
		if err := s.Signatures.Create(ctx, sig); err != nil {
			return nil, fmt.Errorf("confirm delivery: persist signature: %w", err)
		}
		signatureID = &sig.ID
	}

	if err := pkg.MarkDelivered(s.now(), req.Notes, signatureID); err != nil {
		return nil, fmt.Errorf("confirm delivery: %w", err)
	}

	if err := s.Packages.MarkDelivered(ctx, pkg); err != nil {
		return nil, fmt.Errorf("confirm delivery: update package %s: %w", pkg.ID, err)
	}

	if s.Dispatcher != nil {
		s.Dispatcher.Dispatch(ports.WebhookEvent{
			Kind:            ports.EventPackageDelivered,
			DeliveryCompany: pkg.DeliveryCompany,
			StoreName:       pkg.StoreName,
			ResidentID:      pkg.ResidentID,
			PackageID:       pkg.ID,
		})
	}

	s.invalidateReadModels(ctx, pkg.Code)

	return pkg, nil
}

// Stale read models are dropped best-effort; the next read re-fetches.
func (s *DeliveryService) invalidateReadModels(ctx context.Context, code string) {
	if s.Lookup != nil {
		if err := s.Lookup.Invalidate(ctx, code); err != nil {
			s.Logger.Warn("lookup cache invalidation failed", zap.String("code", code), zap.Error(err))
		}
	}
	if s.Feed != nil {
		if err := s.Feed.Invalidate(ctx); err != nil {
			s.Logger.Warn("feed cache invalidation failed", zap.Error(err))
		}
	}
}

// IsCallerError reports whether a confirmation failure was caused by
// the request rather than by infrastructure.
func IsCallerError(err error) bool {
	return errors.Is(err, domain.ErrAlreadyDelivered) ||
		errors.Is(err, domain.ErrPackageNotFound)
}
