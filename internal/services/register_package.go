package services

import (
	"condo-package-service/internal/domain"
	"condo-package-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RegisterPackageRequest struct {
	Code            string
	ApartmentID     string
	DeliveryCompany string
	StoreName       string
	DoormanName     string
	ResidentID      *string
	StorageLocation *string
}

// RegistrationService handles parcel intake at the front desk: a new
// pending package per parcel, plus the package-received notification to
// the webhook.
type RegistrationService struct {
	Packages   ports.PackageRepository
	Dispatcher EventDispatcher
	Logger     *zap.Logger

	Now func() time.Time
}

func (s *RegistrationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

var ErrInvalidRegistration = errors.New("invalid registration")

func (s *RegistrationService) Register(ctx context.Context, req RegisterPackageRequest) (*domain.Package, error) {
	req.Code = strings.TrimSpace(req.Code)
	if req.Code == "" {
		return nil, fmt.Errorf("register package: code is required: %w", ErrInvalidRegistration)
	}
	if strings.TrimSpace(req.ApartmentID) == "" {
		return nil, fmt.Errorf("register package: apartment is required: %w", ErrInvalidRegistration)
	}

	pkg := &domain.Package{
		ID:              uuid.NewString(),
		Code:            req.Code,
		ApartmentID:     req.ApartmentID,
		DeliveryCompany: req.DeliveryCompany,
		StoreName:       req.StoreName,
		DoormanName:     req.DoormanName,
		ResidentID:      req.ResidentID,
		StorageLocation: req.StorageLocation,
		ReceivedAt:      s.now(),
		Status:          domain.StatusPending,
	}

	if err := s.Packages.Create(ctx, pkg); err != nil {
		return nil, fmt.Errorf("register package code %q: %w", req.Code, err)
	}

	s.Logger.Info("package registered",
		zap.String("package_id", pkg.ID),
		zap.String("code", pkg.Code),
	)

	if s.Dispatcher != nil {
		s.Dispatcher.Dispatch(ports.WebhookEvent{
			Kind:            ports.EventPackageReceived,
			DeliveryCompany: pkg.DeliveryCompany,
			StoreName:       pkg.StoreName,
			ResidentID:      pkg.ResidentID,
			PackageID:       pkg.ID,
		})
	}

	return pkg, nil
}
