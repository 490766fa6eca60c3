package dto

import (
	"condo-package-service/internal/domain"
	"time"
)

type BuildingResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

type ApartmentResponse struct {
	ID       string            `json:"id"`
	Number   string            `json:"number"`
	Floor    int               `json:"floor"`
	Building *BuildingResponse `json:"building,omitempty"`
}

type PackageResponse struct {
	ID              string             `json:"id"`
	Code            string             `json:"code"`
	DeliveryCompany string             `json:"delivery_company"`
	StoreName       string             `json:"store_name"`
	DoormanName     string             `json:"doorman_name"`
	ResidentID      *string            `json:"resident_id"`
	Notes           *string            `json:"notes"`
	StorageLocation *string            `json:"storage_location"`
	ReceivedAt      time.Time          `json:"received_at"`
	DeliveredAt     *time.Time         `json:"delivered_at"`
	Status          string             `json:"status"`
	SignatureID     *string            `json:"signature_id"`
	Apartment       *ApartmentResponse `json:"apartment,omitempty"`
}

type ListPackagesResponse struct {
	Packages []PackageResponse `json:"packages"`
}

type RegisterPackageRequest struct {
	Code            string  `json:"code" validate:"required"`
	ApartmentID     string  `json:"apartment_id" validate:"required"`
	DeliveryCompany string  `json:"delivery_company" validate:"required"`
	StoreName       string  `json:"store_name"`
	DoormanName     string  `json:"doorman_name" validate:"required"`
	ResidentID      *string `json:"resident_id"`
	StorageLocation *string `json:"storage_location"`
}

// FromPackage maps a domain package onto its response shape.
func FromPackage(p *domain.Package) PackageResponse {
	res := PackageResponse{
		ID:              p.ID,
		Code:            p.Code,
		DeliveryCompany: p.DeliveryCompany,
		StoreName:       p.StoreName,
		DoormanName:     p.DoormanName,
		ResidentID:      p.ResidentID,
		Notes:           p.Notes,
		StorageLocation: p.StorageLocation,
		ReceivedAt:      p.ReceivedAt,
		DeliveredAt:     p.DeliveredAt,
		Status:          string(p.Status),
		SignatureID:     p.SignatureID,
	}

	if p.Apartment != nil {
		apt := &ApartmentResponse{
			ID:     p.Apartment.ID,
			Number: p.Apartment.Number,
			Floor:  p.Apartment.Floor,
		}
		if p.Apartment.Building != nil {
			apt.Building = &BuildingResponse{
				ID:      p.Apartment.Building.ID,
				Name:    p.Apartment.Building.Name,
				Address: p.Apartment.Building.Address,
			}
		}
		res.Apartment = apt
	}

	return res
}

func FromPackages(pkgs []*domain.Package) ListPackagesResponse {
	res := ListPackagesResponse{Packages: make([]PackageResponse, 0, len(pkgs))}
	for _, p := range pkgs {
		res.Packages = append(res.Packages, FromPackage(p))
	}
	return res
}
