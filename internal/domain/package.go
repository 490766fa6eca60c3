package domain

import (
	"fmt"
	"time"
)

type PackageStatus string

const (
	StatusPending   PackageStatus = "pending"
	StatusDelivered PackageStatus = "delivered"
)

// Represents a parcel received at the condominium front desk.
// A Package is created pending and transitions to delivered exactly
// once, when a doorman confirms the handoff. DeliveredAt is set if and
// only if the status is delivered.
type Package struct {
	ID              string
	Code            string
	ApartmentID     string
	DeliveryCompany string
	StoreName       string
	DoormanName     string
	ResidentID      *string
	Notes           *string
	StorageLocation *string
	ReceivedAt      time.Time
	DeliveredAt     *time.Time
	Status          PackageStatus
	SignatureID     *string

	// Joined reference data, populated by repository reads.
	Apartment *Apartment
}

// MarkDelivered transitions a pending package to delivered.
// Re-confirming an already-delivered package is rejected so the
// transition stays idempotent at the domain boundary.
func (p *Package) MarkDelivered(at time.Time, notes *string, signatureID *string) error {
	if p.Status == StatusDelivered {
		return fmt.Errorf("package %s: %w", p.ID, ErrAlreadyDelivered)
	}
	if p.Status != StatusPending {
		return fmt.Errorf("package %s: unexpected status %q", p.ID, p.Status)
	}
	if at.Before(p.ReceivedAt) {
		return fmt.Errorf("package %s: delivered at %v precedes received at %v", p.ID, at, p.ReceivedAt)
	}

	p.Status = StatusDelivered
	p.DeliveredAt = &at
	if notes != nil {
		p.Notes = notes
	}
	p.SignatureID = signatureID

	return nil
}
