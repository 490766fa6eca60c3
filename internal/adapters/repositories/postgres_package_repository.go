package repositories

import (
	"condo-package-service/internal/domain"
	"condo-package-service/internal/ports"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Postgres-backed implementation of the PackageRepository port.
// Every read joins the apartment and building reference rows so callers
// get a display-ready record in one round trip.
type PostgresPackageRepository struct{ DB *sql.DB }

func NewPostgresPackageRepository(db *sql.DB) *PostgresPackageRepository {
	return &PostgresPackageRepository{DB: db}
}

// Compile-time port check.
var _ ports.PackageRepository = (*PostgresPackageRepository)(nil)

const packageSelect = `
SELECT
	p.id, p.code, p.apartment_id, p.delivery_company, p.store_name,
	p.doorman_name, p.resident_id, p.notes, p.storage_location,
	p.received_at, p.delivered_at, p.status, p.signature_id,
	a.number, a.floor,
	b.id, b.name, b.address
FROM packages p
JOIN apartments a ON a.id = p.apartment_id
JOIN buildings b ON b.id = a.building_id
`

func (r *PostgresPackageRepository) GetByCode(ctx context.Context, code string) (*domain.Package, error) {
	if r.DB == nil {
		return nil, errors.New("package repository: DB is nil")
	}

	row := r.DB.QueryRowContext(ctx, packageSelect+`WHERE p.code = $1;`, code)
	pkg, err := scanPackage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get package by code %q: %w", code, domain.ErrPackageNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get package by code %q: %w", code, err)
	}

	return pkg, nil
}

func (r *PostgresPackageRepository) GetByID(ctx context.Context, id string) (*domain.Package, error) {
	if r.DB == nil {
		return nil, errors.New("package repository: DB is nil")
	}

	row := r.DB.QueryRowContext(ctx, packageSelect+`WHERE p.id = $1;`, id)
	pkg, err := scanPackage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get package %s: %w", id, domain.ErrPackageNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get package %s: %w", id, err)
	}

	return pkg, nil
}

func (r *PostgresPackageRepository) ListByStatus(ctx context.Context, status domain.PackageStatus, limit int) ([]*domain.Package, error) {
	if r.DB == nil {
		return nil, errors.New("package repository: DB is nil")
	}

	q := packageSelect + `
	WHERE p.status = $1
	ORDER BY p.received_at DESC
	LIMIT $2;
	`
	return r.queryPackages(ctx, q, string(status), limit)
}

func (r *PostgresPackageRepository) ListRecentDeliveries(ctx context.Context, limit int) ([]*domain.Package, error) {
	if r.DB == nil {
		return nil, errors.New("package repository: DB is nil")
	}

	q := packageSelect + `
	WHERE p.status = $1
	ORDER BY p.delivered_at DESC
	LIMIT $2;
	`
	return r.queryPackages(ctx, q, string(domain.StatusDelivered), limit)
}

func (r *PostgresPackageRepository) queryPackages(ctx context.Context, q string, args ...any) ([]*domain.Package, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list packages: query packages table: %w", err)
	}
	defer rows.Close()

	packages := make([]*domain.Package, 0, 16)
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("list packages: scan row: %w", err)
		}
		packages = append(packages, pkg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list packages: row iteration: %w", err)
	}

	return packages, nil
}

func (r *PostgresPackageRepository) Create(ctx context.Context, p *domain.Package) error {
	if r.DB == nil {
		return errors.New("package repository: DB is nil")
	}

	q := `
	INSERT INTO packages (
		id, code, apartment_id, delivery_company, store_name,
		doorman_name, resident_id, notes, storage_location,
		received_at, status
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.DB.ExecContext(ctx, q,
		p.ID, p.Code, p.ApartmentID, p.DeliveryCompany, p.StoreName,
		p.DoormanName, p.ResidentID, p.Notes, p.StorageLocation,
		p.ReceivedAt, string(p.Status),
	)
	if err != nil {
		return fmt.Errorf("insert package code %q: %w", p.Code, err)
	}

	return nil
}

// MarkDelivered persists the delivered transition. The status guard in
// the WHERE clause keeps a racing double confirmation from re-updating
// an already-delivered row.
func (r *PostgresPackageRepository) MarkDelivered(ctx context.Context, p *domain.Package) error {
	if r.DB == nil {
		return errors.New("package repository: DB is nil")
	}

	q := `
	UPDATE packages
	SET status = $1, delivered_at = $2, notes = $3, signature_id = $4
	WHERE id = $5 AND status = $6;
	`
	res, err := r.DB.ExecContext(ctx, q,
		string(domain.StatusDelivered), p.DeliveredAt, p.Notes, p.SignatureID,
		p.ID, string(domain.StatusPending),
	)
	if err != nil {
		return fmt.Errorf("mark package %s delivered: %w", p.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark package %s delivered: rows affected: %w", p.ID, err)
	}
	if affected == 0 {
		return fmt.Errorf("mark package %s delivered: %w", p.ID, domain.ErrAlreadyDelivered)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPackage(row rowScanner) (*domain.Package, error) {
	var (
		pkg       domain.Package
		apartment domain.Apartment
		building  domain.Building
		status    string
	)

	err := row.Scan(
		&pkg.ID, &pkg.Code, &pkg.ApartmentID, &pkg.DeliveryCompany, &pkg.StoreName,
		&pkg.DoormanName, &pkg.ResidentID, &pkg.Notes, &pkg.StorageLocation,
		&pkg.ReceivedAt, &pkg.DeliveredAt, &status, &pkg.SignatureID,
		&apartment.Number, &apartment.Floor,
		&building.ID, &building.Name, &building.Address,
	)
	if err != nil {
		return nil, err
	}

	pkg.Status = domain.PackageStatus(status)
	apartment.ID = pkg.ApartmentID
	apartment.BuildingID = building.ID
	apartment.Building = &building
	pkg.Apartment = &apartment

	return &pkg, nil
}
