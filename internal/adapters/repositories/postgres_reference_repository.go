package repositories

import (
	"condo-package-service/internal/domain"
	"condo-package-service/internal/ports"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Postgres-backed implementation of the ReferenceRepository port.
// Registration clients discover apartment ids through these reads.
type PostgresReferenceRepository struct{ DB *sql.DB }

func NewPostgresReferenceRepository(db *sql.DB) *PostgresReferenceRepository {
	return &PostgresReferenceRepository{DB: db}
}

// Compile-time port check.
var _ ports.ReferenceRepository = (*PostgresReferenceRepository)(nil)

func (r *PostgresReferenceRepository) ListBuildings(ctx context.Context) ([]*domain.Building, error) {
	if r.DB == nil {
		return nil, errors.New("reference repository: DB is nil")
	}

	rows, err := r.DB.QueryContext(ctx, `
SELECT id, name, address
FROM buildings
ORDER BY name;`)
	if err != nil {
		return nil, fmt.Errorf("list buildings: %w", err)
	}
	defer rows.Close()

	var buildings []*domain.Building
	for rows.Next() {
		var b domain.Building
		if err := rows.Scan(&b.ID, &b.Name, &b.Address); err != nil {
			return nil, fmt.Errorf("list buildings: scan: %w", err)
		}
		buildings = append(buildings, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list buildings: iterate: %w", err)
	}

	return buildings, nil
}

func (r *PostgresReferenceRepository) ListApartments(ctx context.Context) ([]*domain.Apartment, error) {
	if r.DB == nil {
		return nil, errors.New("reference repository: DB is nil")
	}

	rows, err := r.DB.QueryContext(ctx, `
SELECT
	a.id, a.number, a.floor, a.building_id,
	b.name, b.address
FROM apartments a
JOIN buildings b ON b.id = a.building_id
ORDER BY b.name, a.number;`)
	if err != nil {
		return nil, fmt.Errorf("list apartments: %w", err)
	}
	defer rows.Close()

	var apartments []*domain.Apartment
	for rows.Next() {
		var (
			apt      domain.Apartment
			building domain.Building
		)
		if err := rows.Scan(
			&apt.ID, &apt.Number, &apt.Floor, &apt.BuildingID,
			&building.Name, &building.Address,
		); err != nil {
			return nil, fmt.Errorf("list apartments: scan: %w", err)
		}
		building.ID = apt.BuildingID
		apt.Building = &building
		apartments = append(apartments, &apt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list apartments: iterate: %w", err)
	}

	return apartments, nil
}
