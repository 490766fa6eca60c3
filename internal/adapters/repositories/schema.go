package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Initialize the database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createBuildingsQuery := `
	CREATE TABLE IF NOT EXISTS buildings (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL
	);
	`

	createApartmentsQuery := `
	CREATE TABLE IF NOT EXISTS apartments (
		id TEXT PRIMARY KEY,
		number TEXT NOT NULL,
		floor INTEGER NOT NULL DEFAULT 0,
		building_id TEXT NOT NULL REFERENCES buildings(id)
	);
	`

	createSignaturesQuery := `
	CREATE TABLE IF NOT EXISTS signatures (
		id TEXT PRIMARY KEY,
		image_data TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	);
	`

	createPackagesQuery := `
	CREATE TABLE IF NOT EXISTS packages (
		id TEXT PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		apartment_id TEXT NOT NULL REFERENCES apartments(id),
		delivery_company TEXT NOT NULL DEFAULT '',
		store_name TEXT NOT NULL DEFAULT '',
		doorman_name TEXT NOT NULL DEFAULT '',
		resident_id TEXT,
		notes TEXT,
		storage_location TEXT,
		received_at TIMESTAMPTZ NOT NULL,
		delivered_at TIMESTAMPTZ,
		status TEXT NOT NULL DEFAULT 'pending',
		signature_id TEXT REFERENCES signatures(id)
	);
	`

	createStatusIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_packages_status_delivered_at
	ON packages(status, delivered_at DESC);
	`

	statements := []string{
		createBuildingsQuery,
		createApartmentsQuery,
		createSignaturesQuery,
		createPackagesQuery,
		createStatusIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type BuildingSeed struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

type ApartmentSeed struct {
	ID         string `json:"id"`
	Number     string `json:"number"`
	Floor      int    `json:"floor"`
	BuildingID string `json:"building_id"`
}

type PackageSeed struct {
	ID              string     `json:"id"`
	Code            string     `json:"code"`
	ApartmentID     string     `json:"apartment_id"`
	DeliveryCompany string     `json:"delivery_company"`
	StoreName       string     `json:"store_name"`
	DoormanName     string     `json:"doorman_name"`
	ReceivedAt      time.Time  `json:"received_at"`
	DeliveredAt     *time.Time `json:"delivered_at"`
	Status          string     `json:"status"`
}

type Seed struct {
	Buildings  []BuildingSeed  `json:"buildings"`
	Apartments []ApartmentSeed `json:"apartments"`
	Packages   []PackageSeed   `json:"packages"`
}

// Populate the database with demo reference and package data from a
// JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed: read %q: %w", jsonPath, err)
	}

	var data Seed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed: parse json: %w", err)
	}

	for i, p := range data.Packages {
		if strings.TrimSpace(p.Code) == "" {
			return fmt.Errorf("seed: package at index %d: code cannot be empty", i+1)
		}
		if p.Status != "pending" && p.Status != "delivered" {
			return fmt.Errorf("seed: package %q: invalid status %q", p.Code, p.Status)
		}
		if p.Status == "delivered" && p.DeliveredAt == nil {
			return fmt.Errorf("seed: package %q: delivered without delivered_at", p.Code)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	buildingQuery := `
	INSERT INTO buildings (id, name, address)
	VALUES ($1, $2, $3)
	ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, address = EXCLUDED.address;
	`
	for _, b := range data.Buildings {
		if _, err := tx.Exec(buildingQuery, b.ID, b.Name, b.Address); err != nil {
			return fmt.Errorf("seed: insert building %q: %w", b.ID, err)
		}
	}

	apartmentQuery := `
	INSERT INTO apartments (id, number, floor, building_id)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (id) DO UPDATE SET number = EXCLUDED.number, floor = EXCLUDED.floor;
	`
	for _, a := range data.Apartments {
		if _, err := tx.Exec(apartmentQuery, a.ID, a.Number, a.Floor, a.BuildingID); err != nil {
			return fmt.Errorf("seed: insert apartment %q: %w", a.ID, err)
		}
	}

	packageQuery := `
	INSERT INTO packages (
		id, code, apartment_id, delivery_company, store_name,
		doorman_name, received_at, delivered_at, status
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (code) DO NOTHING;
	`
	for _, p := range data.Packages {
		_, err := tx.Exec(packageQuery,
			p.ID, p.Code, p.ApartmentID, p.DeliveryCompany, p.StoreName,
			p.DoormanName, p.ReceivedAt, p.DeliveredAt, p.Status,
		)
		if err != nil {
			return fmt.Errorf("seed: insert package %q: %w", p.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit tx: %w", err)
	}

	return nil
}
