package repositories

import (
	"condo-package-service/internal/domain"
	"condo-package-service/internal/ports"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Postgres-backed implementation of the SignatureRepository port.
// Signatures are write-once; there is no update or delete path.
type PostgresSignatureRepository struct{ DB *sql.DB }

func NewPostgresSignatureRepository(db *sql.DB) *PostgresSignatureRepository {
	return &PostgresSignatureRepository{DB: db}
}

var _ ports.SignatureRepository = (*PostgresSignatureRepository)(nil)

func (r *PostgresSignatureRepository) Create(ctx context.Context, s *domain.Signature) error {
	if r.DB == nil {
		return errors.New("signature repository: DB is nil")
	}

	q := `
	INSERT INTO signatures (id, image_data, created_at)
	VALUES ($1, $2, $3);
	`
	if _, err := r.DB.ExecContext(ctx, q, s.ID, s.ImageData, s.CreatedAt); err != nil {
		return fmt.Errorf("insert signature %s: %w", s.ID, err)
	}

	return nil
}
