package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-cms/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrSizeNotFound = errors.New("size not found")
)

// SizeRepository defines the interface for size data access
type SizeRepository interface {
	Create(ctx context.Context, size *domain.Size) error
	Update(ctx context.Context, size *domain.Size) error
	Delete(ctx context.Context, storeID, id uuid.UUID) error
	FindByID(ctx context.Context, storeID, id uuid.UUID) (*domain.Size, error)
	List(ctx context.Context, storeID uuid.UUID) ([]*domain.Size, error)
}

type sizeRepository struct {
	db *sql.DB
}

// NewSizeRepository creates a new instance of SizeRepository
func NewSizeRepository(db *sql.DB) SizeRepository {
	return &sizeRepository{db: db}
}

const sizeColumns = `id, store_id, name, value, created_at, updated_at`

func scanSize(row rowScanner) (*domain.Size, error) {
	size := &domain.Size{}
	err := row.Scan(&size.ID, &size.StoreID, &size.Name, &size.Value, &size.CreatedAt, &size.UpdatedAt)
	return size, err
}

func (r *sizeRepository) Create(ctx context.Context, size *domain.Size) error {
	query := `
		INSERT INTO sizes (id, store_id, name, value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query, size.ID, size.StoreID, size.Name, size.Value, size.CreatedAt, size.UpdatedAt)
	if err != nil {
		return translateError("create size", err)
	}

	return nil
}

func (r *sizeRepository) Update(ctx context.Context, size *domain.Size) error {
	query := `
		UPDATE sizes
		SET name = $3, value = $4, updated_at = $5
		WHERE id = $1 AND store_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, size.ID, size.StoreID, size.Name, size.Value, size.UpdatedAt)
	if err != nil {
		return translateError("update size", err)
	}

	return expectAffected(result, ErrSizeNotFound)
}

func (r *sizeRepository) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sizes WHERE id = $1 AND store_id = $2`, id, storeID)
	if err != nil {
		return translateError("delete size", err)
	}

	return expectAffected(result, ErrSizeNotFound)
}

func (r *sizeRepository) FindByID(ctx context.Context, storeID, id uuid.UUID) (*domain.Size, error) {
	query := `SELECT ` + sizeColumns + ` FROM sizes WHERE id = $1 AND store_id = $2`

	size, err := scanSize(r.db.QueryRowContext(ctx, query, id, storeID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSizeNotFound
		}
		return nil, fmt.Errorf("failed to find size by ID: %w", err)
	}

	return size, nil
}

func (r *sizeRepository) List(ctx context.Context, storeID uuid.UUID) ([]*domain.Size, error) {
	query := `SELECT ` + sizeColumns + ` FROM sizes WHERE store_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sizes: %w", err)
	}
	defer rows.Close()

	sizes := []*domain.Size{}
	for rows.Next() {
		size, err := scanSize(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan size: %w", err)
		}
		sizes = append(sizes, size)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sizes: %w", err)
	}

	return sizes, nil
}
