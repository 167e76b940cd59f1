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
	ErrColorNotFound = errors.New("color not found")
)

// ColorRepository defines the interface for color data access
type ColorRepository interface {
	Create(ctx context.Context, color *domain.Color) error
	Update(ctx context.Context, color *domain.Color) error
	Delete(ctx context.Context, storeID, id uuid.UUID) error
	FindByID(ctx context.Context, storeID, id uuid.UUID) (*domain.Color, error)
	List(ctx context.Context, storeID uuid.UUID) ([]*domain.Color, error)
}

type colorRepository struct {
	db *sql.DB
}

// NewColorRepository creates a new instance of ColorRepository
func NewColorRepository(db *sql.DB) ColorRepository {
	return &colorRepository{db: db}
}

const colorColumns = `id, store_id, name, value, created_at, updated_at`

func scanColor(row rowScanner) (*domain.Color, error) {
	color := &domain.Color{}
	err := row.Scan(&color.ID, &color.StoreID, &color.Name, &color.Value, &color.CreatedAt, &color.UpdatedAt)
	return color, err
}

func (r *colorRepository) Create(ctx context.Context, color *domain.Color) error {
	query := `
		INSERT INTO colors (id, store_id, name, value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query, color.ID, color.StoreID, color.Name, color.Value, color.CreatedAt, color.UpdatedAt)
	if err != nil {
		return translateError("create color", err)
	}

	return nil
}

func (r *colorRepository) Update(ctx context.Context, color *domain.Color) error {
	query := `
		UPDATE colors
		SET name = $3, value = $4, updated_at = $5
		WHERE id = $1 AND store_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, color.ID, color.StoreID, color.Name, color.Value, color.UpdatedAt)
	if err != nil {
		return translateError("update color", err)
	}

	return expectAffected(result, ErrColorNotFound)
}

func (r *colorRepository) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM colors WHERE id = $1 AND store_id = $2`, id, storeID)
	if err != nil {
		return translateError("delete color", err)
	}

	return expectAffected(result, ErrColorNotFound)
}

func (r *colorRepository) FindByID(ctx context.Context, storeID, id uuid.UUID) (*domain.Color, error) {
	query := `SELECT ` + colorColumns + ` FROM colors WHERE id = $1 AND store_id = $2`

	color, err := scanColor(r.db.QueryRowContext(ctx, query, id, storeID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrColorNotFound
		}
		return nil, fmt.Errorf("failed to find color by ID: %w", err)
	}

	return color, nil
}

func (r *colorRepository) List(ctx context.Context, storeID uuid.UUID) ([]*domain.Color, error) {
	query := `SELECT ` + colorColumns + ` FROM colors WHERE store_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list colors: %w", err)
	}
	defer rows.Close()

	colors := []*domain.Color{}
	for rows.Next() {
		color, err := scanColor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan color: %w", err)
		}
		colors = append(colors, color)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating colors: %w", err)
	}

	return colors, nil
}
