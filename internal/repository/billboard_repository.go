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
	ErrBillboardNotFound = errors.New("billboard not found")
)

// BillboardRepository defines the interface for billboard data access.
// Every lookup is scoped to a store.
type BillboardRepository interface {
	Create(ctx context.Context, billboard *domain.Billboard) error
	Update(ctx context.Context, billboard *domain.Billboard) error
	Delete(ctx context.Context, storeID, id uuid.UUID) error
	FindByID(ctx context.Context, storeID, id uuid.UUID) (*domain.Billboard, error)
	List(ctx context.Context, storeID uuid.UUID) ([]*domain.Billboard, error)
}

type billboardRepository struct {
	db *sql.DB
}

// NewBillboardRepository creates a new instance of BillboardRepository
func NewBillboardRepository(db *sql.DB) BillboardRepository {
	return &billboardRepository{db: db}
}

const billboardColumns = `id, store_id, label, image_public_id, created_at, updated_at`

func scanBillboard(row rowScanner) (*domain.Billboard, error) {
	billboard := &domain.Billboard{}
	err := row.Scan(
		&billboard.ID,
		&billboard.StoreID,
		&billboard.Label,
		&billboard.ImagePublicID,
		&billboard.CreatedAt,
		&billboard.UpdatedAt,
	)
	return billboard, err
}

func (r *billboardRepository) Create(ctx context.Context, billboard *domain.Billboard) error {
	query := `
		INSERT INTO billboards (id, store_id, label, image_public_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		billboard.ID,
		billboard.StoreID,
		billboard.Label,
		billboard.ImagePublicID,
		billboard.CreatedAt,
		billboard.UpdatedAt,
	)
	if err != nil {
		return translateError("create billboard", err)
	}

	return nil
}

func (r *billboardRepository) Update(ctx context.Context, billboard *domain.Billboard) error {
	query := `
		UPDATE billboards
		SET label = $3, image_public_id = $4, updated_at = $5
		WHERE id = $1 AND store_id = $2
	`

	result, err := r.db.ExecContext(ctx, query,
		billboard.ID,
		billboard.StoreID,
		billboard.Label,
		billboard.ImagePublicID,
		billboard.UpdatedAt,
	)
	if err != nil {
		return translateError("update billboard", err)
	}

	return expectAffected(result, ErrBillboardNotFound)
}

// Delete fails with ErrReferenceViolation while categories still use the billboard
func (r *billboardRepository) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	query := `DELETE FROM billboards WHERE id = $1 AND store_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, storeID)
	if err != nil {
		return translateError("delete billboard", err)
	}

	return expectAffected(result, ErrBillboardNotFound)
}

func (r *billboardRepository) FindByID(ctx context.Context, storeID, id uuid.UUID) (*domain.Billboard, error) {
	query := `SELECT ` + billboardColumns + ` FROM billboards WHERE id = $1 AND store_id = $2`

	billboard, err := scanBillboard(r.db.QueryRowContext(ctx, query, id, storeID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBillboardNotFound
		}
		return nil, fmt.Errorf("failed to find billboard by ID: %w", err)
	}

	return billboard, nil
}

func (r *billboardRepository) List(ctx context.Context, storeID uuid.UUID) ([]*domain.Billboard, error) {
	query := `SELECT ` + billboardColumns + ` FROM billboards WHERE store_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list billboards: %w", err)
	}
	defer rows.Close()

	billboards := []*domain.Billboard{}
	for rows.Next() {
		billboard, err := scanBillboard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan billboard: %w", err)
		}
		billboards = append(billboards, billboard)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating billboards: %w", err)
	}

	return billboards, nil
}
