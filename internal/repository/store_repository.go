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
	ErrStoreNotFound = errors.New("store not found")
)

// StoreRepository defines the interface for store data access
type StoreRepository interface {
	Create(ctx context.Context, store *domain.Store) error
	Update(ctx context.Context, store *domain.Store) error
	Delete(ctx context.Context, id uuid.UUID, userID string) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Store, error)
	FindByIDAndUser(ctx context.Context, id uuid.UUID, userID string) (*domain.Store, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Store, error)
}

type storeRepository struct {
	db *sql.DB
}

// NewStoreRepository creates a new instance of StoreRepository
func NewStoreRepository(db *sql.DB) StoreRepository {
	return &storeRepository{db: db}
}

const storeColumns = `id, user_id, name, created_at, updated_at`

func scanStore(row rowScanner) (*domain.Store, error) {
	store := &domain.Store{}
	err := row.Scan(
		&store.ID,
		&store.UserID,
		&store.Name,
		&store.CreatedAt,
		&store.UpdatedAt,
	)
	return store, err
}

// Create inserts a new store owned by store.UserID
func (r *storeRepository) Create(ctx context.Context, store *domain.Store) error {
	query := `
		INSERT INTO stores (id, user_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		store.ID,
		store.UserID,
		store.Name,
		store.CreatedAt,
		store.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}

	return nil
}

// Update renames a store. Only the owner's row matches.
func (r *storeRepository) Update(ctx context.Context, store *domain.Store) error {
	query := `
		UPDATE stores
		SET name = $3, updated_at = $4
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.db.ExecContext(ctx, query,
		store.ID,
		store.UserID,
		store.Name,
		store.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update store: %w", err)
	}

	return expectAffected(result, ErrStoreNotFound)
}

// Delete removes an owned store; child rows cascade
func (r *storeRepository) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	query := `DELETE FROM stores WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return translateError("delete store", err)
	}

	return expectAffected(result, ErrStoreNotFound)
}

// FindByID retrieves a store regardless of owner, for public reads
func (r *storeRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE id = $1`

	store, err := scanStore(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to find store by ID: %w", err)
	}

	return store, nil
}

// FindByIDAndUser retrieves a store only if userID owns it
func (r *storeRepository) FindByIDAndUser(ctx context.Context, id uuid.UUID, userID string) (*domain.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE id = $1 AND user_id = $2`

	store, err := scanStore(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to find store by owner: %w", err)
	}

	return store, nil
}

// ListByUser returns the stores owned by userID, oldest first
func (r *storeRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE user_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	defer rows.Close()

	stores := []*domain.Store{}
	for rows.Next() {
		store, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan store: %w", err)
		}
		stores = append(stores, store)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stores: %w", err)
	}

	return stores, nil
}
