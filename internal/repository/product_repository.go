package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storefront-cms/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product data access. Reads
// return products with their category, size, color and images attached.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product, replaceImages bool) error
	Delete(ctx context.Context, storeID, id uuid.UUID) error
	FindByID(ctx context.Context, storeID, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, storeID uuid.UUID, filter domain.ProductFilter) ([]*domain.Product, error)
	CountActive(ctx context.Context, storeID uuid.UUID) (int, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// productSelect yields one row per image; products without images produce
// a single row with NULL image columns.
const productSelect = `
	SELECT p.id, p.store_id, p.category_id, p.size_id, p.color_id, p.name, p.price,
	       p.is_featured, p.is_archived, p.created_at, p.updated_at,
	       c.id, c.store_id, c.billboard_id, c.name, c.created_at, c.updated_at,
	       s.id, s.store_id, s.name, s.value, s.created_at, s.updated_at,
	       co.id, co.store_id, co.name, co.value, co.created_at, co.updated_at,
	       i.id, i.image_public_id, i.created_at, i.updated_at
	FROM products p
	JOIN categories c ON c.id = p.category_id
	JOIN sizes s ON s.id = p.size_id
	JOIN colors co ON co.id = p.color_id
	LEFT JOIN images i ON i.product_id = p.id
`

func scanProductRow(row rowScanner) (*domain.Product, *domain.Image, error) {
	product := &domain.Product{
		Category: &domain.Category{},
		Size:     &domain.Size{},
		Color:    &domain.Color{},
		Images:   []*domain.Image{},
	}

	var (
		imageID        uuid.NullUUID
		imagePublicID  sql.NullString
		imageCreatedAt sql.NullTime
		imageUpdatedAt sql.NullTime
	)

	err := row.Scan(
		&product.ID,
		&product.StoreID,
		&product.CategoryID,
		&product.SizeID,
		&product.ColorID,
		&product.Name,
		&product.Price,
		&product.IsFeatured,
		&product.IsArchived,
		&product.CreatedAt,
		&product.UpdatedAt,
		&product.Category.ID,
		&product.Category.StoreID,
		&product.Category.BillboardID,
		&product.Category.Name,
		&product.Category.CreatedAt,
		&product.Category.UpdatedAt,
		&product.Size.ID,
		&product.Size.StoreID,
		&product.Size.Name,
		&product.Size.Value,
		&product.Size.CreatedAt,
		&product.Size.UpdatedAt,
		&product.Color.ID,
		&product.Color.StoreID,
		&product.Color.Name,
		&product.Color.Value,
		&product.Color.CreatedAt,
		&product.Color.UpdatedAt,
		&imageID,
		&imagePublicID,
		&imageCreatedAt,
		&imageUpdatedAt,
	)
	if err != nil {
		return nil, nil, err
	}

	if !imageID.Valid {
		return product, nil, nil
	}

	return product, &domain.Image{
		ID:            imageID.UUID,
		ProductID:     product.ID,
		ImagePublicID: imagePublicID.String,
		CreatedAt:     imageCreatedAt.Time,
		UpdatedAt:     imageUpdatedAt.Time,
	}, nil
}

// collectProducts folds image rows into their products, keeping row order
func collectProducts(rows *sql.Rows) ([]*domain.Product, error) {
	products := []*domain.Product{}
	byID := make(map[uuid.UUID]*domain.Product)

	for rows.Next() {
		product, image, err := scanProductRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		existing, ok := byID[product.ID]
		if !ok {
			byID[product.ID] = product
			products = append(products, product)
			existing = product
		}
		if image != nil {
			existing.Images = append(existing.Images, image)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

func insertImages(ctx context.Context, tx execer, product *domain.Product) error {
	query := `
		INSERT INTO images (id, product_id, image_public_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	for _, image := range product.Images {
		image.ProductID = product.ID
		if _, err := tx.ExecContext(ctx, query,
			image.ID,
			image.ProductID,
			image.ImagePublicID,
			image.CreatedAt,
			image.UpdatedAt,
		); err != nil {
			return translateError("create product image", err)
		}
	}

	return nil
}

// Create inserts the product and its images in one transaction
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (id, store_id, category_id, size_id, color_id, name, price,
		                      is_featured, is_archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, query,
			product.ID,
			product.StoreID,
			product.CategoryID,
			product.SizeID,
			product.ColorID,
			product.Name,
			product.Price,
			product.IsFeatured,
			product.IsArchived,
			product.CreatedAt,
			product.UpdatedAt,
		)
		if err != nil {
			return translateError("create product", err)
		}

		return insertImages(ctx, tx, product)
	})
}

// Update writes the product's scalar fields. With replaceImages the existing
// images are dropped and product.Images inserted in the same transaction, so
// readers never observe a product with a partial image set.
func (r *productRepository) Update(ctx context.Context, product *domain.Product, replaceImages bool) error {
	query := `
		UPDATE products
		SET category_id = $3, size_id = $4, color_id = $5, name = $6, price = $7,
		    is_featured = $8, is_archived = $9, updated_at = $10
		WHERE id = $1 AND store_id = $2
	`

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, query,
			product.ID,
			product.StoreID,
			product.CategoryID,
			product.SizeID,
			product.ColorID,
			product.Name,
			product.Price,
			product.IsFeatured,
			product.IsArchived,
			product.UpdatedAt,
		)
		if err != nil {
			return translateError("update product", err)
		}

		if err := expectAffected(result, ErrProductNotFound); err != nil {
			return err
		}

		if !replaceImages {
			return nil
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM images WHERE product_id = $1`, product.ID); err != nil {
			return fmt.Errorf("failed to clear product images: %w", err)
		}

		return insertImages(ctx, tx, product)
	})
}

// Delete removes a product and, by cascade, its images. Products that appear
// on orders cannot be deleted and yield ErrReferenceViolation.
func (r *productRepository) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1 AND store_id = $2`, id, storeID)
	if err != nil {
		return translateError("delete product", err)
	}

	return expectAffected(result, ErrProductNotFound)
}

// FindByID returns a product of the store, archived or not
func (r *productRepository) FindByID(ctx context.Context, storeID, id uuid.UUID) (*domain.Product, error) {
	query := productSelect + `WHERE p.id = $1 AND p.store_id = $2 ORDER BY i.created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, id, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	defer rows.Close()

	products, err := collectProducts(rows)
	if err != nil {
		return nil, err
	}

	if len(products) == 0 {
		return nil, ErrProductNotFound
	}

	return products[0], nil
}

// List returns the store's products matching filter, newest first
func (r *productRepository) List(ctx context.Context, storeID uuid.UUID, filter domain.ProductFilter) ([]*domain.Product, error) {
	conditions := []string{"p.store_id = $1"}
	args := []interface{}{storeID}

	addCondition := func(column string, value uuid.UUID) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if filter.CategoryID != nil {
		addCondition("p.category_id", *filter.CategoryID)
	}
	if filter.SizeID != nil {
		addCondition("p.size_id", *filter.SizeID)
	}
	if filter.ColorID != nil {
		addCondition("p.color_id", *filter.ColorID)
	}
	if filter.FeaturedOnly {
		conditions = append(conditions, "p.is_featured = TRUE")
	}
	if !filter.IncludeArchived {
		conditions = append(conditions, "p.is_archived = FALSE")
	}

	query := productSelect +
		"WHERE " + strings.Join(conditions, " AND ") +
		" ORDER BY p.created_at DESC, p.id, i.created_at ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// CountActive counts the store's non-archived products
func (r *productRepository) CountActive(ctx context.Context, storeID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM products WHERE store_id = $1 AND is_archived = FALSE`

	var count int
	if err := r.db.QueryRowContext(ctx, query, storeID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return count, nil
}
