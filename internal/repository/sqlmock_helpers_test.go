package repository

import (
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"storefront-cms/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db, mock
}

func assertExpectations(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func sampleProduct(imagePublicIDs ...string) *domain.Product {
	now := time.Now().UTC()
	product := &domain.Product{
		ID:         uuid.New(),
		StoreID:    uuid.New(),
		CategoryID: uuid.New(),
		SizeID:     uuid.New(),
		ColorID:    uuid.New(),
		Name:       "Runner",
		Price:      decimal.RequireFromString("49.99"),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, publicID := range imagePublicIDs {
		product.Images = append(product.Images, &domain.Image{
			ID:            uuid.New(),
			ImagePublicID: publicID,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}
	return product
}

var productRowColumns = []string{
	"id", "store_id", "category_id", "size_id", "color_id", "name", "price",
	"is_featured", "is_archived", "created_at", "updated_at",
	"c_id", "c_store_id", "c_billboard_id", "c_name", "c_created_at", "c_updated_at",
	"s_id", "s_store_id", "s_name", "s_value", "s_created_at", "s_updated_at",
	"co_id", "co_store_id", "co_name", "co_value", "co_created_at", "co_updated_at",
	"i_id", "i_image_public_id", "i_created_at", "i_updated_at",
}

// productRow renders one joined row; a nil image yields NULL image columns
func productRow(p *domain.Product, categoryName string, image *domain.Image) []driver.Value {
	now := time.Now().UTC()
	row := []driver.Value{
		p.ID.String(), p.StoreID.String(), p.CategoryID.String(), p.SizeID.String(), p.ColorID.String(),
		p.Name, p.Price.String(), p.IsFeatured, p.IsArchived, now, now,
		p.CategoryID.String(), p.StoreID.String(), uuid.NewString(), categoryName, now, now,
		p.SizeID.String(), p.StoreID.String(), "Medium", "M", now, now,
		p.ColorID.String(), p.StoreID.String(), "Black", "#000000", now, now,
	}
	if image == nil {
		return append(row, nil, nil, nil, nil)
	}
	return append(row, image.ID.String(), image.ImagePublicID, now, now)
}
