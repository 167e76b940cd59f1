package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a product in a store's catalog
type Product struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	StoreID    uuid.UUID       `json:"storeId" db:"store_id"`
	CategoryID uuid.UUID       `json:"categoryId" db:"category_id"`
	SizeID     uuid.UUID       `json:"sizeId" db:"size_id"`
	ColorID    uuid.UUID       `json:"colorId" db:"color_id"`
	Name       string          `json:"name" db:"name"`
	Price      decimal.Decimal `json:"price" db:"price"`
	IsFeatured bool            `json:"isFeatured" db:"is_featured"`
	IsArchived bool            `json:"isArchived" db:"is_archived"`
	CreatedAt  time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time       `json:"updatedAt" db:"updated_at"`

	// Populated by reads that join the product's references.
	Category *Category `json:"category,omitempty"`
	Size     *Size     `json:"size,omitempty"`
	Color    *Color    `json:"color,omitempty"`
	Images   []*Image  `json:"images"`
}

// Image is an externally hosted asset attached to a product
type Image struct {
	ID            uuid.UUID `json:"id" db:"id"`
	ProductID     uuid.UUID `json:"productId" db:"product_id"`
	ImagePublicID string    `json:"imagePublicId" db:"image_public_id"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// ProductFilter narrows a store's product listing. Nil fields are ignored.
type ProductFilter struct {
	CategoryID      *uuid.UUID
	SizeID          *uuid.UUID
	ColorID         *uuid.UUID
	FeaturedOnly    bool
	IncludeArchived bool
}
