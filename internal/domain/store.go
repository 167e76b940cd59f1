package domain

import (
	"time"

	"github.com/google/uuid"
)

// Store is a merchant's isolated catalog namespace. Every other resource
// belongs to exactly one store.
type Store struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Billboard is a promotional banner referenced by categories
type Billboard struct {
	ID            uuid.UUID `json:"id" db:"id"`
	StoreID       uuid.UUID `json:"storeId" db:"store_id"`
	Label         string    `json:"label" db:"label"`
	ImagePublicID string    `json:"imagePublicId" db:"image_public_id"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// Category groups products and points at the billboard shown on its page
type Category struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	StoreID     uuid.UUID  `json:"storeId" db:"store_id"`
	BillboardID uuid.UUID  `json:"billboardId" db:"billboard_id"`
	Name        string     `json:"name" db:"name"`
	Billboard   *Billboard `json:"billboard,omitempty"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// Size is a free-text product size such as "M" or "42"
type Size struct {
	ID        uuid.UUID `json:"id" db:"id"`
	StoreID   uuid.UUID `json:"storeId" db:"store_id"`
	Name      string    `json:"name" db:"name"`
	Value     string    `json:"value" db:"value"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Color is a named product color; Value holds a hex code like "#FF0000"
type Color struct {
	ID        uuid.UUID `json:"id" db:"id"`
	StoreID   uuid.UUID `json:"storeId" db:"store_id"`
	Name      string    `json:"name" db:"name"`
	Value     string    `json:"value" db:"value"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
