package service

import (
	"context"
	"time"

	"storefront-cms/internal/domain"
	"storefront-cms/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductInput carries product fields; nil means absent. A non-nil Images
// slice replaces the product's images as a whole.
type ProductInput struct {
	Name       *string
	Price      *decimal.Decimal
	CategoryID *uuid.UUID
	SizeID     *uuid.UUID
	ColorID    *uuid.UUID
	Images     []string
	IsFeatured *bool
	IsArchived *bool
}

// ProductService defines product business logic
type ProductService interface {
	List(ctx context.Context, storeID uuid.UUID, filter domain.ProductFilter) (*domain.Store, []*domain.Product, error)
	Get(ctx context.Context, storeID, id uuid.UUID) (*domain.Store, *domain.Product, error)
	Create(ctx context.Context, userID string, storeID uuid.UUID, input ProductInput) (*domain.Store, *domain.Product, error)
	Update(ctx context.Context, userID string, storeID, id uuid.UUID, input ProductInput) (*domain.Store, *domain.Product, error)
	Delete(ctx context.Context, userID string, storeID, id uuid.UUID) (*domain.Store, *domain.Product, error)
}

type productService struct {
	stores      StoreService
	productRepo repository.ProductRepository
}

// NewProductService creates a new instance of ProductService
func NewProductService(stores StoreService, productRepo repository.ProductRepository) ProductService {
	return &productService{stores: stores, productRepo: productRepo}
}

// List never returns archived products, whatever the filter says
func (s *productService) List(ctx context.Context, storeID uuid.UUID, filter domain.ProductFilter) (*domain.Store, []*domain.Product, error) {
	store, err := s.stores.FindPublic(ctx, storeID)
	if err != nil {
		return nil, nil, err
	}

	filter.IncludeArchived = false
	products, err := s.productRepo.List(ctx, storeID, filter)
	if err != nil {
		return nil, nil, err
	}

	return store, products, nil
}

func (s *productService) Get(ctx context.Context, storeID, id uuid.UUID) (*domain.Store, *domain.Product, error) {
	store, err := s.stores.FindPublic(ctx, storeID)
	if err != nil {
		return nil, nil, err
	}

	product, err := s.productRepo.FindByID(ctx, storeID, id)
	if err != nil {
		return nil, nil, err
	}

	return store, product, nil
}

func (s *productService) Create(ctx context.Context, userID string, storeID uuid.UUID, input ProductInput) (*domain.Store, *domain.Product, error) {
	store, err := s.stores.Authorize(ctx, userID, storeID)
	if err != nil {
		return nil, nil, err
	}

	if input.Name == nil || input.Price == nil || input.CategoryID == nil ||
		input.SizeID == nil || input.ColorID == nil || len(input.Images) == 0 {
		return nil, nil, ErrInvalidInput
	}
	if err := requireText(*input.Name); err != nil {
		return nil, nil, err
	}
	if err := requireText(input.Images...); err != nil {
		return nil, nil, err
	}
	if !input.Price.IsPositive() {
		return nil, nil, ErrInvalidInput
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:         uuid.New(),
		StoreID:    storeID,
		CategoryID: *input.CategoryID,
		SizeID:     *input.SizeID,
		ColorID:    *input.ColorID,
		Name:       *input.Name,
		Price:      input.Price.Round(2),
		IsFeatured: input.IsFeatured != nil && *input.IsFeatured,
		IsArchived: input.IsArchived != nil && *input.IsArchived,
		CreatedAt:  now,
		UpdatedAt:  now,
		Images:     newImages(input.Images, now),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, nil, err
	}

	return store, product, nil
}

// Update applies the present fields. When Images is present the image set
// is swapped inside the same transaction as the field update.
func (s *productService) Update(ctx context.Context, userID string, storeID, id uuid.UUID, input ProductInput) (*domain.Store, *domain.Product, error) {
	store, err := s.stores.Authorize(ctx, userID, storeID)
	if err != nil {
		return nil, nil, err
	}

	product, err := s.productRepo.FindByID(ctx, storeID, id)
	if err != nil {
		return nil, nil, err
	}

	if err := patchText(&product.Name, input.Name); err != nil {
		return nil, nil, err
	}
	if input.Price != nil {
		if !input.Price.IsPositive() {
			return nil, nil, ErrInvalidInput
		}
		product.Price = input.Price.Round(2)
	}
	if input.CategoryID != nil {
		product.CategoryID = *input.CategoryID
	}
	if input.SizeID != nil {
		product.SizeID = *input.SizeID
	}
	if input.ColorID != nil {
		product.ColorID = *input.ColorID
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}
	if input.IsArchived != nil {
		product.IsArchived = *input.IsArchived
	}

	now := time.Now().UTC()
	replaceImages := input.Images != nil
	if replaceImages {
		if len(input.Images) == 0 {
			return nil, nil, ErrInvalidInput
		}
		if err := requireText(input.Images...); err != nil {
			return nil, nil, err
		}
		product.Images = newImages(input.Images, now)
	}
	product.UpdatedAt = now

	if err := s.productRepo.Update(ctx, product, replaceImages); err != nil {
		return nil, nil, err
	}

	updated, err := s.productRepo.FindByID(ctx, storeID, id)
	if err != nil {
		return nil, nil, err
	}

	return store, updated, nil
}

func (s *productService) Delete(ctx context.Context, userID string, storeID, id uuid.UUID) (*domain.Store, *domain.Product, error) {
	store, err := s.stores.Authorize(ctx, userID, storeID)
	if err != nil {
		return nil, nil, err
	}

	product, err := s.productRepo.FindByID(ctx, storeID, id)
	if err != nil {
		return nil, nil, err
	}

	if err := s.productRepo.Delete(ctx, storeID, id); err != nil {
		return nil, nil, err
	}

	return store, product, nil
}

func newImages(publicIDs []string, now time.Time) []*domain.Image {
	images := make([]*domain.Image, 0, len(publicIDs))
	for _, publicID := range publicIDs {
		images = append(images, &domain.Image{
			ID:            uuid.New(),
			ImagePublicID: publicID,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}
	return images
}
