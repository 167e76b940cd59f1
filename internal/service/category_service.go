package service

import (
	"context"
	"time"

	"storefront-cms/internal/domain"
	"storefront-cms/internal/repository"

	"github.com/google/uuid"
)

// CategoryInput carries category fields; nil means absent
type CategoryInput struct {
	Name        *string
	BillboardID *uuid.UUID
}

// CategoryService defines category business logic
type CategoryService interface {
	List(ctx context.Context, storeID uuid.UUID) (*domain.Store, []*domain.Category, error)
	Get(ctx context.Context, storeID, id uuid.UUID) (*domain.Store, *domain.Category, error)
	Create(ctx context.Context, userID string, storeID uuid.UUID, input CategoryInput) (*domain.Store, *domain.Category, error)
	Update(ctx context.Context, userID string, storeID, id uuid.UUID, input CategoryInput) (*domain.Store, *domain.Category, error)
	Delete(ctx context.Context, userID string, storeID, id uuid.UUID) (*domain.Store, *domain.Category, error)
}

type categoryService struct {
	stores       StoreService
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(stores StoreService, categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{stores: stores, categoryRepo: categoryRepo}
}

func (s *categoryService) List(ctx context.Context, storeID uuid.UUID) (*domain.Store, []*domain.Category, error) {
	store, err := s.stores.FindPublic(ctx, storeID)
	if err != nil {
		return nil, nil, err
	}

	categories, err := s.categoryRepo.List(ctx, storeID)
	if err != nil {
		return nil, nil, err
	}

	return store, categories, nil
}

func (s *categoryService) Get(ctx context.Context, storeID, id uuid.UUID) (*domain.Store, *domain.Category, error) {
	store, err := s.stores.FindPublic(ctx, storeID)
	if err != nil {
		return nil, nil, err
	}

	category, err := s.categoryRepo.FindByID(ctx, storeID, id)
	if err != nil {
		return nil, nil, err
	}

	return store, category, nil
}

// Create does not check that the billboard belongs to the same store
func (s *categoryService) Create(ctx context.Context, userID string, storeID uuid.UUID, input CategoryInput) (*domain.Store, *domain.Category, error) {
	store, err := s.stores.Authorize(ctx, userID, storeID)
	if err != nil {
		return nil, nil, err
	}

	if input.Name == nil || input.BillboardID == nil {
		return nil, nil, ErrInvalidInput
	}
	if err := requireText(*input.Name); err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	category := &domain.Category{
		ID:          uuid.New(),
		StoreID:     storeID,
		BillboardID: *input.BillboardID,
		Name:        *input.Name,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, nil, err
	}

	return store, category, nil
}

func (s *categoryService) Update(ctx context.Context, userID string, storeID, id uuid.UUID, input CategoryInput) (*domain.Store, *domain.Category, error) {
	store, err := s.stores.Authorize(ctx, userID, storeID)
	if err != nil {
		return nil, nil, err
	}

	category, err := s.categoryRepo.FindByID(ctx, storeID, id)
	if err != nil {
		return nil, nil, err
	}

	if err := patchText(&category.Name, input.Name); err != nil {
		return nil, nil, err
	}
	if input.BillboardID != nil && *input.BillboardID != category.BillboardID {
		category.BillboardID = *input.BillboardID
		category.Billboard = nil
	}
	category.UpdatedAt = time.Now().UTC()

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, nil, err
	}

	return store, category, nil
}

func (s *categoryService) Delete(ctx context.Context, userID string, storeID, id uuid.UUID) (*domain.Store, *domain.Category, error) {
	store, err := s.stores.Authorize(ctx, userID, storeID)
	if err != nil {
		return nil, nil, err
	}

	category, err := s.categoryRepo.FindByID(ctx, storeID, id)
	if err != nil {
		return nil, nil, err
	}

	if err := s.categoryRepo.Delete(ctx, storeID, id); err != nil {
		return nil, nil, err
	}

	return store, category, nil
}
