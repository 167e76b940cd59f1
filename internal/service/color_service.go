package service

import (
	"context"
	"time"

	"storefront-cms/internal/domain"
	"storefront-cms/internal/repository"

	"github.com/google/uuid"
)

// ColorService defines color business logic. Value is expected to be a hex
// code but only its presence is checked.
type ColorService interface {
	List(ctx context.Context, storeID uuid.UUID) (*domain.Store, []*domain.Color, error)
	Get(ctx context.Context, storeID, id uuid.UUID) (*domain.Store, *domain.Color, error)
	Create(ctx context.Context, userID string, storeID uuid.UUID, input AttributeInput) (*domain.Store, *domain.Color, error)
	Update(ctx context.Context, userID string, storeID, id uuid.UUID, input AttributeInput) (*domain.Store, *domain.Color, error)
	Delete(ctx context.Context, userID string, storeID, id uuid.UUID) (*domain.Store, *domain.Color, error)
}

type colorService struct {
	stores    StoreService
	colorRepo repository.ColorRepository
}

// NewColorService creates a new instance of ColorService
func NewColorService(stores StoreService, colorRepo repository.ColorRepository) ColorService {
	return &colorService{stores: stores, colorRepo: colorRepo}
}

func (s *colorService) List(ctx context.Context, storeID uuid.UUID) (*domain.Store, []*domain.Color, error) {
	store, err := s.stores.FindPublic(ctx, storeID)
	if err != nil {
		return nil, nil, err
	}

	colors, err := s.colorRepo.List(ctx, storeID)
	if err != nil {
		return nil, nil, err
	}

	return store, colors, nil
}

func (s *colorService) Get(ctx context.Context, storeID, id uuid.UUID) (*domain.Store, *domain.Color, error) {
	store, err := s.stores.FindPublic(ctx, storeID)
	if err != nil {
		return nil, nil, err
	}

	color, err := s.colorRepo.FindByID(ctx, storeID, id)
	if err != nil {
		return nil, nil, err
	}

	return store, color, nil
}

func (s *colorService) Create(ctx context.Context, userID string, storeID uuid.UUID, input AttributeInput) (*domain.Store, *domain.Color, error) {
	store, err := s.stores.Authorize(ctx, userID, storeID)
	if err != nil {
		return nil, nil, err
	}

	name, value, err := input.required()
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	color := &domain.Color{ID: uuid.New(), StoreID: storeID, Name: name, Value: value, CreatedAt: now, UpdatedAt: now}

	if err := s.colorRepo.Create(ctx, color); err != nil {
		return nil, nil, err
	}

	return store, color, nil
}

func (s *colorService) Update(ctx context.Context, userID string, storeID, id uuid.UUID, input AttributeInput) (*domain.Store, *domain.Color, error) {
	store, err := s.stores.Authorize(ctx, userID, storeID)
	if err != nil {
		return nil, nil, err
	}

	color, err := s.colorRepo.FindByID(ctx, storeID, id)
	if err != nil {
		return nil, nil, err
	}

	if err := patchText(&color.Name, input.Name); err != nil {
		return nil, nil, err
	}
	if err := patchText(&color.Value, input.Value); err != nil {
		return nil, nil, err
	}
	color.UpdatedAt = time.Now().UTC()

	if err := s.colorRepo.Update(ctx, color); err != nil {
		return nil, nil, err
	}

	return store, color, nil
}

func (s *colorService) Delete(ctx context.Context, userID string, storeID, id uuid.UUID) (*domain.Store, *domain.Color, error) {
	store, err := s.stores.Authorize(ctx, userID, storeID)
	if err != nil {
		return nil, nil, err
	}

	color, err := s.colorRepo.FindByID(ctx, storeID, id)
	if err != nil {
		return nil, nil, err
	}

	if err := s.colorRepo.Delete(ctx, storeID, id); err != nil {
		return nil, nil, err
	}

	return store, color, nil
}
