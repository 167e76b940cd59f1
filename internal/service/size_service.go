package service

import (
	"context"
	"time"

	"storefront-cms/internal/domain"
	"storefront-cms/internal/repository"

	"github.com/google/uuid"
)

// AttributeInput carries the name/value pair shared by sizes and colors
type AttributeInput struct {
	Name  *string
	Value *string
}

func (in AttributeInput) required() (string, string, error) {
	if in.Name == nil || in.Value == nil {
		return "", "", ErrInvalidInput
	}
	if err := requireText(*in.Name, *in.Value); err != nil {
		return "", "", err
	}
	return *in.Name, *in.Value, nil
}

// SizeService defines size business logic
type SizeService interface {
	List(ctx context.Context, storeID uuid.UUID) (*domain.Store, []*domain.Size, error)
	Get(ctx context.Context, storeID, id uuid.UUID) (*domain.Store, *domain.Size, error)
	Create(ctx context.Context, userID string, storeID uuid.UUID, input AttributeInput) (*domain.Store, *domain.Size, error)
	Update(ctx context.Context, userID string, storeID, id uuid.UUID, input AttributeInput) (*domain.Store, *domain.Size, error)
	Delete(ctx context.Context, userID string, storeID, id uuid.UUID) (*domain.Store, *domain.Size, error)
}

type sizeService struct {
	stores   StoreService
	sizeRepo repository.SizeRepository
}

// NewSizeService creates a new instance of SizeService
func NewSizeService(stores StoreService, sizeRepo repository.SizeRepository) SizeService {
	return &sizeService{stores: stores, sizeRepo: sizeRepo}
}

func (s *sizeService) List(ctx context.Context, storeID uuid.UUID) (*domain.Store, []*domain.Size, error) {
	store, err := s.stores.FindPublic(ctx, storeID)
	if err != nil {
		return nil, nil, err
	}

	sizes, err := s.sizeRepo.List(ctx, storeID)
	if err != nil {
		return nil, nil, err
	}

	return store, sizes, nil
}

func (s *sizeService) Get(ctx context.Context, storeID, id uuid.UUID) (*domain.Store, *domain.Size, error) {
	store, err := s.stores.FindPublic(ctx, storeID)
	if err != nil {
		return nil, nil, err
	}

	size, err := s.sizeRepo.FindByID(ctx, storeID, id)
	if err != nil {
		return nil, nil, err
	}

	return store, size, nil
}

func (s *sizeService) Create(ctx context.Context, userID string, storeID uuid.UUID, input AttributeInput) (*domain.Store, *domain.Size, error) {
	store, err := s.stores.Authorize(ctx, userID, storeID)
	if err != nil {
		return nil, nil, err
	}

	name, value, err := input.required()
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	size := &domain.Size{ID: uuid.New(), StoreID: storeID, Name: name, Value: value, CreatedAt: now, UpdatedAt: now}

	if err := s.sizeRepo.Create(ctx, size); err != nil {
		return nil, nil, err
	}

	return store, size, nil
}

func (s *sizeService) Update(ctx context.Context, userID string, storeID, id uuid.UUID, input AttributeInput) (*domain.Store, *domain.Size, error) {
	store, err := s.stores.Authorize(ctx, userID, storeID)
	if err != nil {
		return nil, nil, err
	}

	size, err := s.sizeRepo.FindByID(ctx, storeID, id)
	if err != nil {
		return nil, nil, err
	}

	if err := patchText(&size.Name, input.Name); err != nil {
		return nil, nil, err
	}
	if err := patchText(&size.Value, input.Value); err != nil {
		return nil, nil, err
	}
	size.UpdatedAt = time.Now().UTC()

	if err := s.sizeRepo.Update(ctx, size); err != nil {
		return nil, nil, err
	}

	return store, size, nil
}

func (s *sizeService) Delete(ctx context.Context, userID string, storeID, id uuid.UUID) (*domain.Store, *domain.Size, error) {
	store, err := s.stores.Authorize(ctx, userID, storeID)
	if err != nil {
		return nil, nil, err
	}

	size, err := s.sizeRepo.FindByID(ctx, storeID, id)
	if err != nil {
		return nil, nil, err
	}

	if err := s.sizeRepo.Delete(ctx, storeID, id); err != nil {
		return nil, nil, err
	}

	return store, size, nil
}
