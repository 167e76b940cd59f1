package service

import (
	"context"
	"fmt"
	"time"

	"storefront-cms/internal/domain"
	"storefront-cms/internal/repository"

	"github.com/google/uuid"
)

// StoreService defines store management and the ownership check every
// store-scoped mutation goes through.
type StoreService interface {
	Create(ctx context.Context, userID, name string) (*domain.Store, error)
	List(ctx context.Context, userID string) ([]*domain.Store, error)
	Get(ctx context.Context, userID string, storeID uuid.UUID) (*domain.Store, error)
	Rename(ctx context.Context, userID string, storeID uuid.UUID, name *string) (*domain.Store, error)
	Delete(ctx context.Context, userID string, storeID uuid.UUID) (*domain.Store, error)

	// Authorize returns the store only if userID owns it. An empty userID
	// yields ErrUnauthorized; a missing or foreign store yields
	// repository.ErrStoreNotFound.
	Authorize(ctx context.Context, userID string, storeID uuid.UUID) (*domain.Store, error)

	// FindPublic returns the store for anonymous reads
	FindPublic(ctx context.Context, storeID uuid.UUID) (*domain.Store, error)
}

type storeService struct {
	storeRepo repository.StoreRepository
}

// NewStoreService creates a new instance of StoreService
func NewStoreService(storeRepo repository.StoreRepository) StoreService {
	return &storeService{storeRepo: storeRepo}
}

func (s *storeService) Create(ctx context.Context, userID, name string) (*domain.Store, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	if err := requireText(name); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	store := &domain.Store{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.storeRepo.Create(ctx, store); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *storeService) List(ctx context.Context, userID string) ([]*domain.Store, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	return s.storeRepo.ListByUser(ctx, userID)
}

func (s *storeService) Get(ctx context.Context, userID string, storeID uuid.UUID) (*domain.Store, error) {
	return s.Authorize(ctx, userID, storeID)
}

func (s *storeService) Rename(ctx context.Context, userID string, storeID uuid.UUID, name *string) (*domain.Store, error) {
	store, err := s.Authorize(ctx, userID, storeID)
	if err != nil {
		return nil, err
	}

	if name == nil {
		return nil, ErrInvalidInput
	}
	if err := patchText(&store.Name, name); err != nil {
		return nil, err
	}
	store.UpdatedAt = time.Now().UTC()

	if err := s.storeRepo.Update(ctx, store); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *storeService) Delete(ctx context.Context, userID string, storeID uuid.UUID) (*domain.Store, error) {
	store, err := s.Authorize(ctx, userID, storeID)
	if err != nil {
		return nil, err
	}

	if err := s.storeRepo.Delete(ctx, storeID, userID); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *storeService) Authorize(ctx context.Context, userID string, storeID uuid.UUID) (*domain.Store, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}

	store, err := s.storeRepo.FindByIDAndUser(ctx, storeID, userID)
	if err != nil {
		return nil, err
	}

	return store, nil
}

func (s *storeService) FindPublic(ctx context.Context, storeID uuid.UUID) (*domain.Store, error) {
	store, err := s.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("store %s: %w", storeID, err)
	}
	return store, nil
}
