package service

import (
	"context"
	"time"

	"storefront-cms/internal/domain"
	"storefront-cms/internal/repository"

	"github.com/google/uuid"
)

// BillboardInput carries billboard fields; nil means absent
type BillboardInput struct {
	Label         *string
	ImagePublicID *string
}

// BillboardService defines billboard business logic. Every call returns the
// owning store alongside the billboard.
type BillboardService interface {
	List(ctx context.Context, storeID uuid.UUID) (*domain.Store, []*domain.Billboard, error)
	Get(ctx context.Context, storeID, id uuid.UUID) (*domain.Store, *domain.Billboard, error)
	Create(ctx context.Context, userID string, storeID uuid.UUID, input BillboardInput) (*domain.Store, *domain.Billboard, error)
	Update(ctx context.Context, userID string, storeID, id uuid.UUID, input BillboardInput) (*domain.Store, *domain.Billboard, error)
	Delete(ctx context.Context, userID string, storeID, id uuid.UUID) (*domain.Store, *domain.Billboard, error)
}

type billboardService struct {
	stores        StoreService
	billboardRepo repository.BillboardRepository
}

// NewBillboardService creates a new instance of BillboardService
func NewBillboardService(stores StoreService, billboardRepo repository.BillboardRepository) BillboardService {
	return &billboardService{stores: stores, billboardRepo: billboardRepo}
}

func (s *billboardService) List(ctx context.Context, storeID uuid.UUID) (*domain.Store, []*domain.Billboard, error) {
	store, err := s.stores.FindPublic(ctx, storeID)
	if err != nil {
		return nil, nil, err
	}

	billboards, err := s.billboardRepo.List(ctx, storeID)
	if err != nil {
		return nil, nil, err
	}

	return store, billboards, nil
}

func (s *billboardService) Get(ctx context.Context, storeID, id uuid.UUID) (*domain.Store, *domain.Billboard, error) {
	store, err := s.stores.FindPublic(ctx, storeID)
	if err != nil {
		return nil, nil, err
	}

	billboard, err := s.billboardRepo.FindByID(ctx, storeID, id)
	if err != nil {
		return nil, nil, err
	}

	return store, billboard, nil
}

func (s *billboardService) Create(ctx context.Context, userID string, storeID uuid.UUID, input BillboardInput) (*domain.Store, *domain.Billboard, error) {
	store, err := s.stores.Authorize(ctx, userID, storeID)
	if err != nil {
		return nil, nil, err
	}

	if input.Label == nil || input.ImagePublicID == nil {
		return nil, nil, ErrInvalidInput
	}
	if err := requireText(*input.Label, *input.ImagePublicID); err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	billboard := &domain.Billboard{
		ID:            uuid.New(),
		StoreID:       storeID,
		Label:         *input.Label,
		ImagePublicID: *input.ImagePublicID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.billboardRepo.Create(ctx, billboard); err != nil {
		return nil, nil, err
	}

	return store, billboard, nil
}

func (s *billboardService) Update(ctx context.Context, userID string, storeID, id uuid.UUID, input BillboardInput) (*domain.Store, *domain.Billboard, error) {
	store, err := s.stores.Authorize(ctx, userID, storeID)
	if err != nil {
		return nil, nil, err
	}

	billboard, err := s.billboardRepo.FindByID(ctx, storeID, id)
	if err != nil {
		return nil, nil, err
	}

	if err := patchText(&billboard.Label, input.Label); err != nil {
		return nil, nil, err
	}
	if err := patchText(&billboard.ImagePublicID, input.ImagePublicID); err != nil {
		return nil, nil, err
	}
	billboard.UpdatedAt = time.Now().UTC()

	if err := s.billboardRepo.Update(ctx, billboard); err != nil {
		return nil, nil, err
	}

	return store, billboard, nil
}

func (s *billboardService) Delete(ctx context.Context, userID string, storeID, id uuid.UUID) (*domain.Store, *domain.Billboard, error) {
	store, err := s.stores.Authorize(ctx, userID, storeID)
	if err != nil {
		return nil, nil, err
	}

	billboard, err := s.billboardRepo.FindByID(ctx, storeID, id)
	if err != nil {
		return nil, nil, err
	}

	if err := s.billboardRepo.Delete(ctx, storeID, id); err != nil {
		return nil, nil, err
	}

	return store, billboard, nil
}
