package service

import (
	"context"
	"sort"

	"storefront-cms/internal/domain"
	"storefront-cms/internal/repository"

	"github.com/google/uuid"
)

// Mock repositories for testing

type mockStoreRepository struct {
	stores map[uuid.UUID]*domain.Store
	writes int
}

func newMockStoreRepository() *mockStoreRepository {
	return &mockStoreRepository{stores: make(map[uuid.UUID]*domain.Store)}
}

func (m *mockStoreRepository) seed(userID, name string) *domain.Store {
	store := &domain.Store{ID: uuid.New(), UserID: userID, Name: name}
	m.stores[store.ID] = store
	return store
}

func (m *mockStoreRepository) Create(ctx context.Context, store *domain.Store) error {
	m.writes++
	copied := *store
	m.stores[store.ID] = &copied
	return nil
}

func (m *mockStoreRepository) Update(ctx context.Context, store *domain.Store) error {
	existing, ok := m.stores[store.ID]
	if !ok || existing.UserID != store.UserID {
		return repository.ErrStoreNotFound
	}
	m.writes++
	copied := *store
	m.stores[store.ID] = &copied
	return nil
}

func (m *mockStoreRepository) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	existing, ok := m.stores[id]
	if !ok || existing.UserID != userID {
		return repository.ErrStoreNotFound
	}
	m.writes++
	delete(m.stores, id)
	return nil
}

func (m *mockStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Store, error) {
	store, ok := m.stores[id]
	if !ok {
		return nil, repository.ErrStoreNotFound
	}
	copied := *store
	return &copied, nil
}

func (m *mockStoreRepository) FindByIDAndUser(ctx context.Context, id uuid.UUID, userID string) (*domain.Store, error) {
	store, ok := m.stores[id]
	if !ok || store.UserID != userID {
		return nil, repository.ErrStoreNotFound
	}
	copied := *store
	return &copied, nil
}

func (m *mockStoreRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Store, error) {
	stores := []*domain.Store{}
	for _, store := range m.stores {
		if store.UserID == userID {
			stores = append(stores, store)
		}
	}
	return stores, nil
}

type mockBillboardRepository struct {
	billboards map[uuid.UUID]*domain.Billboard
}

func newMockBillboardRepository() *mockBillboardRepository {
	return &mockBillboardRepository{billboards: make(map[uuid.UUID]*domain.Billboard)}
}

func (m *mockBillboardRepository) Create(ctx context.Context, billboard *domain.Billboard) error {
	copied := *billboard
	m.billboards[billboard.ID] = &copied
	return nil
}

func (m *mockBillboardRepository) Update(ctx context.Context, billboard *domain.Billboard) error {
	if _, err := m.FindByID(ctx, billboard.StoreID, billboard.ID); err != nil {
		return err
	}
	copied := *billboard
	m.billboards[billboard.ID] = &copied
	return nil
}

func (m *mockBillboardRepository) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	if _, err := m.FindByID(ctx, storeID, id); err != nil {
		return err
	}
	delete(m.billboards, id)
	return nil
}

func (m *mockBillboardRepository) FindByID(ctx context.Context, storeID, id uuid.UUID) (*domain.Billboard, error) {
	billboard, ok := m.billboards[id]
	if !ok || billboard.StoreID != storeID {
		return nil, repository.ErrBillboardNotFound
	}
	copied := *billboard
	return &copied, nil
}

func (m *mockBillboardRepository) List(ctx context.Context, storeID uuid.UUID) ([]*domain.Billboard, error) {
	billboards := []*domain.Billboard{}
	for _, billboard := range m.billboards {
		if billboard.StoreID == storeID {
			billboards = append(billboards, billboard)
		}
	}
	return billboards, nil
}

type mockProductRepository struct {
	products      map[uuid.UUID]*domain.Product
	lookups       int
	replacedCalls int
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{products: make(map[uuid.UUID]*domain.Product)}
}

func (m *mockProductRepository) seed(storeID uuid.UUID, name, price string) *domain.Product {
	product := &domain.Product{
		ID:      uuid.New(),
		StoreID: storeID,
		Name:    name,
		Price:   mustDecimal(price),
		Images:  []*domain.Image{},
	}
	m.products[product.ID] = product
	return product
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	copied := *product
	m.products[product.ID] = &copied
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product, replaceImages bool) error {
	existing, ok := m.products[product.ID]
	if !ok || existing.StoreID != product.StoreID {
		return repository.ErrProductNotFound
	}
	copied := *product
	if replaceImages {
		m.replacedCalls++
	} else {
		copied.Images = existing.Images
	}
	m.products[product.ID] = &copied
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	if _, err := m.FindByID(ctx, storeID, id); err != nil {
		return err
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, storeID, id uuid.UUID) (*domain.Product, error) {
	m.lookups++
	product, ok := m.products[id]
	if !ok || product.StoreID != storeID {
		return nil, repository.ErrProductNotFound
	}
	copied := *product
	return &copied, nil
}

func (m *mockProductRepository) List(ctx context.Context, storeID uuid.UUID, filter domain.ProductFilter) ([]*domain.Product, error) {
	products := []*domain.Product{}
	for _, product := range m.products {
		if product.StoreID != storeID {
			continue
		}
		if product.IsArchived && !filter.IncludeArchived {
			continue
		}
		if filter.FeaturedOnly && !product.IsFeatured {
			continue
		}
		if filter.CategoryID != nil && product.CategoryID != *filter.CategoryID {
			continue
		}
		products = append(products, product)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].CreatedAt.After(products[j].CreatedAt) })
	return products, nil
}

func (m *mockProductRepository) CountActive(ctx context.Context, storeID uuid.UUID) (int, error) {
	count := 0
	for _, product := range m.products {
		if product.StoreID == storeID && !product.IsArchived {
			count++
		}
	}
	return count, nil
}

type mockOrderRepository struct {
	orders []*domain.Order
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{}
}

func (m *mockOrderRepository) CreateWithItems(ctx context.Context, order *domain.Order) error {
	m.orders = append(m.orders, order)
	return nil
}

func (m *mockOrderRepository) MarkPaid(ctx context.Context, id uuid.UUID, details domain.PaymentDetails) error {
	for _, order := range m.orders {
		if order.ID != id {
			continue
		}
		if order.IsPaid {
			return repository.ErrOrderAlreadyPaid
		}
		order.IsPaid = true
		order.Name = details.Name
		order.Email = details.Email
		order.Phone = details.Phone
		order.Address = details.Address
		return nil
	}
	return repository.ErrOrderNotFound
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	for _, order := range m.orders {
		if order.ID == id {
			return order, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (m *mockOrderRepository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*domain.Order, error) {
	return m.list(storeID, false), nil
}

func (m *mockOrderRepository) ListPaidByStore(ctx context.Context, storeID uuid.UUID) ([]*domain.Order, error) {
	return m.list(storeID, true), nil
}

func (m *mockOrderRepository) list(storeID uuid.UUID, paidOnly bool) []*domain.Order {
	orders := []*domain.Order{}
	for _, order := range m.orders {
		if order.StoreID == storeID && (!paidOnly || order.IsPaid) {
			orders = append(orders, order)
		}
	}
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders
}

// fakeGateway records session requests and returns a scripted completion
type fakeGateway struct {
	requests   []domain.CheckoutRequest
	completion *domain.CheckoutCompletion
	parseErr   error
	sessionErr error
}

func (g *fakeGateway) CreateCheckoutSession(ctx context.Context, req domain.CheckoutRequest) (string, error) {
	if g.sessionErr != nil {
		return "", g.sessionErr
	}
	g.requests = append(g.requests, req)
	return "https://checkout.example/session/" + req.OrderID.String(), nil
}

func (g *fakeGateway) ParseCompletion(payload []byte, signature string) (*domain.CheckoutCompletion, error) {
	if g.parseErr != nil {
		return nil, g.parseErr
	}
	return g.completion, nil
}
