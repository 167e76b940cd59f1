package transport

import (
	"context"
	"sort"
	"sync"

	"storefront-cms/internal/domain"
	"storefront-cms/internal/repository"

	"github.com/google/uuid"
)

// In-memory repositories backing the handler tests

// table is a store-scoped row set kept newest first
type table[T any] struct {
	mu       sync.Mutex
	rows     []*T
	storeOf  func(*T) uuid.UUID
	idOf     func(*T) uuid.UUID
	notFound error
	writes   int
}

func (t *table[T]) create(row *T) {
	t.mu.Lock()
	defer t.mu.Unlock()

	copied := *row
	t.rows = append([]*T{&copied}, t.rows...)
	t.writes++
}

func (t *table[T]) update(row *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, existing := range t.rows {
		if t.idOf(existing) == t.idOf(row) && t.storeOf(existing) == t.storeOf(row) {
			copied := *row
			t.rows[i] = &copied
			t.writes++
			return nil
		}
	}
	return t.notFound
}

func (t *table[T]) remove(storeID, id uuid.UUID) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, existing := range t.rows {
		if t.idOf(existing) == id && t.storeOf(existing) == storeID {
			t.rows = append(t.rows[:i], t.rows[i+1:]...)
			t.writes++
			return nil
		}
	}
	return t.notFound
}

func (t *table[T]) find(storeID, id uuid.UUID) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, existing := range t.rows {
		if t.idOf(existing) == id && t.storeOf(existing) == storeID {
			copied := *existing
			return &copied, nil
		}
	}
	return nil, t.notFound
}

func (t *table[T]) list(storeID uuid.UUID) []*T {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := []*T{}
	for _, existing := range t.rows {
		if t.storeOf(existing) == storeID {
			copied := *existing
			out = append(out, &copied)
		}
	}
	return out
}

func (t *table[T]) writeCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.writes
}

type memStoreRepository struct {
	mu     sync.Mutex
	stores map[uuid.UUID]*domain.Store
	writes int
}

func newMemStoreRepository() *memStoreRepository {
	return &memStoreRepository{stores: make(map[uuid.UUID]*domain.Store)}
}

func (m *memStoreRepository) Create(ctx context.Context, store *domain.Store) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *store
	m.stores[store.ID] = &copied
	m.writes++
	return nil
}

func (m *memStoreRepository) Update(ctx context.Context, store *domain.Store) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.stores[store.ID]
	if !ok || existing.UserID != store.UserID {
		return repository.ErrStoreNotFound
	}
	copied := *store
	m.stores[store.ID] = &copied
	m.writes++
	return nil
}

func (m *memStoreRepository) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.stores[id]
	if !ok || existing.UserID != userID {
		return repository.ErrStoreNotFound
	}
	delete(m.stores, id)
	m.writes++
	return nil
}

func (m *memStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	store, ok := m.stores[id]
	if !ok {
		return nil, repository.ErrStoreNotFound
	}
	copied := *store
	return &copied, nil
}

func (m *memStoreRepository) FindByIDAndUser(ctx context.Context, id uuid.UUID, userID string) (*domain.Store, error) {
	store, err := m.FindByID(ctx, id)
	if err != nil || store.UserID != userID {
		return nil, repository.ErrStoreNotFound
	}
	return store, nil
}

func (m *memStoreRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stores := []*domain.Store{}
	for _, store := range m.stores {
		if store.UserID == userID {
			copied := *store
			stores = append(stores, &copied)
		}
	}
	sort.Slice(stores, func(i, j int) bool { return stores[i].CreatedAt.After(stores[j].CreatedAt) })
	return stores, nil
}

func (m *memStoreRepository) writeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

type memBillboardRepository struct{ t *table[domain.Billboard] }

func newMemBillboardRepository() *memBillboardRepository {
	return &memBillboardRepository{t: &table[domain.Billboard]{
		storeOf:  func(b *domain.Billboard) uuid.UUID { return b.StoreID },
		idOf:     func(b *domain.Billboard) uuid.UUID { return b.ID },
		notFound: repository.ErrBillboardNotFound,
	}}
}

func (m *memBillboardRepository) Create(ctx context.Context, b *domain.Billboard) error {
	m.t.create(b)
	return nil
}

func (m *memBillboardRepository) Update(ctx context.Context, b *domain.Billboard) error {
	return m.t.update(b)
}

func (m *memBillboardRepository) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	return m.t.remove(storeID, id)
}

func (m *memBillboardRepository) FindByID(ctx context.Context, storeID, id uuid.UUID) (*domain.Billboard, error) {
	return m.t.find(storeID, id)
}

func (m *memBillboardRepository) List(ctx context.Context, storeID uuid.UUID) ([]*domain.Billboard, error) {
	return m.t.list(storeID), nil
}

type memCategoryRepository struct {
	t          *table[domain.Category]
	billboards *memBillboardRepository
}

func newMemCategoryRepository(billboards *memBillboardRepository) *memCategoryRepository {
	return &memCategoryRepository{
		t: &table[domain.Category]{
			storeOf:  func(c *domain.Category) uuid.UUID { return c.StoreID },
			idOf:     func(c *domain.Category) uuid.UUID { return c.ID },
			notFound: repository.ErrCategoryNotFound,
		},
		billboards: billboards,
	}
}

// withBillboard mirrors the SQL join that embeds the billboard
func (m *memCategoryRepository) withBillboard(c *domain.Category) *domain.Category {
	if b, err := m.billboards.t.find(c.StoreID, c.BillboardID); err == nil {
		c.Billboard = b
	}
	return c
}

func (m *memCategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	m.t.create(c)
	return nil
}

func (m *memCategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	return m.t.update(c)
}

func (m *memCategoryRepository) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	return m.t.remove(storeID, id)
}

func (m *memCategoryRepository) FindByID(ctx context.Context, storeID, id uuid.UUID) (*domain.Category, error) {
	c, err := m.t.find(storeID, id)
	if err != nil {
		return nil, err
	}
	return m.withBillboard(c), nil
}

func (m *memCategoryRepository) List(ctx context.Context, storeID uuid.UUID) ([]*domain.Category, error) {
	categories := m.t.list(storeID)
	for _, c := range categories {
		m.withBillboard(c)
	}
	return categories, nil
}

type memAttributeRepository[T any] struct{ t *table[T] }

func (m *memAttributeRepository[T]) Create(ctx context.Context, row *T) error {
	m.t.create(row)
	return nil
}

func (m *memAttributeRepository[T]) Update(ctx context.Context, row *T) error {
	return m.t.update(row)
}

func (m *memAttributeRepository[T]) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	return m.t.remove(storeID, id)
}

func (m *memAttributeRepository[T]) FindByID(ctx context.Context, storeID, id uuid.UUID) (*T, error) {
	return m.t.find(storeID, id)
}

func (m *memAttributeRepository[T]) List(ctx context.Context, storeID uuid.UUID) ([]*T, error) {
	return m.t.list(storeID), nil
}

func newMemSizeRepository() *memAttributeRepository[domain.Size] {
	return &memAttributeRepository[domain.Size]{t: &table[domain.Size]{
		storeOf:  func(s *domain.Size) uuid.UUID { return s.StoreID },
		idOf:     func(s *domain.Size) uuid.UUID { return s.ID },
		notFound: repository.ErrSizeNotFound,
	}}
}

func newMemColorRepository() *memAttributeRepository[domain.Color] {
	return &memAttributeRepository[domain.Color]{t: &table[domain.Color]{
		storeOf:  func(c *domain.Color) uuid.UUID { return c.StoreID },
		idOf:     func(c *domain.Color) uuid.UUID { return c.ID },
		notFound: repository.ErrColorNotFound,
	}}
}

type memProductRepository struct {
	t          *table[domain.Product]
	categories *memCategoryRepository
	sizes      *memAttributeRepository[domain.Size]
	colors     *memAttributeRepository[domain.Color]
}

func newMemProductRepository(categories *memCategoryRepository, sizes *memAttributeRepository[domain.Size], colors *memAttributeRepository[domain.Color]) *memProductRepository {
	return &memProductRepository{
		t: &table[domain.Product]{
			storeOf:  func(p *domain.Product) uuid.UUID { return p.StoreID },
			idOf:     func(p *domain.Product) uuid.UUID { return p.ID },
			notFound: repository.ErrProductNotFound,
		},
		categories: categories,
		sizes:      sizes,
		colors:     colors,
	}
}

// withReferences mirrors the SQL joins that embed category, size and color
func (m *memProductRepository) withReferences(p *domain.Product) *domain.Product {
	if c, err := m.categories.t.find(p.StoreID, p.CategoryID); err == nil {
		p.Category = c
	}
	if s, err := m.sizes.t.find(p.StoreID, p.SizeID); err == nil {
		p.Size = s
	}
	if c, err := m.colors.t.find(p.StoreID, p.ColorID); err == nil {
		p.Color = c
	}
	return p
}

func (m *memProductRepository) Create(ctx context.Context, p *domain.Product) error {
	m.t.create(p)
	return nil
}

func (m *memProductRepository) Update(ctx context.Context, p *domain.Product, replaceImages bool) error {
	if !replaceImages {
		existing, err := m.t.find(p.StoreID, p.ID)
		if err != nil {
			return err
		}
		p.Images = existing.Images
	}
	return m.t.update(p)
}

func (m *memProductRepository) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	return m.t.remove(storeID, id)
}

func (m *memProductRepository) FindByID(ctx context.Context, storeID, id uuid.UUID) (*domain.Product, error) {
	p, err := m.t.find(storeID, id)
	if err != nil {
		return nil, err
	}
	return m.withReferences(p), nil
}

func (m *memProductRepository) List(ctx context.Context, storeID uuid.UUID, filter domain.ProductFilter) ([]*domain.Product, error) {
	products := []*domain.Product{}
	for _, p := range m.t.list(storeID) {
		switch {
		case p.IsArchived && !filter.IncludeArchived:
		case filter.FeaturedOnly && !p.IsFeatured:
		case filter.CategoryID != nil && p.CategoryID != *filter.CategoryID:
		case filter.SizeID != nil && p.SizeID != *filter.SizeID:
		case filter.ColorID != nil && p.ColorID != *filter.ColorID:
		default:
			products = append(products, m.withReferences(p))
		}
	}
	return products, nil
}

func (m *memProductRepository) CountActive(ctx context.Context, storeID uuid.UUID) (int, error) {
	count := 0
	for _, p := range m.t.list(storeID) {
		if !p.IsArchived {
			count++
		}
	}
	return count, nil
}

type memOrderRepository struct {
	mu     sync.Mutex
	orders []*domain.Order
}

func (m *memOrderRepository) CreateWithItems(ctx context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range order.Items {
		item.OrderID = order.ID
	}
	m.orders = append([]*domain.Order{order}, m.orders...)
	return nil
}

func (m *memOrderRepository) MarkPaid(ctx context.Context, id uuid.UUID, details domain.PaymentDetails) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, order := range m.orders {
		if order.ID != id {
			continue
		}
		if order.IsPaid {
			return repository.ErrOrderAlreadyPaid
		}
		order.IsPaid = true
		order.Name, order.Email, order.Phone, order.Address = details.Name, details.Email, details.Phone, details.Address
		return nil
	}
	return repository.ErrOrderNotFound
}

func (m *memOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, order := range m.orders {
		if order.ID == id {
			copied := *order
			return &copied, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (m *memOrderRepository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*domain.Order, error) {
	return m.filter(storeID, false), nil
}

func (m *memOrderRepository) ListPaidByStore(ctx context.Context, storeID uuid.UUID) ([]*domain.Order, error) {
	return m.filter(storeID, true), nil
}

func (m *memOrderRepository) filter(storeID uuid.UUID, paidOnly bool) []*domain.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.Order{}
	for _, order := range m.orders {
		if order.StoreID == storeID && (!paidOnly || order.IsPaid) {
			copied := *order
			out = append(out, &copied)
		}
	}
	return out
}

func (m *memOrderRepository) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders)
}
