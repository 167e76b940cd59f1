package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront-cms/internal/assets"
	"storefront-cms/internal/domain"
	"storefront-cms/internal/middleware"
	"storefront-cms/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	testSecret    = "handler-test-secret"
	testCookie    = "__session"
	storefrontURL = "https://shop.example"
)

// fakeGateway stands in for the payment processor
type fakeGateway struct {
	requests   []domain.CheckoutRequest
	completion *domain.CheckoutCompletion
	parseErr   error
}

func (g *fakeGateway) CreateCheckoutSession(ctx context.Context, req domain.CheckoutRequest) (string, error) {
	g.requests = append(g.requests, req)
	return "https://checkout.example/session/" + req.OrderID.String(), nil
}

func (g *fakeGateway) ParseCompletion(payload []byte, signature string) (*domain.CheckoutCompletion, error) {
	if g.parseErr != nil {
		return nil, g.parseErr
	}
	return g.completion, nil
}

// fakeImageHost keeps uploaded assets in memory
type fakeImageHost struct {
	uploads   map[string][]byte
	destroyed []string
}

func (h *fakeImageHost) Upload(ctx context.Context, file io.Reader, folder string) (*assets.Asset, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	publicID := folder + "/" + uuid.NewString()
	h.uploads[publicID] = data
	return &assets.Asset{PublicID: publicID, URL: "https://assets.example/" + publicID}, nil
}

func (h *fakeImageHost) Destroy(ctx context.Context, publicID string) error {
	if _, ok := h.uploads[publicID]; !ok {
		return assets.ErrAssetNotFound
	}
	delete(h.uploads, publicID)
	h.destroyed = append(h.destroyed, publicID)
	return nil
}

// testEnv is the full router over in-memory repositories
type testEnv struct {
	router     http.Handler
	stores     *memStoreRepository
	billboards *memBillboardRepository
	categories *memCategoryRepository
	sizes      *memAttributeRepository[domain.Size]
	colors     *memAttributeRepository[domain.Color]
	products   *memProductRepository
	orders     *memOrderRepository
	gateway    *fakeGateway
	images     *fakeImageHost
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		stores:     newMemStoreRepository(),
		billboards: newMemBillboardRepository(),
		sizes:      newMemSizeRepository(),
		colors:     newMemColorRepository(),
		orders:     &memOrderRepository{},
		gateway:    &fakeGateway{},
		images:     &fakeImageHost{uploads: make(map[string][]byte)},
	}
	env.categories = newMemCategoryRepository(env.billboards)
	env.products = newMemProductRepository(env.categories, env.sizes, env.colors)

	logger := zap.NewNop()
	storeService := service.NewStoreService(env.stores)
	requireUser := middleware.RequireUser(logger)
	noLimit := func(next http.Handler) http.Handler { return next }

	router := chi.NewRouter()
	router.Use(middleware.ErrorHandlingMiddleware(logger))
	router.Use(middleware.AuthMiddleware(testSecret, testCookie, logger))

	NewStoreHandler(storeService, logger).RegisterRoutes(router, requireUser)
	NewBillboardHandler(service.NewBillboardService(storeService, env.billboards), logger).RegisterRoutes(router, requireUser)
	NewCategoryHandler(service.NewCategoryService(storeService, env.categories), logger).RegisterRoutes(router, requireUser)
	NewSizeHandler(service.NewSizeService(storeService, env.sizes), logger).RegisterRoutes(router, requireUser)
	NewColorHandler(service.NewColorService(storeService, env.colors), logger).RegisterRoutes(router, requireUser)
	NewProductHandler(service.NewProductService(storeService, env.products), logger).RegisterRoutes(router, requireUser)
	NewOrderHandler(service.NewOverviewService(storeService, env.products, env.orders), logger).RegisterRoutes(router, requireUser)
	NewImageHandler(storeService, env.images, logger).RegisterRoutes(router, requireUser)
	NewCheckoutHandler(
		service.NewCheckoutService(storeService, env.products, env.orders, env.gateway, storefrontURL),
		logger,
	).RegisterRoutes(router, noLimit)

	env.router = router
	return env
}

// writeCount sums the writes recorded by every catalog repository
func (e *testEnv) writeCount() int {
	return e.stores.writeCount() +
		e.billboards.t.writeCount() +
		e.categories.t.writeCount() +
		e.sizes.t.writeCount() +
		e.colors.t.writeCount() +
		e.products.t.writeCount() +
		e.orders.count()
}

func sessionToken(t *testing.T, userID string) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

// do sends a JSON request as userID; an empty userID is anonymous
func (e *testEnv) do(t *testing.T, method, path string, body interface{}, userID string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+sessionToken(t, userID))
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals the response into v and fails on bad JSON
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}

// expectStatus fails the test unless the response has the wanted status
func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

// seedStore creates a store owned by userID directly in the repository
func (e *testEnv) seedStore(userID, name string) *domain.Store {
	store := &domain.Store{ID: uuid.New(), UserID: userID, Name: name, CreatedAt: time.Now()}
	e.stores.Create(context.Background(), store)
	return store
}

// envelope is the generic success/error body
type envelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Error   string       `json:"error"`
	Store   domain.Store `json:"store"`
}
