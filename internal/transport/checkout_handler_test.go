package transport

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront-cms/internal/domain"
	"storefront-cms/internal/payment"

	"github.com/google/uuid"
)

func TestCheckout_DuplicateProductsBillTwice(t *testing.T) {
	env := newTestEnv(t)
	c := seedCatalog(env)
	id := c.product.ID

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/%s/checkout", c.store.ID),
		strings.NewReader(fmt.Sprintf(`{"productIds":["%s","%s"]}`, id, id)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "https://storefront.example")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	expectStatus(t, rec, http.StatusCreated)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Error("expected CORS headers on checkout response")
	}

	var body CheckoutResponse
	decodeBody(t, rec, &body)

	if env.orders.count() != 1 {
		t.Fatalf("expected one order, got %d", env.orders.count())
	}
	order := env.orders.orders[0]
	if order.IsPaid {
		t.Error("new order must be unpaid")
	}
	if len(order.Items) != 2 || order.Items[0].ProductID != id || order.Items[1].ProductID != id {
		t.Fatalf("expected two items for %s, got %+v", id, order.Items)
	}
	if body.URL != "https://checkout.example/session/"+order.ID.String() {
		t.Errorf("unexpected url %s", body.URL)
	}

	sent := env.gateway.requests[0]
	if sent.SuccessURL != "https://storefront.example/cart?success=true" ||
		sent.CancelURL != "https://storefront.example/cart?canceled=true" {
		t.Errorf("unexpected return urls %s / %s", sent.SuccessURL, sent.CancelURL)
	}
	for _, item := range sent.LineItems {
		if item.UnitAmount != 4999 || item.Name != "Runner" {
			t.Errorf("unexpected line item %+v", item)
		}
	}
}

func TestCheckout_FallsBackToStorefrontURL(t *testing.T) {
	env := newTestEnv(t)
	c := seedCatalog(env)

	rec := env.do(t, http.MethodPost, fmt.Sprintf("/api/%s/checkout", c.store.ID),
		map[string]interface{}{"productIds": []uuid.UUID{c.product.ID}}, "")
	expectStatus(t, rec, http.StatusCreated)

	if got := env.gateway.requests[0].SuccessURL; got != storefrontURL+"/cart?success=true" {
		t.Errorf("SuccessURL = %s", got)
	}
}

func TestCheckout_Rejections(t *testing.T) {
	env := newTestEnv(t)
	c := seedCatalog(env)

	tests := []struct {
		name    string
		storeID uuid.UUID
		body    string
	}{
		{"unknown store", uuid.New(), fmt.Sprintf(`{"productIds":["%s"]}`, c.product.ID)},
		{"empty list", c.store.ID, `{"productIds":[]}`},
		{"missing list", c.store.ID, `{}`},
		{"malformed id", c.store.ID, `{"productIds":["nope"]}`},
		{"nothing resolves", c.store.ID, fmt.Sprintf(`{"productIds":["%s"]}`, uuid.New())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, fmt.Sprintf("/api/%s/checkout", tt.storeID), tt.body, "")
			expectStatus(t, rec, http.StatusBadRequest)
		})
	}

	if env.orders.count() != 0 {
		t.Errorf("rejected checkouts created %d orders", env.orders.count())
	}
}

func TestCheckout_Preflight(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, fmt.Sprintf("/api/%s/checkout", uuid.New()), nil)
	req.Header.Set("Origin", "https://storefront.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	expectStatus(t, rec, http.StatusOK)
	if rec.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected Access-Control-Allow-Origin on preflight")
	}
}

func webhookRequest(env *testEnv) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/webhook", strings.NewReader(`{"type":"checkout.session.completed"}`))
	req.Header.Set("Stripe-Signature", "t=1,v1=test")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func TestWebhook(t *testing.T) {
	env := newTestEnv(t)
	c := seedCatalog(env)

	rec := env.do(t, http.MethodPost, fmt.Sprintf("/api/%s/checkout", c.store.ID),
		map[string]interface{}{"productIds": []uuid.UUID{c.product.ID}}, "")
	expectStatus(t, rec, http.StatusCreated)
	order := env.orders.orders[0]

	details := domain.PaymentDetails{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Phone:   "+15550100",
		Address: "1 Main St, Springfield, US",
	}

	t.Run("invalid signature changes nothing", func(t *testing.T) {
		env.gateway.parseErr = fmt.Errorf("%w: no valid signature", payment.ErrInvalidSignature)
		defer func() { env.gateway.parseErr = nil }()

		rec := webhookRequest(env)
		expectStatus(t, rec, http.StatusBadRequest)
		if order.IsPaid {
			t.Fatal("order was paid by an unsigned webhook")
		}
	})

	t.Run("other events are acknowledged", func(t *testing.T) {
		env.gateway.completion = nil
		expectStatus(t, webhookRequest(env), http.StatusOK)
	})

	t.Run("completion marks the order paid", func(t *testing.T) {
		env.gateway.completion = &domain.CheckoutCompletion{OrderID: order.ID.String(), Details: details}

		rec := webhookRequest(env)
		expectStatus(t, rec, http.StatusOK)
		if rec.Body.Len() != 0 {
			t.Errorf("expected empty body, got %q", rec.Body.String())
		}
		if !order.IsPaid || order.Name != details.Name || order.Address != details.Address {
			t.Errorf("order not updated: %+v", order)
		}
	})

	t.Run("replay is a no-op", func(t *testing.T) {
		expectStatus(t, webhookRequest(env), http.StatusOK)
	})

	t.Run("unknown order is an internal error", func(t *testing.T) {
		env.gateway.completion = &domain.CheckoutCompletion{OrderID: uuid.NewString(), Details: details}

		rec := webhookRequest(env)
		expectStatus(t, rec, http.StatusInternalServerError)

		var body envelope
		decodeBody(t, rec, &body)
		if body.Success || body.Error == "" {
			t.Errorf("expected raw error in body, got %+v", body)
		}
	})
}
