package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront-cms/internal/domain"
	"storefront-cms/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentGateway opens hosted checkout sessions and verifies the
// processor's signed callbacks.
type PaymentGateway interface {
	// CreateCheckoutSession returns the URL of the hosted payment page
	CreateCheckoutSession(ctx context.Context, req domain.CheckoutRequest) (string, error)

	// ParseCompletion verifies payload against signature. It returns nil,
	// nil for verified events that are not checkout completions.
	ParseCompletion(payload []byte, signature string) (*domain.CheckoutCompletion, error)
}

// CheckoutService defines the order and payment workflow
type CheckoutService interface {
	// Checkout creates a pending order for the resolvable productIDs and
	// returns the payment page URL. Duplicate ids are billed once each.
	Checkout(ctx context.Context, storeID uuid.UUID, productIDs []uuid.UUID, origin string) (string, error)

	// CompletePayment applies a signed processor callback. It returns
	// repository.ErrOrderAlreadyPaid for replays.
	CompletePayment(ctx context.Context, payload []byte, signature string) error
}

type checkoutService struct {
	stores        StoreService
	productRepo   repository.ProductRepository
	orderRepo     repository.OrderRepository
	payments      PaymentGateway
	storefrontURL string
}

// NewCheckoutService creates a new instance of CheckoutService. storefrontURL
// is used for the return links when the request carries no Origin.
func NewCheckoutService(
	stores StoreService,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	payments PaymentGateway,
	storefrontURL string,
) CheckoutService {
	return &checkoutService{
		stores:        stores,
		productRepo:   productRepo,
		orderRepo:     orderRepo,
		payments:      payments,
		storefrontURL: storefrontURL,
	}
}

func (s *checkoutService) Checkout(ctx context.Context, storeID uuid.UUID, productIDs []uuid.UUID, origin string) (string, error) {
	if _, err := s.stores.FindPublic(ctx, storeID); err != nil {
		return "", err
	}

	if len(productIDs) == 0 {
		return "", ErrInvalidInput
	}

	// One lookup per id; unresolved ids are skipped.
	products := make([]*domain.Product, 0, len(productIDs))
	for _, id := range productIDs {
		product, err := s.productRepo.FindByID(ctx, storeID, id)
		if errors.Is(err, repository.ErrProductNotFound) {
			continue
		}
		if err != nil {
			return "", err
		}
		products = append(products, product)
	}

	if len(products) == 0 {
		return "", ErrNothingToCheckout
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:        uuid.New(),
		StoreID:   storeID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	lineItems := make([]domain.LineItem, 0, len(products))
	for _, product := range products {
		order.Items = append(order.Items, &domain.OrderItem{
			ID:        uuid.New(),
			ProductID: product.ID,
			Product:   product,
		})
		lineItems = append(lineItems, domain.LineItem{
			ProductID:  product.ID,
			Name:       product.Name,
			UnitAmount: UnitAmount(product.Price),
		})
	}

	if err := s.orderRepo.CreateWithItems(ctx, order); err != nil {
		return "", err
	}

	base := strings.TrimRight(origin, "/")
	if base == "" {
		base = strings.TrimRight(s.storefrontURL, "/")
	}

	url, err := s.payments.CreateCheckoutSession(ctx, domain.CheckoutRequest{
		OrderID:    order.ID,
		LineItems:  lineItems,
		SuccessURL: base + "/cart?success=true",
		CancelURL:  base + "/cart?canceled=true",
	})
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session for order %s: %w", order.ID, err)
	}

	return url, nil
}

func (s *checkoutService) CompletePayment(ctx context.Context, payload []byte, signature string) error {
	completion, err := s.payments.ParseCompletion(payload, signature)
	if err != nil {
		return err
	}
	if completion == nil {
		return nil
	}

	orderID, err := uuid.Parse(completion.OrderID)
	if err != nil {
		return fmt.Errorf("invalid order id %q in checkout metadata: %w", completion.OrderID, err)
	}

	return s.orderRepo.MarkPaid(ctx, orderID, completion.Details)
}

var hundred = decimal.NewFromInt(100)

// UnitAmount converts a price to whole cents, rounding half away from zero
func UnitAmount(price decimal.Decimal) int64 {
	return price.Mul(hundred).Round(0).IntPart()
}
