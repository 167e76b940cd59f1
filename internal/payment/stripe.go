package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"storefront-cms/internal/domain"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
)

const (
	eventCheckoutCompleted = "checkout.session.completed"
	metadataOrderID        = "orderId"
	currencyUSD            = "usd"
)

var (
	// ErrInvalidSignature is returned when a webhook payload fails verification
	ErrInvalidSignature = errors.New("invalid webhook signature")

	// ErrMalformedEvent is returned when a verified event cannot be decoded
	ErrMalformedEvent = errors.New("malformed webhook event")
)

// StripeGateway opens Stripe Checkout sessions and verifies Stripe webhooks
type StripeGateway struct {
	sessions      session.Client
	webhookSecret string
}

// NewStripeGateway creates a gateway for the given account. A nil backend
// talks to the live Stripe API.
func NewStripeGateway(secretKey, webhookSecret string, backend stripe.Backend) *StripeGateway {
	if backend == nil {
		backend = stripe.GetBackend(stripe.APIBackend)
	}

	return &StripeGateway{
		sessions:      session.Client{B: backend, Key: secretKey},
		webhookSecret: webhookSecret,
	}
}

// CreateCheckoutSession opens a payment-mode session with one unit per line
// item, required billing address and phone collection. The order id is
// attached as metadata so the webhook can find the order again.
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req domain.CheckoutRequest) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:                     stripe.String(string(stripe.CheckoutSessionModePayment)),
		BillingAddressCollection: stripe.String(string(stripe.CheckoutSessionBillingAddressCollectionRequired)),
		PhoneNumberCollection: &stripe.CheckoutSessionPhoneNumberCollectionParams{
			Enabled: stripe.Bool(true),
		},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	params.Context = ctx
	params.AddMetadata(metadataOrderID, req.OrderID.String())

	for _, item := range req.LineItems {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(1),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(currencyUSD),
				UnitAmount: stripe.Int64(item.UnitAmount),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
			},
		})
	}

	s, err := g.sessions.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create stripe checkout session: %w", err)
	}

	return s.URL, nil
}

// ParseCompletion verifies the Stripe-Signature header and decodes a
// checkout.session.completed event. Other event types yield nil, nil.
func (g *StripeGateway) ParseCompletion(payload []byte, signature string) (*domain.CheckoutCompletion, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	if event.Type != eventCheckoutCompleted {
		return nil, nil
	}

	if event.Data == nil {
		return nil, ErrMalformedEvent
	}

	var s stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	completion := &domain.CheckoutCompletion{OrderID: s.Metadata[metadataOrderID]}
	if details := s.CustomerDetails; details != nil {
		completion.Details = domain.PaymentDetails{
			Name:    details.Name,
			Email:   details.Email,
			Phone:   details.Phone,
			Address: FormatAddress(details.Address),
		}
	}

	return completion, nil
}

// FormatAddress joins the non-empty address parts with ", "
func FormatAddress(address *stripe.Address) string {
	if address == nil {
		return ""
	}

	parts := make([]string, 0, 6)
	for _, part := range []string{
		address.Line1,
		address.Line2,
		address.City,
		address.State,
		address.PostalCode,
		address.Country,
	} {
		if part != "" {
			parts = append(parts, part)
		}
	}

	return strings.Join(parts, ", ")
}
