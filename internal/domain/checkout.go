package domain

import "github.com/google/uuid"

// LineItem is one billed unit of a hosted checkout session. UnitAmount is
// in cents.
type LineItem struct {
	ProductID  uuid.UUID
	Name       string
	UnitAmount int64
}

// CheckoutRequest describes the hosted payment page to open for an order
type CheckoutRequest struct {
	OrderID    uuid.UUID
	LineItems  []LineItem
	SuccessURL string
	CancelURL  string
}

// CheckoutCompletion is a verified "checkout completed" notification. OrderID
// is the raw metadata value and may not be a valid id.
type CheckoutCompletion struct {
	OrderID string
	Details PaymentDetails
}
