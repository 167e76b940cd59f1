package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is a checkout attempt. It starts unpaid and is marked paid once by
// the payment webhook, which also fills in the customer contact fields.
type Order struct {
	ID        uuid.UUID    `json:"id" db:"id"`
	StoreID   uuid.UUID    `json:"storeId" db:"store_id"`
	IsPaid    bool         `json:"isPaid" db:"is_paid"`
	Name      string       `json:"name" db:"name"`
	Email     string       `json:"email" db:"email"`
	Phone     string       `json:"phone" db:"phone"`
	Address   string       `json:"address" db:"address"`
	Items     []*OrderItem `json:"orderItems"`
	CreatedAt time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time    `json:"updatedAt" db:"updated_at"`
}

// OrderItem is a single purchased unit; there is no quantity column
type OrderItem struct {
	ID        uuid.UUID `json:"id" db:"id"`
	OrderID   uuid.UUID `json:"orderId" db:"order_id"`
	ProductID uuid.UUID `json:"productId" db:"product_id"`
	Product   *Product  `json:"product,omitempty"`
}

// Total sums the price of every item whose product was loaded
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		if item.Product != nil {
			total = total.Add(item.Product.Price)
		}
	}
	return total
}

// PaymentDetails carries the customer fields reported by a completed checkout
type PaymentDetails struct {
	Name    string
	Email   string
	Phone   string
	Address string
}
