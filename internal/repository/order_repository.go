package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-cms/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrOrderAlreadyPaid = errors.New("order already paid")
)

// OrderRepository defines the interface for order data access. Reads attach
// each item's product name and price.
type OrderRepository interface {
	CreateWithItems(ctx context.Context, order *domain.Order) error
	MarkPaid(ctx context.Context, id uuid.UUID, details domain.PaymentDetails) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]*domain.Order, error)
	ListPaidByStore(ctx context.Context, storeID uuid.UUID) ([]*domain.Order, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

const orderSelect = `
	SELECT o.id, o.store_id, o.is_paid, o.name, o.email, o.phone, o.address,
	       o.created_at, o.updated_at,
	       oi.id, oi.product_id, p.name, p.price
	FROM orders o
	LEFT JOIN order_items oi ON oi.order_id = o.id
	LEFT JOIN products p ON p.id = oi.product_id
`

// CreateWithItems inserts the order and one row per item atomically
func (r *orderRepository) CreateWithItems(ctx context.Context, order *domain.Order) error {
	orderQuery := `
		INSERT INTO orders (id, store_id, is_paid, name, email, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	itemQuery := `INSERT INTO order_items (id, order_id, product_id) VALUES ($1, $2, $3)`

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, orderQuery,
			order.ID,
			order.StoreID,
			order.IsPaid,
			order.Name,
			order.Email,
			order.Phone,
			order.Address,
			order.CreatedAt,
			order.UpdatedAt,
		)
		if err != nil {
			return translateError("create order", err)
		}

		for _, item := range order.Items {
			item.OrderID = order.ID
			if _, err := tx.ExecContext(ctx, itemQuery, item.ID, item.OrderID, item.ProductID); err != nil {
				return translateError("create order item", err)
			}
		}

		return nil
	})
}

// MarkPaid flips an unpaid order to paid and records the customer details.
// An order can be marked paid only once; later calls get ErrOrderAlreadyPaid.
func (r *orderRepository) MarkPaid(ctx context.Context, id uuid.UUID, details domain.PaymentDetails) error {
	query := `
		UPDATE orders
		SET is_paid = TRUE, name = $2, email = $3, phone = $4, address = $5, updated_at = NOW()
		WHERE id = $1 AND is_paid = FALSE
	`

	result, err := r.db.ExecContext(ctx, query, id, details.Name, details.Email, details.Phone, details.Address)
	if err != nil {
		return fmt.Errorf("failed to mark order paid: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check order: %w", err)
	}
	if exists {
		return ErrOrderAlreadyPaid
	}

	return ErrOrderNotFound
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	orders, err := r.query(ctx, orderSelect+`WHERE o.id = $1`, id)
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return nil, ErrOrderNotFound
	}

	return orders[0], nil
}

// ListByStore returns every order of the store, newest first
func (r *orderRepository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*domain.Order, error) {
	return r.query(ctx, orderSelect+`WHERE o.store_id = $1 ORDER BY o.created_at DESC, o.id`, storeID)
}

// ListPaidByStore returns the store's paid orders, newest first
func (r *orderRepository) ListPaidByStore(ctx context.Context, storeID uuid.UUID) ([]*domain.Order, error) {
	return r.query(ctx, orderSelect+`WHERE o.store_id = $1 AND o.is_paid = TRUE ORDER BY o.created_at DESC, o.id`, storeID)
}

func (r *orderRepository) query(ctx context.Context, query string, args ...interface{}) ([]*domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*domain.Order{}
	byID := make(map[uuid.UUID]*domain.Order)

	for rows.Next() {
		order := &domain.Order{Items: []*domain.OrderItem{}}

		var (
			itemID       uuid.NullUUID
			productID    uuid.NullUUID
			productName  sql.NullString
			productPrice decimal.NullDecimal
		)

		err := rows.Scan(
			&order.ID,
			&order.StoreID,
			&order.IsPaid,
			&order.Name,
			&order.Email,
			&order.Phone,
			&order.Address,
			&order.CreatedAt,
			&order.UpdatedAt,
			&itemID,
			&productID,
			&productName,
			&productPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}

		existing, ok := byID[order.ID]
		if !ok {
			byID[order.ID] = order
			orders = append(orders, order)
			existing = order
		}

		if itemID.Valid {
			existing.Items = append(existing.Items, &domain.OrderItem{
				ID:        itemID.UUID,
				OrderID:   existing.ID,
				ProductID: productID.UUID,
				Product: &domain.Product{
					ID:    productID.UUID,
					Name:  productName.String,
					Price: productPrice.Decimal,
				},
			})
		}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}
