package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Ronalt4cs/stg-catalog-challenge/internal/database"
	"github.com/Ronalt4cs/stg-catalog-challenge/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// OrderRepository defines the interface for order data access. Orders and
// their items are append-only: created once at checkout, read for history,
// never updated by this application.
type OrderRepository interface {
	// CreateFromCart persists the order and its item snapshots and clears
	// the user's cart, all inside a single transaction. Either everything
	// lands or nothing does.
	CreateFromCart(ctx context.Context, order *domain.Order, items []*domain.OrderItem) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateFromCart(ctx context.Context, order *domain.Order, items []*domain.OrderItem) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		orderQuery := `
			INSERT INTO orders (id, user_id, customer_name, customer_email, customer_phone,
			                    customer_address, notes, total_amount, status, whatsapp_sent_at, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`

		_, err := tx.ExecContext(
			ctx,
			orderQuery,
			order.ID,
			order.UserID,
			order.CustomerName,
			order.CustomerEmail,
			order.CustomerPhone,
			order.CustomerAddress,
			order.Notes,
			order.TotalAmount,
			order.Status,
			order.WhatsAppSentAt,
			order.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}

		itemQuery := `
			INSERT INTO order_items (id, order_id, product_id, product_name, product_price,
			                         quantity, subtotal, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`

		for _, item := range items {
			_, err := tx.ExecContext(
				ctx,
				itemQuery,
				item.ID,
				item.OrderID,
				item.ProductID,
				item.ProductName,
				item.ProductPrice,
				item.Quantity,
				item.Subtotal,
				item.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to insert order item: %w", err)
			}
		}

		// The cart snapshot is consumed by the order, so the lines go away
		// in the same transaction.
		_, err = tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, order.UserID)
		if err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}

		return nil
	})
}

// ListByUser retrieves all orders for a user newest-first, each joined with
// its item snapshots.
func (r *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	query := `
		SELECT id, user_id, customer_name, customer_email, customer_phone,
		       customer_address, notes, total_amount, status, whatsapp_sent_at, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*domain.Order{}
	for rows.Next() {
		order := &domain.Order{}
		err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.CustomerName,
			&order.CustomerEmail,
			&order.CustomerPhone,
			&order.CustomerAddress,
			&order.Notes,
			&order.TotalAmount,
			&order.Status,
			&order.WhatsAppSentAt,
			&order.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	for _, order := range orders {
		items, err := r.listItems(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		order.Items = items
	}

	return orders, nil
}

func (r *orderRepository) listItems(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, product_name, product_price, quantity, subtotal, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	defer rows.Close()

	items := []*domain.OrderItem{}
	for rows.Next() {
		item := &domain.OrderItem{}
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.ProductPrice,
			&item.Quantity,
			&item.Subtotal,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return items, nil
}
