package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Karatsuyu/delicious-food-app/internal/models"
)

// GetOrCreateState resolves a lifecycle label by exact description, creating
// it on first use. Descriptions are matched by identity, never substring.
func (s *Store) GetOrCreateState(ctx context.Context, description string) (*models.OrderState, error) {
	var state models.OrderState
	err := s.db.GetContext(ctx, &state, `
		INSERT INTO order_states (description) VALUES ($1)
		ON CONFLICT (description) DO UPDATE SET description = EXCLUDED.description
		RETURNING id, description`, description)
	if err != nil {
		return nil, fmt.Errorf("get or create state %q: %w", description, err)
	}
	return &state, nil
}

// GetStateByID retrieves a state label
func (s *Store) GetStateByID(ctx context.Context, id int64) (*models.OrderState, error) {
	var state models.OrderState
	err := s.db.GetContext(ctx, &state, "SELECT * FROM order_states WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("state %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// GetStates retrieves all state labels
func (s *Store) GetStates(ctx context.Context) ([]models.OrderState, error) {
	var states []models.OrderState
	err := s.db.SelectContext(ctx, &states, "SELECT * FROM order_states ORDER BY id")
	return states, err
}

// PlaceOrderTx materializes a cart into an order in a single transaction:
// order row, one order item per cart line, then the cart is emptied. The
// cart row itself survives for reuse. Either everything commits or nothing
// does; there is no partially placed order.
func (s *Store) PlaceOrderTx(ctx context.Context, order *models.Order, cartID int64, items []models.CartItem) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.GetContext(ctx, order, `
		INSERT INTO orders (user_id, state_id, total, address, phone, payment_method, idempotency_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_id, state_id, total, address, phone, payment_method, idempotency_key, created_at`,
		order.UserID, order.StateID, order.Total, order.Address, order.Phone,
		order.PaymentMethod, order.IdempotencyKey); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	order.Items = make([]models.OrderItem, 0, len(items))
	for _, ci := range items {
		oi := models.OrderItem{
			OrderID:   order.ID,
			ProductID: ci.ProductID,
			ComboID:   ci.ComboID,
			Quantity:  ci.Quantity,
			// line_price = unit price * quantity, so this divides exactly
			UnitPrice: ci.LinePrice / int64(ci.Quantity),
		}
		if err := tx.GetContext(ctx, &oi.ID, `
			INSERT INTO order_items (order_id, product_id, combo_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			oi.OrderID, oi.ProductID, oi.ComboID, oi.Quantity, oi.UnitPrice); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
		order.Items = append(order.Items, oi)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM cart_items WHERE cart_id = $1", cartID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	return tx.Commit()
}

const orderSelect = `
	SELECT o.id, o.user_id, o.state_id, COALESCE(st.description, '') AS state_desc,
	       o.total, o.address, o.phone, o.payment_method,
	       COALESCE(o.idempotency_key, '') AS idempotency_key, o.created_at
	FROM orders o LEFT JOIN order_states st ON st.id = o.state_id`

// GetOrderByID retrieves an order with its items
func (s *Store) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order, orderSelect+" WHERE o.id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if err := s.db.SelectContext(ctx, &order.Items,
		"SELECT * FROM order_items WHERE order_id = $1 ORDER BY id", id); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrderByIdempotencyKey retrieves the given user's order for an
// idempotency key, nil when absent. Keys are scoped per user so one
// caller's key can never surface another caller's order.
func (s *Store) GetOrderByIdempotencyKey(ctx context.Context, userID int64, key string) (*models.Order, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order,
		orderSelect+" WHERE o.user_id = $1 AND o.idempotency_key = $2", userID, key)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := s.db.SelectContext(ctx, &order.Items,
		"SELECT * FROM order_items WHERE order_id = $1 ORDER BY id", order.ID); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrdersByUserID retrieves a user's orders, newest first
func (s *Store) GetOrdersByUserID(ctx context.Context, userID int64) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.SelectContext(ctx, &orders,
		orderSelect+" WHERE o.user_id = $1 ORDER BY o.created_at DESC", userID); err != nil {
		return nil, err
	}
	for i := range orders {
		if err := s.db.SelectContext(ctx, &orders[i].Items,
			"SELECT * FROM order_items WHERE order_id = $1 ORDER BY id", orders[i].ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// UpdateOrderState moves an order to a new state label
func (s *Store) UpdateOrderState(ctx context.Context, orderID, stateID int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE orders SET state_id = $1 WHERE id = $2", stateID, orderID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}
	return nil
}

// CountOrdersByUserID counts a user's orders
func (s *Store) CountOrdersByUserID(ctx context.Context, userID int64) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM orders WHERE user_id = $1", userID)
	return count, err
}
