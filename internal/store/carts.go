package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Karatsuyu/delicious-food-app/internal/models"
)

// GetOrCreateCart returns the user's single cart, creating it on first use.
// The unique constraint on user_id makes the create side race-safe: a
// concurrent insert loses the conflict and both callers see the same row.
func (s *Store) GetOrCreateCart(ctx context.Context, userID int64) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.GetContext(ctx, &cart, `
		INSERT INTO carts (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id, user_id, created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("get or create cart: %w", err)
	}
	return &cart, nil
}

// GetCartByUserID returns the user's cart or nil if none exists yet.
func (s *Store) GetCartByUserID(ctx context.Context, userID int64) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.GetContext(ctx, &cart, "SELECT * FROM carts WHERE user_id = $1", userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// CreateCartItem inserts a cart line and its selected-ingredient links in
// one transaction.
func (s *Store) CreateCartItem(ctx context.Context, item *models.CartItem, ingredientIDs []int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.GetContext(ctx, item, `
		INSERT INTO cart_items (cart_id, product_id, combo_id, quantity, line_price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, cart_id, product_id, combo_id, quantity, line_price`,
		item.CartID, item.ProductID, item.ComboID, item.Quantity, item.LinePrice); err != nil {
		return err
	}

	for _, ingID := range ingredientIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO cart_item_ingredients (cart_item_id, ingredient_id) VALUES ($1, $2)",
			item.ID, ingID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetCartItems retrieves all lines of a cart with their selected ingredients
func (s *Store) GetCartItems(ctx context.Context, cartID int64) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := s.db.SelectContext(ctx, &items,
		"SELECT * FROM cart_items WHERE cart_id = $1 ORDER BY id", cartID); err != nil {
		return nil, err
	}
	for i := range items {
		if err := s.db.SelectContext(ctx, &items[i].Ingredients, `
			SELECT i.* FROM ingredients i
			JOIN cart_item_ingredients cii ON cii.ingredient_id = i.id
			WHERE cii.cart_item_id = $1 ORDER BY i.id`, items[i].ID); err != nil {
			return nil, err
		}
	}
	return items, nil
}
