package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Karatsuyu/delicious-food-app/internal/models"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when a referenced row does not exist.
var ErrNotFound = errors.New("not found")

// GetProductByID retrieves a product with its allowed ingredients
func (s *Store) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product, "SELECT * FROM products WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if err := s.db.SelectContext(ctx, &product.Ingredients, `
		SELECT i.* FROM ingredients i
		JOIN product_ingredients pi ON pi.ingredient_id = i.id
		WHERE pi.product_id = $1 ORDER BY i.id`, id); err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProducts retrieves the full catalog
func (s *Store) GetProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.SelectContext(ctx, &products, "SELECT * FROM products ORDER BY id"); err != nil {
		return nil, err
	}
	for i := range products {
		if err := s.db.SelectContext(ctx, &products[i].Ingredients, `
			SELECT i.* FROM ingredients i
			JOIN product_ingredients pi ON pi.ingredient_id = i.id
			WHERE pi.product_id = $1 ORDER BY i.id`, products[i].ID); err != nil {
			return nil, err
		}
	}
	return products, nil
}

// GetProductsByIDs retrieves multiple products by IDs
func (s *Store) GetProductsByIDs(ctx context.Context, ids []int64) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}

	query, args, err := sqlx.In("SELECT * FROM products WHERE id IN (?)", ids)
	if err != nil {
		return nil, err
	}
	query = s.db.Rebind(query)

	var products []models.Product
	err = s.db.SelectContext(ctx, &products, query, args...)
	return products, err
}

// CreateProduct inserts a catalog product and its allowed-ingredient links
func (s *Store) CreateProduct(ctx context.Context, p *models.Product, ingredientIDs []int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.GetContext(ctx, p, `
		INSERT INTO products (name, description, base_price, image_url, customizable)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, description, base_price, image_url, customizable, created_at`,
		p.Name, p.Description, p.BasePrice, p.ImageURL, p.Customizable); err != nil {
		return err
	}

	for _, ingID := range ingredientIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO product_ingredients (product_id, ingredient_id) VALUES ($1, $2)",
			p.ID, ingID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// UpdateProduct updates mutable product fields. A non-nil ingredientIDs
// replaces the allowed-ingredient links; nil leaves them untouched.
func (s *Store) UpdateProduct(ctx context.Context, p *models.Product, ingredientIDs []int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE products SET name = $1, description = $2, base_price = $3, image_url = $4, customizable = $5
		WHERE id = $6`,
		p.Name, p.Description, p.BasePrice, p.ImageURL, p.Customizable, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("product %d: %w", p.ID, ErrNotFound)
	}

	if ingredientIDs != nil {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM product_ingredients WHERE product_id = $1", p.ID); err != nil {
			return err
		}
		for _, ingID := range ingredientIDs {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO product_ingredients (product_id, ingredient_id) VALUES ($1, $2)",
				p.ID, ingID); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

// GetIngredientByID retrieves one ingredient
func (s *Store) GetIngredientByID(ctx context.Context, id int64) (*models.Ingredient, error) {
	var ing models.Ingredient
	err := s.db.GetContext(ctx, &ing, "SELECT * FROM ingredients WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("ingredient %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &ing, nil
}

// GetIngredients retrieves all ingredients
func (s *Store) GetIngredients(ctx context.Context) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	err := s.db.SelectContext(ctx, &ingredients, "SELECT * FROM ingredients ORDER BY id")
	return ingredients, err
}

// GetIngredientsByIDs retrieves the selected ingredients. Every id must
// resolve, otherwise ErrNotFound.
func (s *Store) GetIngredientsByIDs(ctx context.Context, ids []int64) ([]models.Ingredient, error) {
	if len(ids) == 0 {
		return []models.Ingredient{}, nil
	}

	query, args, err := sqlx.In("SELECT * FROM ingredients WHERE id IN (?)", ids)
	if err != nil {
		return nil, err
	}
	query = s.db.Rebind(query)

	var ingredients []models.Ingredient
	if err := s.db.SelectContext(ctx, &ingredients, query, args...); err != nil {
		return nil, err
	}
	if len(ingredients) != len(dedupe(ids)) {
		return nil, fmt.Errorf("some ingredients: %w", ErrNotFound)
	}
	return ingredients, nil
}

// CreateIngredient inserts an ingredient
func (s *Store) CreateIngredient(ctx context.Context, ing *models.Ingredient) error {
	return s.db.GetContext(ctx, ing, `
		INSERT INTO ingredients (name, extra_cost) VALUES ($1, $2)
		RETURNING id, name, extra_cost`,
		ing.Name, ing.ExtraCost)
}

// GetComboByID retrieves a combo with its products
func (s *Store) GetComboByID(ctx context.Context, id int64) (*models.Combo, error) {
	var combo models.Combo
	err := s.db.GetContext(ctx, &combo, "SELECT * FROM combos WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("combo %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if err := s.db.SelectContext(ctx, &combo.Products, `
		SELECT p.* FROM products p
		JOIN combo_products cp ON cp.product_id = p.id
		WHERE cp.combo_id = $1 ORDER BY p.id`, id); err != nil {
		return nil, err
	}
	return &combo, nil
}

// GetCombos retrieves all combos
func (s *Store) GetCombos(ctx context.Context) ([]models.Combo, error) {
	var combos []models.Combo
	if err := s.db.SelectContext(ctx, &combos, "SELECT * FROM combos ORDER BY id"); err != nil {
		return nil, err
	}
	for i := range combos {
		if err := s.db.SelectContext(ctx, &combos[i].Products, `
			SELECT p.* FROM products p
			JOIN combo_products cp ON cp.product_id = p.id
			WHERE cp.combo_id = $1 ORDER BY p.id`, combos[i].ID); err != nil {
			return nil, err
		}
	}
	return combos, nil
}

// CreateCustomCombo inserts a user-assembled combo with its product lines
// in one transaction. The caller supplies the computed total.
func (s *Store) CreateCustomCombo(ctx context.Context, combo *models.CustomCombo) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.GetContext(ctx, combo, `
		INSERT INTO custom_combos (user_id, name, total_price)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, name, total_price, created_at`,
		combo.UserID, combo.Name, combo.TotalPrice); err != nil {
		return err
	}

	for _, entry := range combo.Products {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO custom_combo_products (custom_combo_id, product_id, quantity)
			VALUES ($1, $2, $3)`,
			combo.ID, entry.ProductID, entry.Quantity); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetCustomCombosByUserID retrieves a user's custom combos
func (s *Store) GetCustomCombosByUserID(ctx context.Context, userID int64) ([]models.CustomCombo, error) {
	var combos []models.CustomCombo
	if err := s.db.SelectContext(ctx, &combos,
		"SELECT * FROM custom_combos WHERE user_id = $1 ORDER BY created_at DESC", userID); err != nil {
		return nil, err
	}
	for i := range combos {
		if err := s.db.SelectContext(ctx, &combos[i].Products, `
			SELECT product_id, quantity FROM custom_combo_products
			WHERE custom_combo_id = $1 ORDER BY product_id`, combos[i].ID); err != nil {
			return nil, err
		}
	}
	return combos, nil
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
