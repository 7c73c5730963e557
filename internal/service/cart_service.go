package service

import (
	"context"
	"fmt"

	"github.com/Karatsuyu/delicious-food-app/internal/models"
	"github.com/Karatsuyu/delicious-food-app/internal/store"
	"github.com/Karatsuyu/delicious-food-app/internal/util"

	"go.uber.org/zap"
)

// CartService manages the per-user scratch cart. Line prices are fixed at
// add time; a later catalog price change never re-prices a cart.
type CartService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewCartService creates a cart service
func NewCartService(store *store.Store) *CartService {
	return &CartService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// AddItemRequest is the payload for adding one line to the cart. Exactly
// one of ProductID/ComboID must be set.
type AddItemRequest struct {
	ProductID     int64   `json:"producto_id"`
	ComboID       int64   `json:"combo_id"`
	IngredientIDs []int64 `json:"ingredientes"`
	Quantity      int     `json:"cantidad"`
}

// AddItem resolves the product or combo, validates the selected ingredients
// against the product's allowed set and persists the line with its computed
// price.
func (s *CartService) AddItem(ctx context.Context, principal Principal, req *AddItemRequest) (*models.CartItem, error) {
	ctx, span := util.StartSpan(ctx, "CartService.AddItem")
	defer span.End()

	if req.Quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1: %w", ErrValidation)
	}
	if (req.ProductID == 0) == (req.ComboID == 0) {
		return nil, fmt.Errorf("exactly one of producto_id or combo_id must be set: %w", ErrValidation)
	}

	cart, err := s.store.GetOrCreateCart(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	item := &models.CartItem{
		CartID:   cart.ID,
		Quantity: req.Quantity,
	}

	var unit int64
	if req.ProductID != 0 {
		product, err := s.store.GetProductByID(ctx, req.ProductID)
		if err != nil {
			return nil, err
		}

		ingredients, err := s.store.GetIngredientsByIDs(ctx, req.IngredientIDs)
		if err != nil {
			return nil, err
		}
		if err := validateSelection(product, ingredients); err != nil {
			return nil, err
		}

		unit = LinePrice(product.BasePrice, ingredients, 1)
		item.ProductID = &product.ID
		item.Ingredients = ingredients
	} else {
		if len(req.IngredientIDs) > 0 {
			return nil, fmt.Errorf("combos do not take extra ingredients: %w", ErrValidation)
		}
		combo, err := s.store.GetComboByID(ctx, req.ComboID)
		if err != nil {
			return nil, err
		}
		unit = combo.Price
		item.ComboID = &combo.ID
	}

	item.LinePrice = unit * int64(req.Quantity)

	if err := s.store.CreateCartItem(ctx, item, req.IngredientIDs); err != nil {
		return nil, fmt.Errorf("persist cart item: %w", err)
	}

	util.CartItemsAddedTotal.Inc()
	s.logger.Info("Cart item added",
		zap.Int64("user_id", principal.UserID),
		zap.Int64("item_id", item.ID),
		zap.Int64("line_price", item.LinePrice))
	return item, nil
}

// ViewCart returns the cart with its items and the total over stored line
// prices. An untouched cart is created empty on first view.
func (s *CartService) ViewCart(ctx context.Context, principal Principal) (*models.Cart, error) {
	cart, err := s.store.GetOrCreateCart(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	items, err := s.store.GetCartItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	cart.Items = items
	cart.Total = CartTotal(items)
	return cart, nil
}

// LinePrice computes (base + sum of ingredient extras) * quantity.
func LinePrice(basePrice int64, ingredients []models.Ingredient, quantity int) int64 {
	price := basePrice
	for _, ing := range ingredients {
		price += ing.ExtraCost
	}
	return price * int64(quantity)
}

// CartTotal sums the stored line prices of the given items.
func CartTotal(items []models.CartItem) int64 {
	var total int64
	for _, item := range items {
		total += item.LinePrice
	}
	return total
}

// validateSelection checks the selected ingredients against the product's
// allowed set and its customizable flag.
func validateSelection(product *models.Product, selected []models.Ingredient) error {
	if len(selected) == 0 {
		return nil
	}
	if !product.Customizable {
		return fmt.Errorf("product %d is not customizable: %w", product.ID, ErrValidation)
	}

	allowed := make(map[int64]struct{}, len(product.Ingredients))
	for _, ing := range product.Ingredients {
		allowed[ing.ID] = struct{}{}
	}
	for _, ing := range selected {
		if _, ok := allowed[ing.ID]; !ok {
			return fmt.Errorf("ingredient %d is not allowed for product %d: %w",
				ing.ID, product.ID, ErrValidation)
		}
	}
	return nil
}
