package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Karatsuyu/delicious-food-app/internal/models"
	"github.com/Karatsuyu/delicious-food-app/internal/redisclient"
	"github.com/Karatsuyu/delicious-food-app/internal/store"
	"github.com/Karatsuyu/delicious-food-app/internal/util"

	"go.uber.org/zap"
)

// CatalogService serves products, ingredients and combos. The product list
// is read-mostly and served through a Redis cache; cache failures fall back
// to the database.
type CatalogService struct {
	store      *store.Store
	redis      *redisclient.Client
	productTTL time.Duration
	logger     *zap.Logger
}

// NewCatalogService creates a catalog service
func NewCatalogService(store *store.Store, redis *redisclient.Client, productTTL time.Duration) *CatalogService {
	return &CatalogService{
		store:      store,
		redis:      redis,
		productTTL: productTTL,
		logger:     util.GetLogger(),
	}
}

// ListProducts returns the catalog, read-through cached
func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.ListProducts")
	defer span.End()

	if cached, err := s.redis.GetProductList(ctx); err == nil && cached != nil {
		util.CatalogCacheHits.Inc()
		return cached, nil
	} else if err != nil {
		s.logger.Warn("Product cache read failed", zap.Error(err))
	}

	util.CatalogCacheMisses.Inc()
	products, err := s.store.GetProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	if err := s.redis.SetProductList(ctx, products, s.productTTL); err != nil {
		s.logger.Warn("Product cache write failed", zap.Error(err))
	}
	return products, nil
}

// GetProduct returns one product with its allowed ingredients
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return s.store.GetProductByID(ctx, id)
}

// CreateProduct adds a catalog product. Staff only.
func (s *CatalogService) CreateProduct(ctx context.Context, principal Principal, p *models.Product, ingredientIDs []int64) error {
	if !principal.IsStaff {
		return fmt.Errorf("create product: %w", ErrForbidden)
	}
	if p.BasePrice < 0 {
		return fmt.Errorf("base price must not be negative: %w", ErrValidation)
	}
	if _, err := s.store.GetIngredientsByIDs(ctx, ingredientIDs); err != nil {
		return err
	}
	if err := s.store.CreateProduct(ctx, p, ingredientIDs); err != nil {
		return err
	}
	s.invalidateProducts(ctx)
	return nil
}

// UpdateProduct updates a catalog product. Staff only. A non-nil
// ingredientIDs replaces the allowed-ingredient set; stored cart and order
// prices are snapshots and stay untouched.
func (s *CatalogService) UpdateProduct(ctx context.Context, principal Principal, p *models.Product, ingredientIDs []int64) error {
	if !principal.IsStaff {
		return fmt.Errorf("update product: %w", ErrForbidden)
	}
	if p.BasePrice < 0 {
		return fmt.Errorf("base price must not be negative: %w", ErrValidation)
	}
	if ingredientIDs != nil {
		ingredients, err := s.store.GetIngredientsByIDs(ctx, ingredientIDs)
		if err != nil {
			return err
		}
		p.Ingredients = ingredients
	}
	if err := s.store.UpdateProduct(ctx, p, ingredientIDs); err != nil {
		return err
	}
	s.invalidateProducts(ctx)
	return nil
}

// GetIngredient returns one ingredient
func (s *CatalogService) GetIngredient(ctx context.Context, id int64) (*models.Ingredient, error) {
	return s.store.GetIngredientByID(ctx, id)
}

// ListIngredients returns all ingredients
func (s *CatalogService) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	return s.store.GetIngredients(ctx)
}

// CreateIngredient adds an ingredient. Staff only.
func (s *CatalogService) CreateIngredient(ctx context.Context, principal Principal, ing *models.Ingredient) error {
	if !principal.IsStaff {
		return fmt.Errorf("create ingredient: %w", ErrForbidden)
	}
	if ing.ExtraCost < 0 {
		return fmt.Errorf("extra cost must not be negative: %w", ErrValidation)
	}
	return s.store.CreateIngredient(ctx, ing)
}

// ListCombos returns all curated combos
func (s *CatalogService) ListCombos(ctx context.Context) ([]models.Combo, error) {
	return s.store.GetCombos(ctx)
}

// GetCombo returns one combo with its products
func (s *CatalogService) GetCombo(ctx context.Context, id int64) (*models.Combo, error) {
	return s.store.GetComboByID(ctx, id)
}

// CreateCustomCombo assembles a user combo and prices it from the current
// base prices. The total is fixed at creation and never recomputed.
func (s *CatalogService) CreateCustomCombo(ctx context.Context, principal Principal, name string, entries []models.CustomComboEntry) (*models.CustomCombo, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.CreateCustomCombo")
	defer span.End()

	if len(entries) == 0 {
		return nil, fmt.Errorf("a custom combo needs at least one product: %w", ErrValidation)
	}

	ids := make([]int64, 0, len(entries))
	for _, entry := range entries {
		if entry.Quantity < 1 {
			return nil, fmt.Errorf("quantity must be at least 1: %w", ErrValidation)
		}
		ids = append(ids, entry.ProductID)
	}

	products, err := s.store.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	prices := make(map[int64]int64, len(products))
	for _, product := range products {
		prices[product.ID] = product.BasePrice
	}

	var total int64
	for _, entry := range entries {
		price, ok := prices[entry.ProductID]
		if !ok {
			return nil, fmt.Errorf("product %d: %w", entry.ProductID, store.ErrNotFound)
		}
		total += price * int64(entry.Quantity)
	}

	combo := &models.CustomCombo{
		UserID:     principal.UserID,
		Name:       name,
		TotalPrice: total,
		Products:   entries,
	}
	if err := s.store.CreateCustomCombo(ctx, combo); err != nil {
		return nil, fmt.Errorf("create custom combo: %w", err)
	}
	return combo, nil
}

// ListCustomCombos returns the caller's own custom combos
func (s *CatalogService) ListCustomCombos(ctx context.Context, principal Principal) ([]models.CustomCombo, error) {
	return s.store.GetCustomCombosByUserID(ctx, principal.UserID)
}

func (s *CatalogService) invalidateProducts(ctx context.Context) {
	if err := s.redis.InvalidateProductList(ctx); err != nil {
		s.logger.Warn("Product cache invalidation failed", zap.Error(err))
	}
}
