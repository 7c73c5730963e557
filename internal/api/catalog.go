package api

import (
	"net/http"

	"github.com/Karatsuyu/delicious-food-app/internal/models"

	"github.com/gin-gonic/gin"
)

// listProducts handles GET /api/productos
func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// getProduct handles GET /api/productos/:id
func (h *Handler) getProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

type productRequest struct {
	Name          string  `json:"nombre" binding:"required"`
	Description   string  `json:"descripcion"`
	BasePrice     int64   `json:"precio_base"`
	ImageURL      string  `json:"imagen"`
	Customizable  *bool   `json:"es_personalizable"`
	IngredientIDs []int64 `json:"ingredientes"`
}

// createProduct handles POST /api/productos (staff)
func (h *Handler) createProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	customizable := true
	if req.Customizable != nil {
		customizable = *req.Customizable
	}
	product := &models.Product{
		Name:         req.Name,
		Description:  req.Description,
		BasePrice:    req.BasePrice,
		ImageURL:     req.ImageURL,
		Customizable: customizable,
	}
	if err := h.catalog.CreateProduct(c.Request.Context(), getPrincipal(c), product, req.IngredientIDs); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// productUpdateRequest carries the mutable product fields; nil means keep.
type productUpdateRequest struct {
	Name          *string  `json:"nombre"`
	Description   *string  `json:"descripcion"`
	BasePrice     *int64   `json:"precio_base"`
	ImageURL      *string  `json:"imagen"`
	Customizable  *bool    `json:"es_personalizable"`
	IngredientIDs *[]int64 `json:"ingredientes"`
}

func applyProductUpdate(p *models.Product, req *productUpdateRequest) {
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.BasePrice != nil {
		p.BasePrice = *req.BasePrice
	}
	if req.ImageURL != nil {
		p.ImageURL = *req.ImageURL
	}
	if req.Customizable != nil {
		p.Customizable = *req.Customizable
	}
}

// updateProduct handles PATCH /api/productos/:id (staff)
func (h *Handler) updateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	var req productUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	applyProductUpdate(product, &req)

	var ingredientIDs []int64
	if req.IngredientIDs != nil {
		ingredientIDs = *req.IngredientIDs
		if ingredientIDs == nil {
			ingredientIDs = []int64{}
		}
	}

	if err := h.catalog.UpdateProduct(c.Request.Context(), getPrincipal(c), product, ingredientIDs); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// getIngredient handles GET /api/ingredientes/:id
func (h *Handler) getIngredient(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ingredient, err := h.catalog.GetIngredient(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

// listIngredients handles GET /api/ingredientes
func (h *Handler) listIngredients(c *gin.Context) {
	ingredients, err := h.catalog.ListIngredients(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

// createIngredient handles POST /api/ingredientes (staff)
func (h *Handler) createIngredient(c *gin.Context) {
	var req struct {
		Name      string `json:"nombre" binding:"required"`
		ExtraCost int64  `json:"costo_extra"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	ingredient := &models.Ingredient{Name: req.Name, ExtraCost: req.ExtraCost}
	if err := h.catalog.CreateIngredient(c.Request.Context(), getPrincipal(c), ingredient); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ingredient)
}

// listCombos handles GET /api/combos
func (h *Handler) listCombos(c *gin.Context) {
	combos, err := h.catalog.ListCombos(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, combos)
}

// getCombo handles GET /api/combos/:id
func (h *Handler) getCombo(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	combo, err := h.catalog.GetCombo(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, combo)
}

// createCustomCombo handles POST /api/combos-personalizados
func (h *Handler) createCustomCombo(c *gin.Context) {
	var req struct {
		Name     string                    `json:"nombre" binding:"required"`
		Products []models.CustomComboEntry `json:"productos" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	combo, err := h.catalog.CreateCustomCombo(c.Request.Context(), getPrincipal(c), req.Name, req.Products)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, combo)
}

// listCustomCombos handles GET /api/combos-personalizados
func (h *Handler) listCustomCombos(c *gin.Context) {
	combos, err := h.catalog.ListCustomCombos(c.Request.Context(), getPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, combos)
}
