package service

import (
	"testing"

	"github.com/Karatsuyu/delicious-food-app/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestLinePrice(t *testing.T) {
	ingredients := []models.Ingredient{
		{ID: 1, Name: "Queso extra", ExtraCost: 150},
		{ID: 2, Name: "Tocino", ExtraCost: 250},
	}

	// (base + extras) * quantity
	assert.Equal(t, int64((1000+150+250)*3), LinePrice(1000, ingredients, 3))
	assert.Equal(t, int64(1000), LinePrice(1000, nil, 1))
	assert.Equal(t, int64(0), LinePrice(0, nil, 5))
}

func TestCartTotal(t *testing.T) {
	items := []models.CartItem{
		{LinePrice: 2500},
		{LinePrice: 1200},
		{LinePrice: 800},
	}
	assert.Equal(t, int64(4500), CartTotal(items))
	assert.Equal(t, int64(0), CartTotal(nil))
}

func TestValidateSelection(t *testing.T) {
	product := &models.Product{
		ID:           7,
		Customizable: true,
		Ingredients: []models.Ingredient{
			{ID: 1}, {ID: 2},
		},
	}

	assert.NoError(t, validateSelection(product, nil))
	assert.NoError(t, validateSelection(product, []models.Ingredient{{ID: 1}, {ID: 2}}))

	err := validateSelection(product, []models.Ingredient{{ID: 3}})
	assert.ErrorIs(t, err, ErrValidation)

	fixed := &models.Product{ID: 8, Customizable: false}
	err = validateSelection(fixed, []models.Ingredient{{ID: 1}})
	assert.ErrorIs(t, err, ErrValidation)
}
