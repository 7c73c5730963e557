package api

import (
	"encoding/json"
	"testing"

	"github.com/Karatsuyu/delicious-food-app/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyProductUpdatePartial(t *testing.T) {
	product := &models.Product{
		Name:         "Pizza Margarita",
		Description:  "Clásica con albahaca",
		BasePrice:    1200,
		ImageURL:     "https://cdn.example.com/margarita.jpg",
		Customizable: true,
	}

	var req productUpdateRequest
	require.NoError(t, json.Unmarshal([]byte(`{"precio_base": 1350}`), &req))

	applyProductUpdate(product, &req)

	// omitted fields keep their stored values
	assert.Equal(t, int64(1350), product.BasePrice)
	assert.Equal(t, "Pizza Margarita", product.Name)
	assert.Equal(t, "Clásica con albahaca", product.Description)
	assert.Equal(t, "https://cdn.example.com/margarita.jpg", product.ImageURL)
	assert.True(t, product.Customizable)
	assert.Nil(t, req.IngredientIDs)
}

func TestApplyProductUpdateAllFields(t *testing.T) {
	product := &models.Product{Name: "Pizza Margarita", BasePrice: 1200, Customizable: true}

	var req productUpdateRequest
	require.NoError(t, json.Unmarshal([]byte(
		`{"nombre": "Pizza Napolitana", "descripcion": "Con anchoas", "precio_base": 1500,
		  "imagen": "https://cdn.example.com/napolitana.jpg", "es_personalizable": false,
		  "ingredientes": [1, 2]}`), &req))

	applyProductUpdate(product, &req)

	assert.Equal(t, "Pizza Napolitana", product.Name)
	assert.Equal(t, "Con anchoas", product.Description)
	assert.Equal(t, int64(1500), product.BasePrice)
	assert.Equal(t, "https://cdn.example.com/napolitana.jpg", product.ImageURL)
	assert.False(t, product.Customizable)
	require.NotNil(t, req.IngredientIDs)
	assert.Equal(t, []int64{1, 2}, *req.IngredientIDs)
}
