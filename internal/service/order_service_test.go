package service

import (
	"context"
	"testing"

	"github.com/Karatsuyu/delicious-food-app/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stateRef(id int64) *int64 { return &id }

func TestUpdateStateRequiresStaff(t *testing.T) {
	// the staff check runs before any store access
	svc := &OrderService{}

	_, err := svc.UpdateState(context.Background(), Principal{UserID: 7}, 1, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestComputeOrderStats(t *testing.T) {
	orders := []models.Order{
		{Total: 3000, StateID: stateRef(1), StateDesc: models.StateSent},
		{Total: 1500, StateID: stateRef(1), StateDesc: models.StateSent},
		{Total: 4500, StateID: stateRef(2), StateDesc: "Entregado"},
		{Total: 1000}, // no state
	}

	stats := ComputeOrderStats(orders)

	assert.Equal(t, 4, stats.TotalOrders)
	assert.Equal(t, int64(10000), stats.TotalSpent)
	assert.Equal(t, 2500.0, stats.AveragePerOrd)
	assert.Equal(t, map[string]int{
		models.StateSent: 2,
		"Entregado":      1,
		models.StateNone: 1,
	}, stats.ByState)
}

func TestComputeOrderStatsEmpty(t *testing.T) {
	stats := ComputeOrderStats(nil)

	assert.Equal(t, 0, stats.TotalOrders)
	assert.Equal(t, int64(0), stats.TotalSpent)
	assert.Equal(t, 0.0, stats.AveragePerOrd)
	assert.Empty(t, stats.ByState)
}
