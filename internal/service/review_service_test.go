package service

import (
	"testing"

	"github.com/Karatsuyu/delicious-food-app/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRating(t *testing.T) {
	assert.ErrorIs(t, validateRating(0), ErrValidation)
	assert.ErrorIs(t, validateRating(6), ErrValidation)
	assert.ErrorIs(t, validateRating(-1), ErrValidation)
	assert.NoError(t, validateRating(1))
	assert.NoError(t, validateRating(5))
}

func TestApplyReviewUpdateTextOnly(t *testing.T) {
	review := &models.Review{Text: "Muy buena", Rating: 4}

	text := "Excelente, repetiría"
	require.NoError(t, applyReviewUpdate(review, &UpdateReviewRequest{Text: &text}))

	// an omitted rating keeps the stored one
	assert.Equal(t, "Excelente, repetiría", review.Text)
	assert.Equal(t, 4, review.Rating)
}

func TestApplyReviewUpdateRejectsOutOfRangeRating(t *testing.T) {
	review := &models.Review{Text: "Muy buena", Rating: 4}

	rating := 9
	err := applyReviewUpdate(review, &UpdateReviewRequest{Rating: &rating})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, 4, review.Rating)
}

func TestApplyReviewUpdateRatingOnly(t *testing.T) {
	review := &models.Review{Text: "Muy buena", Rating: 4}

	rating := 5
	require.NoError(t, applyReviewUpdate(review, &UpdateReviewRequest{Rating: &rating}))

	assert.Equal(t, "Muy buena", review.Text)
	assert.Equal(t, 5, review.Rating)
}

func TestBuildReviewStats(t *testing.T) {
	stats := BuildReviewStats(3, "Hamburguesa Clásica", map[int]int{
		5: 2,
		4: 1,
		1: 1,
	})

	assert.Equal(t, 4, stats.TotalReviews)
	assert.InDelta(t, 3.75, stats.Average, 0.001)
	assert.Equal(t, map[int]int{1: 1, 2: 0, 3: 0, 4: 1, 5: 2}, stats.Distribution)
}

func TestBuildReviewStatsNoReviews(t *testing.T) {
	stats := BuildReviewStats(3, "Hamburguesa Clásica", map[int]int{})

	assert.Equal(t, 0, stats.TotalReviews)
	assert.Equal(t, 0.0, stats.Average)
	// all five buckets present, zero-filled
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}, stats.Distribution)
}
