package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Karatsuyu/delicious-food-app/internal/models"
)

const reviewSelect = `
	SELECT r.id, r.user_id, u.email AS user_email, r.product_id,
	       p.name AS product_name, r.text, r.rating, r.created_at
	FROM reviews r
	JOIN users u ON u.id = r.user_id
	JOIN products p ON p.id = r.product_id`

// CreateReview inserts a review. The rating range is validated by the
// service layer before it gets here.
func (s *Store) CreateReview(ctx context.Context, r *models.Review) error {
	return s.db.GetContext(ctx, r, `
		INSERT INTO reviews (user_id, product_id, text, rating)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, product_id, text, rating, created_at`,
		r.UserID, r.ProductID, r.Text, r.Rating)
}

// GetReviewByID retrieves one review
func (s *Store) GetReviewByID(ctx context.Context, id int64) (*models.Review, error) {
	var r models.Review
	err := s.db.GetContext(ctx, &r, reviewSelect+" WHERE r.id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("review %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetReviews retrieves all reviews, newest first, optionally filtered by
// product (productID == 0 means no filter).
func (s *Store) GetReviews(ctx context.Context, productID int64) ([]models.Review, error) {
	var reviews []models.Review
	if productID != 0 {
		err := s.db.SelectContext(ctx, &reviews,
			reviewSelect+" WHERE r.product_id = $1 ORDER BY r.created_at DESC", productID)
		return reviews, err
	}
	err := s.db.SelectContext(ctx, &reviews, reviewSelect+" ORDER BY r.created_at DESC")
	return reviews, err
}

// GetReviewsByUserID retrieves a user's reviews, newest first
func (s *Store) GetReviewsByUserID(ctx context.Context, userID int64) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.SelectContext(ctx, &reviews,
		reviewSelect+" WHERE r.user_id = $1 ORDER BY r.created_at DESC", userID)
	return reviews, err
}

// UpdateReview updates text and rating of a review
func (s *Store) UpdateReview(ctx context.Context, r *models.Review) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE reviews SET text = $1, rating = $2 WHERE id = $3",
		r.Text, r.Rating, r.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("review %d: %w", r.ID, ErrNotFound)
	}
	return nil
}

// DeleteReview removes a review
func (s *Store) DeleteReview(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM reviews WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("review %d: %w", id, ErrNotFound)
	}
	return nil
}

// CountReviewsByUserID counts a user's reviews
func (s *Store) CountReviewsByUserID(ctx context.Context, userID int64) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM reviews WHERE user_id = $1", userID)
	return count, err
}

// ratingBucket is one row of the per-rating histogram query.
type ratingBucket struct {
	Rating int `db:"rating"`
	Count  int `db:"count"`
}

// GetRatingHistogram returns rating -> count for one product. Absent
// ratings are simply missing from the map; the service zero-fills.
func (s *Store) GetRatingHistogram(ctx context.Context, productID int64) (map[int]int, error) {
	var buckets []ratingBucket
	if err := s.db.SelectContext(ctx, &buckets, `
		SELECT rating, COUNT(*) AS count FROM reviews
		WHERE product_id = $1 GROUP BY rating`, productID); err != nil {
		return nil, err
	}
	histogram := make(map[int]int, len(buckets))
	for _, b := range buckets {
		histogram[b.Rating] = b.Count
	}
	return histogram, nil
}
