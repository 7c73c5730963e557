package service

import (
	"context"
	"fmt"

	"github.com/Karatsuyu/delicious-food-app/internal/models"
	"github.com/Karatsuyu/delicious-food-app/internal/store"
	"github.com/Karatsuyu/delicious-food-app/internal/util"
)

// ReviewService manages product ratings and their aggregates.
type ReviewService struct {
	store *store.Store
}

// NewReviewService creates a review service
func NewReviewService(store *store.Store) *ReviewService {
	return &ReviewService{store: store}
}

// CreateReviewRequest is the payload for posting a review.
type CreateReviewRequest struct {
	ProductID int64  `json:"producto" binding:"required"`
	Text      string `json:"texto"`
	Rating    int    `json:"calificacion"`
}

// Create validates the rating range and the product reference, then stores
// the review. The same user may review a product more than once.
func (s *ReviewService) Create(ctx context.Context, principal Principal, req *CreateReviewRequest) (*models.Review, error) {
	if err := validateRating(req.Rating); err != nil {
		return nil, err
	}
	product, err := s.store.GetProductByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	review := &models.Review{
		UserID:    principal.UserID,
		ProductID: req.ProductID,
		Text:      req.Text,
		Rating:    req.Rating,
	}
	if err := s.store.CreateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	review.UserEmail = principal.Email
	review.ProductName = product.Name

	util.ReviewsCreatedTotal.Inc()
	return review, nil
}

// List returns reviews newest first, optionally filtered by product
// (productID == 0 means all).
func (s *ReviewService) List(ctx context.Context, productID int64) ([]models.Review, error) {
	return s.store.GetReviews(ctx, productID)
}

// MyReviews returns the caller's own reviews, newest first
func (s *ReviewService) MyReviews(ctx context.Context, principal Principal) ([]models.Review, error) {
	return s.store.GetReviewsByUserID(ctx, principal.UserID)
}

// UpdateReviewRequest carries the editable review fields; nil means keep.
type UpdateReviewRequest struct {
	Text   *string `json:"texto"`
	Rating *int    `json:"calificacion"`
}

func applyReviewUpdate(review *models.Review, req *UpdateReviewRequest) error {
	if req.Rating != nil {
		if err := validateRating(*req.Rating); err != nil {
			return err
		}
		review.Rating = *req.Rating
	}
	if req.Text != nil {
		review.Text = *req.Text
	}
	return nil
}

// Update edits a review. Only the original author may do so. Omitted
// fields keep their stored values, so a text-only edit never touches the
// rating.
func (s *ReviewService) Update(ctx context.Context, principal Principal, id int64, req *UpdateReviewRequest) (*models.Review, error) {
	review, err := s.store.GetReviewByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if review.UserID != principal.UserID {
		return nil, fmt.Errorf("review %d: %w", id, ErrForbidden)
	}

	if err := applyReviewUpdate(review, req); err != nil {
		return nil, err
	}
	if err := s.store.UpdateReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// Delete removes a review. Only the original author may do so.
func (s *ReviewService) Delete(ctx context.Context, principal Principal, id int64) error {
	review, err := s.store.GetReviewByID(ctx, id)
	if err != nil {
		return err
	}
	if review.UserID != principal.UserID {
		return fmt.Errorf("review %d: %w", id, ErrForbidden)
	}
	return s.store.DeleteReview(ctx, id)
}

// ProductStats aggregates reviews for one product: count, average and a
// zero-filled 1..5 histogram. A product without reviews yields count 0,
// average 0 and all five buckets at 0.
func (s *ReviewService) ProductStats(ctx context.Context, productID int64) (*models.ReviewStats, error) {
	product, err := s.store.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	histogram, err := s.store.GetRatingHistogram(ctx, productID)
	if err != nil {
		return nil, err
	}

	return BuildReviewStats(product.ID, product.Name, histogram), nil
}

// BuildReviewStats zero-fills the histogram buckets and derives count and
// average from them.
func BuildReviewStats(productID int64, productName string, histogram map[int]int) *models.ReviewStats {
	stats := &models.ReviewStats{
		ProductID:    productID,
		ProductName:  productName,
		Distribution: make(map[int]int, 5),
	}

	var sum int
	for rating := 1; rating <= 5; rating++ {
		count := histogram[rating]
		stats.Distribution[rating] = count
		stats.TotalReviews += count
		sum += rating * count
	}
	if stats.TotalReviews > 0 {
		stats.Average = float64(sum) / float64(stats.TotalReviews)
	}
	return stats
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5: %w", ErrValidation)
	}
	return nil
}
