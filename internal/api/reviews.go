package api

import (
	"net/http"

	"github.com/Karatsuyu/delicious-food-app/internal/service"

	"github.com/gin-gonic/gin"
)

// listReviews handles GET /api/reviews?producto=<id>
func (h *Handler) listReviews(c *gin.Context) {
	productID, ok := queryID(c, "producto")
	if !ok {
		return
	}
	reviews, err := h.reviews.List(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// createReview handles POST /api/reviews
func (h *Handler) createReview(c *gin.Context) {
	var req service.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	review, err := h.reviews.Create(c.Request.Context(), getPrincipal(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// myReviews handles GET /api/reviews/mis_reviews
func (h *Handler) myReviews(c *gin.Context) {
	reviews, err := h.reviews.MyReviews(c.Request.Context(), getPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// updateReview handles PATCH /api/reviews/:id
func (h *Handler) updateReview(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req service.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	review, err := h.reviews.Update(c.Request.Context(), getPrincipal(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// deleteReview handles DELETE /api/reviews/:id
func (h *Handler) deleteReview(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.reviews.Delete(c.Request.Context(), getPrincipal(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// reviewProductStats handles GET /api/reviews/estadisticas_producto?producto=<id>
func (h *Handler) reviewProductStats(c *gin.Context) {
	productID, ok := queryID(c, "producto")
	if !ok {
		return
	}
	if productID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Debes especificar un producto"})
		return
	}

	stats, err := h.reviews.ProductStats(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
